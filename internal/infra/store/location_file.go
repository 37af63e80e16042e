// File: internal/infra/store/location_file.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/model"
	"telegram-prayer-reminder/internal/domain/ports/repository"
)

var _ repository.LocationRepository = (*LocationFile)(nil)

// LocationFile keeps the user -> location map as one pretty-printed JSON
// object at a fixed path: the whole file is read on every read and rewritten
// on every write. Single-process access assumed; the mutex only serializes
// goroutines inside this process.
type LocationFile struct {
	mu   sync.RWMutex
	path string
}

func NewLocationFile(path string) *LocationFile {
	return &LocationFile{path: path}
}

func (s *LocationFile) Save(ctx context.Context, userID string, loc model.Location) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: empty user id", domain.ErrInvalidLocation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	locations, err := s.load()
	if err != nil {
		return err
	}
	locations[userID] = loc

	data, err := json.MarshalIndent(locations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write locations file: %w", err)
	}
	return nil
}

func (s *LocationFile) Find(ctx context.Context, userID string) (model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locations, err := s.load()
	if err != nil {
		return model.Location{}, err
	}
	loc, ok := locations[userID]
	if !ok {
		return model.Location{}, domain.ErrNotFound
	}
	return loc, nil
}

func (s *LocationFile) All(ctx context.Context) (map[string]model.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// load reads the full file; a missing or empty file is an empty map.
func (s *LocationFile) load() (map[string]model.Location, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]model.Location{}, nil
		}
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}
	if len(data) == 0 {
		return map[string]model.Location{}, nil
	}
	locations := map[string]model.Location{}
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal locations file: %w", err)
	}
	return locations, nil
}
