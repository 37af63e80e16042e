package repository

import (
	"context"

	"telegram-prayer-reminder/internal/domain/model"
)

// LocationRepository persists the user -> location mapping. Find returns
// domain.ErrNotFound for users that never registered a location.
type LocationRepository interface {
	Save(ctx context.Context, userID string, loc model.Location) error
	Find(ctx context.Context, userID string) (model.Location, error)
	All(ctx context.Context) (map[string]model.Location, error)
}
