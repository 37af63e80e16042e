// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/model"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memLocationRepo is a small in-memory location store used by unit tests.
type memLocationRepo struct {
	mu    sync.RWMutex
	store map[string]model.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{store: make(map[string]model.Location)}
}

func (m *memLocationRepo) Save(ctx context.Context, userID string, loc model.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[userID] = loc
	return nil
}

func (m *memLocationRepo) Find(ctx context.Context, userID string) (model.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.store[userID]
	if !ok {
		return model.Location{}, domain.ErrNotFound
	}
	return loc, nil
}

func (m *memLocationRepo) All(ctx context.Context) (map[string]model.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make(map[string]model.Location, len(m.store))
	for k, v := range m.store {
		cp[k] = v
	}
	return cp, nil
}

// fakeTimetableAPI counts fetches and serves canned raw timings per call.
type fakeTimetableAPI struct {
	mu      sync.Mutex
	calls   int
	timings map[string]string
	err     error
}

func (f *fakeTimetableAPI) FetchTimings(ctx context.Context, city, country string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls += 1
	if f.err != nil {
		return nil, f.err
	}
	cp := make(map[string]string, len(f.timings))
	for k, v := range f.timings {
		cp[k] = v
	}
	return cp, nil
}

func (f *fakeTimetableAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// mapCache is a trivial TimingsCache without day expiry.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]model.PrayerTimes
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]model.PrayerTimes)}
}

func (c *mapCache) Get(ctx context.Context, key string) (model.PrayerTimes, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[key]
	return t, ok
}

func (c *mapCache) Set(ctx context.Context, key string, times model.PrayerTimes) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = times
}

// fakeTimetableUC serves fixed PrayerTimes per location key, or errors.
type fakeTimetableUC struct {
	byKey map[string]model.PrayerTimes
	errBy map[string]error
}

func (f *fakeTimetableUC) Timings(ctx context.Context, loc model.Location) (model.PrayerTimes, error) {
	if err := f.errBy[loc.Key()]; err != nil {
		return nil, err
	}
	t, ok := f.byKey[loc.Key()]
	if !ok {
		return nil, domain.ErrProviderUnavailable
	}
	return t, nil
}

// fakeRunner records installed triggers so tests can count and fire them.
type fakeRunner struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]fakeEntry
}

type fakeEntry struct {
	hour, minute int
	cmd          func()
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{entries: make(map[int]fakeEntry)}
}

func (r *fakeRunner) AddDaily(hour, minute int, cmd func()) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID += 1
	r.entries[r.nextID] = fakeEntry{hour: hour, minute: minute, cmd: cmd}
	return r.nextID, nil
}

func (r *fakeRunner) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *fakeRunner) live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *fakeRunner) fireAll() {
	r.mu.Lock()
	cmds := make([]func(), 0, len(r.entries))
	for _, e := range r.entries {
		cmds = append(cmds, e.cmd)
	}
	r.mu.Unlock()
	for _, cmd := range cmds {
		cmd()
	}
}

func (r *fakeRunner) timesAt(hour, minute int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.hour == hour && e.minute == minute {
			n += 1
		}
	}
	return n
}

// fakeMessenger records sent messages; sendErr simulates transport failures.
type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

type sentMessage struct {
	recipient string
	text      string
}

func (m *fakeMessenger) SendMessage(ctx context.Context, recipient, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMessage{recipient: recipient, text: text})
	return nil
}

func (m *fakeMessenger) sentTo(recipient string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s.recipient == recipient {
			n += 1
		}
	}
	return n
}

// echoTranslator returns the key so assertions stay readable.
type echoTranslator struct{}

func (echoTranslator) T(key string, args ...interface{}) string { return key }
