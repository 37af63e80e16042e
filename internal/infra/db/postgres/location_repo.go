// File: internal/infra/db/postgres/location_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/model"
	"telegram-prayer-reminder/internal/domain/ports/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo is the Postgres-backed location store, used instead of the
// flat file when storage.database_url is configured.
type LocationRepo struct {
	pool *pgxpool.Pool
}

func NewLocationRepo(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

// EnsureSchema creates the locations table when it does not exist yet.
func (r *LocationRepo) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS locations (
  user_id TEXT PRIMARY KEY,
  city    TEXT NOT NULL,
  country TEXT NOT NULL
);`
	_, err := r.pool.Exec(ctx, q)
	return err
}

func (r *LocationRepo) Save(ctx context.Context, userID string, loc model.Location) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: empty user id", domain.ErrInvalidLocation)
	}
	const q = `
INSERT INTO locations (user_id, city, country) VALUES ($1,$2,$3)
ON CONFLICT (user_id) DO UPDATE SET city=$2, country=$3;`
	_, err := r.pool.Exec(ctx, q, userID, loc.City, loc.Country)
	return err
}

func (r *LocationRepo) Find(ctx context.Context, userID string) (model.Location, error) {
	const q = `SELECT city, country FROM locations WHERE user_id=$1;`
	var loc model.Location
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&loc.City, &loc.Country); err != nil {
		if err == pgx.ErrNoRows {
			return model.Location{}, domain.ErrNotFound
		}
		return model.Location{}, err
	}
	return loc, nil
}

func (r *LocationRepo) All(ctx context.Context) (map[string]model.Location, error) {
	const q = `SELECT user_id, city, country FROM locations;`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := map[string]model.Location{}
	for rows.Next() {
		var userID string
		var loc model.Location
		if err := rows.Scan(&userID, &loc.City, &loc.Country); err != nil {
			return nil, err
		}
		locations[userID] = loc
	}
	return locations, rows.Err()
}
