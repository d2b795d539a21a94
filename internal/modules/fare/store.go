// Pricing settings store backed by PostgreSQL. Rates are read once at
// startup; the engine itself never touches the database.
package fare

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadNormalTier returns the normal pricing tier from pricing_settings,
// falling back to the built-in defaults when no row exists. The surge tier
// is always derived by the engine, never stored.
func (s *Store) LoadNormalTier(ctx context.Context) (Config, error) {
	row := s.db.QueryRow(ctx, `
        SELECT base_fare, per_km_rate, minimum_fare
        FROM pricing_settings
        ORDER BY updated_at DESC
        LIMIT 1`,
	)

	var cfg Config
	err := row.Scan(&cfg.BaseFare, &cfg.PerKmRate, &cfg.MinimumFare)
	if errors.Is(err, pgx.ErrNoRows) {
		return Normal, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load pricing settings: %w", err)
	}
	if cfg.PerKmRate <= 0 || cfg.MinimumFare <= 0 {
		return Config{}, fmt.Errorf("pricing settings: rates must be positive, got %+v", cfg)
	}
	return cfg, nil
}
