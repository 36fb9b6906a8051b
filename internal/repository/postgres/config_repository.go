// backend-go/internal/repository/postgres/config_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

type configRepository struct {
	db *DB
}

func NewConfigRepository(db *DB) repository.ConfigRepository {
	return &configRepository{db: db}
}

type rateRow struct {
	Lot  int     `db:"lote"`
	Rate float64 `db:"rate_m2_day"`
}

func (r *configRepository) GetRates(ctx context.Context) (domain.ProductionRates, error) {
	query := `
		SELECT lote, rate_m2_day
		FROM production_rates
		ORDER BY lote
	`

	var rows []rateRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load production rates: %w", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}

	rates := make(domain.ProductionRates, len(rows))
	for _, row := range rows {
		rates[row.Lot] = row.Rate
	}

	return rates, nil
}

func (r *configRepository) SaveRates(ctx context.Context, rates domain.ProductionRates) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO production_rates (lote, rate_m2_day, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (lote)
			DO UPDATE SET
				rate_m2_day = EXCLUDED.rate_m2_day,
				updated_at = NOW()
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for lot, rate := range rates {
			if _, err := stmt.ExecContext(ctx, lot, rate); err != nil {
				return fmt.Errorf("failed to save rate for lote %d: %w", lot, err)
			}
		}

		return nil
	})
}
