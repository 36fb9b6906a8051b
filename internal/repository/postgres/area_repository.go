// backend-go/internal/repository/postgres/area_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

type areaRepository struct {
	db *DB
}

func NewAreaRepository(db *DB) repository.AreaRepository {
	return &areaRepository{db: db}
}

const areaColumns = `
	id, name, lote, servico, metragem_m2, ordem, manual_schedule,
	proxima_previsao, days_to_complete, ultima_rocagem, status, lat, lng,
	created_at, updated_at
`

func (r *areaRepository) ListAreas(ctx context.Context, service string) ([]domain.ServiceArea, error) {
	query := `
		SELECT ` + areaColumns + `
		FROM service_areas
	`

	var args []interface{}
	if service != "" {
		query += ` WHERE servico = $1`
		args = append(args, service)
	}
	query += ` ORDER BY id`

	var areas []domain.ServiceArea
	if err := sqlx.SelectContext(ctx, r.db, &areas, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}

	return areas, nil
}

func (r *areaRepository) GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error) {
	query := `
		SELECT ` + areaColumns + `
		FROM service_areas
		WHERE id = $1
	`

	var area domain.ServiceArea
	if err := sqlx.GetContext(ctx, r.db, &area, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get area %d: %w", id, err)
	}

	return &area, nil
}

func (r *areaRepository) CreateArea(ctx context.Context, in domain.AreaInput) (*domain.ServiceArea, error) {
	query := `
		INSERT INTO service_areas (
			name, lote, servico, metragem_m2, ordem, manual_schedule,
			lat, lng, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + areaColumns

	var area domain.ServiceArea
	err := sqlx.GetContext(ctx, r.db, &area, query,
		in.Name, in.Lot, in.Service, in.SizeM2, in.Order, in.ManualSchedule,
		in.Lat, in.Lng, domain.StatusScheduled,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create area: %w", err)
	}

	return &area, nil
}

func (r *areaRepository) UpdateArea(ctx context.Context, id int64, in domain.AreaInput) (*domain.ServiceArea, error) {
	query := `
		UPDATE service_areas SET
			name = $2,
			lote = $3,
			servico = $4,
			metragem_m2 = $5,
			ordem = $6,
			manual_schedule = $7,
			lat = $8,
			lng = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + areaColumns

	var area domain.ServiceArea
	err := sqlx.GetContext(ctx, r.db, &area, query,
		id, in.Name, in.Lot, in.Service, in.SizeM2, in.Order,
		in.ManualSchedule, in.Lat, in.Lng,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update area %d: %w", id, err)
	}

	return &area, nil
}

func (r *areaRepository) DeleteArea(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM service_areas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete area %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *areaRepository) UpdatePredictions(ctx context.Context, preds []domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE service_areas SET
				proxima_previsao = $2,
				days_to_complete = $3,
				status = $4,
				updated_at = NOW()
			WHERE id = $1
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, p := range preds {
			if _, err := stmt.ExecContext(ctx, p.AreaID, p.NextDate, p.WorkingDays, domain.StatusScheduled); err != nil {
				return fmt.Errorf("failed to update prediction for area %d: %w", p.AreaID, err)
			}
		}

		return nil
	})
}

func (r *areaRepository) RegisterCompletion(ctx context.Context, ids []int64, when time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		update := `
			UPDATE service_areas SET
				ultima_rocagem = $2,
				proxima_previsao = NULL,
				days_to_complete = NULL,
				status = $3,
				updated_at = NOW()
			WHERE id = $1
		`

		history := `
			INSERT INTO mowings (area_id, lote, area_m2, mowed_at)
			SELECT id, lote, COALESCE(metragem_m2, $2), $3
			FROM service_areas
			WHERE id = $1
		`

		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, update, id, when, domain.StatusDone); err != nil {
				return fmt.Errorf("failed to register completion for area %d: %w", id, err)
			}
			if _, err := tx.ExecContext(ctx, history, id, domain.DefaultAreaSizeM2, when); err != nil {
				return fmt.Errorf("failed to append mowing history for area %d: %w", id, err)
			}
		}

		return nil
	})
}
