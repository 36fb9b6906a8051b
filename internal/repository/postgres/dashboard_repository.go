// backend-go/internal/repository/postgres/dashboard_repository.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/domain"
	"github.com/gustavoamaro/rocagem-ops/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
)

type dashboardRepository struct {
	db *DB
}

func NewDashboardRepository(db *DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) LotSummary(ctx context.Context, filter domain.DashboardFilter) ([]domain.LotSummary, error) {
	query := `
		SELECT
			lote,
			COUNT(*) AS total,
			COUNT(proxima_previsao) AS scheduled,
			COUNT(*) FILTER (WHERE status = 'atrasado') AS overdue,
			COUNT(*) FILTER (WHERE manual_schedule) AS manual,
			COALESCE(SUM(metragem_m2), 0) AS total_m2
		FROM service_areas
		WHERE lote IS NOT NULL
	`

	var args []interface{}
	var conditions []string
	argCounter := 1

	service := filter.Service
	if service == "" {
		service = domain.ServiceMowing
	}
	conditions = append(conditions, fmt.Sprintf("servico = $%d", argCounter))
	args = append(args, service)
	argCounter++

	if len(filter.Lots) > 0 {
		placeholders := make([]string, len(filter.Lots))
		for i, lot := range filter.Lots {
			placeholders[i] = fmt.Sprintf("$%d", argCounter)
			args = append(args, lot)
			argCounter++
		}
		conditions = append(conditions, fmt.Sprintf("lote IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY lote ORDER BY lote"

	var summaries []domain.LotSummary
	if err := sqlx.SelectContext(ctx, r.db, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load lot summary: %w", err)
	}

	return summaries, nil
}

func (r *dashboardRepository) Production(ctx context.Context, filter domain.DashboardFilter) ([]domain.ProductionPoint, error) {
	months := filter.Months
	if months <= 0 {
		months = 12
	}

	query := `
		SELECT
			to_char(date_trunc('month', mowed_at), 'YYYY-MM') AS month,
			lote,
			COALESCE(SUM(area_m2), 0) AS area_m2,
			COUNT(*) AS mowings
		FROM mowings
		WHERE lote IS NOT NULL
		  AND mowed_at >= date_trunc('month', NOW()) - ($1 || ' months')::interval
	`

	args := []interface{}{fmt.Sprintf("%d", months)}
	argCounter := 2

	if len(filter.Lots) > 0 {
		placeholders := make([]string, len(filter.Lots))
		for i, lot := range filter.Lots {
			placeholders[i] = fmt.Sprintf("$%d", argCounter)
			args = append(args, lot)
			argCounter++
		}
		query += fmt.Sprintf(" AND lote IN (%s)", strings.Join(placeholders, ", "))
	}

	query += `
		GROUP BY month, lote
		ORDER BY month, lote
	`

	var points []domain.ProductionPoint
	if err := sqlx.SelectContext(ctx, r.db, &points, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load production series: %w", err)
	}

	return points, nil
}
