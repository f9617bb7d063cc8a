package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type MaintenanceRepo struct {
	pool *pgxpool.Pool
}

func NewMaintenanceRepo(pool *pgxpool.Pool) *MaintenanceRepo {
	return &MaintenanceRepo{pool: pool}
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *models.Maintenance) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO maintenances (building_id, title, detail, status, scheduled_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, m.BuildingID, m.Title, m.Detail, m.Status, m.ScheduledAt, m.CreatedBy).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MaintenanceRepo) Update(ctx context.Context, m *models.Maintenance) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE maintenances SET title = $1, detail = $2, status = $3, scheduled_at = $4, updated_at = now()
		WHERE id = $5
	`, m.Title, m.Detail, m.Status, m.ScheduledAt, m.ID)
	return err
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Maintenance, error) {
	var m models.Maintenance
	err := r.pool.QueryRow(ctx, `
		SELECT id, building_id, title, detail, status, scheduled_at, created_by, created_at, updated_at
		FROM maintenances WHERE id = $1
	`, id).Scan(&m.ID, &m.BuildingID, &m.Title, &m.Detail, &m.Status, &m.ScheduledAt, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM maintenances WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// MaintenanceFilter scopes the list query. Scoping is done with
// subqueries rather than joins so the validated ORDER BY columns stay
// unambiguous.
type MaintenanceFilter struct {
	BusinessID *uuid.UUID
	BuildingID *uuid.UUID
}

func (r *MaintenanceRepo) List(ctx context.Context, spec *query.ListSpec, f MaintenanceFilter) ([]models.Maintenance, int, error) {
	where := ""
	args := []any{}
	argIdx := 1

	if f.BuildingID != nil {
		where += andWhere(where) + fmt.Sprintf("building_id = $%d", argIdx)
		args = append(args, *f.BuildingID)
		argIdx++
	}
	if f.BusinessID != nil {
		where += andWhere(where) + fmt.Sprintf("building_id IN (SELECT id FROM buildings WHERE business_id = $%d)", argIdx)
		args = append(args, *f.BusinessID)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM maintenances`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
		SELECT id, building_id, title, detail, status, scheduled_at, created_by, created_at, updated_at
		FROM maintenances` + where +
		` ORDER BY ` + spec.OrderClause() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, spec.Limit, spec.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var maintenances []models.Maintenance
	for rows.Next() {
		var m models.Maintenance
		if err := rows.Scan(&m.ID, &m.BuildingID, &m.Title, &m.Detail, &m.Status, &m.ScheduledAt,
			&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		maintenances = append(maintenances, m)
	}
	return maintenances, total, rows.Err()
}

func andWhere(current string) string {
	if current == "" {
		return " WHERE "
	}
	return " AND "
}
