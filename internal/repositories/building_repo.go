package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type BuildingRepo struct {
	pool *pgxpool.Pool
}

func NewBuildingRepo(pool *pgxpool.Pool) *BuildingRepo {
	return &BuildingRepo{pool: pool}
}

func (r *BuildingRepo) Create(ctx context.Context, b *models.Building) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO buildings (business_id, name, address, floors, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, b.BusinessID, b.Name, b.Address, b.Floors, b.Status).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BuildingRepo) Update(ctx context.Context, b *models.Building) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE buildings SET name = $1, address = $2, floors = $3, status = $4, updated_at = now()
		WHERE id = $5
	`, b.Name, b.Address, b.Floors, b.Status, b.ID)
	return err
}

func (r *BuildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	var b models.Building
	err := r.pool.QueryRow(ctx, `
		SELECT id, business_id, name, address, floors, status, created_at, updated_at
		FROM buildings WHERE id = $1
	`, id).Scan(&b.ID, &b.BusinessID, &b.Name, &b.Address, &b.Floors, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuildingRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM buildings WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *BuildingRepo) List(ctx context.Context, spec *query.ListSpec, businessID *uuid.UUID) ([]models.Building, int, error) {
	where := ""
	args := []any{}
	argIdx := 1
	if businessID != nil {
		where = fmt.Sprintf(" WHERE business_id = $%d", argIdx)
		args = append(args, *businessID)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM buildings`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
		SELECT id, business_id, name, address, floors, status, created_at, updated_at
		FROM buildings` + where +
		` ORDER BY ` + spec.OrderClause() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, spec.Limit, spec.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.BusinessID, &b.Name, &b.Address, &b.Floors, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		buildings = append(buildings, b)
	}
	return buildings, total, rows.Err()
}
