package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type BusinessRepo struct {
	pool *pgxpool.Pool
}

func NewBusinessRepo(pool *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{pool: pool}
}

func (r *BusinessRepo) Create(ctx context.Context, b *models.Business) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO businesses (name, address, phone, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, b.Name, b.Address, b.Phone, b.Status).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BusinessRepo) Update(ctx context.Context, b *models.Business) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE businesses SET name = $1, address = $2, phone = $3, status = $4, updated_at = now()
		WHERE id = $5
	`, b.Name, b.Address, b.Phone, b.Status, b.ID)
	return err
}

func (r *BusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var b models.Business
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *BusinessRepo) List(ctx context.Context, spec *query.ListSpec) ([]models.Business, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, address, phone, status, created_at, updated_at
		FROM businesses ORDER BY `+spec.OrderClause()+` LIMIT $1 OFFSET $2
	`, spec.Limit, spec.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		var b models.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		businesses = append(businesses, b)
	}
	return businesses, total, rows.Err()
}
