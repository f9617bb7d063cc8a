package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func (r *RoleRepo) Create(ctx context.Context, role *models.Role) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO roles (name, permissions, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, role.Name, role.Permissions, role.Status).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
}

func (r *RoleRepo) Update(ctx context.Context, role *models.Role) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE roles SET name = $1, permissions = $2, status = $3, updated_at = now()
		WHERE id = $4
	`, role.Name, role.Permissions, role.Status, role.ID)
	return err
}

func (r *RoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	var role models.Role
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, permissions, status, created_at, updated_at
		FROM roles WHERE id = $1
	`, id).Scan(&role.ID, &role.Name, &role.Permissions, &role.Status, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context, spec *query.ListSpec) ([]models.Role, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, permissions, status, created_at, updated_at
		FROM roles ORDER BY `+spec.OrderClause()+` LIMIT $1 OFFSET $2
	`, spec.Limit, spec.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Permissions, &role.Status, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}
	return roles, total, rows.Err()
}

// GetRole adapts GetByID to the rbac.AssignmentSource contract: absence
// is (nil, nil), never an error.
func (r *RoleRepo) GetRole(ctx context.Context, roleID uuid.UUID) (*models.Role, error) {
	role, err := r.GetByID(ctx, roleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

// ---- Role assignments ----

// FindAssignment resolves the zero-or-one assignment for (user, business).
// A nil businessID matches the system-wide row (business_id IS NULL).
func (r *RoleRepo) FindAssignment(ctx context.Context, userID uuid.UUID, businessID *uuid.UUID) (*models.RoleAssignment, error) {
	var a models.RoleAssignment
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, role_id, business_id, created_at
		FROM role_assignments
		WHERE user_id = $1 AND business_id IS NOT DISTINCT FROM $2
	`, userID, businessID).Scan(&a.ID, &a.UserID, &a.RoleID, &a.BusinessID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *RoleRepo) CreateAssignment(ctx context.Context, a *models.RoleAssignment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO role_assignments (user_id, role_id, business_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, a.UserID, a.RoleID, a.BusinessID).Scan(&a.ID, &a.CreatedAt)
}

func (r *RoleRepo) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM role_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *RoleRepo) ListAssignmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.RoleAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, role_id, business_id, created_at
		FROM role_assignments WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.RoleAssignment
	for rows.Next() {
		var a models.RoleAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.RoleID, &a.BusinessID, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
