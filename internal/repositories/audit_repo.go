package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Insert(ctx context.Context, e *models.AuditLogEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, ip, user_agent, method, action, description, before, after, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.UserID, e.IP, e.UserAgent, e.Method, e.Action, e.Description, e.Before, e.After, e.Body, e.CreatedAt)
	return err
}

func (r *AuditRepo) List(ctx context.Context, spec *query.ListSpec) ([]models.AuditLogEntry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, ip, user_agent, method, action, description, before, after, body, created_at
		FROM audit_logs ORDER BY `+spec.OrderClause()+` LIMIT $1 OFFSET $2
	`, spec.Limit, spec.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.IP, &e.UserAgent, &e.Method, &e.Action,
			&e.Description, &e.Before, &e.After, &e.Body, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
