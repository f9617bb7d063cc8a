package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propmaint/backend/internal/models"
	"github.com/propmaint/backend/internal/query"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

func (r *QuestionRepo) Create(ctx context.Context, q *models.Question) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO questions (maintenance_id, parent_id, body, attachment_url, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, q.MaintenanceID, q.ParentID, q.Body, q.AttachmentURL, q.CreatedBy).Scan(&q.ID, &q.CreatedAt)
}

func (r *QuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	var q models.Question
	err := r.pool.QueryRow(ctx, `
		SELECT id, maintenance_id, parent_id, body, attachment_url, created_by, created_at
		FROM questions WHERE id = $1
	`, id).Scan(&q.ID, &q.MaintenanceID, &q.ParentID, &q.Body, &q.AttachmentURL, &q.CreatedBy, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

type QuestionFilter struct {
	BusinessID    *uuid.UUID
	MaintenanceID *uuid.UUID
}

func (r *QuestionRepo) List(ctx context.Context, spec *query.ListSpec, f QuestionFilter) ([]models.Question, int, error) {
	where := ""
	args := []any{}
	argIdx := 1

	if f.MaintenanceID != nil {
		where += andWhere(where) + fmt.Sprintf("maintenance_id = $%d", argIdx)
		args = append(args, *f.MaintenanceID)
		argIdx++
	}
	if f.BusinessID != nil {
		where += andWhere(where) + fmt.Sprintf(`maintenance_id IN (
			SELECT m.id FROM maintenances m
			JOIN buildings b ON b.id = m.building_id
			WHERE b.business_id = $%d)`, argIdx)
		args = append(args, *f.BusinessID)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
		SELECT id, maintenance_id, parent_id, body, attachment_url, created_by, created_at
		FROM questions` + where +
		` ORDER BY ` + spec.OrderClause() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, spec.Limit, spec.Offset())

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var qn models.Question
		if err := rows.Scan(&qn.ID, &qn.MaintenanceID, &qn.ParentID, &qn.Body, &qn.AttachmentURL,
			&qn.CreatedBy, &qn.CreatedAt); err != nil {
			return nil, 0, err
		}
		questions = append(questions, qn)
	}
	return questions, total, rows.Err()
}
