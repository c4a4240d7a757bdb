package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// QueryRepository encapsulates persistence for informational query records.
type QueryRepository interface {
	Create(ctx context.Context, record *domain.QueryRecord) error
	ListWithFilter(ctx context.Context, filter RecordFilter) ([]domain.QueryRecord, error)
	Stats(ctx context.Context, filter RecordFilter) (*domain.QueryStats, error)
	UpdateStatus(ctx context.Context, id int64, status domain.QueryStatus) error
}

type queryRepository struct {
	pool *pgxpool.Pool
}

// NewQueryRepository instantiates repository.
func NewQueryRepository(pool *pgxpool.Pool) QueryRepository {
	return &queryRepository{pool: pool}
}

func (r *queryRepository) Create(ctx context.Context, record *domain.QueryRecord) error {
	const query = `
        INSERT INTO queries (conversation_id, user_id, phone, type, department, description, extracted_entities, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.ConversationID,
		record.UserID,
		record.Phone,
		record.Type,
		record.Department,
		record.Description,
		record.Entities,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *queryRepository) ListWithFilter(ctx context.Context, filter RecordFilter) ([]domain.QueryRecord, error) {
	where, args := filter.whereClause("")
	query := fmt.Sprintf(`
        SELECT id, conversation_id, user_id, phone, type, department, description, extracted_entities, status, created_at
        FROM queries WHERE %s ORDER BY created_at DESC`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQueryRecords(rows)
}

func (r *queryRepository) Stats(ctx context.Context, filter RecordFilter) (*domain.QueryStats, error) {
	where, args := filter.whereClause("")
	query := fmt.Sprintf(`
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='resolved')
        FROM queries WHERE %s`, where)

	var stats domain.QueryStats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Resolved,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *queryRepository) UpdateStatus(ctx context.Context, id int64, status domain.QueryStatus) error {
	const query = `UPDATE queries SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanQueryRecords(rows pgx.Rows) ([]domain.QueryRecord, error) {
	var result []domain.QueryRecord
	for rows.Next() {
		var record domain.QueryRecord
		if err := rows.Scan(
			&record.ID,
			&record.ConversationID,
			&record.UserID,
			&record.Phone,
			&record.Type,
			&record.Department,
			&record.Description,
			&record.Entities,
			&record.Status,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
