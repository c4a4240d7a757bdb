package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-triage/internal/domain"
)

// GrievanceRepository encapsulates persistence for grievance records.
type GrievanceRepository interface {
	Create(ctx context.Context, record *domain.GrievanceRecord) error
	GetByID(ctx context.Context, id int64) (*domain.GrievanceRecord, error)
	ListWithFilter(ctx context.Context, filter RecordFilter) ([]domain.GrievanceRecord, error)
	Stats(ctx context.Context, filter RecordFilter) (*domain.GrievanceStats, error)
	DepartmentCounts(ctx context.Context, filter RecordFilter) ([]domain.DepartmentCount, error)
	UpdateStatus(ctx context.Context, id int64, status domain.GrievanceStatus) error
}

type grievanceRepository struct {
	pool *pgxpool.Pool
}

// NewGrievanceRepository instantiates repository.
func NewGrievanceRepository(pool *pgxpool.Pool) GrievanceRepository {
	return &grievanceRepository{pool: pool}
}

func (r *grievanceRepository) Create(ctx context.Context, record *domain.GrievanceRecord) error {
	const query = `
        INSERT INTO grievances (conversation_id, user_id, phone, type, department, description, extracted_entities, severity, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.ConversationID,
		record.UserID,
		record.Phone,
		record.Type,
		record.Department,
		record.Description,
		record.Entities,
		record.Severity,
		record.Status,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *grievanceRepository) GetByID(ctx context.Context, id int64) (*domain.GrievanceRecord, error) {
	const query = `
        SELECT g.id, g.conversation_id, g.user_id, g.phone, g.type, g.department, g.description,
               g.extracted_entities, g.severity, g.status, g.created_at, g.resolved_at, u.name
        FROM grievances g JOIN users u ON g.user_id = u.id
        WHERE g.id=$1`
	var record domain.GrievanceRecord
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.ConversationID,
		&record.UserID,
		&record.Phone,
		&record.Type,
		&record.Department,
		&record.Description,
		&record.Entities,
		&record.Severity,
		&record.Status,
		&record.CreatedAt,
		&record.ResolvedAt,
		&record.CustomerName,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *grievanceRepository) ListWithFilter(ctx context.Context, filter RecordFilter) ([]domain.GrievanceRecord, error) {
	where, args := filter.whereClause("g.")
	query := fmt.Sprintf(`
        SELECT g.id, g.conversation_id, g.user_id, g.phone, g.type, g.department, g.description,
               g.extracted_entities, g.severity, g.status, g.created_at, g.resolved_at, u.name
        FROM grievances g JOIN users u ON g.user_id = u.id
        WHERE %s ORDER BY g.created_at DESC`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGrievanceRecords(rows)
}

func (r *grievanceRepository) Stats(ctx context.Context, filter RecordFilter) (*domain.GrievanceStats, error) {
	where, args := filter.whereClause("")
	query := fmt.Sprintf(`
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='open'),
               COUNT(*) FILTER (WHERE status='in_progress'),
               COUNT(*) FILTER (WHERE status='resolved'),
               COUNT(*) FILTER (WHERE status='closed')
        FROM grievances WHERE %s`, where)

	var stats domain.GrievanceStats
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.Resolved,
		&stats.Closed,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *grievanceRepository) DepartmentCounts(ctx context.Context, filter RecordFilter) ([]domain.DepartmentCount, error) {
	where, args := filter.whereClause("")
	query := fmt.Sprintf(`
        SELECT department, COUNT(*)
        FROM grievances WHERE %s
        GROUP BY department ORDER BY COUNT(*) DESC`, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DepartmentCount
	for rows.Next() {
		var count domain.DepartmentCount
		if err := rows.Scan(&count.Department, &count.Count); err != nil {
			return nil, err
		}
		result = append(result, count)
	}
	return result, rows.Err()
}

func (r *grievanceRepository) UpdateStatus(ctx context.Context, id int64, status domain.GrievanceStatus) error {
	const query = `
        UPDATE grievances
        SET status=$1,
            resolved_at = CASE WHEN $1 = 'resolved' THEN NOW() ELSE resolved_at END
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanGrievanceRecords(rows pgx.Rows) ([]domain.GrievanceRecord, error) {
	var result []domain.GrievanceRecord
	for rows.Next() {
		var record domain.GrievanceRecord
		if err := rows.Scan(
			&record.ID,
			&record.ConversationID,
			&record.UserID,
			&record.Phone,
			&record.Type,
			&record.Department,
			&record.Description,
			&record.Entities,
			&record.Severity,
			&record.Status,
			&record.CreatedAt,
			&record.ResolvedAt,
			&record.CustomerName,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
