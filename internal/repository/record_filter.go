package repository

import (
	"fmt"
	"strings"
	"time"
)

// RecordFilter captures the optional, conjunctive filters shared by query and
// grievance reads.
type RecordFilter struct {
	Department *string
	Status     *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// whereClause builds the WHERE fragment for a filter. The prefix qualifies
// column names on joined reads.
func (f RecordFilter) whereClause(prefix string) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if f.Department != nil {
		args = append(args, *f.Department)
		clauses = append(clauses, fmt.Sprintf("%sdepartment=$%d", prefix, len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		clauses = append(clauses, fmt.Sprintf("%sstatus=$%d", prefix, len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		clauses = append(clauses, fmt.Sprintf("%screated_at >= $%d", prefix, len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		clauses = append(clauses, fmt.Sprintf("%screated_at <= $%d", prefix, len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// CacheKey renders the filter into a stable cache key fragment.
func (f RecordFilter) CacheKey() string {
	parts := make([]string, 0, 4)
	if f.Department != nil {
		parts = append(parts, "dept="+*f.Department)
	}
	if f.Status != nil {
		parts = append(parts, "status="+*f.Status)
	}
	if f.StartDate != nil {
		parts = append(parts, "from="+f.StartDate.UTC().Format(time.RFC3339))
	}
	if f.EndDate != nil {
		parts = append(parts, "to="+f.EndDate.UTC().Format(time.RFC3339))
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, "|")
}
