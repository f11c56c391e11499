package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/loadline/internal/db"
	"github.com/alexanderramin/loadline/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, subject, start_date, due_date, estimated_hours,
		spent_hours, done_ratio, closed_at, assignee_id, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
// Only relations owned by an item are stored; the mirrored copy on the
// other endpoint is the other item's business.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

// NewSQLiteWorkItemRepo creates a new SQLiteWorkItemRepo.
func NewSQLiteWorkItemRepo(db db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: db}
}

func (r *SQLiteWorkItemRepo) Upsert(ctx context.Context, w *domain.WorkItem) error {
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	}
	query := `INSERT INTO work_items (` + workItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			start_date = excluded.start_date,
			due_date = excluded.due_date,
			estimated_hours = excluded.estimated_hours,
			spent_hours = excluded.spent_hours,
			done_ratio = excluded.done_ratio,
			closed_at = excluded.closed_at,
			assignee_id = excluded.assignee_id,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.Subject,
		nullableTimeToString(w.StartDate, dateLayout),
		nullableTimeToString(w.DueDate, dateLayout),
		nullableFloatToValue(w.EstimatedHours),
		w.SpentHours,
		w.DoneRatio,
		nullableTimeToString(w.ClosedAt, time.RFC3339),
		nullableIntToValue(w.AssigneeID),
		w.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting work item %d: %w", w.ID, err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM relations WHERE owner_item_id = ?`, w.ID); err != nil {
		return fmt.Errorf("clearing relations of item %d: %w", w.ID, err)
	}
	for _, rel := range w.OwnedRelations() {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO relations (owner_item_id, target_item_id, relation_type) VALUES (?, ?, ?)`,
			rel.OwnerItemID, rel.TargetItemID, string(rel.Type))
		if err != nil {
			return fmt.Errorf("inserting relation %d->%d: %w", rel.OwnerItemID, rel.TargetItemID, err)
		}
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id int) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	w, err := scanWorkItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, []*domain.WorkItem{w}); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkItemRepo) List(ctx context.Context, filter ItemFilter) ([]*domain.WorkItem, error) {
	var where []string
	var args []any
	if !filter.IncludeClosed {
		where = append(where, "closed_at IS NULL")
	}
	if filter.AssigneeID != nil {
		where = append(where, "assignee_id = ?")
		args = append(args, *filter.AssigneeID)
	}
	query := `SELECT ` + workItemColumns + ` FROM work_items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	if err := r.loadRelations(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work item %d: %w", id, ErrNotFound)
	}
	return nil
}

// loadRelations attaches owned relations to items in one query.
func (r *SQLiteWorkItemRepo) loadRelations(ctx context.Context, items []*domain.WorkItem) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[int]*domain.WorkItem, len(items))
	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items))
	for _, w := range items {
		byID[w.ID] = w
		w.Relations = nil
		placeholders = append(placeholders, "?")
		args = append(args, w.ID)
	}
	query := `SELECT owner_item_id, target_item_id, relation_type FROM relations
		WHERE owner_item_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY owner_item_id, target_item_id, relation_type`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("loading relations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rel domain.Relation
		var typ string
		if err := rows.Scan(&rel.OwnerItemID, &rel.TargetItemID, &typ); err != nil {
			return fmt.Errorf("scanning relation: %w", err)
		}
		rel.Type = domain.RelationType(typ)
		owner := byID[rel.OwnerItemID]
		owner.Relations = append(owner.Relations, rel)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating relations: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkItem scans one work_items row selected with workItemColumns.
func scanWorkItem(row rowScanner) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var startStr, dueStr, closedStr sql.NullString
	var estimate sql.NullFloat64
	var assignee sql.NullInt64
	var updatedStr string

	err := row.Scan(
		&w.ID, &w.Subject, &startStr, &dueStr, &estimate,
		&w.SpentHours, &w.DoneRatio, &closedStr, &assignee, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}

	w.StartDate = parseNullableTime(startStr, dateLayout)
	w.DueDate = parseNullableTime(dueStr, dateLayout)
	w.ClosedAt = parseNullableTime(closedStr, time.RFC3339)
	w.EstimatedHours = parseNullableFloat(estimate)
	w.AssigneeID = parseNullableInt(assignee)

	w.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
