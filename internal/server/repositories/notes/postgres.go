// Package notes provides the PostgreSQL-backed, collection-generic
// repository for note persistence.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/google/uuid"
)

// knownTables guards identifier interpolation: a table name must be listed
// here before it can appear in a query.
var knownTables = map[string]struct{}{
	"notes": {},
}

// updatableColumns maps caller-facing field names to columns. Update
// rejects anything outside this set.
var updatableColumns = map[string]string{
	"title":      "title",
	"text":       "text",
	"html":       "html",
	"isArchived": "is_archived",
}

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func checkTable(table string) error {
	if _, ok := knownTables[table]; !ok {
		return fmt.Errorf("unknown table: %q", table)
	}
	return nil
}

// Insert stores a new note and returns its generated ID.
func (r *PostgresRepository) Insert(ctx context.Context, table string, note *models.Note) (string, error) {
	if err := checkTable(table); err != nil {
		return "", err
	}

	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, user_id, title, text, html, created, is_archived)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `, table)

	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Text, note.HTML, note.Created, note.IsArchived)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return note.ID, nil
}

// FindByID returns the note with the given ID, or (nil, nil) when no such
// note exists.
func (r *PostgresRepository) FindByID(ctx context.Context, table string, id string) (*models.Note, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, user_id, title, text, html, created, is_archived FROM %s
		 WHERE id = $1
		 `, table)

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Text, &note.HTML, &note.Created, &note.IsArchived)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// FindByOwner returns the owner's notes with the given archived flag and
// created strictly after since, newest first.
func (r *PostgresRepository) FindByOwner(ctx context.Context, table string, userID string, isArchived bool, since time.Time) ([]*models.Note, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, user_id, title, text, html, created, is_archived FROM %s
		 WHERE user_id = $1 AND is_archived = $2 AND created > $3
		 ORDER BY created DESC
		 `, table)

	rows, err := r.db.QueryContext(ctx, query, userID, isArchived, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Text, &item.HTML, &item.Created, &item.IsArchived,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update applies a partial field update to one note and returns the number
// of modified rows. Zero rows signals "not found" to the caller and is not
// an error here. Field names outside the updatable set are rejected.
func (r *PostgresRepository) Update(ctx context.Context, table string, id string, fields map[string]any) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, errors.New("no fields to update")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := updatableColumns[name]; !ok {
			return 0, fmt.Errorf("unknown field: %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	set := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		set = append(set, fmt.Sprintf("%s = $%d", updatableColumns[name], i+1))
		args = append(args, fields[name])
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`, table, strings.Join(set, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// DeleteOne removes the note with the given ID; a missing ID is a no-op.
func (r *PostgresRepository) DeleteOne(ctx context.Context, table string, id string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteManyArchived removes all of a user's archived notes. Active notes
// are never touched by this operation.
func (r *PostgresRepository) DeleteManyArchived(ctx context.Context, table string, userID string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND is_archived = TRUE`, table)

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
