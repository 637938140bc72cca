// Package sessions provides the PostgreSQL-backed repository for opaque
// session tokens.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// PostgresRepository implements session storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a session token for a user.
func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) error {

	query :=
		`INSERT INTO sessions (session_id, user_id)
         VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, session.SessionID, session.UserID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Find returns the session with the given token or common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, sessionID string) (*models.Session, error) {
	query :=
		`SELECT session_id, user_id FROM sessions
		 WHERE session_id = $1
		 `

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&session.SessionID, &session.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

// Delete removes the session with the given token. Deleting a token that
// does not exist is a no-op.
func (r *PostgresRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
