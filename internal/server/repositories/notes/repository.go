package notes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository is collection-generic: every operation names the collection
// (table) it works on, so alternative note collections can reuse it.
type Repository interface {
	Insert(ctx context.Context, table string, note *models.Note) (string, error)
	FindByID(ctx context.Context, table string, id string) (*models.Note, error)
	FindByOwner(ctx context.Context, table string, userID string, isArchived bool, since time.Time) ([]*models.Note, error)
	Update(ctx context.Context, table string, id string, fields map[string]any) (int64, error)
	DeleteOne(ctx context.Context, table string, id string) error
	DeleteManyArchived(ctx context.Context, table string, userID string) error
}
