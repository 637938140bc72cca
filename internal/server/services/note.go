package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/markdown"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
)

const (
	notesCollection = "notes"

	// pageSize is the fixed listing chunk size.
	pageSize = 20
)

// Age filter values accepted by ListNotes; anything else means "all
// active notes".
const (
	AgeArchive     = "archive"
	AgeOneMonth    = "1month"
	AgeThreeMonths = "3months"
)

// NoteList is one page of a listing.
type NoteList struct {
	Data    []*models.Note `json:"data"`
	HasMore bool           `json:"hasMore"`
}

// NoteService implements the user-facing note operations: listing with the
// age filter and pagination policy, sanitize-on-write creation and editing,
// archival toggling, and deletes.
type NoteService struct {
	notes notes.Repository
	now   func() time.Time
}

func NewNoteService(notes notes.Repository) *NoteService {
	return &NoteService{notes: notes, now: time.Now}
}

// resolveAgeFilter maps an age query value to an archived flag and a
// created-after cutoff. Month filters anchor to the most recent week
// boundary (midnight of the last Sunday) before shifting back.
func (s *NoteService) resolveAgeFilter(age string) (bool, time.Time) {
	switch age {
	case AgeArchive:
		return true, time.Time{}
	case AgeOneMonth:
		return false, s.monthsBack(1)
	case AgeThreeMonths:
		return false, s.monthsBack(3)
	default:
		return false, time.Time{}
	}
}

func (s *NoteService) monthsBack(months int) time.Time {
	now := s.now()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d = d.AddDate(0, 0, -int(d.Weekday()))
	return d.AddDate(0, -months, 0)
}

// paginate splits the full sequence into fixed-size chunks and returns the
// requested 1-indexed page. Sequences within one page size are returned
// whole, ignoring page. HasMore is true iff chunks exist beyond the
// requested page.
func paginate(all []*models.Note, page int) ([]*models.Note, bool) {
	if len(all) <= pageSize {
		return all, false
	}

	chunks := (len(all) + pageSize - 1) / pageSize
	if page < 1 || page > chunks {
		return []*models.Note{}, false
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], chunks > page
}

// ListNotes returns one page of the caller's notes matching the age
// filter, newest first. Archived and active notes never mix in one result.
func (s *NoteService) ListNotes(ctx context.Context, user *models.User, age string, page int) (*NoteList, error) {
	if user == nil {
		return nil, common.ErrorUnauthenticated
	}

	isArchived, since := s.resolveAgeFilter(age)

	all, err := s.notes.FindByOwner(ctx, notesCollection, user.ID, isArchived, since)
	if err != nil {
		return nil, err
	}

	data, hasMore := paginate(all, page)
	if data == nil {
		data = []*models.Note{}
	}

	return &NoteList{Data: data, HasMore: hasMore}, nil
}

// CreateNote renders the Markdown, stamps the creation time, and persists
// the note as active. The returned ID comes from a read-back of the
// inserted record.
func (s *NoteService) CreateNote(ctx context.Context, user *models.User, title, text string) (string, error) {
	if user == nil {
		return "", common.ErrorUnauthenticated
	}

	note := &models.Note{
		UserID:     user.ID,
		Title:      title,
		Text:       text,
		HTML:       markdown.Render(text),
		Created:    s.now().UTC(),
		IsArchived: false,
	}

	id, err := s.notes.Insert(ctx, notesCollection, note)
	if err != nil {
		return "", err
	}

	inserted, err := s.notes.FindByID(ctx, notesCollection, id)
	if err != nil {
		return "", err
	}
	if inserted == nil {
		return "", common.ErrorInternal
	}

	return inserted.ID, nil
}

// GetNote fetches a note by ID; a missing ID yields (nil, nil).
//
// TODO: verify note.UserID against the caller before returning; any
// authenticated session can currently read any note by ID.
func (s *NoteService) GetNote(ctx context.Context, user *models.User, id string) (*models.Note, error) {
	if user == nil {
		return nil, common.ErrorUnauthenticated
	}

	return s.notes.FindByID(ctx, notesCollection, id)
}

// EditNote re-renders the HTML from the new text and updates title, text,
// and html together. A missing ID yields common.ErrorNotFound.
func (s *NoteService) EditNote(ctx context.Context, user *models.User, id, title, text string) (string, error) {
	if user == nil {
		return "", common.ErrorUnauthenticated
	}

	fields := map[string]any{
		"title": title,
		"text":  text,
		"html":  markdown.Render(text),
	}

	n, err := s.notes.Update(ctx, notesCollection, id, fields)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", common.ErrorNotFound
	}

	return id, nil
}

// SetArchived moves a note between the active and archived states. Setting
// the state it already has is not an error. A missing ID yields
// common.ErrorNotFound.
func (s *NoteService) SetArchived(ctx context.Context, user *models.User, id string, isArchived bool) (string, error) {
	if user == nil {
		return "", common.ErrorUnauthenticated
	}

	n, err := s.notes.Update(ctx, notesCollection, id, map[string]any{"isArchived": isArchived})
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", common.ErrorNotFound
	}

	return id, nil
}

// DeleteNote removes a single note by ID regardless of its archived state.
// Bulk deletion, in contrast, only ever touches archived notes; the
// asymmetry mirrors the current product behavior.
func (s *NoteService) DeleteNote(ctx context.Context, user *models.User, id string) (string, error) {
	if user == nil {
		return "", common.ErrorUnauthenticated
	}

	if err := s.notes.DeleteOne(ctx, notesCollection, id); err != nil {
		return "", err
	}

	return id, nil
}

// DeleteAllArchived removes every archived note belonging to the caller.
func (s *NoteService) DeleteAllArchived(ctx context.Context, user *models.User) error {
	if user == nil {
		return common.ErrorUnauthenticated
	}

	return s.notes.DeleteManyArchived(ctx, notesCollection, user.ID)
}
