package models

import "time"

// Note is a single Markdown note. HTML is derived from Text at write time
// and the two are always updated together, so readers can embed HTML
// without re-rendering.
type Note struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	HTML       string    `json:"html"`
	Created    time.Time `json:"created"`
	IsArchived bool      `json:"isArchived"`
}
