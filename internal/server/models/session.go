package models

// Session maps an opaque client-held token to a user. Sessions carry no
// expiry: they live until an explicit logout deletes them.
type Session struct {
	SessionID string
	UserID    string
}
