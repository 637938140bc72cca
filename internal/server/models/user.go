// Package models holds the persisted shapes shared by repositories and
// services.
package models

// User is the identity anchor for sessions and notes. The password digest
// is the only mutable field and is never serialized to clients.
type User struct {
	ID           string `json:"_id"`
	UserName     string `json:"username"`
	PasswordHash string `json:"-"`
}
