// Package httpapi exposes the note service over HTTP: cookie-based session
// handling, form-driven auth endpoints, and the JSON notes API.
package httpapi

import (
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	log   logging.Logger
	auth  *services.AuthService
	notes *services.NoteService
}

// NewRouter builds the gin engine with all routes registered. The session
// middleware runs on every request; the /api group additionally rejects
// anonymous callers per handler.
func NewRouter(log logging.Logger, auth *services.AuthService, notes *services.NoteService) *gin.Engine {
	s := &Server{log: log, auth: auth, notes: notes}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.sessionMiddleware())

	r.POST("/signup", s.signup)
	r.POST("/login", s.login)
	r.GET("/logout", s.logout)

	api := r.Group("/api")
	{
		api.GET("/notes", s.listNotes)
		api.POST("/notes", s.createNote)
		api.GET("/note/:id", s.getNote)
		api.POST("/note/:id/edit", s.editNote)
		api.POST("/note/:id/archive", s.archiveNote)
		api.DELETE("/note/:id", s.deleteNote)
		api.DELETE("/note", s.deleteAllArchived)
	}

	return r
}
