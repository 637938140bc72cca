package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/gin-gonic/gin"
)

const tryAgainMessage = "An error occurred, please try again later."

type noteWritePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type archivePayload struct {
	IsArchived bool `json:"isArchived"`
}

// --- auth ---

func redirectAuthError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, "/?authError="+url.QueryEscape(message))
}

func (s *Server) startSession(c *gin.Context, userID string) {
	token, err := s.auth.CreateSession(c.Request.Context(), userID)
	if err != nil {
		s.log.Error(c.Request.Context(), "session creation failed", "error", err)
		redirectAuthError(c, tryAgainMessage)
		return
	}

	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) signup(c *gin.Context) {
	userName := c.PostForm("username")
	password := c.PostForm("password")

	user, err := s.auth.Register(c.Request.Context(), userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorUserAlreadyExists) {
			redirectAuthError(c, "The user is already registered")
			return
		}
		s.log.Error(c.Request.Context(), "signup failed", "error", err)
		redirectAuthError(c, tryAgainMessage)
		return
	}

	s.startSession(c, user.ID)
}

func (s *Server) login(c *gin.Context) {
	userName := c.PostForm("username")
	password := c.PostForm("password")

	user, err := s.auth.Login(c.Request.Context(), userName, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			redirectAuthError(c, "Unknown username")
		case errors.Is(err, common.ErrorUnauthorized):
			redirectAuthError(c, "Wrong password")
		default:
			s.log.Error(c.Request.Context(), "login failed", "error", err)
			redirectAuthError(c, tryAgainMessage)
		}
		return
	}

	s.startSession(c, user.ID)
}

func (s *Server) logout(c *gin.Context) {
	if currentUser(c) == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	token := c.GetString(ctxSessionKey)
	if err := s.auth.DeleteSession(c.Request.Context(), token); err != nil {
		s.log.Error(c.Request.Context(), "logout failed", "error", err)
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// --- notes ---

func (s *Server) listNotes(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	page := 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil {
		page = p
	}

	list, err := s.notes.ListNotes(c.Request.Context(), user, c.Query("age"), page)
	if err != nil {
		s.log.Error(c.Request.Context(), "note listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": tryAgainMessage})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) getNote(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	note, err := s.notes.GetNote(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		s.log.Error(c.Request.Context(), "note fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": tryAgainMessage})
		return
	}

	// a missing note serializes as null, matching the listing contract
	c.JSON(http.StatusOK, note)
}

func (s *Server) createNote(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	var payload noteWritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	id, err := s.notes.CreateNote(c.Request.Context(), user, payload.Title, payload.Text)
	if err != nil {
		// soft failure: the client may retry
		s.log.Error(c.Request.Context(), "note creation failed", "error", err)
		c.JSON(http.StatusOK, gin.H{"success": false, "message": tryAgainMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"_id": id})
}

func (s *Server) editNote(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	var payload noteWritePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	id := c.Param("id")
	if _, err := s.notes.EditNote(c.Request.Context(), user, id, payload.Title, payload.Text); err != nil {
		s.respondUpdateError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"_id": id})
}

func (s *Server) archiveNote(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	var payload archivePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	id := c.Param("id")
	if _, err := s.notes.SetArchived(c.Request.Context(), user, id, payload.IsArchived); err != nil {
		s.respondUpdateError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"_id": id})
}

func (s *Server) respondUpdateError(c *gin.Context, id string, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		c.String(http.StatusNotFound, "Unknown note Id: %s", id)
		return
	}
	s.log.Error(c.Request.Context(), "note update failed", "error", err, "id", id)
	c.JSON(http.StatusInternalServerError, gin.H{"message": tryAgainMessage})
}

func (s *Server) deleteNote(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")
	if _, err := s.notes.DeleteNote(c.Request.Context(), user, id); err != nil {
		s.log.Error(c.Request.Context(), "note deletion failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"message": tryAgainMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"_id": id})
}

func (s *Server) deleteAllArchived(c *gin.Context) {
	user := s.requireUser(c)
	if user == nil {
		return
	}

	if err := s.notes.DeleteAllArchived(c.Request.Context(), user); err != nil {
		s.log.Error(c.Request.Context(), "archived notes deletion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": tryAgainMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
