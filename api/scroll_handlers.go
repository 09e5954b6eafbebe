package api

import (
	"net/http"
	"strconv"

	"akashic/domain/entities"
	"akashic/infrastructure/observability"

	"github.com/gin-gonic/gin"
)

type scrollResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url"`
	Type     string `json:"type"`
	IsLocked bool   `json:"is_locked"`
}

// toScrollResponse shapes a scroll for a response. Locked content bodies are
// withheld unless the caller has unlocked the scroll.
func toScrollResponse(s *entities.Scroll, includeContent bool) scrollResponse {
	resp := scrollResponse{
		ID:       s.ID,
		Title:    s.Title,
		ImageURL: s.ImageURL,
		Type:     string(s.Type),
		IsLocked: s.IsLocked,
	}
	if includeContent {
		resp.Content = s.Content
	}
	return resp
}

type unlockRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleListScrolls(c *gin.Context) {
	var filterType *entities.ScrollType
	if raw := c.Query("type"); raw != "" {
		t := entities.ScrollType(raw)
		filterType = &t
	}

	scrolls, err := s.catalog.ListScrolls(c.Request.Context(), filterType)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]scrollResponse, 0, len(scrolls))
	for _, scroll := range scrolls {
		resp = append(resp, toScrollResponse(scroll, !scroll.IsLocked))
	}
	c.JSON(http.StatusOK, gin.H{"scrolls": resp})
}

func (s *Server) handleUserScrolls(c *gin.Context) {
	user := currentUser(c)

	scrolls, err := s.catalog.ListUnlockedScrolls(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]scrollResponse, 0, len(scrolls))
	for _, scroll := range scrolls {
		resp = append(resp, toScrollResponse(scroll, true))
	}
	c.JSON(http.StatusOK, gin.H{"scrolls": resp})
}

func (s *Server) handleUnlockScroll(c *gin.Context) {
	user := currentUser(c)

	scrollID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, entities.NewValidationError("invalid scroll id"))
		return
	}

	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	scroll, err := s.unlocks.AttemptUnlock(c.Request.Context(), user.ID, scrollID, req.Key)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordUnlockAttempt(observability.UnlockOutcomeRejected)
		}
		respondError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordUnlockAttempt(observability.UnlockOutcomeUnlocked)
	}
	c.JSON(http.StatusOK, gin.H{"scroll": toScrollResponse(scroll, true)})
}
