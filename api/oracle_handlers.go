package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type oracleRequest struct {
	Question string `json:"question" binding:"required"`
}

func (s *Server) handleOracleAsk(c *gin.Context) {
	user := currentUser(c)

	var req oracleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	answer, balance, err := s.oracle.Ask(c.Request.Context(), user.ID, req.Question)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordOracleQuestion("failed")
		}
		respondError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordOracleQuestion("answered")
	}
	c.JSON(http.StatusOK, gin.H{
		"answer":  answer,
		"balance": balance,
	})
}
