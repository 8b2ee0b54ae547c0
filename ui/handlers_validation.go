package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gorand/app"
)

// handleValidate runs the validation pipeline on the submitted input.
// Rejected input still answers 200 with Valid false; only pipeline
// failures surface as server errors.
func (s *Server) handleValidate(c *gin.Context) {
	var req app.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.validation.Validate(c.Request.Context(), req)
	if err != nil {
		s.logger.Errorw("validation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
