package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gorand/domain/core"
	"gorand/ports"
)

// handleHistory lists recent validation queries, newest first.
func (s *Server) handleHistory(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	queries, err := s.history.RecentQueries(c.Request.Context(), limit)
	if err != nil {
		s.logger.Errorw("failed to list history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queries": queries,
		"count":   len(queries),
	})
}

// handleHistoryDetail returns one query with its per-test outcomes.
func (s *Server) handleHistoryDetail(c *gin.Context) {
	id := c.Param("id")

	summary, err := s.history.Query(c.Request.Context(), id)
	if err != nil {
		s.respondHistoryError(c, id, err)
		return
	}

	outcomes, err := s.history.QueryOutcomes(c.Request.Context(), id)
	if err != nil {
		s.respondHistoryError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": summary,
		"tests": outcomes,
		"count": len(outcomes),
	})
}

// respondHistoryError maps history lookup failures onto status codes.
func (s *Server) respondHistoryError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidQueryID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ports.ErrQueryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "query not found"})
	default:
		s.logger.Errorw("history lookup failed", "query_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load query"})
	}
}
