package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gorand/domain/verdict"
)

// handleReport renders the stored verdict for one query as a
// standalone HTML page, or as raw markdown with ?format=markdown.
func (s *Server) handleReport(c *gin.Context) {
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

	md := verdict.RenderMarkdown(verdict.QueryReport{
		ID:           summary.ID.String(),
		CreatedAt:    summary.CreatedAt.Time(),
		InputFormat:  summary.InputFormat,
		BitCount:     summary.BitCount,
		Valid:        summary.Valid,
		QualityScore: summary.QualityScore,
		Message:      summary.Message,
		Outcomes:     outcomes,
	})

	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", renderReportHTML(md))
}

// renderReportHTML converts the markdown report into a complete HTML page.
func renderReportHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Title: "Randomness Validation Report",
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
