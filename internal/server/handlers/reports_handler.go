package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/server/middleware"
	"github.com/baletrack/bizpulse/internal/service/export"
	"github.com/baletrack/bizpulse/internal/service/period"
	"github.com/baletrack/bizpulse/internal/service/stats"
)

// ReportsHandler serves the composed financial report, as JSON and as a
// document download.
type ReportsHandler struct {
	stats    *stats.Service
	exporter *export.Exporter
	logger   *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(statsSvc *stats.Service, exporter *export.Exporter, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{stats: statsSvc, exporter: exporter, logger: logger}
}

// Financial returns the composed report as JSON.
func (h *ReportsHandler) Financial(c *gin.Context) {
	token := c.DefaultQuery("period", period.TokenMonthly)

	report, err := h.stats.FinancialReport(c.Request.Context(), middleware.OwnerID(c), token)
	if err != nil {
		h.logger.Error("failed to fetch financial data", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch financial data")
		return
	}
	respondData(c, http.StatusOK, report)
}

// Export streams the composed report as a PDF or spreadsheet download. An
// empty window answers 404 instead of producing an empty document.
func (h *ReportsHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unsupported export format. Use 'pdf' or 'excel'.")
		return
	}
	token := c.DefaultQuery("period", period.TokenMonthly)

	report, err := h.stats.FinancialReport(c.Request.Context(), middleware.OwnerID(c), token)
	if err != nil {
		h.logger.Error("failed to compose financial report", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	artifact, err := h.exporter.FinancialArtifact(format, report, period.Label(token))
	if errors.Is(err, export.ErrNoData) {
		respondError(c, http.StatusNotFound, "No financial data found for the selected period.")
		return
	}
	if err != nil {
		h.logger.Error("failed to prepare financial export", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	streamArtifact(c, artifact, h.logger)
}

// streamArtifact writes the download headers and renders the document into
// the response. A failure after the stream has begun cannot be turned into a
// JSON error anymore; it is logged and the connection is cut so the client
// never receives a silently truncated file as a success.
func streamArtifact(c *gin.Context, artifact export.Artifact, logger *zap.Logger) {
	c.Header("Content-Type", artifact.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Status(http.StatusOK)

	if err := artifact.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("document render failed mid-stream",
			zap.String("filename", artifact.Filename),
			zap.Error(err))
		c.Abort()
		return
	}
}
