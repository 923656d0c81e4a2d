package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/domain/models"
	"github.com/baletrack/bizpulse/internal/repository/mongodb"
	"github.com/baletrack/bizpulse/internal/server/middleware"
	"github.com/baletrack/bizpulse/internal/service/export"
	"github.com/baletrack/bizpulse/internal/service/stats"
)

// SavingsStore is the persistence surface the savings handler needs.
type SavingsStore interface {
	InsertSavings(ctx context.Context, saving *models.SavingsRecord) error
	ListSavings(ctx context.Context, ownerID string, savingsType models.SavingsType) ([]models.SavingsRecord, error)
	SavingsByID(ctx context.Context, ownerID, id string) (models.SavingsRecord, error)
	UpdateSavings(ctx context.Context, ownerID, id string, update models.SavingsUpdate) (models.SavingsRecord, error)
	DeleteSavings(ctx context.Context, ownerID, id string) error
}

// SavingsHandler serves the savings endpoints, including the savings report
// export.
type SavingsHandler struct {
	store    SavingsStore
	stats    *stats.Service
	exporter *export.Exporter
	logger   *zap.Logger
}

// NewSavingsHandler constructs the HTTP handler adapter.
func NewSavingsHandler(store SavingsStore, statsSvc *stats.Service, exporter *export.Exporter, logger *zap.Logger) *SavingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavingsHandler{store: store, stats: statsSvc, exporter: exporter, logger: logger}
}

type createSavingsRequest struct {
	SavingsType   models.SavingsType `json:"savingsType" binding:"required"`
	SavingsAmount float64            `json:"savingsAmount" binding:"required"`
	SavingsDate   *time.Time         `json:"savingsDate"`
	TargetName    string             `json:"targetName"`
	TargetAmount  *float64           `json:"targetAmount"`
}

// Create records a new savings entry. Goal fields are accepted for every
// savings type.
func (h *SavingsHandler) Create(c *gin.Context) {
	var req createSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide savingsType and savingsAmount")
		return
	}
	if !models.ValidSavingsType(req.SavingsType) {
		respondError(c, http.StatusBadRequest, "Invalid savings type")
		return
	}
	if req.SavingsAmount < 1 {
		respondError(c, http.StatusBadRequest, "Savings amount must be a positive number")
		return
	}
	if req.TargetAmount != nil && *req.TargetAmount <= 0 {
		respondError(c, http.StatusBadRequest, "Target amount must be a positive number")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(middleware.OwnerID(c))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid owner identity")
		return
	}

	saving := models.SavingsRecord{
		OwnerID:       ownerID,
		SavingsType:   req.SavingsType,
		SavingsAmount: req.SavingsAmount,
		TargetName:    req.TargetName,
	}
	if req.SavingsDate != nil {
		saving.SavingsDate = req.SavingsDate.UTC()
	}
	if req.TargetAmount != nil {
		saving.TargetAmount = *req.TargetAmount
	}
	if err := h.store.InsertSavings(c.Request.Context(), &saving); err != nil {
		h.logger.Error("failed to create savings entry", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create savings entry")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"savings": saving})
}

// List returns the caller's savings, optionally filtered by type.
func (h *SavingsHandler) List(c *gin.Context) {
	savingsType := models.SavingsType(c.Query("type"))
	if savingsType != "" && !models.ValidSavingsType(savingsType) {
		respondError(c, http.StatusBadRequest, "Invalid savings type")
		return
	}

	savings, err := h.store.ListSavings(c.Request.Context(), middleware.OwnerID(c), savingsType)
	if err != nil {
		h.logger.Error("failed to fetch savings", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch savings")
		return
	}
	respondData(c, http.StatusOK, gin.H{"savings": savings})
}

// GetByID returns one savings record.
func (h *SavingsHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid savings ID")
		return
	}

	saving, err := h.store.SavingsByID(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Saving not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch saving", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch saving")
		return
	}
	respondData(c, http.StatusOK, gin.H{"saving": saving})
}

type updateSavingsRequest struct {
	SavingsType   *models.SavingsType `json:"savingsType"`
	SavingsAmount *float64            `json:"savingsAmount"`
	SavingsDate   *time.Time          `json:"savingsDate"`
	TargetName    *string             `json:"targetName"`
	TargetAmount  *float64            `json:"targetAmount"`
}

// Update applies a partial update to a savings record.
func (h *SavingsHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid saving ID")
		return
	}

	var req updateSavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SavingsType != nil && !models.ValidSavingsType(*req.SavingsType) {
		respondError(c, http.StatusBadRequest, "Invalid savings type")
		return
	}
	if req.SavingsAmount != nil && *req.SavingsAmount < 1 {
		respondError(c, http.StatusBadRequest, "Savings amount must be a positive number")
		return
	}
	if req.TargetAmount != nil && *req.TargetAmount <= 0 {
		respondError(c, http.StatusBadRequest, "Target amount must be a positive number")
		return
	}

	update := models.SavingsUpdate{
		SavingsType:   req.SavingsType,
		SavingsAmount: req.SavingsAmount,
		SavingsDate:   req.SavingsDate,
		TargetName:    req.TargetName,
		TargetAmount:  req.TargetAmount,
	}
	if update.IsZero() {
		respondError(c, http.StatusBadRequest, "No valid fields provided for update")
		return
	}

	saving, err := h.store.UpdateSavings(c.Request.Context(), middleware.OwnerID(c), id, update)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Saving not found or unauthorized")
		return
	}
	if err != nil {
		h.logger.Error("failed to update saving", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update saving")
		return
	}
	respondData(c, http.StatusOK, gin.H{"savings": saving})
}

// Delete removes a savings record.
func (h *SavingsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid saving ID")
		return
	}

	err := h.store.DeleteSavings(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Saving not found or unauthorized")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete saving", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete saving")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Saving deleted successfully", "data": gin.H{"id": id}})
}

// Stats returns the savings snapshot.
func (h *SavingsHandler) Stats(c *gin.Context) {
	snapshot, err := h.stats.SavingsStats(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.logger.Error("failed to fetch savings statistics", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch savings statistics")
		return
	}
	respondData(c, http.StatusOK, snapshot)
}

// Export streams the savings history as a PDF or spreadsheet download.
func (h *SavingsHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unsupported export format. Use 'pdf' or 'excel'.")
		return
	}

	savings, err := h.stats.SavingsHistory(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		h.logger.Error("failed to load savings for export", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	artifact, err := h.exporter.SavingsArtifact(format, savings)
	if errors.Is(err, export.ErrNoData) {
		respondError(c, http.StatusNotFound, "No savings data found.")
		return
	}
	if err != nil {
		h.logger.Error("failed to prepare savings export", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate export")
		return
	}

	streamArtifact(c, artifact, h.logger)
}
