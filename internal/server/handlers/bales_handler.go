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
	"github.com/baletrack/bizpulse/internal/service/stats"
)

// BaleStore is the persistence surface the bales handler needs.
type BaleStore interface {
	InsertBale(ctx context.Context, bale *models.BaleTransaction) error
	BalesByOwner(ctx context.Context, ownerID string, window *models.ReportWindow) ([]models.BaleTransaction, error)
	BaleByID(ctx context.Context, ownerID, id string) (models.BaleTransaction, error)
	UpdateBale(ctx context.Context, ownerID, id string, update models.BaleUpdate) (models.BaleTransaction, error)
	DeleteBale(ctx context.Context, ownerID, id string) error
}

// BalesHandler serves the bale transaction endpoints.
type BalesHandler struct {
	store  BaleStore
	stats  *stats.Service
	logger *zap.Logger
}

// NewBalesHandler constructs the HTTP handler adapter.
func NewBalesHandler(store BaleStore, statsSvc *stats.Service, logger *zap.Logger) *BalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalesHandler{store: store, stats: statsSvc, logger: logger}
}

type createBaleRequest struct {
	BaleType        models.BaleType        `json:"baleType" binding:"required"`
	TransactionType models.TransactionType `json:"transactionType" binding:"required"`
	Quantity        float64                `json:"quantity" binding:"required"`
	PricePerUnit    *float64               `json:"pricePerUnit" binding:"required"`
	Description     string                 `json:"description" binding:"max=500"`
}

// Create records a new bale transaction.
func (h *BalesHandler) Create(c *gin.Context) {
	var req createBaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if !models.ValidBaleType(req.BaleType) || !models.ValidTransactionType(req.TransactionType) {
		respondError(c, http.StatusBadRequest, "Invalid bale or transaction type")
		return
	}
	if req.Quantity <= 0 || *req.PricePerUnit < 0 {
		respondError(c, http.StatusBadRequest, "Quantity must be positive and price cannot be negative")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(middleware.OwnerID(c))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid owner identity")
		return
	}

	bale := models.BaleTransaction{
		OwnerID:         ownerID,
		BaleType:        req.BaleType,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		PricePerUnit:    *req.PricePerUnit,
		Description:     req.Description,
	}
	if err := h.store.InsertBale(c.Request.Context(), &bale); err != nil {
		h.logger.Error("failed to create bale entry", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create bale entry")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"bale": bale})
}

// List returns every bale transaction owned by the caller.
func (h *BalesHandler) List(c *gin.Context) {
	bales, err := h.store.BalesByOwner(c.Request.Context(), middleware.OwnerID(c), nil)
	if err != nil {
		h.logger.Error("failed to fetch bales", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch bales")
		return
	}
	respondData(c, http.StatusOK, gin.H{"bales": bales})
}

// GetByID returns one bale transaction.
func (h *BalesHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid bale ID")
		return
	}

	bale, err := h.store.BaleByID(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Bale not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch bale", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch bale")
		return
	}
	respondData(c, http.StatusOK, gin.H{"bale": bale})
}

type updateBaleRequest struct {
	BaleType        *models.BaleType        `json:"baleType"`
	TransactionType *models.TransactionType `json:"transactionType"`
	Quantity        *float64                `json:"quantity"`
	PricePerUnit    *float64                `json:"pricePerUnit"`
	Description     *string                 `json:"description"`
}

// Update applies a partial update to a bale transaction.
func (h *BalesHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid bale ID")
		return
	}

	var req updateBaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BaleType != nil && !models.ValidBaleType(*req.BaleType) {
		respondError(c, http.StatusBadRequest, "Invalid bale type")
		return
	}
	if req.TransactionType != nil && !models.ValidTransactionType(*req.TransactionType) {
		respondError(c, http.StatusBadRequest, "Invalid transaction type")
		return
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		respondError(c, http.StatusBadRequest, "Quantity must be positive")
		return
	}
	if req.PricePerUnit != nil && *req.PricePerUnit < 0 {
		respondError(c, http.StatusBadRequest, "Price cannot be negative")
		return
	}

	update := models.BaleUpdate{
		BaleType:        req.BaleType,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		PricePerUnit:    req.PricePerUnit,
		Description:     req.Description,
	}
	if update.IsZero() {
		respondError(c, http.StatusBadRequest, "No valid fields provided for update")
		return
	}

	bale, err := h.store.UpdateBale(c.Request.Context(), middleware.OwnerID(c), id, update)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Bale not found or you are not authorized to update it")
		return
	}
	if err != nil {
		h.logger.Error("failed to update bale", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update bale")
		return
	}
	respondData(c, http.StatusOK, gin.H{"bale": bale})
}

// Delete removes a bale transaction.
func (h *BalesHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid bale ID")
		return
	}

	err := h.store.DeleteBale(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Bale not found or you are not authorized to delete it")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete bale", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete bale")
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats returns the bale trading snapshot, optionally for a date window.
func (h *BalesHandler) Stats(c *gin.Context) {
	var window *models.ReportWindow
	start, startOK := parseDateParam(c.Query("startDate"))
	end, endOK := parseDateParam(c.Query("endDate"))
	if startOK && endOK {
		window = &models.ReportWindow{StartDate: start, EndDate: end}
	}

	snapshot, err := h.stats.BaleStats(c.Request.Context(), middleware.OwnerID(c), window)
	if err != nil {
		h.logger.Error("failed to fetch bales statistics", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch bales statistics")
		return
	}
	respondData(c, http.StatusOK, snapshot)
}

// parseDateParam accepts RFC3339 timestamps or bare dates.
func parseDateParam(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
