package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/baletrack/bizpulse/internal/domain/models"
	"github.com/baletrack/bizpulse/internal/repository/mongodb"
	"github.com/baletrack/bizpulse/internal/server/middleware"
	"github.com/baletrack/bizpulse/internal/service/period"
	"github.com/baletrack/bizpulse/internal/service/stats"
)

// ExpenseStore is the persistence surface the expenses handler needs.
type ExpenseStore interface {
	InsertExpense(ctx context.Context, expense *models.ExpenseRecord) error
	ExpensesByOwner(ctx context.Context, ownerID string, filter models.PeriodFilter) ([]models.ExpenseRecord, error)
	ExpenseByID(ctx context.Context, ownerID, id string) (models.ExpenseRecord, error)
	UpdateExpense(ctx context.Context, ownerID, id string, update models.ExpenseUpdate) (models.ExpenseRecord, error)
	DeleteExpense(ctx context.Context, ownerID, id string) error
}

// ExpensesHandler serves the expense endpoints.
type ExpensesHandler struct {
	store  ExpenseStore
	stats  *stats.Service
	logger *zap.Logger
}

// NewExpensesHandler constructs the HTTP handler adapter.
func NewExpensesHandler(store ExpenseStore, statsSvc *stats.Service, logger *zap.Logger) *ExpensesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpensesHandler{store: store, stats: statsSvc, logger: logger}
}

type createExpenseRequest struct {
	ExpenseType        models.ExpenseType `json:"expenseType" binding:"required"`
	ExpenseDescription string             `json:"expenseDescription" binding:"required,max=500"`
	ExpenseAmount      float64            `json:"expenseAmount" binding:"required"`
	ExpenseDate        *time.Time         `json:"expenseDate"`
}

// Create records a new expense.
func (h *ExpensesHandler) Create(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if !models.ValidExpenseType(req.ExpenseType) {
		respondError(c, http.StatusBadRequest, "Invalid expense type")
		return
	}
	if req.ExpenseAmount < 1 {
		respondError(c, http.StatusBadRequest, "Amount must be at least 1")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(middleware.OwnerID(c))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid owner identity")
		return
	}

	expense := models.ExpenseRecord{
		OwnerID:            ownerID,
		ExpenseType:        req.ExpenseType,
		ExpenseDescription: req.ExpenseDescription,
		ExpenseAmount:      req.ExpenseAmount,
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = req.ExpenseDate.UTC()
	}
	if err := h.store.InsertExpense(c.Request.Context(), &expense); err != nil {
		h.logger.Error("failed to create expense entry", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create expense entry")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"expense": expense})
}

// List returns every expense owned by the caller.
func (h *ExpensesHandler) List(c *gin.Context) {
	expenses, err := h.store.ExpensesByOwner(c.Request.Context(), middleware.OwnerID(c), models.PeriodFilter{})
	if err != nil {
		h.logger.Error("failed to fetch expenses", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	respondData(c, http.StatusOK, gin.H{"expenses": expenses})
}

// GetByID returns one expense.
func (h *ExpensesHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.store.ExpenseByID(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch expense", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch expense")
		return
	}
	respondData(c, http.StatusOK, gin.H{"expense": expense})
}

type updateExpenseRequest struct {
	ExpenseType        *models.ExpenseType `json:"expenseType"`
	ExpenseDescription *string             `json:"expenseDescription"`
	ExpenseAmount      *float64            `json:"expenseAmount"`
	ExpenseDate        *time.Time          `json:"expenseDate"`
}

// Update applies a partial update. Changing the date re-derives the stored
// period in the same write.
func (h *ExpensesHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ExpenseType != nil && !models.ValidExpenseType(*req.ExpenseType) {
		respondError(c, http.StatusBadRequest, "Invalid expense type")
		return
	}
	if req.ExpenseAmount != nil && *req.ExpenseAmount < 1 {
		respondError(c, http.StatusBadRequest, "Amount must be at least 1")
		return
	}

	update := models.ExpenseUpdate{
		ExpenseType:        req.ExpenseType,
		ExpenseDescription: req.ExpenseDescription,
		ExpenseAmount:      req.ExpenseAmount,
		ExpenseDate:        req.ExpenseDate,
	}
	if update.IsZero() {
		respondError(c, http.StatusBadRequest, "No valid fields provided for update")
		return
	}

	expense, err := h.store.UpdateExpense(c.Request.Context(), middleware.OwnerID(c), id, update)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Expense not found or you are not authorized to update it")
		return
	}
	if err != nil {
		h.logger.Error("failed to update expense", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}
	respondData(c, http.StatusOK, gin.H{"expense": expense})
}

// Delete removes an expense.
func (h *ExpensesHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	err := h.store.DeleteExpense(c.Request.Context(), middleware.OwnerID(c), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Expense not found or you are not authorized to delete it")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete expense", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats returns the expense snapshot for the requested period. Malformed
// period parameters degrade to all-history rather than erroring.
func (h *ExpensesHandler) Stats(c *gin.Context) {
	q := period.Query{
		Period:  c.DefaultQuery("period", period.TokenAll),
		Year:    intQuery(c, "year"),
		Month:   intQuery(c, "month"),
		Quarter: intQuery(c, "quarter"),
	}

	snapshot, err := h.stats.ExpenseStats(c.Request.Context(), middleware.OwnerID(c), q)
	if err != nil {
		h.logger.Error("failed to fetch expense statistics", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch expense statistics")
		return
	}
	respondData(c, http.StatusOK, snapshot)
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
