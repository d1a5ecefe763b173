package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/service"
)

const dateLayout = "2006-01-02"

// ExpenseHandlers contains HTTP handlers for the expense endpoints. All of
// them run behind AuthMiddleware.
type ExpenseHandlers struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandlers creates new expense handlers.
func NewExpenseHandlers(expenseService *service.ExpenseService) *ExpenseHandlers {
	return &ExpenseHandlers{
		expenseService: expenseService,
	}
}

type expenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Category    string          `json:"category" binding:"required"`
}

type expenseResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

func toResponse(e *core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format(dateLayout),
		Category:    e.Category,
	}
}

func (r expenseRequest) toExpense() (*core.Expense, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, err
	}
	return &core.Expense{
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
		Category:    r.Category,
	}, nil
}

// List returns all expenses of the authenticated user.
func (h *ExpenseHandlers) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expenses, err := h.expenseService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list expenses"})
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toResponse(&expenses[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one expense of the authenticated user.
func (h *ExpenseHandlers) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense id"})
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, core.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expense"})
		return
	}

	c.JSON(http.StatusOK, toResponse(expense))
}

// Create records a new expense for the authenticated user.
func (h *ExpenseHandlers) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	expense, err := req.toExpense()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	created, err := h.expenseService.Create(c.Request.Context(), expense, userID)
	if err != nil {
		if errors.Is(err, core.ErrSequenceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(created))
}

// Update rewrites an expense of the authenticated user.
func (h *ExpenseHandlers) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense id"})
		return
	}

	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	details, err := req.toExpense()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	updated, err := h.expenseService.Update(c.Request.Context(), id, details, userID)
	if err != nil {
		if errors.Is(err, core.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	c.JSON(http.StatusOK, toResponse(updated))
}

// Delete removes an expense of the authenticated user.
func (h *ExpenseHandlers) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense id"})
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	c.Status(http.StatusNoContent)
}
