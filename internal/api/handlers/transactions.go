package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerpipe/ledgerpipe/internal/api/dto"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// TransactionsHandler serves the persisted ledger.
type TransactionsHandler struct {
	repo storage.Repository
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo storage.Repository) *TransactionsHandler {
	return &TransactionsHandler{repo: repo}
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(c *gin.Context) {
	filters := storage.TransactionFilters{
		UserID:    c.Query("user_id"),
		AccountID: c.Query("account_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Limit:     queryInt(c, "limit", 0),
		Offset:    queryInt(c, "offset", 0),
	}

	result, err := h.repo.ListTransactions(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: result.Transactions,
		TotalCount:   result.TotalCount,
		Limit:        result.Limit,
		Offset:       result.Offset,
	})
}

// Get handles GET /api/transactions/:id
func (h *TransactionsHandler) Get(c *gin.Context) {
	tx, err := h.repo.GetTransaction(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	if tx == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("transaction"))
		return
	}

	c.JSON(http.StatusOK, tx)
}

// Delete handles DELETE /api/transactions/:id
func (h *TransactionsHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteTransaction(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}
	c.Status(http.StatusNoContent)
}

// queryInt parses an integer query parameter with a default value
func queryInt(c *gin.Context, name string, defaultVal int) int {
	val := c.Query(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
