package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerpipe/ledgerpipe/internal/api/dto"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/storage"
)

// LookupsHandler serves accounts and transaction types.
type LookupsHandler struct {
	repo storage.Repository
}

// NewLookupsHandler creates a new lookups handler.
func NewLookupsHandler(repo storage.Repository) *LookupsHandler {
	return &LookupsHandler{repo: repo}
}

// ListAccounts handles GET /api/accounts?user_id=...
func (h *LookupsHandler) ListAccounts(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("user_id is required"))
		return
	}

	accounts, err := h.repo.ListAccounts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Count:    len(accounts),
	})
}

// SaveAccount handles POST /api/accounts
func (h *LookupsHandler) SaveAccount(c *gin.Context) {
	var req dto.SaveAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	category := ledger.AccountCategory(req.Category)
	switch category {
	case ledger.AccountChecking, ledger.AccountSavings, ledger.AccountCreditCard:
	default:
		c.JSON(http.StatusBadRequest, dto.BadRequestError("unknown account category: "+req.Category))
		return
	}

	account := storage.Account{
		ID:       req.ID,
		UserID:   req.UserID,
		Name:     req.Name,
		Category: req.Category,
		Currency: req.Currency,
	}
	if account.Currency == "" {
		account.Currency = "USD"
	}

	if err := h.repo.SaveAccount(account); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, account)
}

// ListTypes handles GET /api/types
func (h *LookupsHandler) ListTypes(c *gin.Context) {
	types, err := h.repo.ListTransactionTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.TransactionTypeListResponse{
		Types: types,
		Count: len(types),
	})
}

// SaveType handles POST /api/types
func (h *LookupsHandler) SaveType(c *gin.Context) {
	var req dto.SaveTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	effect := ledger.BalanceEffect(req.Effect)
	switch effect {
	case ledger.EffectIncome, ledger.EffectExpense, ledger.EffectTransfer:
	default:
		c.JSON(http.StatusBadRequest, dto.BadRequestError("unknown balance effect: "+req.Effect))
		return
	}

	t := ledger.TransactionType{ID: req.ID, Name: req.Name, Effect: effect}
	if err := h.repo.SaveTransactionType(t); err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, t)
}
