// Package handlers contains the HTTP handlers behind the API routes.
// Handlers validate and translate; all pipeline work happens in the
// service layer.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerpipe/ledgerpipe/internal/api/dto"
	"github.com/ledgerpipe/ledgerpipe/internal/application/service"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/normalize"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/reconcile"
	"github.com/ledgerpipe/ledgerpipe/internal/infrastructure/config"
)

// ImportsHandler handles statement staging, commit, and reconciliation.
type ImportsHandler struct {
	service      *service.ImportService
	currency     string
	reconcileCfg config.ReconcileConfig
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(svc *service.ImportService, importCfg config.ImportConfig, reconcileCfg config.ReconcileConfig) *ImportsHandler {
	return &ImportsHandler{
		service:      svc,
		currency:     importCfg.Currency,
		reconcileCfg: reconcileCfg,
	}
}

// Stage handles POST /api/imports/stage
func (h *ImportsHandler) Stage(c *gin.Context) {
	var req dto.StageImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	category := ledger.AccountCategory(req.AccountCategory)
	switch category {
	case ledger.AccountChecking, ledger.AccountSavings, ledger.AccountCreditCard:
	default:
		c.JSON(http.StatusBadRequest, dto.BadRequestError("unknown account category: "+req.AccountCategory))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = h.currency
	}

	result, err := h.service.Stage(service.StageParams{
		AccountID:       req.AccountID,
		UserID:          req.UserID,
		SourceLabel:     req.SourceLabel,
		Currency:        currency,
		AccountCategory: category,
		Headers:         req.Headers,
		Rows:            req.Rows,
	})
	if err != nil {
		if errors.Is(err, normalize.ErrNoUsableRows) {
			c.JSON(http.StatusUnprocessableEntity, dto.UnparseableError("no rows in the statement could be parsed"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.StageImportResponse{
		RunID:   result.RunID,
		Records: result.Records,
		Counts:  dto.FromStorageCounts(result.Counts),
	})
}

// Commit handles POST /api/imports/commit
func (h *ImportsHandler) Commit(c *gin.Context) {
	var req dto.CommitImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	result, err := h.service.Commit(service.CommitParams{
		RunID:     req.RunID,
		AccountID: req.AccountID,
		UserID:    req.UserID,
		Confirmed: req.Confirmed,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.CommitImportResponse{
		Added:      result.Added,
		Duplicates: result.Duplicates,
	})
}

// Reconcile handles POST /api/reconcile
func (h *ImportsHandler) Reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	cfg := reconcile.Config{
		DateToleranceDays: h.reconcileCfg.DateToleranceDays,
		AmountTolerance:   h.reconcileCfg.AmountTolerance,
	}
	if req.DateToleranceDays > 0 {
		cfg.DateToleranceDays = req.DateToleranceDays
	}
	if req.AmountTolerance > 0 {
		cfg.AmountTolerance = req.AmountTolerance
	}

	currency := req.Currency
	if currency == "" {
		currency = h.currency
	}

	result, err := h.service.Reconcile(service.ReconcileParams{
		AccountID: req.AccountID,
		UserID:    req.UserID,
		Currency:  currency,
		Text:      req.Text,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Config:    cfg,
	})
	if err != nil {
		if errors.Is(err, normalize.ErrUnparseableStatement) {
			c.JSON(http.StatusUnprocessableEntity, dto.UnparseableError("no lines in the pasted statement could be parsed"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.FromReconcileResult(result))
}
