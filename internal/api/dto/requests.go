package dto

import (
	"github.com/ledgerpipe/ledgerpipe/internal/domain/ledger"
	"github.com/ledgerpipe/ledgerpipe/internal/domain/rules"
)

// StageImportRequest is one uploaded statement ready for staging.
type StageImportRequest struct {
	AccountID       string              `json:"account_id" binding:"required"`
	UserID          string              `json:"user_id" binding:"required"`
	AccountCategory string              `json:"account_category" binding:"required"`
	SourceLabel     string              `json:"source_label"`
	Currency        string              `json:"currency"`
	Headers         []string            `json:"headers" binding:"required"`
	Rows            []map[string]string `json:"rows" binding:"required"`
}

// CommitImportRequest carries the user-confirmed transactions of a staged
// batch back for merge.
type CommitImportRequest struct {
	RunID     int64                `json:"run_id"`
	AccountID string               `json:"account_id" binding:"required"`
	UserID    string               `json:"user_id" binding:"required"`
	Confirmed []ledger.Transaction `json:"confirmed"`
}

// ReconcileRequest carries a pasted statement to check against the ledger.
type ReconcileRequest struct {
	AccountID         string  `json:"account_id" binding:"required"`
	UserID            string  `json:"user_id" binding:"required"`
	Currency          string  `json:"currency"`
	Text              string  `json:"text" binding:"required"`
	DateFrom          string  `json:"date_from"`
	DateTo            string  `json:"date_to"`
	DateToleranceDays int     `json:"date_tolerance_days"`
	AmountTolerance   float64 `json:"amount_tolerance"`
}

// SaveRuleRequest upserts one classification rule at a position in the
// user's evaluation order.
type SaveRuleRequest struct {
	UserID   string     `json:"user_id" binding:"required"`
	Position int        `json:"position"`
	Rule     rules.Rule `json:"rule" binding:"required"`
}

// SaveAccountRequest upserts an account.
type SaveAccountRequest struct {
	ID       string `json:"id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Currency string `json:"currency"`
}

// SaveTransactionTypeRequest upserts a transaction type.
type SaveTransactionTypeRequest struct {
	ID     string `json:"id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Effect string `json:"effect" binding:"required"`
}
