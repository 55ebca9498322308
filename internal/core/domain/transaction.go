package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType discriminates income from expense. Amounts are never signed.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is one income or expense entry belonging to exactly one workspace.
type Transaction struct {
	ID          string          `json:"id"`
	WorkspaceID string          `json:"workspaceId"`
	Amount      decimal.Decimal `json:"amount"` // Positive value; the Type carries the direction
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	CreatedBy   string          `json:"createdBy"` // creator email
}

// Validate checks the fields a transaction must always satisfy.
func (t Transaction) Validate() error {
	if t.WorkspaceID == "" {
		return apperrors.NewValidationFailedError("workspace ID is required")
	}
	return validateEntry(t.Amount, t.Description, t.Type)
}

// NewTransaction is the caller-supplied part of a transaction; the repository assigns the ID.
type NewTransaction struct {
	WorkspaceID string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time // zero means "now"
	Type        TransactionType
	CreatedBy   string
}

// Validate checks the draft before it reaches a repository.
func (n NewTransaction) Validate() error {
	return Transaction{
		WorkspaceID: n.WorkspaceID,
		Amount:      n.Amount,
		Description: n.Description,
		Type:        n.Type,
	}.Validate()
}

// TransactionUpdate carries an edit. Only description, amount, category, type and date can change.
type TransactionUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Type        *TransactionType
	Date        *time.Time
}

// Apply returns t with the update applied, validated as a whole.
func (u TransactionUpdate) Apply(t Transaction) (Transaction, error) {
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func validateEntry(amount decimal.Decimal, description string, typ TransactionType) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("amount must be positive, got %s", amount.String()))
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationFailedError("description cannot be empty")
	}
	if !typ.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown transaction type %q", typ))
	}
	return nil
}
