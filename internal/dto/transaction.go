package dto

import (
	"time"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data for recording a transaction.
// Amount positivity is checked by the domain.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category" binding:"max=50"`
	Description string                 `json:"description" binding:"required,max=200"`
	Date        *time.Time             `json:"date,omitempty"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
}

// ToDomain converts the request into a domain.NewTransaction for the workspace.
func (r CreateTransactionRequest) ToDomain(workspaceID, createdBy string) domain.NewTransaction {
	n := domain.NewTransaction{
		WorkspaceID: workspaceID,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Type:        r.Type,
		CreatedBy:   createdBy,
	}
	if r.Date != nil {
		n.Date = *r.Date
	}
	return n
}

// FromNewTransaction builds the request for a domain.NewTransaction.
func FromNewTransaction(n domain.NewTransaction) CreateTransactionRequest {
	r := CreateTransactionRequest{
		Amount:      n.Amount,
		Category:    n.Category,
		Description: n.Description,
		Type:        n.Type,
	}
	if !n.Date.IsZero() {
		d := n.Date
		r.Date = &d
	}
	return r
}

// UpdateTransactionRequest edits a transaction. Omitted fields are left untouched.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal        `json:"amount,omitempty"`
	Category    *string                 `json:"category,omitempty" binding:"omitempty,max=50"`
	Description *string                 `json:"description,omitempty" binding:"omitempty,max=200"`
	Type        *domain.TransactionType `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	Date        *time.Time              `json:"date,omitempty"`
}

// ToDomain converts the request into a domain.TransactionUpdate.
func (r UpdateTransactionRequest) ToDomain() domain.TransactionUpdate {
	return domain.TransactionUpdate{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Type:        r.Type,
		Date:        r.Date,
	}
}

// FromTransactionUpdate builds the request for a domain.TransactionUpdate.
func FromTransactionUpdate(u domain.TransactionUpdate) UpdateTransactionRequest {
	return UpdateTransactionRequest{
		Amount:      u.Amount,
		Category:    u.Category,
		Description: u.Description,
		Type:        u.Type,
		Date:        u.Date,
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID          string                 `json:"id"`
	WorkspaceID string                 `json:"workspaceId"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	Type        domain.TransactionType `json:"type"`
	CreatedBy   string                 `json:"createdBy"`
}

// ToTransactionResponse converts domain.Transaction to DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		WorkspaceID: t.WorkspaceID,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Type:        t.Type,
		CreatedBy:   t.CreatedBy,
	}
}

// ToDomain converts the DTO back into a domain.Transaction.
func (r TransactionResponse) ToDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:          r.ID,
		WorkspaceID: r.WorkspaceID,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		Type:        r.Type,
		CreatedBy:   r.CreatedBy,
	}
}

// ListTransactionsResponse wraps a list of transactions, newest first.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ListTransactionsQuery pages a transaction listing. Without a limit the whole list is returned.
type ListTransactionsQuery struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// ToListTransactionsResponse converts a slice of domain.Transaction to DTO.
func ToListTransactionsResponse(txs []domain.Transaction) ListTransactionsResponse {
	list := make([]TransactionResponse, len(txs))
	for i := range txs {
		list[i] = ToTransactionResponse(&txs[i])
	}
	return ListTransactionsResponse{Transactions: list}
}

// ToDomain converts the list back into domain transactions.
func (r ListTransactionsResponse) ToDomain() []domain.Transaction {
	txs := make([]domain.Transaction, len(r.Transactions))
	for i, t := range r.Transactions {
		txs[i] = *t.ToDomain()
	}
	return txs
}
