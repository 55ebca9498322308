package repositories

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// ListTransactions returns the workspace's transactions, newest first.
	// Equal timestamps keep the most recently added first.
	ListTransactions(ctx context.Context, workspaceID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// AddTransaction assigns an ID and stores the transaction.
	AddTransaction(ctx context.Context, tx domain.NewTransaction) (*domain.Transaction, error)

	// EditTransaction applies an update to an existing transaction.
	EditTransaction(ctx context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction; deleting an absent ID is a no-op.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
