package services

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// TransactionSvcFacade defines the transaction operations of a workspace.
type TransactionSvcFacade interface {
	// ListTransactions returns the workspace's transactions newest first.
	ListTransactions(ctx context.Context, workspaceID string) ([]domain.Transaction, error)
	AddTransaction(ctx context.Context, tx domain.NewTransaction) (*domain.Transaction, error)
	EditTransaction(ctx context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}
