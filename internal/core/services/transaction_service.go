package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
)

type transactionService struct {
	BaseService
	txRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates the transaction service.
func NewTransactionService(txRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txRepo: txRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, workspaceID string) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListTransactions(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return txs, nil
}

// AddTransaction validates before reaching the repository.
func (s *transactionService) AddTransaction(ctx context.Context, newTx domain.NewTransaction) (*domain.Transaction, error) {
	if err := newTx.Validate(); err != nil {
		return nil, err
	}
	tx, err := s.txRepo.AddTransaction(ctx, newTx)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to add transaction", slog.String("workspace_id", newTx.WorkspaceID))
		return nil, err
	}
	s.LogDebug(ctx, "Transaction added", slog.String("transaction_id", tx.ID))
	return tx, nil
}

func (s *transactionService) EditTransaction(ctx context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	tx, err := s.txRepo.EditTransaction(ctx, transactionID, update)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to edit transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}
	return nil
}
