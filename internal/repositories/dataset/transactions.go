package dataset

import (
	"cmp"
	"context"
	"slices"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

func findTransaction(ds *domain.Dataset, id string) int {
	return slices.IndexFunc(ds.Transactions, func(t domain.Transaction) bool { return t.ID == id })
}

// ListTransactions sorts newest first. New transactions are stored at the head of the
// list, so the stable sort keeps the most recently added first among equal dates.
func (r *Repository) ListTransactions(ctx context.Context, workspaceID string) ([]domain.Transaction, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	txs := []domain.Transaction{}
	for _, t := range ds.Transactions {
		if t.WorkspaceID == workspaceID {
			txs = append(txs, t)
		}
	}
	slices.SortStableFunc(txs, func(a, b domain.Transaction) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})
	return txs, nil
}

func (r *Repository) AddTransaction(ctx context.Context, newTx domain.NewTransaction) (*domain.Transaction, error) {
	if err := newTx.Validate(); err != nil {
		return nil, err
	}
	var created domain.Transaction
	err := r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findWorkspace(ds, newTx.WorkspaceID)
		if i < 0 {
			return false, apperrors.NewNotFoundError("workspace " + newTx.WorkspaceID + " not found")
		}
		if !ds.Workspaces[i].HasMember(newTx.CreatedBy) {
			return false, apperrors.NewForbiddenError(newTx.CreatedBy + " is not a member of workspace " + newTx.WorkspaceID)
		}
		date := newTx.Date
		if date.IsZero() {
			date = r.now()
		}
		created = domain.Transaction{
			ID:          r.newID(),
			WorkspaceID: newTx.WorkspaceID,
			Amount:      newTx.Amount,
			Category:    newTx.Category,
			Description: newTx.Description,
			Date:        date,
			Type:        newTx.Type,
			CreatedBy:   newTx.CreatedBy,
		}
		ds.Transactions = slices.Insert(ds.Transactions, 0, created)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repository) EditTransaction(ctx context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	var edited domain.Transaction
	err := r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findTransaction(ds, transactionID)
		if i < 0 {
			return false, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		next, err := update.Apply(ds.Transactions[i])
		if err != nil {
			return false, err
		}
		ds.Transactions[i] = next
		edited = next
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &edited, nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, transactionID string) error {
	return r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findTransaction(ds, transactionID)
		if i < 0 {
			return false, nil
		}
		ds.Transactions = slices.Delete(ds.Transactions, i, i+1)
		return true, nil
	})
}
