package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		tx      domain.Transaction
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid expense",
			tx: domain.Transaction{
				ID:          "t1",
				WorkspaceID: "w1",
				Amount:      decimal.NewFromFloat(40.5),
				Category:    "Food",
				Description: "Lunch",
				Date:        now,
				Type:        domain.Expense,
				CreatedBy:   "a@x.com",
			},
		},
		{
			name: "zero amount",
			tx: domain.Transaction{
				WorkspaceID: "w1",
				Amount:      decimal.Zero,
				Description: "Nothing",
				Type:        domain.Income,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "negative amount",
			tx: domain.Transaction{
				WorkspaceID: "w1",
				Amount:      decimal.NewFromInt(-3),
				Description: "Refund",
				Type:        domain.Expense,
			},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name: "blank description",
			tx: domain.Transaction{
				WorkspaceID: "w1",
				Amount:      decimal.NewFromInt(3),
				Description: "   ",
				Type:        domain.Expense,
			},
			wantErr: true,
			errMsg:  "description cannot be empty",
		},
		{
			name: "unknown type",
			tx: domain.Transaction{
				WorkspaceID: "w1",
				Amount:      decimal.NewFromInt(3),
				Description: "Coffee",
				Type:        "transfer",
			},
			wantErr: true,
			errMsg:  "unknown transaction type",
		},
		{
			name: "missing workspace",
			tx: domain.Transaction{
				Amount:      decimal.NewFromInt(3),
				Description: "Coffee",
				Type:        domain.Expense,
			},
			wantErr: true,
			errMsg:  "workspace ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionUpdate_Apply(t *testing.T) {
	base := domain.Transaction{
		ID:          "t1",
		WorkspaceID: "w1",
		Amount:      decimal.NewFromInt(10),
		Category:    "Food",
		Description: "Lunch",
		Type:        domain.Expense,
		CreatedBy:   "a@x.com",
	}

	amount := decimal.NewFromInt(25)
	desc := "Team lunch"
	updated, err := domain.TransactionUpdate{Amount: &amount, Description: &desc}.Apply(base)
	require.NoError(t, err)
	assert.True(t, amount.Equal(updated.Amount))
	assert.Equal(t, "Team lunch", updated.Description)
	assert.Equal(t, "Food", updated.Category)
	assert.Equal(t, "t1", updated.ID)

	zero := decimal.Zero
	_, err = domain.TransactionUpdate{Amount: &zero}.Apply(base)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, decimal.NewFromInt(10).Equal(base.Amount), "original must not change")
}

func TestValidateCategories(t *testing.T) {
	assert.NoError(t, domain.ValidateCategories([]string{"Food", "Rent"}))
	assert.NoError(t, domain.ValidateCategories(nil))
	assert.ErrorIs(t, domain.ValidateCategories([]string{"Food", "Food"}), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.ValidateCategories([]string{"Food", " "}), apperrors.ErrValidation)
}

func TestWorkspaceClone_DoesNotAlias(t *testing.T) {
	ws := domain.Workspace{Members: []string{"a@x.com"}, Categories: []string{"Food"}}
	clone := ws.Clone()
	clone.Members[0] = "b@x.com"
	clone.Categories = append(clone.Categories, "Rent")

	assert.Equal(t, []string{"a@x.com"}, ws.Members)
	assert.Equal(t, []string{"Food"}, ws.Categories)
}

func TestSeedDataset(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ds := domain.SeedDataset(now)

	assert.Equal(t, domain.SystemStats{Users: 2, Workspaces: 1, Transactions: 3}, ds.Stats())
	for _, ws := range ds.Workspaces {
		owner := ""
		for _, u := range ds.Users {
			if u.ID == ws.OwnerID {
				owner = u.Email
			}
		}
		assert.True(t, ws.HasMember(owner), "owner must be a member of %s", ws.ID)
		assert.NoError(t, domain.ValidateCategories(ws.Categories))
	}
	for _, tx := range ds.Transactions {
		assert.NoError(t, tx.Validate())
		assert.Equal(t, now, tx.Date)
	}
}
