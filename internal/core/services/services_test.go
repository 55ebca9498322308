package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/orbit_finance/internal/adapters/storage"
	"github.com/SscSPs/orbit_finance/internal/adapters/storage/memory"
	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
	"github.com/SscSPs/orbit_finance/internal/core/services"
	"github.com/SscSPs/orbit_finance/internal/repositories/dataset"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newContainer wires the services over the seed dataset: u1 (demo@orbit.com) owns w1
// holding one income of 5000 and expenses of 1200 (Rent) and 45 (Food).
func newContainer(t *testing.T, advisor portssvc.AdvisorSvc) *portssvc.ServiceContainer {
	t.Helper()
	repo := dataset.New(storage.NewDatasetStore(memory.NewKVStore()))
	return services.NewServiceContainer(repo, advisor)
}

func TestReportingService_WorkspaceSummary(t *testing.T) {
	c := newContainer(t, nil)

	summary, err := c.Reporting.WorkspaceSummary(context.Background(), "w1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3755).Equal(summary.Balance), "got %s", summary.Balance)
	assert.True(t, decimal.NewFromInt(5000).Equal(summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(1245).Equal(summary.TotalExpense))
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Rent", summary.Categories[0].Category)

	_, err = c.Reporting.WorkspaceSummary(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReportingService_Advice(t *testing.T) {
	t.Run("advisor answer", func(t *testing.T) {
		advisor := new(MockAdvisor)
		advisor.On("Advise", mock.Anything, mock.MatchedBy(func(req domain.AdviceRequest) bool {
			return req.WorkspaceName == "Main Wallet" && len(req.Transactions) == 3
		})).Return("Cut the sushi.", nil).Once()

		advice, err := newContainer(t, advisor).Reporting.Advice(context.Background(), "w1")
		require.NoError(t, err)
		assert.Equal(t, "Cut the sushi.", advice)
		advisor.AssertExpectations(t)
	})

	t.Run("advisor failure falls back", func(t *testing.T) {
		advisor := new(MockAdvisor)
		advisor.On("Advise", mock.Anything, mock.Anything).
			Return("", apperrors.NewExternalServiceError("boom", errors.New("503"))).Once()

		advice, err := newContainer(t, advisor).Reporting.Advice(context.Background(), "w1")
		require.NoError(t, err)
		assert.Equal(t, domain.FallbackAdvice, advice)
	})

	t.Run("empty answer falls back", func(t *testing.T) {
		advisor := new(MockAdvisor)
		advisor.On("Advise", mock.Anything, mock.Anything).Return("", nil).Once()

		advice, err := newContainer(t, advisor).Reporting.Advice(context.Background(), "w1")
		require.NoError(t, err)
		assert.Equal(t, domain.FallbackAdvice, advice)
	})

	t.Run("no advisor configured", func(t *testing.T) {
		advice, err := newContainer(t, nil).Reporting.Advice(context.Background(), "w1")
		require.NoError(t, err)
		assert.Equal(t, domain.FallbackAdvice, advice)
	})

	t.Run("unknown workspace", func(t *testing.T) {
		_, err := newContainer(t, nil).Reporting.Advice(context.Background(), "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, nil)

	user, err := c.User.Login(ctx, "demo@orbit.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = c.User.Login(ctx, "Demo@orbit.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "emails match case-sensitively")

	_, err = c.User.Register(ctx, "demo@orbit.com", "Again")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = c.User.UpdateUser(ctx, "u1", domain.UserUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	updated, err := c.User.UpdateTheme(ctx, "u1", domain.ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, updated.Preferences.Theme)

	assert.ErrorIs(t, c.User.DeleteUser(ctx, "admin1"), apperrors.ErrForbidden, "last admin stays")
	require.NoError(t, c.User.DeleteUser(ctx, "u1"))

	stats, err := c.Admin.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SystemStats{Users: 1}, stats)
}

func TestWorkspaceService(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, nil)

	ws, err := c.Workspace.CreateWorkspace(ctx, "Holiday", "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"demo@orbit.com"}, ws.Members)

	_, err = c.Workspace.CreateWorkspace(ctx, "Ghost", "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ws, err = c.Workspace.AddMember(ctx, ws.ID, "friend@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"demo@orbit.com", "friend@x.com"}, ws.Members)

	_, err = c.Workspace.RemoveMember(ctx, ws.ID, "demo@orbit.com")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	list, err := c.Workspace.ListWorkspacesForMember(ctx, "friend@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Holiday", list[0].Name)

	assert.ErrorIs(t, c.Workspace.DeleteWorkspace(ctx, ws.ID), apperrors.ErrForbidden, "anonymous callers cannot delete")
	require.NoError(t, c.Workspace.DeleteWorkspace(domain.WithActor(ctx, "u1"), ws.ID))
	_, err = c.Workspace.GetWorkspace(ctx, ws.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransactionService_ValidatesBeforeRepository(t *testing.T) {
	ctx := context.Background()
	c := newContainer(t, nil)

	_, err := c.Transaction.AddTransaction(ctx, domain.NewTransaction{
		WorkspaceID: "w1",
		Amount:      decimal.NewFromInt(-5),
		Description: "Refund",
		Type:        domain.Expense,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	txs, err := c.Transaction.ListTransactions(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	require.NoError(t, c.Transaction.DeleteTransaction(ctx, "t3"))
	require.NoError(t, c.Transaction.DeleteTransaction(ctx, "t3"))
	txs, err = c.Transaction.ListTransactions(ctx, "w1")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}
