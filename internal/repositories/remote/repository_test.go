package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/orbit_finance/internal/adapters/storage"
	"github.com/SscSPs/orbit_finance/internal/adapters/storage/memory"
	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/SscSPs/orbit_finance/internal/core/services"
	"github.com/SscSPs/orbit_finance/internal/handlers"
	"github.com/SscSPs/orbit_finance/internal/platform/config"
	"github.com/SscSPs/orbit_finance/internal/repositories/dataset"
	"github.com/SscSPs/orbit_finance/internal/repositories/remote"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type RemoteRepositoryTestSuite struct {
	suite.Suite
	ctx    context.Context
	server *httptest.Server
	client *remote.Client
}

func (s *RemoteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	repo := dataset.New(storage.NewDatasetStore(memory.NewKVStore()))
	router := gin.New()
	handlers.RegisterRoutes(router, &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "orbit-test",
	}, services.NewServiceContainer(repo, nil))

	s.server = httptest.NewServer(router)
	s.client = remote.NewClient(s.server.URL+handlers.APIBasePath+"/", remote.WithHTTPClient(s.server.Client()))
}

func (s *RemoteRepositoryTestSuite) TearDownTest() {
	s.server.Close()
}

func TestRemoteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RemoteRepositoryTestSuite))
}

func (s *RemoteRepositoryTestSuite) login(email string) *domain.UserProfile {
	user, err := s.client.Authenticate(s.ctx, email)
	s.Require().NoError(err)
	return user
}

func (s *RemoteRepositoryTestSuite) TestAuthenticateStoresToken() {
	s.Empty(s.client.Token())

	user := s.login("demo@orbit.com")

	s.Equal("u1", user.ID)
	s.Equal(domain.RoleUser, user.Role)
	s.NotEmpty(s.client.Token())
}

func (s *RemoteRepositoryTestSuite) TestAuthenticateUnknownEmail() {
	_, err := s.client.Authenticate(s.ctx, "ghost@orbit.com")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Empty(s.client.Token())
}

func (s *RemoteRepositoryTestSuite) TestCallsWithoutSessionAreUnauthorized() {
	_, err := s.client.ListWorkspacesForMember(s.ctx, "demo@orbit.com")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *RemoteRepositoryTestSuite) TestWorkspacesAndTransactions() {
	s.login("demo@orbit.com")

	workspaces, err := s.client.ListWorkspacesForMember(s.ctx, "demo@orbit.com")
	s.Require().NoError(err)
	s.Require().Len(workspaces, 1)
	s.Equal("w1", workspaces[0].ID)
	s.Equal("Main Wallet", workspaces[0].Name)

	txs, err := s.client.ListTransactions(s.ctx, "w1")
	s.Require().NoError(err)
	s.Len(txs, 3)

	added, err := s.client.AddTransaction(s.ctx, domain.NewTransaction{
		WorkspaceID: "w1",
		Amount:      decimal.RequireFromString("19.99"),
		Type:        domain.Expense,
		Category:    "Food",
		Description: "Lunch",
		Date:        time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	s.Equal("demo@orbit.com", added.CreatedBy)
	s.True(decimal.RequireFromString("19.99").Equal(added.Amount))

	desc := "Team lunch"
	edited, err := s.client.EditTransaction(s.ctx, added.ID, domain.TransactionUpdate{Description: &desc})
	s.Require().NoError(err)
	s.Equal("Team lunch", edited.Description)

	s.Require().NoError(s.client.DeleteTransaction(s.ctx, added.ID))
	txs, err = s.client.ListTransactions(s.ctx, "w1")
	s.Require().NoError(err)
	s.Len(txs, 3)
}

func (s *RemoteRepositoryTestSuite) TestErrorMapping() {
	s.login("demo@orbit.com")

	_, err := s.client.FindWorkspaceByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	err = s.client.RemoveMember(s.ctx, "w1", "demo@orbit.com")
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.client.AddTransaction(s.ctx, domain.NewTransaction{
		WorkspaceID: "w1",
		Amount:      decimal.NewFromInt(-5),
		Type:        domain.Expense,
		Category:    "Food",
		Description: "Negative",
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.NotEmpty(appErr.Message)
}

func (s *RemoteRepositoryTestSuite) TestSelfRegistration() {
	user, err := s.client.CreateUser(s.ctx, "new@orbit.com", "New", domain.RoleUser)
	s.Require().NoError(err)
	s.Equal("new@orbit.com", user.Email)
	s.NotEmpty(s.client.Token())

	_, err = s.client.CreateUser(s.ctx, "new@orbit.com", "Again", domain.RoleUser)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.client.CreateUser(s.ctx, "boss@orbit.com", "Boss", domain.RoleAdmin)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *RemoteRepositoryTestSuite) TestMembership() {
	s.login("demo@orbit.com")

	s.Require().NoError(s.client.AddMember(s.ctx, "w1", "admin@orbit.com"))
	ws, err := s.client.FindWorkspaceByID(s.ctx, "w1")
	s.Require().NoError(err)
	s.Contains(ws.Members, "admin@orbit.com")

	s.Require().NoError(s.client.RemoveMember(s.ctx, "w1", "admin@orbit.com"))
	ws, err = s.client.FindWorkspaceByID(s.ctx, "w1")
	s.Require().NoError(err)
	s.NotContains(ws.Members, "admin@orbit.com")
}

func (s *RemoteRepositoryTestSuite) TestMemberCannotDeleteWorkspace() {
	s.login("demo@orbit.com")
	s.Require().NoError(s.client.AddMember(s.ctx, "w1", "admin@orbit.com"))

	s.login("admin@orbit.com")
	s.ErrorIs(s.client.DeleteWorkspace(s.ctx, "w1"), apperrors.ErrForbidden)

	_, err := s.client.FindWorkspaceByID(s.ctx, "w1")
	s.NoError(err)
}

func (s *RemoteRepositoryTestSuite) TestUpdateUserThemeOnlyForSessionUser() {
	err := s.client.UpdateUserTheme(s.ctx, "demo@orbit.com", domain.ThemeLight)
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.login("demo@orbit.com")
	s.Require().NoError(s.client.UpdateUserTheme(s.ctx, "demo@orbit.com", domain.ThemeLight))
	s.ErrorIs(s.client.UpdateUserTheme(s.ctx, "admin@orbit.com", domain.ThemeLight), apperrors.ErrForbidden)

	user, err := s.client.FindUserByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(domain.ThemeLight, user.Preferences.Theme)
}

func (s *RemoteRepositoryTestSuite) TestDeleteSelfEndsSession() {
	s.login("demo@orbit.com")

	s.Require().NoError(s.client.DeleteUser(s.ctx, "u1"))
	s.Empty(s.client.Token())
}

// The application store runs unchanged on top of the remote repository.
func TestAppStoreOverRemoteRepository(t *testing.T) {
	ctx := context.Background()

	repo := dataset.New(storage.NewDatasetStore(memory.NewKVStore()))
	router := gin.New()
	handlers.RegisterRoutes(router, &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "orbit-test",
	}, services.NewServiceContainer(repo, nil))
	server := httptest.NewServer(router)
	defer server.Close()

	client := remote.NewClient(server.URL+handlers.APIBasePath, remote.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	prefs := storage.NewPreferenceStore(memory.NewKVStore())
	store := services.NewAppStore(client, prefs, nil)

	require.NoError(t, store.Login(ctx, "demo@orbit.com"))
	state := store.State()
	require.NotNil(t, state.CurrentWorkspace)
	assert.Equal(t, "w1", state.CurrentWorkspace.ID)
	assert.Len(t, state.Transactions, 3)

	require.NoError(t, store.AddTransaction(ctx, domain.NewTransaction{
		Amount:      decimal.NewFromInt(250),
		Type:        domain.Income,
		Category:    "Freelance",
		Description: "Bonus",
		Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}))
	assert.Len(t, store.State().Transactions, 4)

	require.NoError(t, store.AddCategory(ctx, "Travel"))
	assert.Contains(t, store.State().CurrentWorkspace.Categories, "Travel")

	require.NoError(t, store.CreateWorkspace(ctx, "Savings"))
	state = store.State()
	assert.Len(t, state.Workspaces, 2)
	assert.Equal(t, "Savings", state.CurrentWorkspace.Name)
	assert.Empty(t, state.Transactions)

	assert.NotEmpty(t, store.GetAIFinancialAdvice(ctx))
	assert.False(t, store.State().IsAILoading)

	store.Logout(ctx)
	assert.False(t, store.State().IsAuthenticated)
}
