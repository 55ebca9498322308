package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/orbit_finance/internal/adapters/storage"
	"github.com/SscSPs/orbit_finance/internal/adapters/storage/memory"
	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	"github.com/SscSPs/orbit_finance/internal/core/services"
	"github.com/SscSPs/orbit_finance/internal/repositories/dataset"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock Advisor ---
type MockAdvisor struct {
	mock.Mock
}

func (m *MockAdvisor) Advise(ctx context.Context, req domain.AdviceRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// unlistedWorkspaces fails every workspace listing.
type unlistedWorkspaces struct {
	portsrepo.LedgerRepository
	err error
}

func (r unlistedWorkspaces) ListWorkspacesForMember(context.Context, string) ([]domain.Workspace, error) {
	return nil, r.err
}

type AppStoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *dataset.Repository
	prefs   portsrepo.PreferenceStore
	advisor *MockAdvisor
	store   *services.AppStore
	now     time.Time
	seq     int
}

func (s *AppStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	s.seq = 0

	kv := memory.NewKVStore()
	ds := storage.NewDatasetStore(kv)
	s.Require().NoError(ds.Save(s.ctx, domain.Dataset{}))
	s.repo = dataset.New(ds,
		dataset.WithClock(func() time.Time { return s.now }),
		dataset.WithIDGenerator(func() string {
			s.seq++
			return fmt.Sprintf("id-%d", s.seq)
		}),
	)
	s.prefs = storage.NewPreferenceStore(kv)
	s.advisor = new(MockAdvisor)
	s.store = services.NewAppStore(s.repo, s.prefs, s.advisor)
}

func (s *AppStoreTestSuite) TearDownTest() {
	s.advisor.AssertExpectations(s.T())
}

func TestAppStoreTestSuite(t *testing.T) {
	suite.Run(t, new(AppStoreTestSuite))
}

func (s *AppStoreTestSuite) registerAndLogin(email, name string) services.AppState {
	s.Require().NoError(s.store.Register(s.ctx, email, name))
	return s.store.State()
}

func (s *AppStoreTestSuite) expense(amount, desc string) domain.NewTransaction {
	return domain.NewTransaction{
		Amount:      decimal.RequireFromString(amount),
		Category:    "Food",
		Description: desc,
		Type:        domain.Expense,
	}
}

func (s *AppStoreTestSuite) TestInitializeWithoutSession() {
	s.store.Initialize(s.ctx)

	st := s.store.State()
	s.Equal(services.PhaseUnauthenticated, st.Phase())
	s.Equal(domain.ThemeDark, st.Theme)
	s.Nil(st.User)
	s.Empty(st.Workspaces)
}

func (s *AppStoreTestSuite) TestRegisterSelectsDefaultWorkspace() {
	st := s.registerAndLogin("a@x.com", "A")

	s.Equal(services.PhaseWorkspaceSelected, st.Phase())
	s.Require().NotNil(st.CurrentWorkspace)
	s.Equal(domain.DefaultWorkspaceName, st.CurrentWorkspace.Name)
	s.Len(st.Workspaces, 1)
	s.Empty(st.Transactions)
	s.NotNil(st.Transactions)

	email, err := s.prefs.SessionEmail(s.ctx)
	s.Require().NoError(err)
	s.Equal("a@x.com", email)
}

func (s *AppStoreTestSuite) TestRegisterDuplicateEmail() {
	s.registerAndLogin("a@x.com", "A")
	s.store.Logout(s.ctx)

	err := s.store.Register(s.ctx, "a@x.com", "Again")
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.False(s.store.State().IsAuthenticated)
}

func (s *AppStoreTestSuite) TestLoginSyncsThemeFromProfile() {
	_, err := s.repo.CreateUser(s.ctx, "a@x.com", "A", domain.RoleUser)
	s.Require().NoError(err)
	s.store.Initialize(s.ctx)
	s.Equal(domain.ThemeDark, s.store.State().Theme)

	s.Require().NoError(s.store.Login(s.ctx, "a@x.com"))

	st := s.store.State()
	s.True(st.IsAuthenticated)
	s.False(st.IsLoading)
	s.Equal(domain.ThemeLight, st.Theme)
	stored, err := s.prefs.Theme(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.ThemeLight, stored)
}

func (s *AppStoreTestSuite) TestLoginUnknownEmail() {
	err := s.store.Login(s.ctx, "ghost@x.com")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(services.PhaseUnauthenticated, s.store.State().Phase())
}

func (s *AppStoreTestSuite) TestFailedLoginKeepsCurrentSession() {
	s.registerAndLogin("a@x.com", "A")

	s.ErrorIs(s.store.Login(s.ctx, "ghost@x.com"), apperrors.ErrNotFound)
	s.ErrorIs(s.store.Register(s.ctx, "a@x.com", "Again"), apperrors.ErrDuplicate)

	st := s.store.State()
	s.Equal(services.PhaseWorkspaceSelected, st.Phase())
	s.Equal("a@x.com", st.User.Email)
	s.False(st.IsLoading)
	email, err := s.prefs.SessionEmail(s.ctx)
	s.Require().NoError(err)
	s.Equal("a@x.com", email)

	restored := services.NewAppStore(s.repo, s.prefs, s.advisor)
	restored.Initialize(s.ctx)
	s.Equal("a@x.com", restored.State().User.Email)
}

func (s *AppStoreTestSuite) TestLoginFailsWhenWorkspacesCannotLoad() {
	_, err := s.repo.CreateUser(s.ctx, "a@x.com", "A", domain.RoleUser)
	s.Require().NoError(err)
	boom := errors.New("listing failed")
	store := services.NewAppStore(unlistedWorkspaces{LedgerRepository: s.repo, err: boom}, s.prefs, s.advisor)

	s.ErrorIs(store.Login(s.ctx, "a@x.com"), boom)

	st := store.State()
	s.Equal(services.PhaseUnauthenticated, st.Phase())
	s.False(st.IsAuthenticated)
	s.Nil(st.User)
	email, err := s.prefs.SessionEmail(s.ctx)
	s.Require().NoError(err)
	s.Empty(email)
}

func (s *AppStoreTestSuite) TestInitializeRestoresRememberedSession() {
	_, err := s.repo.CreateUser(s.ctx, "a@x.com", "A", domain.RoleUser)
	s.Require().NoError(err)
	s.Require().NoError(s.prefs.SetSessionEmail(s.ctx, "a@x.com"))

	s.store.Initialize(s.ctx)

	st := s.store.State()
	s.Equal(services.PhaseWorkspaceSelected, st.Phase())
	s.Equal("a@x.com", st.User.Email)
}

func (s *AppStoreTestSuite) TestInitializeWithStaleSessionLogsOut() {
	s.Require().NoError(s.prefs.SetSessionEmail(s.ctx, "ghost@x.com"))

	s.store.Initialize(s.ctx)

	st := s.store.State()
	s.Equal(services.PhaseUnauthenticated, st.Phase())
	email, err := s.prefs.SessionEmail(s.ctx)
	s.Require().NoError(err)
	s.Empty(email)
}

func (s *AppStoreTestSuite) TestLogoutThenInitializeStaysLoggedOut() {
	s.registerAndLogin("a@x.com", "A")
	s.Require().NoError(s.store.AddTransaction(s.ctx, s.expense("12", "Lunch")))

	s.store.Logout(s.ctx)
	s.store.Initialize(s.ctx)

	st := s.store.State()
	s.Equal(services.PhaseUnauthenticated, st.Phase())
	s.Nil(st.User)
	s.Nil(st.CurrentWorkspace)
	s.Empty(st.Workspaces)
	s.Empty(st.Transactions)
	s.Empty(st.AIAnalysis)
	s.False(st.AdminView)
}

func (s *AppStoreTestSuite) TestSelectWorkspaceClearsAIAnalysis() {
	first := s.registerAndLogin("a@x.com", "A").CurrentWorkspace.ID
	s.Require().NoError(s.store.CreateWorkspace(s.ctx, "Trip"))
	second := s.store.State().CurrentWorkspace.ID
	s.NotEqual(first, second)

	s.advisor.On("Advise", mock.Anything, mock.AnythingOfType("domain.AdviceRequest")).Return("Spend less on trips.", nil).Once()
	s.Equal("Spend less on trips.", s.store.GetAIFinancialAdvice(s.ctx))
	s.Equal("Spend less on trips.", s.store.State().AIAnalysis)

	s.Require().NoError(s.store.SelectWorkspace(s.ctx, first))

	st := s.store.State()
	s.Equal(first, st.CurrentWorkspace.ID)
	s.Empty(st.AIAnalysis)
}

func (s *AppStoreTestSuite) TestSelectUnknownWorkspaceIsNoop() {
	before := s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.SelectWorkspace(s.ctx, "nope"))

	s.Equal(before.CurrentWorkspace.ID, s.store.State().CurrentWorkspace.ID)
}

func (s *AppStoreTestSuite) TestLoadWorkspacesIsIdempotent() {
	s.registerAndLogin("a@x.com", "A")
	s.Require().NoError(s.store.CreateWorkspace(s.ctx, "Trip"))
	s.Require().NoError(s.store.AddTransaction(s.ctx, s.expense("3", "Taxi")))

	s.Require().NoError(s.store.LoadWorkspaces(s.ctx))
	once := s.store.State()
	s.Require().NoError(s.store.LoadWorkspaces(s.ctx))
	twice := s.store.State()

	s.Equal(once, twice)
	s.Equal("Trip", twice.CurrentWorkspace.Name)
	s.Len(twice.Transactions, 1)
}

func (s *AppStoreTestSuite) TestAdviceFallsBackOnAdvisorError() {
	s.registerAndLogin("a@x.com", "A")
	s.advisor.On("Advise", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

	advice := s.store.GetAIFinancialAdvice(s.ctx)

	s.Equal(domain.FallbackAdvice, advice)
	st := s.store.State()
	s.Equal(domain.FallbackAdvice, st.AIAnalysis)
	s.False(st.IsAILoading)
}

func (s *AppStoreTestSuite) TestAdviceRequestIsTruncatedNewestFirst() {
	s.store = services.NewAppStore(s.repo, s.prefs, s.advisor, services.WithAdviceLimit(2))
	s.registerAndLogin("a@x.com", "A")
	for i := 0; i < 3; i++ {
		s.now = s.now.Add(time.Hour)
		s.Require().NoError(s.store.AddTransaction(s.ctx, s.expense("1", fmt.Sprintf("tx-%d", i))))
	}

	s.advisor.On("Advise", mock.Anything, mock.MatchedBy(func(req domain.AdviceRequest) bool {
		return req.WorkspaceName == domain.DefaultWorkspaceName &&
			req.CurrencySymbol == "$" &&
			len(req.Transactions) == 2 &&
			req.Transactions[0].Description == "tx-2" &&
			req.Transactions[1].Description == "tx-1"
	})).Return("ok", nil).Once()

	s.Equal("ok", s.store.GetAIFinancialAdvice(s.ctx))
}

func (s *AppStoreTestSuite) TestStaleAdviceIsDiscarded() {
	first := s.registerAndLogin("a@x.com", "A").CurrentWorkspace.ID
	s.Require().NoError(s.store.CreateWorkspace(s.ctx, "Trip"))

	s.advisor.On("Advise", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			// The user switches workspace while the advisor is still thinking.
			s.Require().NoError(s.store.SelectWorkspace(s.ctx, first))
		}).
		Return("Advice for Trip", nil).Once()

	advice := s.store.GetAIFinancialAdvice(s.ctx)

	s.Equal("Advice for Trip", advice)
	st := s.store.State()
	s.Equal(first, st.CurrentWorkspace.ID)
	s.Empty(st.AIAnalysis)
	s.False(st.IsAILoading)
}

func (s *AppStoreTestSuite) TestTransactionsAreRefetchedAfterWrites() {
	s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.AddTransaction(s.ctx, s.expense("10", "Lunch")))
	s.Require().NoError(s.store.AddTransaction(s.ctx, s.expense("4", "Coffee")))
	st := s.store.State()
	s.Require().Len(st.Transactions, 2)
	s.Equal("Coffee", st.Transactions[0].Description)
	s.Equal("a@x.com", st.Transactions[0].CreatedBy)

	desc := "Espresso"
	s.Require().NoError(s.store.EditTransaction(s.ctx, st.Transactions[0].ID, domain.TransactionUpdate{Description: &desc}))
	s.Equal("Espresso", s.store.State().Transactions[0].Description)

	s.Require().NoError(s.store.DeleteTransaction(s.ctx, st.Transactions[1].ID))
	st = s.store.State()
	s.Require().Len(st.Transactions, 1)
	s.Equal("Espresso", st.Transactions[0].Description)
}

func (s *AppStoreTestSuite) TestAddTransactionValidatesFirst() {
	st := s.registerAndLogin("a@x.com", "A")

	err := s.store.AddTransaction(s.ctx, s.expense("0", "Nothing"))
	s.ErrorIs(err, apperrors.ErrValidation)

	txs, err := s.repo.ListTransactions(s.ctx, st.CurrentWorkspace.ID)
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *AppStoreTestSuite) TestWriteWithoutSession() {
	err := s.store.AddTransaction(s.ctx, s.expense("1", "x"))
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AppStoreTestSuite) TestCategories() {
	s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.AddCategory(s.ctx, "Rent"))
	s.Require().NoError(s.store.AddCategory(s.ctx, "Food"))
	s.Equal([]string{"Food", "Transport", "General", "Rent"}, s.store.State().CurrentWorkspace.Categories)

	s.Require().NoError(s.store.DeleteCategory(s.ctx, "Transport"))
	st := s.store.State()
	s.Equal([]string{"Food", "General", "Rent"}, st.CurrentWorkspace.Categories)
	s.Equal(st.CurrentWorkspace.Categories, st.Workspaces[0].Categories)

	s.ErrorIs(s.store.AddCategory(s.ctx, "  "), apperrors.ErrValidation)
}

func (s *AppStoreTestSuite) TestMembers() {
	s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.InviteMember(s.ctx, "b@x.com"))
	s.Equal([]string{"a@x.com", "b@x.com"}, s.store.State().CurrentWorkspace.Members)

	s.ErrorIs(s.store.RemoveMember(s.ctx, "a@x.com"), apperrors.ErrForbidden)

	s.Require().NoError(s.store.RemoveMember(s.ctx, "b@x.com"))
	s.Equal([]string{"a@x.com"}, s.store.State().CurrentWorkspace.Members)
}

func (s *AppStoreTestSuite) TestDeleteActiveWorkspaceSelectsAnother() {
	first := s.registerAndLogin("a@x.com", "A").CurrentWorkspace.ID
	s.Require().NoError(s.store.CreateWorkspace(s.ctx, "Trip"))
	trip := s.store.State().CurrentWorkspace.ID

	s.Require().NoError(s.store.DeleteWorkspace(s.ctx, trip))

	st := s.store.State()
	s.Len(st.Workspaces, 1)
	s.Equal(first, st.CurrentWorkspace.ID)
}

func (s *AppStoreTestSuite) TestMemberCannotDeleteOwnersWorkspace() {
	owned := s.registerAndLogin("a@x.com", "A").CurrentWorkspace.ID
	s.Require().NoError(s.store.InviteMember(s.ctx, "b@x.com"))
	s.store.Logout(s.ctx)
	s.registerAndLogin("b@x.com", "B")
	s.Len(s.store.State().Workspaces, 2)

	s.ErrorIs(s.store.DeleteWorkspace(s.ctx, owned), apperrors.ErrForbidden)

	_, err := s.repo.FindWorkspaceByID(s.ctx, owned)
	s.NoError(err)
	s.Len(s.store.State().Workspaces, 2)
}

func (s *AppStoreTestSuite) TestSetThemeUpdatesProfile() {
	st := s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.SetTheme(s.ctx, domain.ThemeDark))

	user, err := s.repo.FindUserByID(s.ctx, st.User.ID)
	s.Require().NoError(err)
	s.Equal(domain.ThemeDark, user.Preferences.Theme)
	s.ErrorIs(s.store.SetTheme(s.ctx, "sepia"), apperrors.ErrValidation)
}

func (s *AppStoreTestSuite) TestDeleteAccountLogsOut() {
	st := s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.DeleteAccount(s.ctx))

	s.Equal(services.PhaseUnauthenticated, s.store.State().Phase())
	_, err := s.repo.FindUserByID(s.ctx, st.User.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AppStoreTestSuite) TestAdminActionsReloadAdminData() {
	s.registerAndLogin("a@x.com", "A")

	s.Require().NoError(s.store.LoadAdminData(s.ctx))
	s.Equal(domain.SystemStats{Users: 1, Workspaces: 1}, *s.store.State().AdminStats)

	s.Require().NoError(s.store.AdminCreateUser(s.ctx, "b@x.com", "B", domain.RoleUser))
	st := s.store.State()
	s.Len(st.AdminUsers, 2)
	s.Equal(2, st.AdminStats.Users)

	s.Require().NoError(s.store.DeleteSystemUser(s.ctx, st.AdminUsers[1].ID))
	s.Len(s.store.State().AdminUsers, 1)
}

func (s *AppStoreTestSuite) TestDeleteSystemUserDropsTheirWorkspaces() {
	owner := s.registerAndLogin("a@x.com", "A")
	s.Require().NoError(s.store.InviteMember(s.ctx, "admin@x.com"))
	s.store.Logout(s.ctx)
	_, err := s.repo.CreateUser(s.ctx, "admin@x.com", "Admin", domain.RoleAdmin)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Login(s.ctx, "admin@x.com"))
	s.Require().NotNil(s.store.State().CurrentWorkspace)
	s.Equal(owner.CurrentWorkspace.ID, s.store.State().CurrentWorkspace.ID)

	s.Require().NoError(s.store.DeleteSystemUser(s.ctx, owner.User.ID))

	st := s.store.State()
	s.Require().Len(st.Workspaces, 1)
	s.Require().NotNil(st.CurrentWorkspace)
	s.NotEqual(owner.CurrentWorkspace.ID, st.CurrentWorkspace.ID)
	s.Equal(st.Workspaces[0].ID, st.CurrentWorkspace.ID)
	s.Len(st.AdminUsers, 1)
	s.Equal(domain.SystemStats{Users: 1, Workspaces: 1}, *st.AdminStats)
}

func (s *AppStoreTestSuite) TestSubscribersSeeSnapshots() {
	var phases []services.Phase
	unsubscribe := s.store.Subscribe(func(st services.AppState) {
		phases = append(phases, st.Phase())
	})

	s.registerAndLogin("a@x.com", "A")
	s.store.Logout(s.ctx)
	unsubscribe()
	s.store.SetAdminView(true)

	s.Equal([]services.Phase{services.PhaseWorkspaceSelected, services.PhaseUnauthenticated}, phases)
}

func (s *AppStoreTestSuite) TestStateIsACopy() {
	s.registerAndLogin("a@x.com", "A")

	st := s.store.State()
	st.CurrentWorkspace.Categories[0] = "Mutated"
	st.Workspaces[0].Members = append(st.Workspaces[0].Members, "intruder@x.com")

	again := s.store.State()
	s.Equal("Food", again.CurrentWorkspace.Categories[0])
	s.Equal([]string{"a@x.com"}, again.Workspaces[0].Members)
}
