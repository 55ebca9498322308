package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
)

// DefaultTheme applies when no theme preference has been stored.
const DefaultTheme = domain.ThemeDark

// AppStore is the application state: the current user, their workspaces, the active
// workspace's transactions and the admin caches. Every action runs under one mutex,
// so overlapping calls never interleave their read-modify-write cycles. The advisor
// call is the exception: it runs unlocked and its result is dropped if the active
// workspace changed meanwhile.
type AppStore struct {
	BaseService

	mu        sync.Mutex
	repo      portsrepo.LedgerRepository
	prefs     portsrepo.PreferenceStore
	advisor   portssvc.AdvisorSvc
	maxAdvice int

	state      AppState
	generation uint64 // bumped whenever cached AI analysis becomes stale

	listeners map[int]func(AppState)
	nextID    int
}

// AppStoreOption configures an AppStore.
type AppStoreOption func(*AppStore)

// WithAdviceLimit bounds the transactions sent to the advisor.
func WithAdviceLimit(n int) AppStoreOption {
	return func(s *AppStore) {
		if n > 0 {
			s.maxAdvice = n
		}
	}
}

// NewAppStore creates an unauthenticated store. Call Initialize to restore a session.
func NewAppStore(repo portsrepo.LedgerRepository, prefs portsrepo.PreferenceStore, advisor portssvc.AdvisorSvc, opts ...AppStoreOption) *AppStore {
	s := &AppStore{
		repo:      repo,
		prefs:     prefs,
		advisor:   advisor,
		maxAdvice: DefaultAdviceTransactions,
		listeners: make(map[int]func(AppState)),
	}
	s.state = AppState{Theme: DefaultTheme}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep copy of the current state.
func (s *AppStore) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every action. The returned
// function removes the subscription.
func (s *AppStore) Subscribe(fn func(AppState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *AppStore) lock() {
	s.mu.Lock()
}

// unlock releases the mutex and then notifies listeners with a snapshot.
func (s *AppStore) unlock() {
	snapshot := s.state.clone()
	listeners := make([]func(AppState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// actorCtx tags repository calls with the current user for the access policy.
func (s *AppStore) actorCtx(ctx context.Context) context.Context {
	if s.state.User == nil {
		return ctx
	}
	return domain.WithActor(ctx, s.state.User.ID)
}

func (s *AppStore) requireUser() error {
	if s.state.User == nil {
		return apperrors.NewAppError(401, "not logged in", apperrors.ErrUnauthorized)
	}
	return nil
}

func (s *AppStore) requireWorkspace() error {
	if err := s.requireUser(); err != nil {
		return err
	}
	if s.state.CurrentWorkspace == nil {
		return apperrors.NewValidationFailedError("no workspace selected")
	}
	return nil
}

// --- session ---

// Initialize restores the theme and, if an email is remembered, the session.
// It never fails: a failed restore forgets the email and leaves the store logged out.
func (s *AppStore) Initialize(ctx context.Context) {
	s.lock()
	defer s.unlock()

	theme, err := s.prefs.Theme(ctx)
	if err != nil {
		s.LogWarn(ctx, "Failed to read theme preference", slog.String("error", err.Error()))
	}
	if theme.IsValid() {
		s.state.Theme = theme
	}

	email, err := s.prefs.SessionEmail(ctx)
	if err != nil {
		s.LogWarn(ctx, "Failed to read remembered session", slog.String("error", err.Error()))
		return
	}
	if email == "" {
		return
	}
	if err := s.login(ctx, email); err != nil {
		s.LogWarn(ctx, "Session restore failed", slog.String("error", err.Error()))
		if err := s.prefs.ClearSession(ctx); err != nil {
			s.LogWarn(ctx, "Failed to clear remembered session", slog.String("error", err.Error()))
		}
		s.resetSession()
	}
}

// Login authenticates by email, remembers the session and loads the user's workspaces.
func (s *AppStore) Login(ctx context.Context, email string) error {
	s.lock()
	defer s.unlock()
	return s.login(ctx, email)
}

// login leaves the current session untouched unless authentication succeeds.
func (s *AppStore) login(ctx context.Context, email string) error {
	s.state.IsLoading = true
	defer func() { s.state.IsLoading = false }()

	user, err := s.repo.Authenticate(ctx, email)
	if err != nil {
		return err
	}
	return s.startSession(ctx, user)
}

// Register creates the user (with a default workspace) and logs them in.
// A taken email fails with apperrors.ErrDuplicate and keeps the current session.
func (s *AppStore) Register(ctx context.Context, email, name string) error {
	s.lock()
	defer s.unlock()

	s.state.IsLoading = true
	defer func() { s.state.IsLoading = false }()

	user, err := s.repo.CreateUser(ctx, email, name, domain.RoleUser)
	if err != nil {
		return err
	}
	return s.startSession(ctx, user)
}

// startSession replaces the session with user's. The session is only remembered once
// the user's workspaces have loaded; on failure the store ends up logged out.
func (s *AppStore) startSession(ctx context.Context, user *domain.UserProfile) error {
	s.resetSession()
	s.state.IsLoading = true
	s.state.User = user
	s.state.IsAuthenticated = true
	if err := s.loadWorkspaces(ctx); err != nil {
		s.logout(ctx)
		return err
	}

	if user.Preferences != nil && user.Preferences.Theme.IsValid() {
		s.state.Theme = user.Preferences.Theme
		if err := s.prefs.SetTheme(ctx, user.Preferences.Theme); err != nil {
			s.LogWarn(ctx, "Failed to persist theme", slog.String("error", err.Error()))
		}
	}
	if err := s.prefs.SetSessionEmail(ctx, user.Email); err != nil {
		s.LogWarn(ctx, "Failed to remember session", slog.String("error", err.Error()))
	}
	return nil
}

// RequestPasswordReset checks that the email belongs to a user. No mail is sent.
func (s *AppStore) RequestPasswordReset(ctx context.Context, email string) error {
	s.lock()
	defer s.unlock()
	_, err := s.repo.Authenticate(ctx, email)
	return err
}

// Logout clears every piece of session state and the remembered email.
func (s *AppStore) Logout(ctx context.Context) {
	s.lock()
	defer s.unlock()
	s.logout(ctx)
}

func (s *AppStore) logout(ctx context.Context) {
	if err := s.prefs.ClearSession(ctx); err != nil {
		s.LogWarn(ctx, "Failed to clear remembered session", slog.String("error", err.Error()))
	}
	s.resetSession()
}

// resetSession keeps only the theme.
func (s *AppStore) resetSession() {
	s.generation++
	s.state = AppState{Theme: s.state.Theme}
}

// SetTheme stores the theme locally and on the logged-in user's profile.
func (s *AppStore) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.IsValid() {
		return apperrors.NewValidationFailedError("unknown theme " + string(theme))
	}
	s.lock()
	defer s.unlock()

	s.state.Theme = theme
	if err := s.prefs.SetTheme(ctx, theme); err != nil {
		return err
	}
	if s.state.User == nil {
		return nil
	}
	if err := s.repo.UpdateUserTheme(s.actorCtx(ctx), s.state.User.Email, theme); err != nil {
		return err
	}
	s.state.User.Preferences = &domain.UserPreferences{Theme: theme}
	return nil
}

func (s *AppStore) SetAdminView(view bool) {
	s.lock()
	defer s.unlock()
	s.state.AdminView = view
}

// --- workspaces ---

// LoadWorkspaces refreshes the visible workspaces. When none is active the first
// one is selected and its transactions loaded.
func (s *AppStore) LoadWorkspaces(ctx context.Context) error {
	s.lock()
	defer s.unlock()
	return s.loadWorkspaces(ctx)
}

func (s *AppStore) loadWorkspaces(ctx context.Context) error {
	if s.state.User == nil {
		return nil
	}
	workspaces, err := s.repo.ListWorkspacesForMember(s.actorCtx(ctx), s.state.User.Email)
	if err != nil {
		return err
	}
	s.state.Workspaces = workspaces

	if cur := s.state.CurrentWorkspace; cur != nil {
		i := slices.IndexFunc(workspaces, func(w domain.Workspace) bool { return w.ID == cur.ID })
		if i >= 0 {
			w := workspaces[i].Clone()
			s.state.CurrentWorkspace = &w
			return nil
		}
		s.clearCurrentWorkspace()
	}
	if len(workspaces) == 0 {
		return nil
	}
	w := workspaces[0].Clone()
	s.state.CurrentWorkspace = &w
	return s.loadTransactions(ctx)
}

func (s *AppStore) clearCurrentWorkspace() {
	s.generation++
	s.state.CurrentWorkspace = nil
	s.state.Transactions = nil
	s.state.AIAnalysis = ""
}

// SelectWorkspace switches to a loaded workspace; unknown IDs are ignored.
// Any cached AI analysis is discarded.
func (s *AppStore) SelectWorkspace(ctx context.Context, workspaceID string) error {
	s.lock()
	defer s.unlock()

	i := slices.IndexFunc(s.state.Workspaces, func(w domain.Workspace) bool { return w.ID == workspaceID })
	if i < 0 {
		return nil
	}
	s.clearCurrentWorkspace()
	w := s.state.Workspaces[i].Clone()
	s.state.CurrentWorkspace = &w
	return s.loadTransactions(ctx)
}

// CreateWorkspace creates a workspace owned by the current user and selects it.
func (s *AppStore) CreateWorkspace(ctx context.Context, name string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireUser(); err != nil {
		return err
	}

	ws, err := s.repo.CreateWorkspace(s.actorCtx(ctx), name, s.state.User.ID, s.state.User.Email)
	if err != nil {
		return err
	}
	s.state.Workspaces = append(s.state.Workspaces, ws.Clone())
	s.clearCurrentWorkspace()
	s.state.CurrentWorkspace = ws
	return s.loadTransactions(ctx)
}

// UpdateWorkspaceSettings applies update to the active workspace.
func (s *AppStore) UpdateWorkspaceSettings(ctx context.Context, update domain.WorkspaceUpdate) error {
	s.lock()
	defer s.unlock()
	return s.updateCurrentWorkspace(ctx, update)
}

func (s *AppStore) updateCurrentWorkspace(ctx context.Context, update domain.WorkspaceUpdate) error {
	if err := s.requireWorkspace(); err != nil {
		return err
	}
	ws, err := s.repo.UpdateWorkspace(s.actorCtx(ctx), s.state.CurrentWorkspace.ID, update)
	if err != nil {
		return err
	}
	s.replaceWorkspace(*ws)
	return nil
}

// replaceWorkspace swaps the cached copy of ws in the list and, if active, the current slot.
func (s *AppStore) replaceWorkspace(ws domain.Workspace) {
	for i := range s.state.Workspaces {
		if s.state.Workspaces[i].ID == ws.ID {
			s.state.Workspaces[i] = ws.Clone()
		}
	}
	if s.state.CurrentWorkspace != nil && s.state.CurrentWorkspace.ID == ws.ID {
		w := ws.Clone()
		s.state.CurrentWorkspace = &w
	}
}

// DeleteWorkspace deletes a workspace and its transactions. If it was active, the
// first remaining workspace becomes active.
func (s *AppStore) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireUser(); err != nil {
		return err
	}
	if err := s.repo.DeleteWorkspace(s.actorCtx(ctx), workspaceID); err != nil {
		return err
	}
	if s.state.CurrentWorkspace != nil && s.state.CurrentWorkspace.ID == workspaceID {
		s.clearCurrentWorkspace()
	}
	return s.loadWorkspaces(ctx)
}

// InviteMember adds email to the active workspace.
func (s *AppStore) InviteMember(ctx context.Context, email string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireWorkspace(); err != nil {
		return err
	}
	actx := s.actorCtx(ctx)
	if err := s.repo.AddMember(actx, s.state.CurrentWorkspace.ID, email); err != nil {
		return err
	}
	return s.refreshCurrentWorkspace(actx)
}

// RemoveMember removes email from the active workspace. The owner cannot be removed.
func (s *AppStore) RemoveMember(ctx context.Context, email string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireWorkspace(); err != nil {
		return err
	}
	actx := s.actorCtx(ctx)
	if err := s.repo.RemoveMember(actx, s.state.CurrentWorkspace.ID, email); err != nil {
		return err
	}
	return s.refreshCurrentWorkspace(actx)
}

func (s *AppStore) refreshCurrentWorkspace(ctx context.Context) error {
	ws, err := s.repo.FindWorkspaceByID(ctx, s.state.CurrentWorkspace.ID)
	if err != nil {
		return err
	}
	s.replaceWorkspace(*ws)
	return nil
}

// AddCategory appends a category to the active workspace. Existing labels are ignored.
func (s *AppStore) AddCategory(ctx context.Context, category string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireWorkspace(); err != nil {
		return err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return apperrors.NewValidationFailedError("category label cannot be empty")
	}
	cur := s.state.CurrentWorkspace
	if cur.HasCategory(category) {
		return nil
	}
	categories := append(slices.Clone(cur.Categories), category)
	return s.updateCurrentWorkspace(ctx, domain.WorkspaceUpdate{Categories: categories})
}

// DeleteCategory removes a category label. Transactions keep their label.
func (s *AppStore) DeleteCategory(ctx context.Context, category string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireWorkspace(); err != nil {
		return err
	}
	cur := s.state.CurrentWorkspace
	if !cur.HasCategory(category) {
		return nil
	}
	categories := slices.DeleteFunc(slices.Clone(cur.Categories), func(c string) bool { return c == category })
	return s.updateCurrentWorkspace(ctx, domain.WorkspaceUpdate{Categories: categories})
}

// --- transactions ---

// LoadTransactions refetches the active workspace's transactions.
func (s *AppStore) LoadTransactions(ctx context.Context) error {
	s.lock()
	defer s.unlock()
	return s.loadTransactions(ctx)
}

func (s *AppStore) loadTransactions(ctx context.Context) error {
	if s.state.CurrentWorkspace == nil {
		s.state.Transactions = nil
		return nil
	}
	txs, err := s.repo.ListTransactions(s.actorCtx(ctx), s.state.CurrentWorkspace.ID)
	if err != nil {
		return err
	}
	s.state.Transactions = txs
	return nil
}

// AddTransaction records a transaction in the active workspace as the current user.
// Input is validated before the repository is called.
func (s *AppStore) AddTransaction(ctx context.Context, input domain.NewTransaction) error {
	s.lock()
	defer s.unlock()
	if err := s.requireWorkspace(); err != nil {
		return err
	}
	input.WorkspaceID = s.state.CurrentWorkspace.ID
	input.CreatedBy = s.state.User.Email
	if err := input.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.AddTransaction(s.actorCtx(ctx), input); err != nil {
		return err
	}
	return s.loadTransactions(ctx)
}

// EditTransaction applies update and refetches the list.
func (s *AppStore) EditTransaction(ctx context.Context, transactionID string, update domain.TransactionUpdate) error {
	s.lock()
	defer s.unlock()
	if err := s.requireUser(); err != nil {
		return err
	}
	if _, err := s.repo.EditTransaction(s.actorCtx(ctx), transactionID, update); err != nil {
		return err
	}
	return s.loadTransactions(ctx)
}

// DeleteTransaction removes a transaction and refetches the list. Unknown IDs are a no-op.
func (s *AppStore) DeleteTransaction(ctx context.Context, transactionID string) error {
	s.lock()
	defer s.unlock()
	if err := s.requireUser(); err != nil {
		return err
	}
	if err := s.repo.DeleteTransaction(s.actorCtx(ctx), transactionID); err != nil {
		return err
	}
	return s.loadTransactions(ctx)
}

// --- profile ---

// UpdateProfile applies update to the current user.
func (s *AppStore) UpdateProfile(ctx context.Context, update domain.UserUpdate) error {
	s.lock()
	defer s.unlock()
	if err := s.requireUser(); err != nil {
		return err
	}
	user, err := s.repo.UpdateUser(s.actorCtx(ctx), s.state.User.ID, update)
	if err != nil {
		return err
	}
	s.state.User = user
	return nil
}

// DeleteAccount deletes the current user, their owned workspaces, and logs out.
func (s *AppStore) DeleteAccount(ctx context.Context) error {
	s.lock()
	defer s.unlock()
	if err := s.requireUser(); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(s.actorCtx(ctx), s.state.User.ID); err != nil {
		return err
	}
	s.logout(ctx)
	return nil
}

// --- admin ---
// Admin actions are pass-throughs; any role check belongs to the repository policy.

func (s *AppStore) LoadAdminData(ctx context.Context) error {
	s.lock()
	defer s.unlock()
	return s.loadAdminData(ctx)
}

func (s *AppStore) loadAdminData(ctx context.Context) error {
	actx := s.actorCtx(ctx)
	users, err := s.repo.ListAllUsers(actx)
	if err != nil {
		return err
	}
	stats, err := s.repo.SystemStats(actx)
	if err != nil {
		return err
	}
	s.state.AdminUsers = users
	s.state.AdminStats = &stats
	return nil
}

// DeleteSystemUser deletes any user. Deleting oneself also logs out.
func (s *AppStore) DeleteSystemUser(ctx context.Context, userID string) error {
	s.lock()
	defer s.unlock()
	if err := s.repo.DeleteUser(s.actorCtx(ctx), userID); err != nil {
		return err
	}
	if s.state.User != nil && s.state.User.ID == userID {
		s.logout(ctx)
		return nil
	}
	// The user's owned workspaces went with them, possibly the active one.
	if err := s.loadWorkspaces(ctx); err != nil {
		return err
	}
	return s.loadAdminData(ctx)
}

func (s *AppStore) AdminCreateUser(ctx context.Context, email, name string, role domain.UserRole) error {
	s.lock()
	defer s.unlock()
	if _, err := s.repo.CreateUser(s.actorCtx(ctx), email, name, role); err != nil {
		return err
	}
	return s.loadAdminData(ctx)
}

func (s *AppStore) AdminResetUserPassword(ctx context.Context, userID, newPassword string) error {
	s.lock()
	defer s.unlock()
	return s.repo.ResetUserPassword(s.actorCtx(ctx), userID, newPassword)
}

// --- advice ---

// GetAIFinancialAdvice asks the advisor about the active workspace and caches the
// answer. Advisor failures become domain.FallbackAdvice; nothing is returned as an error.
// The store is not locked while the advisor runs.
func (s *AppStore) GetAIFinancialAdvice(ctx context.Context) string {
	s.lock()
	if s.state.CurrentWorkspace == nil {
		s.unlock()
		return ""
	}
	generation := s.generation
	req := buildAdviceRequest(*s.state.CurrentWorkspace, s.state.Transactions, s.maxAdvice)
	s.state.IsAILoading = true
	s.unlock()

	advice := s.requestAdvice(ctx, s.advisor, req)

	s.lock()
	defer s.unlock()
	s.state.IsAILoading = false
	if s.generation == generation {
		s.state.AIAnalysis = advice
	}
	return advice
}
