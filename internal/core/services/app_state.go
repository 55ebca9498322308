package services

import (
	"slices"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// Phase is the coarse session state of the application store.
type Phase string

const (
	PhaseUnauthenticated   Phase = "unauthenticated"
	PhaseAuthenticating    Phase = "authenticating"
	PhaseAuthenticated     Phase = "authenticated"
	PhaseWorkspaceSelected Phase = "workspace_selected"
)

// AppState is a snapshot of everything the presentation layer renders from.
type AppState struct {
	User            *domain.UserProfile `json:"user"`
	IsAuthenticated bool                `json:"isAuthenticated"`
	IsLoading       bool                `json:"isLoading"`
	IsAILoading     bool                `json:"isAiLoading"`
	Theme           domain.Theme        `json:"theme"`
	AdminView       bool                `json:"adminView"`

	Workspaces       []domain.Workspace   `json:"workspaces"`
	CurrentWorkspace *domain.Workspace    `json:"currentWorkspace"`
	Transactions     []domain.Transaction `json:"transactions"`
	AIAnalysis       string               `json:"aiAnalysis,omitempty"`

	AdminUsers []domain.UserProfile `json:"adminUsers"`
	AdminStats *domain.SystemStats  `json:"adminStats"`
}

// Phase derives the session state.
func (s AppState) Phase() Phase {
	switch {
	case s.IsAuthenticated && s.CurrentWorkspace != nil:
		return PhaseWorkspaceSelected
	case s.IsAuthenticated:
		return PhaseAuthenticated
	case s.IsLoading:
		return PhaseAuthenticating
	default:
		return PhaseUnauthenticated
	}
}

func (s AppState) clone() AppState {
	out := s
	if s.User != nil {
		u := s.User.Clone()
		out.User = &u
	}
	if s.CurrentWorkspace != nil {
		w := s.CurrentWorkspace.Clone()
		out.CurrentWorkspace = &w
	}
	if s.AdminStats != nil {
		st := *s.AdminStats
		out.AdminStats = &st
	}
	out.Workspaces = make([]domain.Workspace, len(s.Workspaces))
	for i, w := range s.Workspaces {
		out.Workspaces[i] = w.Clone()
	}
	out.AdminUsers = make([]domain.UserProfile, len(s.AdminUsers))
	for i, u := range s.AdminUsers {
		out.AdminUsers[i] = u.Clone()
	}
	out.Transactions = slices.Clone(s.Transactions)
	if out.Transactions == nil {
		out.Transactions = []domain.Transaction{}
	}
	return out
}
