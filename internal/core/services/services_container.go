package services

import (
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repo portsrepo.LedgerRepository, advisor portssvc.AdvisorSvc, opts ...ReportingOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:        NewUserService(repo),
		Admin:       NewAdminService(repo),
		Workspace:   NewWorkspaceService(repo, repo),
		Transaction: NewTransactionService(repo),
		Reporting:   NewReportingService(repo, advisor, opts...),
	}
}
