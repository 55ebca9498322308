package services

// ServiceContainer holds instances of all the application services.
// Handlers depend on it rather than on the individual constructors.
type ServiceContainer struct {
	User        UserSvcFacade
	Admin       AdminSvc
	Workspace   WorkspaceSvcFacade
	Transaction TransactionSvcFacade
	Reporting   ReportingSvc
}
