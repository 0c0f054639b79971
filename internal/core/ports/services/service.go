package services

// ServiceContainer holds instances of all the application services.
// Handlers receive this at route registration.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Journal  JournalSvcFacade
	Posting  PostingSvcFacade
	Approval ApprovalSvcFacade
	Document DocumentSvcFacade
	User     UserSvcFacade
}
