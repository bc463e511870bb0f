package services

// ServiceContainer bundles every service the HTTP layer needs.
type ServiceContainer struct {
	Customer CustomerSvcFacade
	Debt     DebtSvcFacade
	Settings SettingsSvcFacade
	User     UserSvcFacade
	Auth     AuthSvcFacade
	Audit    AuditSvcFacade
}
