package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	CustomerRepo CustomerRepositoryFacade
	DebtRepo     DebtRepositoryWithTx
	SettingRepo  SettingRepositoryFacade
	UserRepo     UserRepositoryFacade
	AuditRepo    AuditRepositoryFacade
}
