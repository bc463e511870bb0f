package services

import (
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/pkg/config"
)

// NewServiceContainer wires every service against the given repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(repos.AuditRepo)
	settingsSvc := NewSettingService(repos.SettingRepo)
	pricingSvc := NewPricingService(settingsSvc)
	customerSvc := NewCustomerService(repos.CustomerRepo, auditSvc)
	debtSvc := NewDebtService(repos.DebtRepo, customerSvc, pricingSvc, auditSvc)
	userSvc := NewUserService(repos.UserRepo, auditSvc, cfg)

	return &portssvc.ServiceContainer{
		Customer: customerSvc,
		Debt:     debtSvc,
		Settings: settingsSvc,
		User:     userSvc,
		Auth:     userSvc,
		Audit:    auditSvc,
	}
}
