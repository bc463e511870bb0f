package pgsql

import (
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: newPgxCustomerRepository(dbPool),
		DebtRepo:     newPgxDebtRepository(dbPool),
		SettingRepo:  newPgxSettingRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
	}
}
