package pgsql

import (
	portsrepo "github.com/SscSPs/citizen_accounts/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:      NewTransactionManager(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		ConnectionRepo: newPgxConnectionRepository(dbPool),
		ConsentRepo:    newPgxConsentRepository(dbPool),
		ActivityRepo:   newPgxActivityRepository(dbPool),
	}
}
