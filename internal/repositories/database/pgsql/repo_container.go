package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mkrv/cashflow_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the concrete PostgreSQL repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		ItemRepo:     newPgxItemRepository(dbPool),
		ScenarioRepo: newPgxScenarioRepository(dbPool),
	}
}
