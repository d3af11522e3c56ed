package services

import (
	portsrepo "github.com/mkrv/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/mkrv/cashflow_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly wired
// dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.AccountRepo),
		Item:       NewItemService(repos.ItemRepo, repos.AccountRepo),
		Scenario:   NewScenarioService(repos.ScenarioRepo, repos.ItemRepo, repos.AccountRepo),
		Projection: NewProjectionService(repos.AccountRepo, repos.ItemRepo, repos.ScenarioRepo),
	}
}
