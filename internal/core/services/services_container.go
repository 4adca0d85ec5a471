package services

import (
	portsrepo "github.com/hisaab-app/hisaab-backend/internal/core/ports/repositories"
	portssvc "github.com/hisaab-app/hisaab-backend/internal/core/ports/services"
)

// NewServiceContainer wires all application services from the repository
// provider. Handlers receive this container and never touch repositories
// directly.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo),
		Group:      NewGroupService(repos.GroupRepo, repos.UserRepo),
		Expense:    NewExpenseService(repos.ExpenseRepo, repos.GroupRepo),
		Settlement: NewSettlementService(repos.SettlementRepo, repos.ExpenseRepo, repos.GroupRepo),
	}
}
