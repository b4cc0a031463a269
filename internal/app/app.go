// Package app wires repositories and services over one database handle. The
// API server and the operator CLI share it.
package app

import (
	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/repository"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repositories struct {
	Partners     *repository.PartnerRepository
	Clients      *repository.ClientRepository
	Projects     *repository.ProjectRepository
	Environments *repository.EnvironmentRepository
	Servers      *repository.ServerRepository
	Resources    *repository.ResourceRepository
	Users        *repository.UserRepository
	Profiles     *repository.UserProfileRepository
	Issues       *repository.IssueRepository
	Activities   *repository.ActivityRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Partners:     repository.NewPartnerRepository(db),
		Clients:      repository.NewClientRepository(db),
		Projects:     repository.NewProjectRepository(db),
		Environments: repository.NewEnvironmentRepository(db),
		Servers:      repository.NewServerRepository(db),
		Resources:    repository.NewResourceRepository(db),
		Users:        repository.NewUserRepository(db),
		Profiles:     repository.NewUserProfileRepository(db),
		Issues:       repository.NewIssueRepository(db),
		Activities:   repository.NewActivityRepository(db),
	}
}

type Services struct {
	Partners     *service.PartnerService
	Clients      *service.ClientService
	Projects     *service.ProjectService
	Environments *service.EnvironmentService
	Servers      *service.ServerService
	Resources    *service.ResourceService
	Users        *service.UserService
	Issues       *service.IssueService
	Activities   *service.ActivityService
	Search       *service.SearchService
	Export       *service.ExportService
}

// NewServices builds every service. A nil clock means the system clock.
func NewServices(repos *Repositories, cfg *config.Config, clock domain.Clock, logger *zap.Logger) *Services {
	return &Services{
		Partners:     service.NewPartnerService(repos.Partners, logger),
		Clients:      service.NewClientService(repos.Clients, repos.Partners, logger),
		Projects:     service.NewProjectService(repos.Projects, repos.Clients, logger),
		Environments: service.NewEnvironmentService(repos.Environments, repos.Projects, logger),
		Servers:      service.NewServerService(repos.Servers, repos.Environments, logger),
		Resources:    service.NewResourceService(repos.Resources, repos.Environments, logger),
		Users:        service.NewUserService(repos.Users, repos.Profiles, repos.Partners, repos.Clients, logger),
		Issues:       service.NewIssueService(repos.Issues, repos.Projects, repos.Environments, repos.Resources, repos.Users, clock, logger),
		Activities:   service.NewActivityService(repos.Activities, repos.Issues, logger),
		Search: service.NewSearchService(service.SearchRepositories{
			Partners:     repos.Partners,
			Clients:      repos.Clients,
			Projects:     repos.Projects,
			Environments: repos.Environments,
			Servers:      repos.Servers,
			Resources:    repos.Resources,
			Issues:       repos.Issues,
			Activities:   repos.Activities,
			Users:        repos.Users,
		}, cfg.Search.PerTypeLimit, logger),
		Export: service.NewExportService(repos.Issues, repos.Resources, repos.Activities, cfg.Export.BatchSize, cfg.Export.Location(), logger),
	}
}
