package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/mapper"
	"github.com/infradesk/infra-desk/internal/metrics"
	"github.com/infradesk/infra-desk/internal/repository"
	"go.uber.org/zap"
)

// DefaultSearchLimit caps the hits returned per source
const DefaultSearchLimit = 25

// searchFinder returns at most limit hits of one source, in its default order
type searchFinder func(ctx context.Context, query string, limit int) ([]domain.SearchResultItem, error)

type searchSource struct {
	model string
	find  searchFinder
}

// searchRecord is a record pointer that can be rendered as a search hit
type searchRecord[T any] interface {
	*T
	domain.Searchable
	RecordID() uuid.UUID
}

// finder adapts a typed repository search to a searchFinder
func finder[T any, P searchRecord[T]](model string, search func(context.Context, string, int) ([]T, error)) searchSource {
	return searchSource{
		model: model,
		find: func(ctx context.Context, query string, limit int) ([]domain.SearchResultItem, error) {
			records, err := search(ctx, query, limit)
			if err != nil {
				return nil, err
			}
			items := make([]domain.SearchResultItem, len(records))
			for i := range records {
				rec := P(&records[i])
				items[i] = mapper.ToSearchResultItem(model, rec.RecordID(), rec)
			}
			return items, nil
		},
	}
}

// SearchRepositories groups the repositories scanned by the global search
type SearchRepositories struct {
	Partners     *repository.PartnerRepository
	Clients      *repository.ClientRepository
	Projects     *repository.ProjectRepository
	Environments *repository.EnvironmentRepository
	Servers      *repository.ServerRepository
	Resources    *repository.ResourceRepository
	Issues       *repository.IssueRepository
	Activities   *repository.ActivityRepository
	Users        *repository.UserRepository
}

type SearchService struct {
	sources []searchSource
	limit   int
	logger  *zap.Logger
}

func NewSearchService(repos SearchRepositories, limit int, logger *zap.Logger) *SearchService {
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	return &SearchService{
		sources: []searchSource{
			finder[domain.Partner]("Partner", repos.Partners.Search),
			finder[domain.Client]("Client", repos.Clients.Search),
			finder[domain.Project]("Project", repos.Projects.Search),
			finder[domain.Environment]("Environment", repos.Environments.Search),
			finder[domain.Server]("Server", repos.Servers.Search),
			finder[domain.Resource]("Resource", repos.Resources.Search),
			finder[domain.Issue]("Issue", repos.Issues.Search),
			finder[domain.InfraActivity]("Infra Activity", repos.Activities.Search),
			finder[domain.User]("User", repos.Users.Search),
		},
		limit:  limit,
		logger: logger,
	}
}

// Search scans every source for the trimmed query. A blank query returns no
// results without touching the database.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &domain.SearchResponse{
		Query:   query,
		Results: []domain.SearchResultItem{},
	}
	if query == "" {
		return resp, nil
	}

	metrics.SearchQueries.Inc()
	for _, src := range s.sources {
		items, err := src.find(ctx, query, s.limit)
		if err != nil {
			s.logger.Error("search source failed", zap.String("model", src.model), zap.Error(err))
			return nil, fmt.Errorf("failed to search %s: %w", src.model, err)
		}
		metrics.SearchResults.WithLabelValues(src.model).Add(float64(len(items)))
		resp.Results = append(resp.Results, items...)
	}
	resp.Total = len(resp.Results)

	s.logger.Debug("search completed", zap.String("query", query), zap.Int("total", resp.Total))
	return resp, nil
}
