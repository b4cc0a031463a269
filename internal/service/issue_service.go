package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/mapper"
	"github.com/infradesk/infra-desk/internal/repository"
	"go.uber.org/zap"
)

type IssueService struct {
	issueRepo    *repository.IssueRepository
	projectRepo  *repository.ProjectRepository
	envRepo      *repository.EnvironmentRepository
	resourceRepo *repository.ResourceRepository
	userRepo     *repository.UserRepository
	clock        domain.Clock
	logger       *zap.Logger
}

func NewIssueService(
	issueRepo *repository.IssueRepository,
	projectRepo *repository.ProjectRepository,
	envRepo *repository.EnvironmentRepository,
	resourceRepo *repository.ResourceRepository,
	userRepo *repository.UserRepository,
	clock domain.Clock,
	logger *zap.Logger,
) *IssueService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &IssueService{
		issueRepo:    issueRepo,
		projectRepo:  projectRepo,
		envRepo:      envRepo,
		resourceRepo: resourceRepo,
		userRepo:     userRepo,
		clock:        clock,
		logger:       logger,
	}
}

func (s *IssueService) Create(ctx context.Context, req *domain.IssueRequest) (*domain.IssueDTO, error) {
	issue := &domain.Issue{}
	if err := s.apply(ctx, issue, req); err != nil {
		return nil, err
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	s.logger.Info("issue created",
		zap.String("issue_id", issue.ID.String()),
		zap.String("project_id", issue.ProjectID.String()),
		zap.String("status", string(issue.Status)))

	dto := mapper.ToIssueDTO(issue, s.clock())
	return &dto, nil
}

func (s *IssueService) GetByID(ctx context.Context, id uuid.UUID) (*domain.IssueDTO, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	dto := mapper.ToIssueDTO(issue, s.clock())
	return &dto, nil
}

func (s *IssueService) Update(ctx context.Context, id uuid.UUID, req *domain.IssueRequest) (*domain.IssueDTO, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	if err := s.apply(ctx, issue, req); err != nil {
		return nil, err
	}

	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	dto := mapper.ToIssueDTO(issue, s.clock())
	return &dto, nil
}

func (s *IssueService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.issueRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}
	s.logger.Info("issue deleted", zap.String("issue_id", id.String()))
	return nil
}

func (s *IssueService) List(ctx context.Context, page, pageSize int, filter repository.IssueFilter) (*domain.PaginatedResponse, error) {
	issues, total, err := s.issueRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	now := s.clock()
	dtos := make([]domain.IssueDTO, len(issues))
	for i := range issues {
		dtos[i] = mapper.ToIssueDTO(&issues[i], now)
	}
	return newPage(dtos, total, page, pageSize), nil
}

// apply copies the request onto the issue after resolving every reference
func (s *IssueService) apply(ctx context.Context, issue *domain.Issue, req *domain.IssueRequest) error {
	activityDate, err := requiredDate("issue", "activity_date", req.ActivityDate)
	if err != nil {
		return err
	}
	dueDate, err := optionalDate("issue", "due_date", req.DueDate)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if req.EnvironmentID != nil {
		if _, err := s.envRepo.GetByID(ctx, *req.EnvironmentID); err != nil {
			return fmt.Errorf("failed to get environment: %w", err)
		}
	}
	if req.ResourceID != nil {
		if _, err := s.resourceRepo.GetByID(ctx, *req.ResourceID); err != nil {
			return fmt.Errorf("failed to get resource: %w", err)
		}
	}
	for _, userID := range []*uuid.UUID{req.ProjectManagerID, req.AssignedByID, req.AssignedToID} {
		if userID == nil {
			continue
		}
		if _, err := s.userRepo.GetByID(ctx, *userID); err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
	}

	issue.ProjectID = project.ID
	issue.Project = project
	issue.EnvironmentID = req.EnvironmentID
	issue.ResourceID = req.ResourceID
	issue.Title = req.Title
	issue.Description = req.Description
	issue.Status = req.Status
	issue.Priority = req.Priority
	issue.ActivityType = req.ActivityType
	issue.ActivityDate = activityDate
	issue.DueDate = dueDate
	issue.EstimateHours = req.EstimateHours
	issue.ActualHours = req.ActualHours
	issue.ProjectManagerID = req.ProjectManagerID
	issue.AssignedByID = req.AssignedByID
	issue.AssignedToID = req.AssignedToID
	return nil
}
