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

type ActivityService struct {
	activityRepo *repository.ActivityRepository
	issueRepo    *repository.IssueRepository
	logger       *zap.Logger
}

func NewActivityService(
	activityRepo *repository.ActivityRepository,
	issueRepo *repository.IssueRepository,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		issueRepo:    issueRepo,
		logger:       logger,
	}
}

func (s *ActivityService) Create(ctx context.Context, req *domain.InfraActivityRequest) (*domain.InfraActivityDTO, error) {
	activityDate, err := requiredDate("infra_activity", "activity_date", req.ActivityDate)
	if err != nil {
		return nil, err
	}

	issue, err := s.issueRepo.GetByID(ctx, req.IssueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	activity := &domain.InfraActivity{
		IssueID:      issue.ID,
		ActivityDate: activityDate,
		Status:       req.Status,
		Note:         req.Note,
		HoursSpent:   req.HoursSpent,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	activity.Issue = issue

	s.logger.Debug("activity logged",
		zap.String("activity_id", activity.ID.String()),
		zap.String("issue_id", issue.ID.String()))

	dto := mapper.ToInfraActivityDTO(activity)
	return &dto, nil
}

func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InfraActivityDTO, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	dto := mapper.ToInfraActivityDTO(activity)
	return &dto, nil
}

func (s *ActivityService) Update(ctx context.Context, id uuid.UUID, req *domain.InfraActivityRequest) (*domain.InfraActivityDTO, error) {
	activityDate, err := requiredDate("infra_activity", "activity_date", req.ActivityDate)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if req.IssueID != activity.IssueID {
		issue, err := s.issueRepo.GetByID(ctx, req.IssueID)
		if err != nil {
			return nil, fmt.Errorf("failed to get issue: %w", err)
		}
		activity.IssueID = issue.ID
		activity.Issue = issue
	}

	activity.ActivityDate = activityDate
	activity.Status = req.Status
	activity.Note = req.Note
	activity.HoursSpent = req.HoursSpent

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	dto := mapper.ToInfraActivityDTO(activity)
	return &dto, nil
}

func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

// List returns activities newest first, optionally for a single issue
func (s *ActivityService) List(ctx context.Context, page, pageSize int, issueID *uuid.UUID) (*domain.PaginatedResponse, error) {
	if issueID != nil {
		if _, err := s.issueRepo.GetByID(ctx, *issueID); err != nil {
			return nil, fmt.Errorf("failed to get issue: %w", err)
		}
	}

	activities, total, err := s.activityRepo.List(ctx, page, pageSize, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	dtos := make([]domain.InfraActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToInfraActivityDTO(&activities[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}
