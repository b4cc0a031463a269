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

type EnvironmentService struct {
	envRepo     *repository.EnvironmentRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewEnvironmentService(
	envRepo *repository.EnvironmentRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *EnvironmentService {
	return &EnvironmentService{
		envRepo:     envRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (s *EnvironmentService) Create(ctx context.Context, req *domain.EnvironmentRequest) (*domain.EnvironmentDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	env := &domain.Environment{
		ProjectID: project.ID,
		Name:      req.Name,
		EnvType:   req.EnvType,
		BaseURL:   optionalString(req.BaseURL),
		Notes:     req.Notes,
		IsActive:  boolOr(req.IsActive, true),
	}

	if err := s.envRepo.Create(ctx, env); err != nil {
		return nil, fmt.Errorf("failed to create environment: %w", err)
	}
	env.Project = project

	s.logger.Info("environment created",
		zap.String("environment_id", env.ID.String()),
		zap.String("project_id", project.ID.String()),
		zap.String("env_type", string(env.EnvType)))

	dto := mapper.ToEnvironmentDTO(env)
	return &dto, nil
}

func (s *EnvironmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EnvironmentDTO, error) {
	env, err := s.envRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get environment: %w", err)
	}

	dto := mapper.ToEnvironmentDTO(env)
	return &dto, nil
}

func (s *EnvironmentService) Update(ctx context.Context, id uuid.UUID, req *domain.EnvironmentRequest) (*domain.EnvironmentDTO, error) {
	env, err := s.envRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get environment: %w", err)
	}

	if req.ProjectID != env.ProjectID {
		project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to get project: %w", err)
		}
		env.ProjectID = project.ID
		env.Project = project
	}

	env.Name = req.Name
	if req.EnvType != "" {
		env.EnvType = req.EnvType
	}
	env.BaseURL = optionalString(req.BaseURL)
	env.Notes = req.Notes
	env.IsActive = boolOr(req.IsActive, env.IsActive)

	if err := s.envRepo.Update(ctx, env); err != nil {
		return nil, fmt.Errorf("failed to update environment: %w", err)
	}

	dto := mapper.ToEnvironmentDTO(env)
	return &dto, nil
}

// Delete removes the environment with its servers and resources. Issues keep
// their project and lose the environment link.
func (s *EnvironmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.envRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete environment: %w", err)
	}
	s.logger.Info("environment deleted", zap.String("environment_id", id.String()))
	return nil
}

func (s *EnvironmentService) List(ctx context.Context, page, pageSize int, projectID *uuid.UUID) (*domain.PaginatedResponse, error) {
	envs, total, err := s.envRepo.List(ctx, page, pageSize, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}

	dtos := make([]domain.EnvironmentDTO, len(envs))
	for i := range envs {
		dtos[i] = mapper.ToEnvironmentDTO(&envs[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}
