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

type ResourceService struct {
	resourceRepo *repository.ResourceRepository
	envRepo      *repository.EnvironmentRepository
	logger       *zap.Logger
}

func NewResourceService(
	resourceRepo *repository.ResourceRepository,
	envRepo *repository.EnvironmentRepository,
	logger *zap.Logger,
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		envRepo:      envRepo,
		logger:       logger,
	}
}

func (s *ResourceService) Create(ctx context.Context, req *domain.ResourceRequest) (*domain.ResourceDTO, error) {
	if _, err := s.envRepo.GetByID(ctx, req.EnvironmentID); err != nil {
		return nil, fmt.Errorf("failed to get environment: %w", err)
	}

	resource := &domain.Resource{
		EnvironmentID:  req.EnvironmentID,
		Name:           req.Name,
		ResourceType:   req.ResourceType,
		Provider:       req.Provider,
		Identifier:     req.Identifier,
		ConnectionInfo: req.ConnectionInfo,
		IsCritical:     req.IsCritical,
		IsActive:       boolOr(req.IsActive, true),
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	s.logger.Info("resource created",
		zap.String("resource_id", resource.ID.String()),
		zap.String("environment_id", resource.EnvironmentID.String()),
		zap.String("resource_type", string(resource.ResourceType)))

	dto := mapper.ToResourceDTO(resource)
	return &dto, nil
}

func (s *ResourceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ResourceDTO, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	dto := mapper.ToResourceDTO(resource)
	return &dto, nil
}

func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, req *domain.ResourceRequest) (*domain.ResourceDTO, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	if req.EnvironmentID != resource.EnvironmentID {
		if _, err := s.envRepo.GetByID(ctx, req.EnvironmentID); err != nil {
			return nil, fmt.Errorf("failed to get environment: %w", err)
		}
		resource.EnvironmentID = req.EnvironmentID
	}

	resource.Name = req.Name
	if req.ResourceType != "" {
		resource.ResourceType = req.ResourceType
	}
	resource.Provider = req.Provider
	resource.Identifier = req.Identifier
	resource.ConnectionInfo = req.ConnectionInfo
	resource.IsCritical = req.IsCritical
	resource.IsActive = boolOr(req.IsActive, resource.IsActive)

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	dto := mapper.ToResourceDTO(resource)
	return &dto, nil
}

func (s *ResourceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.resourceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

func (s *ResourceService) List(ctx context.Context, page, pageSize int, environmentID *uuid.UUID) (*domain.PaginatedResponse, error) {
	resources, total, err := s.resourceRepo.List(ctx, page, pageSize, environmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	dtos := make([]domain.ResourceDTO, len(resources))
	for i := range resources {
		dtos[i] = mapper.ToResourceDTO(&resources[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}
