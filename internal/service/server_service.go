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

type ServerService struct {
	serverRepo *repository.ServerRepository
	envRepo    *repository.EnvironmentRepository
	logger     *zap.Logger
}

func NewServerService(
	serverRepo *repository.ServerRepository,
	envRepo *repository.EnvironmentRepository,
	logger *zap.Logger,
) *ServerService {
	return &ServerService{
		serverRepo: serverRepo,
		envRepo:    envRepo,
		logger:     logger,
	}
}

func (s *ServerService) Create(ctx context.Context, req *domain.ServerRequest) (*domain.ServerDTO, error) {
	if _, err := s.envRepo.GetByID(ctx, req.EnvironmentID); err != nil {
		return nil, fmt.Errorf("failed to get environment: %w", err)
	}

	server := &domain.Server{
		EnvironmentID: req.EnvironmentID,
		Name:          req.Name,
		IPAddress:     req.IPAddress,
		Provider:      req.Provider,
		Region:        req.Region,
		SSHUser:       req.SSHUser,
		SSHPort:       req.SSHPort,
		IsActive:      boolOr(req.IsActive, true),
	}

	if err := s.serverRepo.Create(ctx, server); err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	s.logger.Info("server created",
		zap.String("server_id", server.ID.String()),
		zap.String("environment_id", server.EnvironmentID.String()))

	dto := mapper.ToServerDTO(server)
	return &dto, nil
}

func (s *ServerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServerDTO, error) {
	server, err := s.serverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	dto := mapper.ToServerDTO(server)
	return &dto, nil
}

func (s *ServerService) Update(ctx context.Context, id uuid.UUID, req *domain.ServerRequest) (*domain.ServerDTO, error) {
	server, err := s.serverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	if req.EnvironmentID != server.EnvironmentID {
		if _, err := s.envRepo.GetByID(ctx, req.EnvironmentID); err != nil {
			return nil, fmt.Errorf("failed to get environment: %w", err)
		}
		server.EnvironmentID = req.EnvironmentID
	}

	server.Name = req.Name
	server.IPAddress = req.IPAddress
	if req.Provider != "" {
		server.Provider = req.Provider
	}
	server.Region = req.Region
	server.SSHUser = req.SSHUser
	if req.SSHPort != 0 {
		server.SSHPort = req.SSHPort
	}
	server.IsActive = boolOr(req.IsActive, server.IsActive)

	if err := s.serverRepo.Update(ctx, server); err != nil {
		return nil, fmt.Errorf("failed to update server: %w", err)
	}

	dto := mapper.ToServerDTO(server)
	return &dto, nil
}

func (s *ServerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.serverRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}
	return nil
}

func (s *ServerService) List(ctx context.Context, page, pageSize int, environmentID *uuid.UUID) (*domain.PaginatedResponse, error) {
	servers, total, err := s.serverRepo.List(ctx, page, pageSize, environmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}

	dtos := make([]domain.ServerDTO, len(servers))
	for i := range servers {
		dtos[i] = mapper.ToServerDTO(&servers[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}
