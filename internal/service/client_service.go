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

type ClientService struct {
	clientRepo  *repository.ClientRepository
	partnerRepo *repository.PartnerRepository
	logger      *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	partnerRepo *repository.PartnerRepository,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		partnerRepo: partnerRepo,
		logger:      logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.ClientRequest) (*domain.ClientDTO, error) {
	partner, err := s.partnerRepo.GetByID(ctx, req.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	client := &domain.Client{
		PartnerID:     partner.ID,
		Name:          req.Name,
		Code:          req.Code,
		ContactPerson: req.ContactPerson,
		ContactEmail:  optionalString(req.ContactEmail),
		Active:        boolOr(req.Active, true),
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	client.Partner = partner

	s.logger.Info("client created",
		zap.String("client_id", client.ID.String()),
		zap.String("partner_id", partner.ID.String()))

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.ClientRequest) (*domain.ClientDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	if req.PartnerID != client.PartnerID {
		partner, err := s.partnerRepo.GetByID(ctx, req.PartnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get partner: %w", err)
		}
		client.PartnerID = partner.ID
		client.Partner = partner
	}

	client.Name = req.Name
	client.Code = req.Code
	client.ContactPerson = req.ContactPerson
	client.ContactEmail = optionalString(req.ContactEmail)
	client.Active = boolOr(req.Active, client.Active)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.logger.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}

func (s *ClientService) List(ctx context.Context, page, pageSize int, partnerID *uuid.UUID) (*domain.PaginatedResponse, error) {
	clients, total, err := s.clientRepo.List(ctx, page, pageSize, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientDTO(&clients[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}
