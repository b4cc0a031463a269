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

type PartnerService struct {
	partnerRepo *repository.PartnerRepository
	logger      *zap.Logger
}

func NewPartnerService(partnerRepo *repository.PartnerRepository, logger *zap.Logger) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
		logger:      logger,
	}
}

func (s *PartnerService) Create(ctx context.Context, req *domain.PartnerRequest) (*domain.PartnerDTO, error) {
	partner := &domain.Partner{
		Name:          req.Name,
		Code:          req.Code,
		ContactPerson: req.ContactPerson,
		ContactEmail:  optionalString(req.ContactEmail),
		Active:        boolOr(req.Active, true),
	}

	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	s.logger.Info("partner created", zap.String("partner_id", partner.ID.String()), zap.String("code", partner.Code))

	dto := mapper.ToPartnerDTO(partner)
	return &dto, nil
}

func (s *PartnerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PartnerDTO, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	dto := mapper.ToPartnerDTO(partner)
	return &dto, nil
}

func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, req *domain.PartnerRequest) (*domain.PartnerDTO, error) {
	partner, err := s.partnerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get partner: %w", err)
	}

	partner.Name = req.Name
	partner.Code = req.Code
	partner.ContactPerson = req.ContactPerson
	partner.ContactEmail = optionalString(req.ContactEmail)
	partner.Active = boolOr(req.Active, partner.Active)

	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}

	dto := mapper.ToPartnerDTO(partner)
	return &dto, nil
}

// Delete removes the partner and, through cascading foreign keys, its whole subtree
func (s *PartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.partnerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	s.logger.Info("partner deleted", zap.String("partner_id", id.String()))
	return nil
}

func (s *PartnerService) List(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	partners, total, err := s.partnerRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	dtos := make([]domain.PartnerDTO, len(partners))
	for i := range partners {
		dtos[i] = mapper.ToPartnerDTO(&partners[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}
