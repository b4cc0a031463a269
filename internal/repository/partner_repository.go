package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityPartner = "partner"

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, partner *domain.Partner) error {
	return translateError(entityPartner, r.db.WithContext(ctx).Omit(clause.Associations).Create(partner).Error)
}

func (r *PartnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	var partner domain.Partner
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&partner).Error; err != nil {
		return nil, translateError(entityPartner, err)
	}
	return &partner, nil
}

// GetByCode looks a partner up by its unique slug
func (r *PartnerRepository) GetByCode(ctx context.Context, code string) (*domain.Partner, error) {
	var partner domain.Partner
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&partner).Error; err != nil {
		return nil, translateError(entityPartner, err)
	}
	return &partner, nil
}

func (r *PartnerRepository) Update(ctx context.Context, partner *domain.Partner) error {
	return translateError(entityPartner, r.db.WithContext(ctx).Omit(clause.Associations).Save(partner).Error)
}

// Delete removes the partner; clients and everything below them cascade
func (r *PartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityPartner, &domain.Partner{}, id)
}

func (r *PartnerRepository) List(ctx context.Context, page, pageSize int) ([]domain.Partner, int64, error) {
	var partners []domain.Partner
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Partner{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).Order(orderPartners).Find(&partners).Error
	return partners, total, err
}

func (r *PartnerRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Partner, error) {
	var partners []domain.Partner
	query := whereAnyLike(r.db.WithContext(ctx), "partners", domain.Partner{}.SearchFields(), LikePattern(searchQuery))
	err := query.Order(orderPartners).Limit(limit).Find(&partners).Error
	return partners, err
}
