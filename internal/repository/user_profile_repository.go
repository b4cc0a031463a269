package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityUserProfile = "user_profile"

type UserProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	return translateError(entityUserProfile, r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error)
}

func (r *UserProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		return nil, translateError(entityUserProfile, err)
	}
	return &profile, nil
}

func (r *UserProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	return translateError(entityUserProfile, r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error)
}

func (r *UserProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityUserProfile, &domain.UserProfile{}, id)
}

// List returns profiles ordered by username, optionally scoped to a partner
func (r *UserProfileRepository) List(ctx context.Context, page, pageSize int, partnerID *uuid.UUID) ([]domain.UserProfile, int64, error) {
	var profiles []domain.UserProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.UserProfile{})
	if partnerID != nil {
		query = query.Where("user_profiles.partner_id = ?", *partnerID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Joins("JOIN users ON users.id = user_profiles.user_id"), page, pageSize).
		Preload("User").
		Order(orderUsers).
		Find(&profiles).Error
	return profiles, total, err
}
