package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityResource = "resource"

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	return translateError(entityResource, r.db.WithContext(ctx).Omit(clause.Associations).Create(resource).Error)
}

func (r *ResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	var resource domain.Resource
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, translateError(entityResource, err)
	}
	return &resource, nil
}

func (r *ResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	return translateError(entityResource, r.db.WithContext(ctx).Omit(clause.Associations).Save(resource).Error)
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityResource, &domain.Resource{}, id)
}

func (r *ResourceRepository) List(ctx context.Context, page, pageSize int, environmentID *uuid.UUID) ([]domain.Resource, int64, error) {
	var resources []domain.Resource
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Resource{})
	if environmentID != nil {
		query = query.Where("resources.environment_id = ?", *environmentID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(environmentPath(query.Joins(joinResourceEnv)), page, pageSize).
		Order(orderResources).
		Find(&resources).Error
	return resources, total, err
}

// ListByEnvironments returns the resources of each environment in creation order
func (r *ResourceRepository) ListByEnvironments(ctx context.Context, environmentIDs []uuid.UUID) (map[uuid.UUID][]domain.Resource, error) {
	byEnv := make(map[uuid.UUID][]domain.Resource, len(environmentIDs))
	if len(environmentIDs) == 0 {
		return byEnv, nil
	}

	var resources []domain.Resource
	err := r.db.WithContext(ctx).
		Where("environment_id IN ?", environmentIDs).
		Order("created_at ASC, id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}

	for _, res := range resources {
		byEnv[res.EnvironmentID] = append(byEnv[res.EnvironmentID], res)
	}
	return byEnv, nil
}

func (r *ResourceRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Resource, error) {
	var resources []domain.Resource
	query := environmentPath(r.db.WithContext(ctx).Joins(joinResourceEnv))
	query = whereAnyLike(query, "resources", domain.Resource{}.SearchFields(), LikePattern(searchQuery))
	err := query.Order(orderResources).Limit(limit).Find(&resources).Error
	return resources, err
}
