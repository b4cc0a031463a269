package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityEnvironment = "environment"

type EnvironmentRepository struct {
	db *gorm.DB
}

func NewEnvironmentRepository(db *gorm.DB) *EnvironmentRepository {
	return &EnvironmentRepository{db: db}
}

func (r *EnvironmentRepository) Create(ctx context.Context, env *domain.Environment) error {
	return translateError(entityEnvironment, r.db.WithContext(ctx).Omit(clause.Associations).Create(env).Error)
}

func (r *EnvironmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Environment, error) {
	var env domain.Environment
	err := r.db.WithContext(ctx).Preload(preloadEnvironmentPath).Where("id = ?", id).First(&env).Error
	if err != nil {
		return nil, translateError(entityEnvironment, err)
	}
	return &env, nil
}

func (r *EnvironmentRepository) Update(ctx context.Context, env *domain.Environment) error {
	return translateError(entityEnvironment, r.db.WithContext(ctx).Omit(clause.Associations).Save(env).Error)
}

// Delete removes the environment with its servers and resources; issues keep
// existing with their environment and resource links cleared
func (r *EnvironmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityEnvironment, &domain.Environment{}, id)
}

func (r *EnvironmentRepository) List(ctx context.Context, page, pageSize int, projectID *uuid.UUID) ([]domain.Environment, int64, error) {
	var envs []domain.Environment
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Environment{})
	if projectID != nil {
		query = query.Where("environments.project_id = ?", *projectID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(environmentPath(query), page, pageSize).
		Preload(preloadEnvironmentPath).
		Order(orderEnvironments).
		Find(&envs).Error
	return envs, total, err
}

func (r *EnvironmentRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Environment, error) {
	var envs []domain.Environment
	query := whereAnyLike(environmentPath(r.db.WithContext(ctx)), "environments", domain.Environment{}.SearchFields(), LikePattern(searchQuery))
	err := query.Preload(preloadEnvironmentPath).Order(orderEnvironments).Limit(limit).Find(&envs).Error
	return envs, err
}
