package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityProject = "project"

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return translateError(entityProject, r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Preload(preloadProjectPath).Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, translateError(entityProject, err)
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return translateError(entityProject, r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error)
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityProject, &domain.Project{}, id)
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, clientID *uuid.UUID) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if clientID != nil {
		query = query.Where("projects.client_id = ?", *clientID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(projectPath(query), page, pageSize).
		Preload(preloadProjectPath).
		Order(orderProjects).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Project, error) {
	var projects []domain.Project
	query := whereAnyLike(projectPath(r.db.WithContext(ctx)), "projects", domain.Project{}.SearchFields(), LikePattern(searchQuery))
	err := query.Preload(preloadProjectPath).Order(orderProjects).Limit(limit).Find(&projects).Error
	return projects, err
}
