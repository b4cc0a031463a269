package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityServer = "server"

type ServerRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) *ServerRepository {
	return &ServerRepository{db: db}
}

func (r *ServerRepository) Create(ctx context.Context, server *domain.Server) error {
	return translateError(entityServer, r.db.WithContext(ctx).Omit(clause.Associations).Create(server).Error)
}

func (r *ServerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Server, error) {
	var server domain.Server
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&server).Error; err != nil {
		return nil, translateError(entityServer, err)
	}
	return &server, nil
}

func (r *ServerRepository) Update(ctx context.Context, server *domain.Server) error {
	return translateError(entityServer, r.db.WithContext(ctx).Omit(clause.Associations).Save(server).Error)
}

func (r *ServerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityServer, &domain.Server{}, id)
}

func (r *ServerRepository) List(ctx context.Context, page, pageSize int, environmentID *uuid.UUID) ([]domain.Server, int64, error) {
	var servers []domain.Server
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Server{})
	if environmentID != nil {
		query = query.Where("servers.environment_id = ?", *environmentID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(environmentPath(query.Joins(joinServerEnvironment)), page, pageSize).
		Order(orderServers).
		Find(&servers).Error
	return servers, total, err
}

func (r *ServerRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Server, error) {
	var servers []domain.Server
	query := environmentPath(r.db.WithContext(ctx).Joins(joinServerEnvironment))
	query = whereAnyLike(query, "servers", domain.Server{}.SearchFields(), LikePattern(searchQuery))
	err := query.Order(orderServers).Limit(limit).Find(&servers).Error
	return servers, err
}
