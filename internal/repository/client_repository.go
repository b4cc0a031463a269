package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityClient = "client"

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return translateError(entityClient, r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error)
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).Preload(preloadClientPath).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, translateError(entityClient, err)
	}
	return &client, nil
}

// GetByCode finds a client by its slug within a partner
func (r *ClientRepository) GetByCode(ctx context.Context, partnerID uuid.UUID, code string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).Preload(preloadClientPath).
		Where("partner_id = ? AND code = ?", partnerID, code).
		First(&client).Error
	if err != nil {
		return nil, translateError(entityClient, err)
	}
	return &client, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return translateError(entityClient, r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error)
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityClient, &domain.Client{}, id)
}

// List returns clients in partner-name order, optionally scoped to one partner
func (r *ClientRepository) List(ctx context.Context, page, pageSize int, partnerID *uuid.UUID) ([]domain.Client, int64, error) {
	var clients []domain.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Client{})
	if partnerID != nil {
		query = query.Where("clients.partner_id = ?", *partnerID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(clientPath(query), page, pageSize).
		Preload(preloadClientPath).
		Order(orderClients).
		Find(&clients).Error
	return clients, total, err
}

func (r *ClientRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Client, error) {
	var clients []domain.Client
	query := whereAnyLike(clientPath(r.db.WithContext(ctx)), "clients", domain.Client{}.SearchFields(), LikePattern(searchQuery))
	err := query.Preload(preloadClientPath).Order(orderClients).Limit(limit).Find(&clients).Error
	return clients, err
}
