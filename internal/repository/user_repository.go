package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityUser = "user"

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return translateError(entityUser, r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(entityUser, err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, translateError(entityUser, err)
	}
	return &user, nil
}

// Upsert creates the user or refreshes the contact fields of an existing
// account with the same username. Empty values never overwrite stored ones.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	existing, err := r.GetByUsername(ctx, user.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return r.Create(ctx, user)
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if user.Email != "" {
		updates["email"] = user.Email
	}
	if user.FirstName != "" {
		updates["first_name"] = user.FirstName
	}
	if user.LastName != "" {
		updates["last_name"] = user.LastName
	}
	if len(updates) > 0 {
		// BeforeSave validates the model, which must be the stored user
		if err := r.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
			return translateError(entityUser, err)
		}
	}

	*user = *existing
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return translateError(entityUser, r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

// Delete removes the user with its profile; issue role links are cleared
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityUser, &domain.User{}, id)
}

func (r *UserRepository) List(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.User{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).Order(orderUsers).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.User, error) {
	var users []domain.User
	query := whereAnyLike(r.db.WithContext(ctx), "users", domain.User{}.SearchFields(), LikePattern(searchQuery))
	err := query.Order(orderUsers).Limit(limit).Find(&users).Error
	return users, err
}
