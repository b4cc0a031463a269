package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityActivity = "infra_activity"

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.InfraActivity) error {
	return translateError(entityActivity, r.db.WithContext(ctx).Omit(clause.Associations).Create(activity).Error)
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InfraActivity, error) {
	var activity domain.InfraActivity
	if err := r.db.WithContext(ctx).Preload("Issue").First(&activity, "id = ?", id).Error; err != nil {
		return nil, translateError(entityActivity, err)
	}
	return &activity, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity *domain.InfraActivity) error {
	return translateError(entityActivity, r.db.WithContext(ctx).Omit(clause.Associations).Save(activity).Error)
}

func (r *ActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityActivity, &domain.InfraActivity{}, id)
}

func (r *ActivityRepository) List(ctx context.Context, page, pageSize int, issueID *uuid.UUID) ([]domain.InfraActivity, int64, error) {
	var activities []domain.InfraActivity
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.InfraActivity{})
	if issueID != nil {
		query = query.Where("infra_activities.issue_id = ?", *issueID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).
		Preload("Issue").
		Order(orderActivities).
		Find(&activities).Error
	return activities, total, err
}

// ListByIssues groups the activities of the given issues, each group in default order
func (r *ActivityRepository) ListByIssues(ctx context.Context, issueIDs []uuid.UUID) (map[uuid.UUID][]domain.InfraActivity, error) {
	byIssue := make(map[uuid.UUID][]domain.InfraActivity, len(issueIDs))
	if len(issueIDs) == 0 {
		return byIssue, nil
	}

	var activities []domain.InfraActivity
	err := r.db.WithContext(ctx).
		Where("issue_id IN ?", issueIDs).
		Order(orderActivities).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	for _, a := range activities {
		byIssue[a.IssueID] = append(byIssue[a.IssueID], a)
	}
	return byIssue, nil
}

func (r *ActivityRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.InfraActivity, error) {
	var activities []domain.InfraActivity
	query := whereAnyLike(r.db.WithContext(ctx), "infra_activities", domain.InfraActivity{}.SearchFields(), LikePattern(searchQuery))
	err := query.Preload("Issue").Order(orderActivities).Limit(limit).Find(&activities).Error
	return activities, err
}
