package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityIssue = "issue"

// preloadIssueProject resolves the label and export path of an issue
const preloadIssueProject = "Project.Client.Partner"

// IssueFilter narrows issue listings
type IssueFilter struct {
	ProjectID     *uuid.UUID
	EnvironmentID *uuid.UUID
	Status        *domain.IssueStatus
	AssignedToID  *uuid.UUID
}

func (f IssueFilter) apply(q *gorm.DB) *gorm.DB {
	if f.ProjectID != nil {
		q = q.Where("issues.project_id = ?", *f.ProjectID)
	}
	if f.EnvironmentID != nil {
		q = q.Where("issues.environment_id = ?", *f.EnvironmentID)
	}
	if f.Status != nil {
		q = q.Where("issues.status = ?", *f.Status)
	}
	if f.AssignedToID != nil {
		q = q.Where("issues.assigned_to_id = ?", *f.AssignedToID)
	}
	return q
}

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	return translateError(entityIssue, r.db.WithContext(ctx).Omit(clause.Associations).Create(issue).Error)
}

func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	var issue domain.Issue
	err := r.db.WithContext(ctx).Preload(preloadIssueProject).First(&issue, "id = ?", id).Error
	if err != nil {
		return nil, translateError(entityIssue, err)
	}
	return &issue, nil
}

// Update saves the issue and refreshes updated_at
func (r *IssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	return translateError(entityIssue, r.db.WithContext(ctx).Omit(clause.Associations).Save(issue).Error)
}

func (r *IssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), entityIssue, &domain.Issue{}, id)
}

func (r *IssueRepository) List(ctx context.Context, page, pageSize int, filter IssueFilter) ([]domain.Issue, int64, error) {
	var issues []domain.Issue
	var total int64

	query := filter.apply(r.db.WithContext(ctx).Model(&domain.Issue{}))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).
		Preload(preloadIssueProject).
		Order(orderIssues).
		Find(&issues).Error
	return issues, total, err
}

// FindInBatches walks every issue in default order, calling fn per batch with
// the project path and environment preloaded
func (r *IssueRepository) FindInBatches(ctx context.Context, batchSize int, fn func(batch []domain.Issue) error) error {
	if batchSize < 1 {
		batchSize = 500
	}

	offset := 0
	for {
		var batch []domain.Issue
		err := r.db.WithContext(ctx).
			Preload(preloadIssueProject).
			Preload("Environment").
			Order(orderIssues + ", issues.id").
			Offset(offset).
			Limit(batchSize).
			Find(&batch).Error
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < batchSize {
			return nil
		}
		offset += len(batch)
	}
}

func (r *IssueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Issue{}).Count(&count).Error
	return count, err
}

func (r *IssueRepository) Search(ctx context.Context, searchQuery string, limit int) ([]domain.Issue, error) {
	var issues []domain.Issue
	query := whereAnyLike(r.db.WithContext(ctx), "issues", domain.Issue{}.SearchFields(), LikePattern(searchQuery))
	err := query.Preload(preloadIssueProject).Order(orderIssues).Limit(limit).Find(&issues).Error
	return issues, err
}
