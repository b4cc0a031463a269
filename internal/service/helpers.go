package service

import (
	"strings"
	"time"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/repository"
)

func newPage(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	page, pageSize = repository.ClampPage(page, pageSize)
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// boolOr returns the requested flag or def when the client left it out
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// optionalString maps an empty string to a NULL column
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func requiredDate(entity, field, value string) (time.Time, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.NewInvalidValueError(entity, field, value)
	}
	return d, nil
}

func optionalDate(entity, field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := requiredDate(entity, field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
