package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToPartnerDTO converts Partner to PartnerDTO
func ToPartnerDTO(p *domain.Partner) domain.PartnerDTO {
	return domain.PartnerDTO{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		ContactPerson: p.ContactPerson,
		ContactEmail:  deref(p.ContactEmail),
		Active:        p.Active,
		Label:         p.DisplayLabel(),
		CreatedAt:     formatTimestamp(p.CreatedAt),
	}
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(c *domain.Client) domain.ClientDTO {
	dto := domain.ClientDTO{
		ID:            c.ID,
		PartnerID:     c.PartnerID,
		Name:          c.Name,
		Code:          c.Code,
		ContactPerson: c.ContactPerson,
		ContactEmail:  deref(c.ContactEmail),
		Active:        c.Active,
		Label:         c.DisplayLabel(),
		CreatedAt:     formatTimestamp(c.CreatedAt),
	}
	if c.Partner != nil {
		dto.PartnerName = c.Partner.Name
	}
	return dto
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(p *domain.Project) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		RepoURL:     deref(p.RepoURL),
		IsActive:    p.IsActive,
		Label:       p.DisplayLabel(),
		CreatedAt:   formatTimestamp(p.CreatedAt),
	}
	if p.Client != nil {
		dto.ClientName = p.Client.Name
	}
	return dto
}

// ToEnvironmentDTO converts Environment to EnvironmentDTO
func ToEnvironmentDTO(e *domain.Environment) domain.EnvironmentDTO {
	dto := domain.EnvironmentDTO{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		Name:      e.Name,
		EnvType:   e.EnvType,
		BaseURL:   deref(e.BaseURL),
		Notes:     e.Notes,
		IsActive:  e.IsActive,
		Label:     e.DisplayLabel(),
		CreatedAt: formatTimestamp(e.CreatedAt),
	}
	if e.Project != nil {
		dto.ProjectName = e.Project.Name
	}
	return dto
}

// ToServerDTO converts Server to ServerDTO
func ToServerDTO(s *domain.Server) domain.ServerDTO {
	return domain.ServerDTO{
		ID:            s.ID,
		EnvironmentID: s.EnvironmentID,
		Name:          s.Name,
		IPAddress:     s.IPAddress,
		Provider:      s.Provider,
		Region:        s.Region,
		SSHUser:       s.SSHUser,
		SSHPort:       s.SSHPort,
		IsActive:      s.IsActive,
		Label:         s.DisplayLabel(),
		CreatedAt:     formatTimestamp(s.CreatedAt),
	}
}

// ToResourceDTO converts Resource to ResourceDTO
func ToResourceDTO(r *domain.Resource) domain.ResourceDTO {
	return domain.ResourceDTO{
		ID:             r.ID,
		EnvironmentID:  r.EnvironmentID,
		Name:           r.Name,
		ResourceType:   r.ResourceType,
		Provider:       r.Provider,
		Identifier:     r.Identifier,
		ConnectionInfo: r.ConnectionInfo,
		IsCritical:     r.IsCritical,
		IsActive:       r.IsActive,
		Label:          r.DisplayLabel(),
		CreatedAt:      formatTimestamp(r.CreatedAt),
	}
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(u *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		IsActive:  u.IsActive,
		Label:     u.DisplayLabel(),
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}

// ToUserProfileDTO converts UserProfile to UserProfileDTO
func ToUserProfileDTO(p *domain.UserProfile) domain.UserProfileDTO {
	dto := domain.UserProfileDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		PartnerID: p.PartnerID,
		ClientID:  p.ClientID,
		Role:      p.Role,
		Label:     p.String(),
		CreatedAt: formatTimestamp(p.CreatedAt),
	}
	if p.User != nil {
		dto.Username = p.User.Username
	}
	return dto
}

// ToIssueDTO converts Issue to IssueDTO. The delay is computed against now on
// every call and never stored.
func ToIssueDTO(i *domain.Issue, now time.Time) domain.IssueDTO {
	return domain.IssueDTO{
		ID:               i.ID,
		ProjectID:        i.ProjectID,
		EnvironmentID:    i.EnvironmentID,
		ResourceID:       i.ResourceID,
		Title:            i.Title,
		Description:      i.Description,
		Status:           i.Status,
		Priority:         i.Priority,
		ActivityType:     i.ActivityType,
		ActivityDate:     formatDate(&i.ActivityDate),
		DueDate:          formatDate(i.DueDate),
		EstimateHours:    i.EstimateHours,
		ActualHours:      i.ActualHours,
		DelayDays:        i.DelayDays(now),
		ProjectManagerID: i.ProjectManagerID,
		AssignedByID:     i.AssignedByID,
		AssignedToID:     i.AssignedToID,
		Label:            i.DisplayLabel(),
		CreatedAt:        formatTimestamp(i.CreatedAt),
		UpdatedAt:        formatTimestamp(i.UpdatedAt),
	}
}

// ToInfraActivityDTO converts InfraActivity to InfraActivityDTO
func ToInfraActivityDTO(a *domain.InfraActivity) domain.InfraActivityDTO {
	return domain.InfraActivityDTO{
		ID:           a.ID,
		IssueID:      a.IssueID,
		ActivityDate: formatDate(&a.ActivityDate),
		Status:       a.Status,
		Note:         a.Note,
		HoursSpent:   a.HoursSpent,
		Label:        a.DisplayLabel(),
		CreatedAt:    formatTimestamp(a.CreatedAt),
	}
}

// ToSearchResultItem converts a search hit to its wire form
func ToSearchResultItem(model string, id uuid.UUID, s domain.Searchable) domain.SearchResultItem {
	return domain.SearchResultItem{
		Model: model,
		Label: s.DisplayLabel(),
		ID:    id,
		URL:   s.Reference(),
	}
}
