package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs for API responses and requests

type PartnerDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	Active        bool      `json:"active"`
	Label         string    `json:"label"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
}

type ClientDTO struct {
	ID            uuid.UUID `json:"id"`
	PartnerID     uuid.UUID `json:"partnerId"`
	PartnerName   string    `json:"partnerName,omitempty"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	Active        bool      `json:"active"`
	Label         string    `json:"label"`
	CreatedAt     string    `json:"createdAt"`
}

type ProjectDTO struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"clientId"`
	ClientName  string    `json:"clientName,omitempty"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	RepoURL     string    `json:"repoUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	Label       string    `json:"label"`
	CreatedAt   string    `json:"createdAt"`
}

type EnvironmentDTO struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName,omitempty"`
	Name        string    `json:"name"`
	EnvType     EnvType   `json:"envType"`
	BaseURL     string    `json:"baseUrl,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsActive    bool      `json:"isActive"`
	Label       string    `json:"label"`
	CreatedAt   string    `json:"createdAt"`
}

type ServerDTO struct {
	ID            uuid.UUID      `json:"id"`
	EnvironmentID uuid.UUID      `json:"environmentId"`
	Name          string         `json:"name"`
	IPAddress     string         `json:"ipAddress"`
	Provider      ServerProvider `json:"provider"`
	Region        string         `json:"region,omitempty"`
	SSHUser       string         `json:"sshUser,omitempty"`
	SSHPort       int            `json:"sshPort"`
	IsActive      bool           `json:"isActive"`
	Label         string         `json:"label"`
	CreatedAt     string         `json:"createdAt"`
}

type ResourceDTO struct {
	ID             uuid.UUID    `json:"id"`
	EnvironmentID  uuid.UUID    `json:"environmentId"`
	Name           string       `json:"name"`
	ResourceType   ResourceType `json:"resourceType"`
	Provider       string       `json:"provider,omitempty"`
	Identifier     string       `json:"identifier,omitempty"`
	ConnectionInfo string       `json:"connectionInfo,omitempty"`
	IsCritical     bool         `json:"isCritical"`
	IsActive       bool         `json:"isActive"`
	Label          string       `json:"label"`
	CreatedAt      string       `json:"createdAt"`
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	FullName  string    `json:"fullName,omitempty"`
	IsActive  bool      `json:"isActive"`
	Label     string    `json:"label"`
	CreatedAt string    `json:"createdAt"`
}

type UserProfileDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Username  string     `json:"username,omitempty"`
	PartnerID *uuid.UUID `json:"partnerId,omitempty"`
	ClientID  *uuid.UUID `json:"clientId,omitempty"`
	Role      string     `json:"role,omitempty"`
	Label     string     `json:"label"`
	CreatedAt string     `json:"createdAt"`
}

// IssueDTO carries the live delay computed at read time
type IssueDTO struct {
	ID               uuid.UUID       `json:"id"`
	ProjectID        uuid.UUID       `json:"projectId"`
	EnvironmentID    *uuid.UUID      `json:"environmentId,omitempty"`
	ResourceID       *uuid.UUID      `json:"resourceId,omitempty"`
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Status           IssueStatus     `json:"status"`
	Priority         IssuePriority   `json:"priority"`
	ActivityType     string          `json:"activityType,omitempty"`
	ActivityDate     string          `json:"activityDate"`
	DueDate          string          `json:"dueDate,omitempty"`
	EstimateHours    decimal.Decimal `json:"estimateHours"`
	ActualHours      decimal.Decimal `json:"actualHours"`
	DelayDays        int             `json:"delayDays"`
	ProjectManagerID *uuid.UUID      `json:"projectManagerId,omitempty"`
	AssignedByID     *uuid.UUID      `json:"assignedById,omitempty"`
	AssignedToID     *uuid.UUID      `json:"assignedToId,omitempty"`
	Label            string          `json:"label"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

type InfraActivityDTO struct {
	ID           uuid.UUID       `json:"id"`
	IssueID      uuid.UUID       `json:"issueId"`
	ActivityDate string          `json:"activityDate"`
	Status       string          `json:"status,omitempty"`
	Note         string          `json:"note,omitempty"`
	HoursSpent   decimal.Decimal `json:"hoursSpent"`
	Label        string          `json:"label"`
	CreatedAt    string          `json:"createdAt"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PaginatedResponse wraps a page of list results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// SearchResultItem is a single hit of the global search
type SearchResultItem struct {
	Model string    `json:"model"`
	Label string    `json:"label"`
	ID    uuid.UUID `json:"id"`
	URL   string    `json:"url"`
}

// SearchResponse echoes the trimmed query with the combined hits
type SearchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
	Total   int                `json:"total"`
}

// Request DTOs. The same shape is used for create (POST) and replace (PUT).

type PartnerRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Code          string `json:"code" validate:"required,max=50,slug"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=200"`
	ContactEmail  string `json:"contactEmail,omitempty" validate:"omitempty,email,max=254"`
	Active        *bool  `json:"active,omitempty"`
}

type ClientRequest struct {
	PartnerID     uuid.UUID `json:"partnerId" validate:"required"`
	Name          string    `json:"name" validate:"required,max=200"`
	Code          string    `json:"code" validate:"required,max=50,slug"`
	ContactPerson string    `json:"contactPerson,omitempty" validate:"max=200"`
	ContactEmail  string    `json:"contactEmail,omitempty" validate:"omitempty,email,max=254"`
	Active        *bool     `json:"active,omitempty"`
}

type ProjectRequest struct {
	ClientID    uuid.UUID `json:"clientId" validate:"required"`
	Name        string    `json:"name" validate:"required,max=200"`
	Code        string    `json:"code" validate:"required,max=50,slug"`
	Description string    `json:"description,omitempty"`
	RepoURL     string    `json:"repoUrl,omitempty" validate:"omitempty,url,max=200"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

type EnvironmentRequest struct {
	ProjectID uuid.UUID `json:"projectId" validate:"required"`
	Name      string    `json:"name" validate:"required,max=100"`
	EnvType   EnvType   `json:"envType,omitempty" validate:"omitempty,oneof=dev staging uat prod other"`
	BaseURL   string    `json:"baseUrl,omitempty" validate:"omitempty,url,max=200"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  *bool     `json:"isActive,omitempty"`
}

type ServerRequest struct {
	EnvironmentID uuid.UUID      `json:"environmentId" validate:"required"`
	Name          string         `json:"name" validate:"required,max=200"`
	IPAddress     string         `json:"ipAddress" validate:"required,ip"`
	Provider      ServerProvider `json:"provider,omitempty" validate:"omitempty,oneof=aws azure gcp vps onprem other"`
	Region        string         `json:"region,omitempty" validate:"max=100"`
	SSHUser       string         `json:"sshUser,omitempty" validate:"max=100"`
	SSHPort       int            `json:"sshPort,omitempty" validate:"omitempty,gte=1,lte=65535"`
	IsActive      *bool          `json:"isActive,omitempty"`
}

type ResourceRequest struct {
	EnvironmentID  uuid.UUID    `json:"environmentId" validate:"required"`
	Name           string       `json:"name" validate:"required,max=200"`
	ResourceType   ResourceType `json:"resourceType,omitempty" validate:"omitempty,oneof=db bucket queue cache dns other"`
	Provider       string       `json:"provider,omitempty" validate:"max=100"`
	Identifier     string       `json:"identifier,omitempty" validate:"max=255"`
	ConnectionInfo string       `json:"connectionInfo,omitempty"`
	IsCritical     bool         `json:"isCritical"`
	IsActive       *bool        `json:"isActive,omitempty"`
}

type UserRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName string `json:"firstName,omitempty" validate:"max=150"`
	LastName  string `json:"lastName,omitempty" validate:"max=150"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

type UserProfileRequest struct {
	UserID    uuid.UUID  `json:"userId" validate:"required"`
	PartnerID *uuid.UUID `json:"partnerId,omitempty"`
	ClientID  *uuid.UUID `json:"clientId,omitempty"`
	Role      string     `json:"role,omitempty" validate:"max=100"`
}

type IssueRequest struct {
	ProjectID        uuid.UUID       `json:"projectId" validate:"required"`
	EnvironmentID    *uuid.UUID      `json:"environmentId,omitempty"`
	ResourceID       *uuid.UUID      `json:"resourceId,omitempty"`
	Title            string          `json:"title" validate:"required,max=255"`
	Description      string          `json:"description,omitempty"`
	Status           IssueStatus     `json:"status,omitempty" validate:"omitempty,oneof=open in_progress blocked done cancelled"`
	Priority         IssuePriority   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	ActivityType     string          `json:"activityType,omitempty" validate:"max=100"`
	ActivityDate     string          `json:"activityDate" validate:"required,datetime=2006-01-02"`
	DueDate          string          `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EstimateHours    decimal.Decimal `json:"estimateHours"`
	ActualHours      decimal.Decimal `json:"actualHours"`
	ProjectManagerID *uuid.UUID      `json:"projectManagerId,omitempty"`
	AssignedByID     *uuid.UUID      `json:"assignedById,omitempty"`
	AssignedToID     *uuid.UUID      `json:"assignedToId,omitempty"`
}

type InfraActivityRequest struct {
	IssueID      uuid.UUID       `json:"issueId" validate:"required"`
	ActivityDate string          `json:"activityDate" validate:"required,datetime=2006-01-02"`
	Status       string          `json:"status,omitempty" validate:"max=20"`
	Note         string          `json:"note,omitempty"`
	HoursSpent   decimal.Decimal `json:"hoursSpent"`
}
