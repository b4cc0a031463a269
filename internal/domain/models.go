package domain

import (
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// APIBasePath is the prefix used when building record references
const APIBasePath = "/api/v1"

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

// BeforeCreate assigns a new identity when the caller did not provide one
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RecordID returns the record's identity
func (m *BaseModel) RecordID() uuid.UUID {
	return m.ID
}

// EnvType represents the deployment stage of an environment
type EnvType string

const (
	EnvTypeDev     EnvType = "dev"
	EnvTypeStaging EnvType = "staging"
	EnvTypeUAT     EnvType = "uat"
	EnvTypeProd    EnvType = "prod"
	EnvTypeOther   EnvType = "other"
)

// EnvTypeValues lists the allowed env_type values
var EnvTypeValues = []string{"dev", "staging", "uat", "prod", "other"}

// IsValid checks if the EnvType is a valid enum value
func (e EnvType) IsValid() bool {
	switch e {
	case EnvTypeDev, EnvTypeStaging, EnvTypeUAT, EnvTypeProd, EnvTypeOther:
		return true
	}
	return false
}

// ServerProvider represents where a server is hosted
type ServerProvider string

const (
	ProviderAWS    ServerProvider = "aws"
	ProviderAzure  ServerProvider = "azure"
	ProviderGCP    ServerProvider = "gcp"
	ProviderVPS    ServerProvider = "vps"
	ProviderOnPrem ServerProvider = "onprem"
	ProviderOther  ServerProvider = "other"
)

// ServerProviderValues lists the allowed provider values
var ServerProviderValues = []string{"aws", "azure", "gcp", "vps", "onprem", "other"}

// IsValid checks if the ServerProvider is a valid enum value
func (p ServerProvider) IsValid() bool {
	switch p {
	case ProviderAWS, ProviderAzure, ProviderGCP, ProviderVPS, ProviderOnPrem, ProviderOther:
		return true
	}
	return false
}

// ResourceType classifies non-compute infrastructure
type ResourceType string

const (
	ResourceTypeDB     ResourceType = "db"
	ResourceTypeBucket ResourceType = "bucket"
	ResourceTypeQueue  ResourceType = "queue"
	ResourceTypeCache  ResourceType = "cache"
	ResourceTypeDNS    ResourceType = "dns"
	ResourceTypeOther  ResourceType = "other"
)

// ResourceTypeValues lists the allowed resource_type values
var ResourceTypeValues = []string{"db", "bucket", "queue", "cache", "dns", "other"}

// IsValid checks if the ResourceType is a valid enum value
func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceTypeDB, ResourceTypeBucket, ResourceTypeQueue, ResourceTypeCache, ResourceTypeDNS, ResourceTypeOther:
		return true
	}
	return false
}

// IssueStatus represents the workflow state of an issue
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in_progress"
	IssueStatusBlocked    IssueStatus = "blocked"
	IssueStatusDone       IssueStatus = "done"
	IssueStatusCancelled  IssueStatus = "cancelled"
)

// IssueStatusValues lists the allowed issue status values
var IssueStatusValues = []string{"open", "in_progress", "blocked", "done", "cancelled"}

// IsValid checks if the IssueStatus is a valid enum value
func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusBlocked, IssueStatusDone, IssueStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the issue no longer accrues delay against today
func (s IssueStatus) IsTerminal() bool {
	return s == IssueStatusDone || s == IssueStatusCancelled
}

// IssuePriority represents the urgency of an issue
type IssuePriority string

const (
	IssuePriorityLow      IssuePriority = "low"
	IssuePriorityMedium   IssuePriority = "medium"
	IssuePriorityHigh     IssuePriority = "high"
	IssuePriorityCritical IssuePriority = "critical"
)

// IssuePriorityValues lists the allowed priority values
var IssuePriorityValues = []string{"low", "medium", "high", "critical"}

// IsValid checks if the IssuePriority is a valid enum value
func (p IssuePriority) IsValid() bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityCritical:
		return true
	}
	return false
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// MaxHours is the largest value a five-digit, two-decimal hours column can hold
var MaxHours = decimal.RequireFromString("999.99")

// Partner is a top-level company the desk consults for (e.g. Kamsoft, Kilowott)
type Partner struct {
	BaseModel
	Name          string  `gorm:"type:varchar(200);not null;uniqueIndex:idx_partners_name"`
	Code          string  `gorm:"type:varchar(50);not null;uniqueIndex:idx_partners_code"`
	ContactPerson string  `gorm:"type:varchar(200);column:contact_person"`
	ContactEmail  *string `gorm:"type:varchar(254);column:contact_email"`
	Active        bool    `gorm:"not null"`
}

func (p *Partner) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// Validate checks field-level invariants
func (p *Partner) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewInvalidValueError("partner", "name", p.Name)
	}
	if !slugPattern.MatchString(p.Code) {
		return NewInvalidValueError("partner", "code", p.Code)
	}
	return nil
}

func (p *Partner) String() string {
	return p.Name
}

// Client is an end customer managed under a Partner
type Client struct {
	BaseModel
	PartnerID     uuid.UUID `gorm:"type:uuid;not null;column:partner_id;uniqueIndex:idx_clients_partner_code,priority:1"`
	Partner       *Partner  `gorm:"foreignKey:PartnerID;constraint:OnDelete:CASCADE"`
	Name          string    `gorm:"type:varchar(200);not null"`
	Code          string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_clients_partner_code,priority:2"`
	ContactPerson string    `gorm:"type:varchar(200);column:contact_person"`
	ContactEmail  *string   `gorm:"type:varchar(254);column:contact_email"`
	Active        bool      `gorm:"not null"`
}

func (c *Client) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}

// Validate checks field-level invariants
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewInvalidValueError("client", "name", c.Name)
	}
	if !slugPattern.MatchString(c.Code) {
		return NewInvalidValueError("client", "code", c.Code)
	}
	return nil
}

func (c *Client) String() string {
	return joinLabel(partnerName(c.Partner), c.Name)
}

// Project is a body of infrastructure work for a Client
type Project struct {
	BaseModel
	ClientID    uuid.UUID `gorm:"type:uuid;not null;column:client_id;uniqueIndex:idx_projects_client_code,priority:1"`
	Client      *Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_projects_client_code,priority:2"`
	Description string    `gorm:"type:text"`
	RepoURL     *string   `gorm:"type:varchar(200);column:repo_url"`
	IsActive    bool      `gorm:"not null;column:is_active"`
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// Validate checks field-level invariants
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewInvalidValueError("project", "name", p.Name)
	}
	if !slugPattern.MatchString(p.Code) {
		return NewInvalidValueError("project", "code", p.Code)
	}
	return nil
}

func (p *Project) String() string {
	if p.Client == nil {
		return joinLabel("", p.Name)
	}
	return joinLabel(p.Client.String(), p.Name)
}

// Environment is a deployment stage of a Project
type Environment struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;column:project_id;uniqueIndex:idx_environments_project_name,priority:1"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_environments_project_name,priority:2"`
	EnvType   EnvType   `gorm:"type:varchar(20);not null;column:env_type"`
	BaseURL   *string   `gorm:"type:varchar(200);column:base_url"`
	Notes     string    `gorm:"type:text"`
	IsActive  bool      `gorm:"not null;column:is_active"`
}

func (e *Environment) BeforeSave(tx *gorm.DB) error {
	if e.EnvType == "" {
		e.EnvType = EnvTypeDev
	}
	return e.Validate()
}

// Validate checks field-level invariants
func (e *Environment) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return NewInvalidValueError("environment", "name", e.Name)
	}
	if !e.EnvType.IsValid() {
		return NewInvalidValueError("environment", "env_type", string(e.EnvType), EnvTypeValues...)
	}
	return nil
}

func (e *Environment) String() string {
	project := ""
	if e.Project != nil {
		project = e.Project.String()
	}
	return fmt.Sprintf("%s (%s)", joinLabel(project, e.Name), e.EnvType)
}

// Server is a compute host within an Environment
type Server struct {
	BaseModel
	EnvironmentID uuid.UUID      `gorm:"type:uuid;not null;column:environment_id;index"`
	Environment   *Environment   `gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`
	Name          string         `gorm:"type:varchar(200);not null"`
	IPAddress     string         `gorm:"type:varchar(39);not null;column:ip_address"`
	Provider      ServerProvider `gorm:"type:varchar(20);not null"`
	Region        string         `gorm:"type:varchar(100)"`
	SSHUser       string         `gorm:"type:varchar(100);column:ssh_user"`
	SSHPort       int            `gorm:"not null;column:ssh_port"`
	IsActive      bool           `gorm:"not null;column:is_active"`
}

// DefaultSSHPort is used when a server is saved without a port
const DefaultSSHPort = 22

func (s *Server) BeforeSave(tx *gorm.DB) error {
	if s.Provider == "" {
		s.Provider = ProviderOther
	}
	if s.SSHPort == 0 {
		s.SSHPort = DefaultSSHPort
	}
	return s.Validate()
}

// Validate checks field-level invariants
func (s *Server) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return NewInvalidValueError("server", "name", s.Name)
	}
	if net.ParseIP(s.IPAddress) == nil {
		return NewInvalidValueError("server", "ip_address", s.IPAddress)
	}
	if !s.Provider.IsValid() {
		return NewInvalidValueError("server", "provider", string(s.Provider), ServerProviderValues...)
	}
	if s.SSHPort < 1 || s.SSHPort > 65535 {
		return NewInvalidValueError("server", "ssh_port", fmt.Sprint(s.SSHPort))
	}
	return nil
}

func (s *Server) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.IPAddress)
}

// Resource is a non-compute infrastructure dependency within an Environment
type Resource struct {
	BaseModel
	EnvironmentID  uuid.UUID    `gorm:"type:uuid;not null;column:environment_id;index"`
	Environment    *Environment `gorm:"foreignKey:EnvironmentID;constraint:OnDelete:CASCADE"`
	Name           string       `gorm:"type:varchar(200);not null"`
	ResourceType   ResourceType `gorm:"type:varchar(20);not null;column:resource_type"`
	Provider       string       `gorm:"type:varchar(100)"`
	Identifier     string       `gorm:"type:varchar(255)"`
	ConnectionInfo string       `gorm:"type:text;column:connection_info"`
	IsCritical     bool         `gorm:"not null;column:is_critical"`
	IsActive       bool         `gorm:"not null;column:is_active"`
}

func (r *Resource) BeforeSave(tx *gorm.DB) error {
	if r.ResourceType == "" {
		r.ResourceType = ResourceTypeOther
	}
	return r.Validate()
}

// Validate checks field-level invariants
func (r *Resource) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewInvalidValueError("resource", "name", r.Name)
	}
	if !r.ResourceType.IsValid() {
		return NewInvalidValueError("resource", "resource_type", string(r.ResourceType), ResourceTypeValues...)
	}
	return nil
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.ResourceType)
}

// User is a staff account that issues can be assigned to
type User struct {
	BaseModel
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username"`
	Email     string `gorm:"type:varchar(254)"`
	FirstName string `gorm:"type:varchar(150);column:first_name"`
	LastName  string `gorm:"type:varchar(150);column:last_name"`
	IsActive  bool   `gorm:"not null;column:is_active"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(u.Username) == "" {
		return NewInvalidValueError("user", "username", u.Username)
	}
	return nil
}

// FullName returns first and last name, or empty if neither is set
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) String() string {
	return fmt.Sprintf("%s (%s)", u.Username, u.Email)
}

// UserProfile maps a user to a default partner/client and role
type UserProfile struct {
	BaseModel
	UserID    uuid.UUID  `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_user_profiles_user"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PartnerID *uuid.UUID `gorm:"type:uuid;column:partner_id"`
	Partner   *Partner   `gorm:"foreignKey:PartnerID;constraint:OnDelete:SET NULL"`
	ClientID  *uuid.UUID `gorm:"type:uuid;column:client_id"`
	Client    *Client    `gorm:"foreignKey:ClientID;constraint:OnDelete:SET NULL"`
	Role      string     `gorm:"type:varchar(100)"`
}

func (p *UserProfile) String() string {
	username := ""
	if p.User != nil {
		username = p.User.Username
	}
	role := p.Role
	if role == "" {
		role = "No role"
	}
	return fmt.Sprintf("%s - %s", username, role)
}

// Issue is a trackable unit of work tied to a Project
type Issue struct {
	BaseModel
	ProjectID        uuid.UUID       `gorm:"type:uuid;not null;column:project_id;index"`
	Project          *Project        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	EnvironmentID    *uuid.UUID      `gorm:"type:uuid;column:environment_id;index"`
	Environment      *Environment    `gorm:"foreignKey:EnvironmentID;constraint:OnDelete:SET NULL"`
	ResourceID       *uuid.UUID      `gorm:"type:uuid;column:resource_id"`
	Resource         *Resource       `gorm:"foreignKey:ResourceID;constraint:OnDelete:SET NULL"`
	Title            string          `gorm:"type:varchar(255);not null"`
	Description      string          `gorm:"type:text"`
	Status           IssueStatus     `gorm:"type:varchar(20);not null;index"`
	Priority         IssuePriority   `gorm:"type:varchar(20);not null"`
	ActivityType     string          `gorm:"type:varchar(100);column:activity_type"`
	ActivityDate     time.Time       `gorm:"type:date;not null;column:activity_date;index"`
	DueDate          *time.Time      `gorm:"type:date;column:due_date"`
	EstimateHours    decimal.Decimal `gorm:"type:numeric(5,2);not null;column:estimate_hours"`
	ActualHours      decimal.Decimal `gorm:"type:numeric(5,2);not null;column:actual_hours"`
	ProjectManagerID *uuid.UUID      `gorm:"type:uuid;column:project_manager_id"`
	ProjectManager   *User           `gorm:"foreignKey:ProjectManagerID;constraint:OnDelete:SET NULL"`
	AssignedByID     *uuid.UUID      `gorm:"type:uuid;column:assigned_by_id"`
	AssignedBy       *User           `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL"`
	AssignedToID     *uuid.UUID      `gorm:"type:uuid;column:assigned_to_id"`
	AssignedTo       *User           `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime"`
}

func (i *Issue) BeforeSave(tx *gorm.DB) error {
	if i.Status == "" {
		i.Status = IssueStatusOpen
	}
	if i.Priority == "" {
		i.Priority = IssuePriorityMedium
	}
	return i.Validate()
}

// Validate checks field-level invariants
func (i *Issue) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return NewInvalidValueError("issue", "title", i.Title)
	}
	if !i.Status.IsValid() {
		return NewInvalidValueError("issue", "status", string(i.Status), IssueStatusValues...)
	}
	if !i.Priority.IsValid() {
		return NewInvalidValueError("issue", "priority", string(i.Priority), IssuePriorityValues...)
	}
	if i.ActivityDate.IsZero() {
		return NewInvalidValueError("issue", "activity_date", "")
	}
	if err := ValidateHours("issue", "estimate_hours", i.EstimateHours); err != nil {
		return err
	}
	return ValidateHours("issue", "actual_hours", i.ActualHours)
}

// DelayDays returns the live schedule slippage of the issue as of now
func (i *Issue) DelayDays(now time.Time) int {
	return DelayDays(i.DueDate, i.ActivityDate, i.Status, now)
}

func (i *Issue) String() string {
	project := ""
	if i.Project != nil {
		project = i.Project.String()
	}
	return fmt.Sprintf("%s - %s", project, i.Title)
}

// InfraActivity is a dated work log entry recorded against an Issue
type InfraActivity struct {
	BaseModel
	IssueID      uuid.UUID       `gorm:"type:uuid;not null;column:issue_id;index"`
	Issue        *Issue          `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE"`
	ActivityDate time.Time       `gorm:"type:date;not null;column:activity_date;index"`
	Status       string          `gorm:"type:varchar(20)"`
	Note         string          `gorm:"type:text"`
	HoursSpent   decimal.Decimal `gorm:"type:numeric(5,2);not null;column:hours_spent"`
}

// TableName keeps the plural form used by the migrations
func (InfraActivity) TableName() string {
	return "infra_activities"
}

func (a *InfraActivity) BeforeSave(tx *gorm.DB) error {
	return a.Validate()
}

// Validate checks field-level invariants
func (a *InfraActivity) Validate() error {
	if a.ActivityDate.IsZero() {
		return NewInvalidValueError("infra_activity", "activity_date", "")
	}
	if len(a.Status) > 20 {
		return NewInvalidValueError("infra_activity", "status", a.Status)
	}
	return ValidateHours("infra_activity", "hours_spent", a.HoursSpent)
}

func (a *InfraActivity) String() string {
	title := ""
	if a.Issue != nil {
		title = a.Issue.Title
	}
	return fmt.Sprintf("%s - %s", a.ActivityDate.Format(DateLayout), title)
}

// ValidateHours enforces the non-negative, two-decimal, five-digit hours contract
func ValidateHours(entity, field string, h decimal.Decimal) error {
	if h.IsNegative() || h.GreaterThan(MaxHours) || !h.Equal(h.Round(2)) {
		return NewInvalidValueError(entity, field, h.String())
	}
	return nil
}

func partnerName(p *Partner) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func joinLabel(parent, name string) string {
	return parent + " / " + name
}
