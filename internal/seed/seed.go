// Package seed loads YAML fixtures describing a partner hierarchy and creates
// the records through the services, so every write goes through the same
// validation as the REST API.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/app"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixture is the root of a seed document
type Fixture struct {
	Users    []UserFixture    `yaml:"users"`
	Partners []PartnerFixture `yaml:"partners"`
}

// UserFixture is matched on username, so loading the same user twice
// updates the existing account instead of failing
type UserFixture struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
	// Partner and Client are codes; the profile is linked once they exist
	Partner string `yaml:"partner"`
	Client  string `yaml:"client"`
}

type PartnerFixture struct {
	Name          string          `yaml:"name"`
	Code          string          `yaml:"code"`
	ContactPerson string          `yaml:"contactPerson"`
	ContactEmail  string          `yaml:"contactEmail"`
	Clients       []ClientFixture `yaml:"clients"`
}

type ClientFixture struct {
	Name          string           `yaml:"name"`
	Code          string           `yaml:"code"`
	ContactPerson string           `yaml:"contactPerson"`
	ContactEmail  string           `yaml:"contactEmail"`
	Projects      []ProjectFixture `yaml:"projects"`
}

type ProjectFixture struct {
	Name         string               `yaml:"name"`
	Code         string               `yaml:"code"`
	Description  string               `yaml:"description"`
	RepoURL      string               `yaml:"repoUrl"`
	Environments []EnvironmentFixture `yaml:"environments"`
	Issues       []IssueFixture       `yaml:"issues"`
}

type EnvironmentFixture struct {
	Name      string            `yaml:"name"`
	EnvType   string            `yaml:"envType"`
	BaseURL   string            `yaml:"baseUrl"`
	Notes     string            `yaml:"notes"`
	Servers   []ServerFixture   `yaml:"servers"`
	Resources []ResourceFixture `yaml:"resources"`
}

type ServerFixture struct {
	Name      string `yaml:"name"`
	IPAddress string `yaml:"ipAddress"`
	Provider  string `yaml:"provider"`
	Region    string `yaml:"region"`
	SSHUser   string `yaml:"sshUser"`
	SSHPort   int    `yaml:"sshPort"`
}

type ResourceFixture struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	Provider       string `yaml:"provider"`
	Identifier     string `yaml:"identifier"`
	ConnectionInfo string `yaml:"connectionInfo"`
	Critical       bool   `yaml:"critical"`
}

// IssueFixture refers to its environment and resource by name and to users
// by username. Dates are YYYY-MM-DD, hours are decimal strings.
type IssueFixture struct {
	Title          string            `yaml:"title"`
	Description    string            `yaml:"description"`
	Status         string            `yaml:"status"`
	Priority       string            `yaml:"priority"`
	ActivityType   string            `yaml:"activityType"`
	ActivityDate   string            `yaml:"activityDate"`
	DueDate        string            `yaml:"dueDate"`
	Environment    string            `yaml:"environment"`
	Resource       string            `yaml:"resource"`
	EstimateHours  string            `yaml:"estimateHours"`
	ActualHours    string            `yaml:"actualHours"`
	ProjectManager string            `yaml:"projectManager"`
	AssignedBy     string            `yaml:"assignedBy"`
	AssignedTo     string            `yaml:"assignedTo"`
	Activities     []ActivityFixture `yaml:"activities"`
}

type ActivityFixture struct {
	Date   string `yaml:"date"`
	Status string `yaml:"status"`
	Note   string `yaml:"note"`
	Hours  string `yaml:"hours"`
}

// Result counts the records a load created
type Result struct {
	Users        int `json:"users"`
	Profiles     int `json:"profiles"`
	Partners     int `json:"partners"`
	Clients      int `json:"clients"`
	Projects     int `json:"projects"`
	Environments int `json:"environments"`
	Servers      int `json:"servers"`
	Resources    int `json:"resources"`
	Issues       int `json:"issues"`
	Activities   int `json:"activities"`
}

// Parse decodes a fixture document, rejecting unknown keys
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// ParseFile reads and decodes a fixture file
func ParseFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type Loader struct {
	svc    *app.Services
	logger *zap.Logger
}

func NewLoader(svc *app.Services, logger *zap.Logger) *Loader {
	return &Loader{svc: svc, logger: logger}
}

// loadState tracks identities created so far so later records can refer to
// earlier ones by natural key
type loadState struct {
	users    map[string]uuid.UUID
	partners map[string]uuid.UUID
	clients  map[string]uuid.UUID
	result   Result
}

// Load creates the fixture's records. It stops at the first failure and
// returns the counts created up to that point; records already written stay.
func (l *Loader) Load(ctx context.Context, f *Fixture) (*Result, error) {
	st := &loadState{
		users:    make(map[string]uuid.UUID),
		partners: make(map[string]uuid.UUID),
		clients:  make(map[string]uuid.UUID),
	}

	for _, u := range f.Users {
		dto, err := l.svc.Users.Upsert(ctx, &domain.UserRequest{
			Username:  u.Username,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
		if err != nil {
			return &st.result, fmt.Errorf("user %q: %w", u.Username, err)
		}
		st.users[u.Username] = dto.ID
		st.result.Users++
	}

	for _, p := range f.Partners {
		if err := l.loadPartner(ctx, st, p); err != nil {
			return &st.result, err
		}
	}

	for _, u := range f.Users {
		if u.Role == "" && u.Partner == "" && u.Client == "" {
			continue
		}
		req := &domain.UserProfileRequest{UserID: st.users[u.Username], Role: u.Role}
		if u.Partner != "" {
			id, ok := st.partners[u.Partner]
			if !ok {
				return &st.result, fmt.Errorf("profile for %q: unknown partner code %q", u.Username, u.Partner)
			}
			req.PartnerID = &id
		}
		if u.Client != "" {
			id, ok := st.clients[u.Client]
			if !ok {
				return &st.result, fmt.Errorf("profile for %q: unknown client code %q", u.Username, u.Client)
			}
			req.ClientID = &id
		}
		if _, err := l.svc.Users.CreateProfile(ctx, req); err != nil {
			return &st.result, fmt.Errorf("profile for %q: %w", u.Username, err)
		}
		st.result.Profiles++
	}

	l.logger.Info("fixture loaded",
		zap.Int("partners", st.result.Partners),
		zap.Int("clients", st.result.Clients),
		zap.Int("projects", st.result.Projects),
		zap.Int("issues", st.result.Issues),
		zap.Int("activities", st.result.Activities))
	return &st.result, nil
}

func (l *Loader) loadPartner(ctx context.Context, st *loadState, p PartnerFixture) error {
	partner, err := l.svc.Partners.Create(ctx, &domain.PartnerRequest{
		Name:          p.Name,
		Code:          p.Code,
		ContactPerson: p.ContactPerson,
		ContactEmail:  p.ContactEmail,
	})
	if err != nil {
		return fmt.Errorf("partner %q: %w", p.Name, err)
	}
	st.partners[p.Code] = partner.ID
	st.result.Partners++

	for _, c := range p.Clients {
		client, err := l.svc.Clients.Create(ctx, &domain.ClientRequest{
			PartnerID:     partner.ID,
			Name:          c.Name,
			Code:          c.Code,
			ContactPerson: c.ContactPerson,
			ContactEmail:  c.ContactEmail,
		})
		if err != nil {
			return fmt.Errorf("client %q: %w", c.Name, err)
		}
		st.clients[c.Code] = client.ID
		st.result.Clients++

		for _, pr := range c.Projects {
			if err := l.loadProject(ctx, st, client.ID, pr); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) loadProject(ctx context.Context, st *loadState, clientID uuid.UUID, p ProjectFixture) error {
	project, err := l.svc.Projects.Create(ctx, &domain.ProjectRequest{
		ClientID:    clientID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		RepoURL:     p.RepoURL,
	})
	if err != nil {
		return fmt.Errorf("project %q: %w", p.Name, err)
	}
	st.result.Projects++

	envs := make(map[string]uuid.UUID, len(p.Environments))
	resources := make(map[string]uuid.UUID)

	for _, e := range p.Environments {
		env, err := l.svc.Environments.Create(ctx, &domain.EnvironmentRequest{
			ProjectID: project.ID,
			Name:      e.Name,
			EnvType:   domain.EnvType(e.EnvType),
			BaseURL:   e.BaseURL,
			Notes:     e.Notes,
		})
		if err != nil {
			return fmt.Errorf("environment %q of %q: %w", e.Name, p.Name, err)
		}
		envs[e.Name] = env.ID
		st.result.Environments++

		for _, s := range e.Servers {
			if _, err := l.svc.Servers.Create(ctx, &domain.ServerRequest{
				EnvironmentID: env.ID,
				Name:          s.Name,
				IPAddress:     s.IPAddress,
				Provider:      domain.ServerProvider(s.Provider),
				Region:        s.Region,
				SSHUser:       s.SSHUser,
				SSHPort:       s.SSHPort,
			}); err != nil {
				return fmt.Errorf("server %q: %w", s.Name, err)
			}
			st.result.Servers++
		}

		for _, r := range e.Resources {
			res, err := l.svc.Resources.Create(ctx, &domain.ResourceRequest{
				EnvironmentID:  env.ID,
				Name:           r.Name,
				ResourceType:   domain.ResourceType(r.Type),
				Provider:       r.Provider,
				Identifier:     r.Identifier,
				ConnectionInfo: r.ConnectionInfo,
				IsCritical:     r.Critical,
			})
			if err != nil {
				return fmt.Errorf("resource %q: %w", r.Name, err)
			}
			resources[r.Name] = res.ID
			st.result.Resources++
		}
	}

	for _, is := range p.Issues {
		if err := l.loadIssue(ctx, st, project.ID, envs, resources, is); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadIssue(ctx context.Context, st *loadState, projectID uuid.UUID, envs, resources map[string]uuid.UUID, is IssueFixture) error {
	wrap := func(err error) error { return fmt.Errorf("issue %q: %w", is.Title, err) }

	estimate, err := parseHours(is.EstimateHours)
	if err != nil {
		return wrap(err)
	}
	actual, err := parseHours(is.ActualHours)
	if err != nil {
		return wrap(err)
	}

	req := &domain.IssueRequest{
		ProjectID:     projectID,
		Title:         is.Title,
		Description:   is.Description,
		Status:        domain.IssueStatus(is.Status),
		Priority:      domain.IssuePriority(is.Priority),
		ActivityType:  is.ActivityType,
		ActivityDate:  is.ActivityDate,
		DueDate:       is.DueDate,
		EstimateHours: estimate,
		ActualHours:   actual,
	}
	if req.EnvironmentID, err = lookup("environment", envs, is.Environment); err != nil {
		return wrap(err)
	}
	if req.ResourceID, err = lookup("resource", resources, is.Resource); err != nil {
		return wrap(err)
	}
	if req.ProjectManagerID, err = lookup("user", st.users, is.ProjectManager); err != nil {
		return wrap(err)
	}
	if req.AssignedByID, err = lookup("user", st.users, is.AssignedBy); err != nil {
		return wrap(err)
	}
	if req.AssignedToID, err = lookup("user", st.users, is.AssignedTo); err != nil {
		return wrap(err)
	}

	issue, err := l.svc.Issues.Create(ctx, req)
	if err != nil {
		return wrap(err)
	}
	st.result.Issues++

	for _, a := range is.Activities {
		hours, err := parseHours(a.Hours)
		if err != nil {
			return wrap(err)
		}
		if _, err := l.svc.Activities.Create(ctx, &domain.InfraActivityRequest{
			IssueID:      issue.ID,
			ActivityDate: a.Date,
			Status:       a.Status,
			Note:         a.Note,
			HoursSpent:   hours,
		}); err != nil {
			return fmt.Errorf("activity %s of %q: %w", a.Date, is.Title, err)
		}
		st.result.Activities++
	}
	return nil
}

func lookup(kind string, ids map[string]uuid.UUID, name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	id, ok := ids[name]
	if !ok {
		return nil, fmt.Errorf("unknown %s %q", kind, name)
	}
	return &id, nil
}

func parseHours(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid hours %q", s)
	}
	return d, nil
}
