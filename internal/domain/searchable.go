package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Searchable is implemented by every record type the global search scans
type Searchable interface {
	// SearchFields lists the columns matched by a free-text query
	SearchFields() []string
	// DisplayLabel is the record's canonical human-readable form
	DisplayLabel() string
	// Reference is the API path of the record's detail view
	Reference() string
}

// Collection names used in API paths
const (
	CollectionPartners     = "partners"
	CollectionClients      = "clients"
	CollectionProjects     = "projects"
	CollectionEnvironments = "environments"
	CollectionServers      = "servers"
	CollectionResources    = "resources"
	CollectionUsers        = "users"
	CollectionProfiles     = "profiles"
	CollectionIssues       = "issues"
	CollectionActivities   = "activities"
)

// ReferenceFor builds the API detail path for a record
func ReferenceFor(collection string, id uuid.UUID) string {
	return fmt.Sprintf("%s/%s/%s", APIBasePath, collection, id)
}

// SearchFields lists the partner columns matched by global search
func (Partner) SearchFields() []string {
	return []string{"name", "code", "contact_person", "contact_email"}
}

// DisplayLabel is the partner label shown in search hits
func (p *Partner) DisplayLabel() string { return p.String() }

// Reference is the API path of the partner
func (p *Partner) Reference() string { return ReferenceFor(CollectionPartners, p.ID) }

// SearchFields lists the client columns matched by global search
func (Client) SearchFields() []string {
	return []string{"name", "code", "contact_person", "contact_email"}
}

// DisplayLabel is the client label shown in search hits
func (c *Client) DisplayLabel() string { return c.String() }

// Reference is the API path of the client
func (c *Client) Reference() string { return ReferenceFor(CollectionClients, c.ID) }

// SearchFields lists the project columns matched by global search
func (Project) SearchFields() []string {
	return []string{"name", "code", "description"}
}

// DisplayLabel is the project label shown in search hits
func (p *Project) DisplayLabel() string { return p.String() }

// Reference is the API path of the project
func (p *Project) Reference() string { return ReferenceFor(CollectionProjects, p.ID) }

// SearchFields lists the environment columns matched by global search
func (Environment) SearchFields() []string {
	return []string{"name", "base_url", "notes"}
}

// DisplayLabel is the environment label shown in search hits
func (e *Environment) DisplayLabel() string { return e.String() }

// Reference is the API path of the environment
func (e *Environment) Reference() string { return ReferenceFor(CollectionEnvironments, e.ID) }

// SearchFields lists the server columns matched by global search
func (Server) SearchFields() []string {
	return []string{"name", "ip_address", "region"}
}

// DisplayLabel is the server label shown in search hits
func (s *Server) DisplayLabel() string { return s.String() }

// Reference is the API path of the server
func (s *Server) Reference() string { return ReferenceFor(CollectionServers, s.ID) }

// SearchFields lists the resource columns matched by global search
func (Resource) SearchFields() []string {
	return []string{"name", "resource_type", "provider", "identifier", "connection_info"}
}

// DisplayLabel is the resource label shown in search hits
func (r *Resource) DisplayLabel() string { return r.String() }

// Reference is the API path of the resource
func (r *Resource) Reference() string { return ReferenceFor(CollectionResources, r.ID) }

// SearchFields lists the issue columns matched by global search
func (Issue) SearchFields() []string {
	return []string{"title", "description", "activity_type"}
}

// DisplayLabel is the issue label shown in search hits
func (i *Issue) DisplayLabel() string { return i.String() }

// Reference is the API path of the issue
func (i *Issue) Reference() string { return ReferenceFor(CollectionIssues, i.ID) }

// SearchFields lists the activity columns matched by global search
func (InfraActivity) SearchFields() []string {
	return []string{"note", "status"}
}

// DisplayLabel is the activity label shown in search hits
func (a *InfraActivity) DisplayLabel() string { return a.String() }

// Reference is the API path of the activity
func (a *InfraActivity) Reference() string { return ReferenceFor(CollectionActivities, a.ID) }

// SearchFields lists the user columns matched by global search
func (User) SearchFields() []string {
	return []string{"username", "email", "first_name", "last_name"}
}

// DisplayLabel is the user label shown in search hits
func (u *User) DisplayLabel() string { return u.String() }

// Reference is the API path of the user
func (u *User) Reference() string { return ReferenceFor(CollectionUsers, u.ID) }
