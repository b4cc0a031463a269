package repository

import (
	"strings"

	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// Joins that walk a record up the containment hierarchy. Listing and search
// order by the parent's path, so each level joins every ancestor.
const (
	joinClientPartner      = "JOIN partners ON partners.id = clients.partner_id"
	joinProjectClient      = "JOIN clients ON clients.id = projects.client_id"
	joinEnvironmentProject = "JOIN projects ON projects.id = environments.project_id"
	joinServerEnvironment  = "JOIN environments ON environments.id = servers.environment_id"
	joinResourceEnv        = "JOIN environments ON environments.id = resources.environment_id"
)

// Default listing orders
const (
	orderPartners     = "partners.name"
	orderClients      = orderPartners + ", clients.name"
	orderProjects     = orderClients + ", projects.name"
	orderEnvironments = orderProjects + ", environments.env_type, environments.name"
	orderServers      = orderEnvironments + ", servers.name"
	orderResources    = orderEnvironments + ", resources.resource_type, resources.name"
	orderUsers        = "users.username"
	orderIssues       = "issues.activity_date DESC, issues.created_at DESC"
	orderActivities   = "infra_activities.activity_date DESC, infra_activities.created_at DESC"
)

func clientPath(q *gorm.DB) *gorm.DB {
	return q.Joins(joinClientPartner)
}

func projectPath(q *gorm.DB) *gorm.DB {
	return clientPath(q.Joins(joinProjectClient))
}

func environmentPath(q *gorm.DB) *gorm.DB {
	return projectPath(q.Joins(joinEnvironmentProject))
}

// Preload chains needed to render display labels
const (
	preloadClientPath      = "Partner"
	preloadProjectPath     = "Client.Partner"
	preloadEnvironmentPath = "Project.Client.Partner"
)

// escapeLike makes the query a literal substring match
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// LikePattern builds an escaped %substring% pattern. Case folding happens in
// SQL so both sides go through the same lower().
func LikePattern(q string) string {
	return "%" + escapeLike(q) + "%"
}

// whereAnyLike OR-combines a case-insensitive LIKE over the table's columns
func whereAnyLike(q *gorm.DB, table string, columns []string, pattern string) *gorm.DB {
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, "LOWER("+table+"."+col+`) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, pattern)
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// ClampPage normalizes page and page size
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func paginate(q *gorm.DB, page, pageSize int) *gorm.DB {
	page, pageSize = ClampPage(page, pageSize)
	return q.Offset((page - 1) * pageSize).Limit(pageSize)
}
