package domain

import (
	"github.com/shopspring/decimal"
)

// ExportFilename is the attachment name of the infra data export
const ExportFilename = "infra_desk_export.csv"

// ExportUpdatedLayout formats the issue's last-modified time
const ExportUpdatedLayout = "2006-01-02 15:04"

// ExportHeader is the fixed header row of the infra data export
var ExportHeader = []string{
	"Partner",
	"Client",
	"Project",
	"Environment",
	"Resource",
	"Issue Title",
	"Status",
	"Updated Date",
	"Handled By",
	"Estimated Hour",
	"Actual Hour",
}

// ActivityExportFields holds the per-activity export columns. The activity
// schema has no handled-by or hour estimate columns, so these stay nil.
type ActivityExportFields struct {
	HandledBy      *User
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
}

// ExportFields returns the optional export columns available on the activity
func (a *InfraActivity) ExportFields() ActivityExportFields {
	return ActivityExportFields{}
}

// Complete reports whether every optional column is present
func (f ActivityExportFields) Complete() bool {
	return f.HandledBy != nil && f.EstimatedHours != nil && f.ActualHours != nil
}

// ExportRow is one flattened Issue x Activity line
type ExportRow struct {
	Partner     string
	Client      string
	Project     string
	Environment string
	Resources   string
	IssueTitle  string
	Status      string
	UpdatedDate string
	ActivityExportFields
}

// Record renders the row in header column order, blank for absent optional fields
func (r ExportRow) Record() []string {
	handledBy := ""
	if r.HandledBy != nil {
		handledBy = r.HandledBy.FullName()
		if handledBy == "" {
			handledBy = r.HandledBy.Username
		}
	}
	return []string{
		r.Partner,
		r.Client,
		r.Project,
		r.Environment,
		r.Resources,
		r.IssueTitle,
		r.Status,
		r.UpdatedDate,
		handledBy,
		decimalOrBlank(r.EstimatedHours),
		decimalOrBlank(r.ActualHours),
	}
}

func decimalOrBlank(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
