package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValidation(t *testing.T) {
	assert.True(t, EnvTypeUAT.IsValid())
	assert.False(t, EnvType("qa").IsValid())
	assert.True(t, ProviderOnPrem.IsValid())
	assert.False(t, ServerProvider("hetzner").IsValid())
	assert.True(t, ResourceTypeDNS.IsValid())
	assert.False(t, ResourceType("lambda").IsValid())
	assert.True(t, IssueStatusBlocked.IsValid())
	assert.False(t, IssueStatus("closed").IsValid())
	assert.True(t, IssuePriorityCritical.IsValid())
	assert.False(t, IssuePriority("urgent").IsValid())
}

func TestEnvironment_BeforeSaveDefaultsAndRejects(t *testing.T) {
	env := &Environment{Name: "Prod EU"}
	require.NoError(t, env.BeforeSave(nil))
	assert.Equal(t, EnvTypeDev, env.EnvType)

	env.EnvType = "qa"
	err := env.BeforeSave(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))

	var invalid *InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "env_type", invalid.Field)
	assert.Equal(t, EnvTypeValues, invalid.Allowed)
}

func TestServer_BeforeSave(t *testing.T) {
	s := &Server{Name: "web-1", IPAddress: "10.0.0.5"}
	require.NoError(t, s.BeforeSave(nil))
	assert.Equal(t, DefaultSSHPort, s.SSHPort)
	assert.Equal(t, ProviderOther, s.Provider)

	s.IPAddress = "2001:db8::1"
	assert.NoError(t, s.BeforeSave(nil))

	s.IPAddress = "999.1.1.1"
	assert.ErrorIs(t, s.BeforeSave(nil), ErrInvalidValue)

	s.IPAddress = "10.0.0.5"
	s.Provider = "hetzner"
	assert.ErrorIs(t, s.BeforeSave(nil), ErrInvalidValue)
}

func TestIssue_BeforeSaveDefaults(t *testing.T) {
	issue := &Issue{Title: "SSL renewal", ActivityDate: mustDate(t, "2024-01-15")}
	require.NoError(t, issue.BeforeSave(nil))
	assert.Equal(t, IssueStatusOpen, issue.Status)
	assert.Equal(t, IssuePriorityMedium, issue.Priority)
}

func TestIssue_RejectsBadValues(t *testing.T) {
	base := func() *Issue {
		return &Issue{Title: "x", ActivityDate: mustDate(t, "2024-01-15")}
	}

	i := base()
	i.Status = "closed"
	assert.ErrorIs(t, i.BeforeSave(nil), ErrInvalidValue)

	i = base()
	i.Priority = "urgent"
	assert.ErrorIs(t, i.BeforeSave(nil), ErrInvalidValue)

	i = base()
	i.EstimateHours = decimal.RequireFromString("-1")
	assert.ErrorIs(t, i.BeforeSave(nil), ErrInvalidValue)

	i = base()
	i.ActualHours = decimal.RequireFromString("1.255")
	assert.ErrorIs(t, i.BeforeSave(nil), ErrInvalidValue)

	i = base()
	i.ActualHours = decimal.RequireFromString("1000")
	assert.ErrorIs(t, i.BeforeSave(nil), ErrInvalidValue)

	i = base()
	i.EstimateHours = decimal.RequireFromString("999.99")
	assert.NoError(t, i.BeforeSave(nil))
}

func TestSlugValidation(t *testing.T) {
	p := &Partner{Name: "Kilowott", Code: "kilo-wott_2"}
	assert.NoError(t, p.BeforeSave(nil))

	p.Code = "kilo wott"
	err := p.BeforeSave(nil)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestInfraActivity_StatusLength(t *testing.T) {
	a := &InfraActivity{ActivityDate: mustDate(t, "2024-01-15"), Status: "verified"}
	assert.NoError(t, a.BeforeSave(nil))

	a.Status = "this status is far too long"
	assert.ErrorIs(t, a.BeforeSave(nil), ErrInvalidValue)
}

func TestDisplayLabels(t *testing.T) {
	partner := &Partner{Name: "Kilowott"}
	client := &Client{Name: "Gutta Fra Havet", Partner: partner}
	project := &Project{Name: "Gutta Website", Client: client}
	env := &Environment{Name: "Prod EU", EnvType: EnvTypeProd, Project: project}
	user := &User{Username: "anna", Email: "anna@example.com"}

	assert.Equal(t, "Kilowott", partner.DisplayLabel())
	assert.Equal(t, "Kilowott / Gutta Fra Havet", client.DisplayLabel())
	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website", project.DisplayLabel())
	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website / Prod EU (prod)", env.DisplayLabel())
	assert.Equal(t, "web-1 (10.0.0.5)", (&Server{Name: "web-1", IPAddress: "10.0.0.5"}).DisplayLabel())
	assert.Equal(t, "gutta-db (db)", (&Resource{Name: "gutta-db", ResourceType: ResourceTypeDB}).DisplayLabel())
	assert.Equal(t, "anna (anna@example.com)", user.DisplayLabel())

	issue := &Issue{Title: "SSL renewal", Project: project}
	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website - SSL renewal", issue.DisplayLabel())

	activity := &InfraActivity{ActivityDate: mustDate(t, "2024-01-15"), Issue: issue}
	assert.Equal(t, "2024-01-15 - SSL renewal", activity.DisplayLabel())

	assert.Equal(t, "anna - No role", (&UserProfile{User: user}).String())
	assert.Equal(t, "anna - DevOps", (&UserProfile{User: user, Role: "DevOps"}).String())
}

func TestDisplayLabels_MissingParents(t *testing.T) {
	assert.Equal(t, " / Gutta Fra Havet", (&Client{Name: "Gutta Fra Havet"}).DisplayLabel())
	assert.Equal(t, " - SSL renewal", (&Issue{Title: "SSL renewal"}).DisplayLabel())
}

func TestReference(t *testing.T) {
	id := uuid.MustParse("6f1c1f0e-8a4e-4a53-9f5e-3f0b7c2d9a10")
	assert.Equal(t, "/api/v1/partners/"+id.String(), (&Partner{BaseModel: BaseModel{ID: id}}).Reference())
	assert.Equal(t, "/api/v1/activities/"+id.String(), (&InfraActivity{BaseModel: BaseModel{ID: id}}).Reference())
	assert.Equal(t, "/api/v1/users/"+id.String(), (&User{BaseModel: BaseModel{ID: id}}).Reference())
}

func TestErrorKinds(t *testing.T) {
	dup := &DuplicateKeyError{Entity: "client", Fields: []string{"partner_id", "code"}}
	assert.ErrorIs(t, dup, ErrDuplicateKey)
	assert.Contains(t, dup.Error(), "client: partner_id, code")

	nf := &NotFoundError{Entity: "issue"}
	assert.ErrorIs(t, nf, ErrNotFound)

	inv := NewInvalidValueError("server", "provider", "hetzner", ServerProviderValues...)
	assert.Contains(t, inv.Error(), "allowed: aws, azure, gcp, vps, onprem, other")
}

func TestExportRow_Record(t *testing.T) {
	row := ExportRow{Partner: "Kilowott", IssueTitle: "SSL renewal", Status: "done"}
	rec := row.Record()
	require.Len(t, rec, len(ExportHeader))
	assert.Equal(t, "", rec[8])
	assert.Equal(t, "", rec[9])
	assert.Equal(t, "", rec[10])

	est := decimal.RequireFromString("1.5")
	row.ActivityExportFields = ActivityExportFields{
		HandledBy:      &User{Username: "anna", FirstName: "Anna", LastName: "Berg"},
		EstimatedHours: &est,
	}
	rec = row.Record()
	assert.Equal(t, "Anna Berg", rec[8])
	assert.Equal(t, "1.50", rec[9])
	assert.False(t, row.Complete())

	row.HandledBy = &User{Username: "anna"}
	assert.Equal(t, "anna", row.Record()[8])
}

func TestInfraActivity_ExportFieldsAreBlank(t *testing.T) {
	f := (&InfraActivity{}).ExportFields()
	assert.Nil(t, f.HandledBy)
	assert.Nil(t, f.EstimatedHours)
	assert.Nil(t, f.ActualHours)
	assert.False(t, f.Complete())
}
