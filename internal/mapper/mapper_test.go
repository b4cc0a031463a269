package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIssueDTO_ComputesLiveDelay(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	issue := &domain.Issue{
		BaseModel:     domain.BaseModel{ID: uuid.New()},
		Title:         "Patch kernel",
		Status:        domain.IssueStatusOpen,
		ActivityDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		EstimateHours: decimal.RequireFromString("3.25"),
	}

	day1 := ToIssueDTO(issue, time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC))
	day2 := ToIssueDTO(issue, time.Date(2024, 1, 13, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, day1.DelayDays)
	assert.Equal(t, 3, day2.DelayDays)
	assert.Equal(t, "2024-01-10", day1.DueDate)
	assert.Equal(t, "2024-01-01", day1.ActivityDate)
	assert.True(t, decimal.RequireFromString("3.25").Equal(day1.EstimateHours))
}

func TestToIssueDTO_NoDueDate(t *testing.T) {
	issue := &domain.Issue{Title: "x", Status: domain.IssueStatusOpen, ActivityDate: time.Now()}
	dto := ToIssueDTO(issue, time.Now().AddDate(1, 0, 0))
	assert.Equal(t, 0, dto.DelayDays)
	assert.Empty(t, dto.DueDate)

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dueDate")
	assert.Contains(t, string(raw), `"delayDays":0`)
}

func TestToClientDTO_PartnerName(t *testing.T) {
	email := "ops@gutta.no"
	c := &domain.Client{
		Name:         "Gutta Fra Havet",
		Code:         "gutta",
		ContactEmail: &email,
		Partner:      &domain.Partner{Name: "Kilowott"},
	}
	dto := ToClientDTO(c)
	assert.Equal(t, "Kilowott", dto.PartnerName)
	assert.Equal(t, "ops@gutta.no", dto.ContactEmail)
	assert.Equal(t, "Kilowott / Gutta Fra Havet", dto.Label)
}

func TestToSearchResultItem(t *testing.T) {
	r := &domain.Resource{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "gutta-db", ResourceType: domain.ResourceTypeDB}
	item := ToSearchResultItem("Resource", r.ID, r)
	assert.Equal(t, "Resource", item.Model)
	assert.Equal(t, "gutta-db (db)", item.Label)
	assert.Equal(t, "/api/v1/resources/"+r.ID.String(), item.URL)
	assert.Equal(t, r.ID, item.ID)
}
