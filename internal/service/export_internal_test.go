package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIssueRow_BrokenChainLeavesBlanks(t *testing.T) {
	svc := &ExportService{location: time.UTC, logger: zap.NewNop()}

	cases := []struct {
		name    string
		project *domain.Project
		want    [3]string
	}{
		{"no project", nil, [3]string{"", "", ""}},
		{"no client", &domain.Project{Name: "Web"}, [3]string{"", "", "Web"}},
		{"no partner", &domain.Project{Name: "Web", Client: &domain.Client{Name: "Gutta"}}, [3]string{"", "Gutta", "Web"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats := &ExportStats{}
			issue := &domain.Issue{BaseModel: domain.BaseModel{ID: uuid.New()}, Title: "T", Status: domain.IssueStatusOpen, Project: tc.project}

			row := svc.issueRow(issue, nil, stats)
			assert.Equal(t, tc.want, [3]string{row.Partner, row.Client, row.Project})
			assert.Equal(t, "", row.UpdatedDate)
			assert.Equal(t, 1, stats.Degraded)
		})
	}
}
