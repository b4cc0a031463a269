package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/repository"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type IssueHandler struct {
	issueService    *service.IssueService
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewIssueHandler(issueService *service.IssueService, activityService *service.ActivityService, logger *zap.Logger) *IssueHandler {
	return &IssueHandler{
		issueService:    issueService,
		activityService: activityService,
		logger:          logger,
	}
}

// List godoc
// @Summary List issues
// @Description Get paginated list of issues, most recent activity date first. delayDays is computed at request time.
// @Tags Issues
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param projectId query string false "Filter by project" format(uuid)
// @Param environmentId query string false "Filter by environment" format(uuid)
// @Param status query string false "Filter by status" Enums(open, in_progress, blocked, done, cancelled)
// @Param assignedToId query string false "Filter by assignee" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.IssueDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /issues [get]
func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	var filter repository.IssueFilter
	var ok bool
	if filter.ProjectID, ok = parseUUIDQuery(w, r, "projectId"); !ok {
		return
	}
	if filter.EnvironmentID, ok = parseUUIDQuery(w, r, "environmentId"); !ok {
		return
	}
	if filter.AssignedToID, ok = parseUUIDQuery(w, r, "assignedToId"); !ok {
		return
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.IssueStatus(raw)
		if !status.IsValid() {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid status filter",
			})
			return
		}
		filter.Status = &status
	}

	result, err := h.issueService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "list issues")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get issue by ID
// @Tags Issues
// @Produce json
// @Param id path string true "Issue ID" format(uuid)
// @Success 200 {object} domain.IssueDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /issues/{id} [get]
func (h *IssueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "issue")
	if !ok {
		return
	}

	issue, err := h.issueService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get issue")
		return
	}

	respondJSON(w, http.StatusOK, issue)
}

// Create godoc
// @Summary Create issue
// @Description status defaults to open and priority to medium. Hours must not be negative.
// @Tags Issues
// @Accept json
// @Produce json
// @Param request body domain.IssueRequest true "Issue data"
// @Success 201 {object} domain.IssueDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Referenced project, environment, resource or user not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /issues [post]
func (h *IssueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.IssueRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	issue, err := h.issueService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create issue")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionIssues, issue.ID))
	respondJSON(w, http.StatusCreated, issue)
}

// Update godoc
// @Summary Update issue
// @Tags Issues
// @Accept json
// @Produce json
// @Param id path string true "Issue ID" format(uuid)
// @Param request body domain.IssueRequest true "Issue data"
// @Success 200 {object} domain.IssueDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /issues/{id} [put]
func (h *IssueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "issue")
	if !ok {
		return
	}

	var req domain.IssueRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	issue, err := h.issueService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update issue")
		return
	}

	respondJSON(w, http.StatusOK, issue)
}

// Delete godoc
// @Summary Delete issue
// @Description Deletes the issue and its activity log
// @Tags Issues
// @Param id path string true "Issue ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /issues/{id} [delete]
func (h *IssueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "issue")
	if !ok {
		return
	}

	if err := h.issueService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete issue")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListActivities godoc
// @Summary List issue activities
// @Description Activity log of one issue, most recent first
// @Tags Issues
// @Produce json
// @Param id path string true "Issue ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InfraActivityDTO}
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /issues/{id}/activities [get]
func (h *IssueHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "issue")
	if !ok {
		return
	}
	page, pageSize := parsePagination(r)

	result, err := h.activityService.List(r.Context(), page, pageSize, &id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list issue activities")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
