package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List godoc
// @Summary List infra activities
// @Tags Activities
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param issueId query string false "Filter by issue" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InfraActivityDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	issueID, ok := parseUUIDQuery(w, r, "issueId")
	if !ok {
		return
	}

	result, err := h.activityService.List(r.Context(), page, pageSize, issueID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list activities")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get infra activity by ID
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.InfraActivityDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "activity")
	if !ok {
		return
	}

	activity, err := h.activityService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Create godoc
// @Summary Log infra activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body domain.InfraActivityRequest true "Activity data"
// @Success 201 {object} domain.InfraActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Issue not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.InfraActivityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	activity, err := h.activityService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create activity")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionActivities, activity.ID))
	respondJSON(w, http.StatusCreated, activity)
}

// Update godoc
// @Summary Update infra activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Param request body domain.InfraActivityRequest true "Activity data"
// @Success 200 {object} domain.InfraActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "activity")
	if !ok {
		return
	}

	var req domain.InfraActivityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	activity, err := h.activityService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update activity")
		return
	}

	respondJSON(w, http.StatusOK, activity)
}

// Delete godoc
// @Summary Delete infra activity
// @Tags Activities
// @Param id path string true "Activity ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "activity")
	if !ok {
		return
	}

	if err := h.activityService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete activity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
