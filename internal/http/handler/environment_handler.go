package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type EnvironmentHandler struct {
	environmentService *service.EnvironmentService
	logger             *zap.Logger
}

func NewEnvironmentHandler(environmentService *service.EnvironmentService, logger *zap.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{
		environmentService: environmentService,
		logger:             logger,
	}
}

// List godoc
// @Summary List environments
// @Tags Environments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param projectId query string false "Filter by project" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.EnvironmentDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /environments [get]
func (h *EnvironmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	projectID, ok := parseUUIDQuery(w, r, "projectId")
	if !ok {
		return
	}

	result, err := h.environmentService.List(r.Context(), page, pageSize, projectID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list environments")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get environment by ID
// @Tags Environments
// @Produce json
// @Param id path string true "Environment ID" format(uuid)
// @Success 200 {object} domain.EnvironmentDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /environments/{id} [get]
func (h *EnvironmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "environment")
	if !ok {
		return
	}

	env, err := h.environmentService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get environment")
		return
	}

	respondJSON(w, http.StatusOK, env)
}

// Create godoc
// @Summary Create environment
// @Description envType defaults to dev when omitted
// @Tags Environments
// @Accept json
// @Produce json
// @Param request body domain.EnvironmentRequest true "Environment data"
// @Success 201 {object} domain.EnvironmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Project not found"
// @Failure 409 {object} domain.APIError "Name already used in this project"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /environments [post]
func (h *EnvironmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.EnvironmentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	env, err := h.environmentService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create environment")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionEnvironments, env.ID))
	respondJSON(w, http.StatusCreated, env)
}

// Update godoc
// @Summary Update environment
// @Tags Environments
// @Accept json
// @Produce json
// @Param id path string true "Environment ID" format(uuid)
// @Param request body domain.EnvironmentRequest true "Environment data"
// @Success 200 {object} domain.EnvironmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /environments/{id} [put]
func (h *EnvironmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "environment")
	if !ok {
		return
	}

	var req domain.EnvironmentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	env, err := h.environmentService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update environment")
		return
	}

	respondJSON(w, http.StatusOK, env)
}

// Delete godoc
// @Summary Delete environment
// @Description Servers and resources are deleted with it; issues keep their project and lose the environment reference
// @Tags Environments
// @Param id path string true "Environment ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /environments/{id} [delete]
func (h *EnvironmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "environment")
	if !ok {
		return
	}

	if err := h.environmentService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete environment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
