package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
	logger          *zap.Logger
}

func NewResourceHandler(resourceService *service.ResourceService, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		logger:          logger,
	}
}

// List godoc
// @Summary List resources
// @Tags Resources
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param environmentId query string false "Filter by environment" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ResourceDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /resources [get]
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	environmentID, ok := parseUUIDQuery(w, r, "environmentId")
	if !ok {
		return
	}

	result, err := h.resourceService.List(r.Context(), page, pageSize, environmentID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list resources")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get resource by ID
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID" format(uuid)
// @Success 200 {object} domain.ResourceDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "resource")
	if !ok {
		return
	}

	resource, err := h.resourceService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get resource")
		return
	}

	respondJSON(w, http.StatusOK, resource)
}

// Create godoc
// @Summary Create resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param request body domain.ResourceRequest true "Resource data"
// @Success 201 {object} domain.ResourceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Environment not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /resources [post]
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ResourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resource, err := h.resourceService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create resource")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionResources, resource.ID))
	respondJSON(w, http.StatusCreated, resource)
}

// Update godoc
// @Summary Update resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID" format(uuid)
// @Param request body domain.ResourceRequest true "Resource data"
// @Success 200 {object} domain.ResourceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "resource")
	if !ok {
		return
	}

	var req domain.ResourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resource, err := h.resourceService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update resource")
		return
	}

	respondJSON(w, http.StatusOK, resource)
}

// Delete godoc
// @Summary Delete resource
// @Tags Resources
// @Param id path string true "Resource ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "resource")
	if !ok {
		return
	}

	if err := h.resourceService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete resource")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
