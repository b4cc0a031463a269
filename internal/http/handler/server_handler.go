package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type ServerHandler struct {
	serverService *service.ServerService
	logger        *zap.Logger
}

func NewServerHandler(serverService *service.ServerService, logger *zap.Logger) *ServerHandler {
	return &ServerHandler{
		serverService: serverService,
		logger:        logger,
	}
}

// List godoc
// @Summary List servers
// @Tags Servers
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param environmentId query string false "Filter by environment" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ServerDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /servers [get]
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	environmentID, ok := parseUUIDQuery(w, r, "environmentId")
	if !ok {
		return
	}

	result, err := h.serverService.List(r.Context(), page, pageSize, environmentID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list servers")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get server by ID
// @Tags Servers
// @Produce json
// @Param id path string true "Server ID" format(uuid)
// @Success 200 {object} domain.ServerDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /servers/{id} [get]
func (h *ServerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "server")
	if !ok {
		return
	}

	server, err := h.serverService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get server")
		return
	}

	respondJSON(w, http.StatusOK, server)
}

// Create godoc
// @Summary Create server
// @Tags Servers
// @Accept json
// @Produce json
// @Param request body domain.ServerRequest true "Server data"
// @Success 201 {object} domain.ServerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Environment not found"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /servers [post]
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ServerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	server, err := h.serverService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create server")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionServers, server.ID))
	respondJSON(w, http.StatusCreated, server)
}

// Update godoc
// @Summary Update server
// @Tags Servers
// @Accept json
// @Produce json
// @Param id path string true "Server ID" format(uuid)
// @Param request body domain.ServerRequest true "Server data"
// @Success 200 {object} domain.ServerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /servers/{id} [put]
func (h *ServerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "server")
	if !ok {
		return
	}

	var req domain.ServerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	server, err := h.serverService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update server")
		return
	}

	respondJSON(w, http.StatusOK, server)
}

// Delete godoc
// @Summary Delete server
// @Tags Servers
// @Param id path string true "Server ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /servers/{id} [delete]
func (h *ServerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "server")
	if !ok {
		return
	}

	if err := h.serverService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete server")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
