package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type PartnerHandler struct {
	partnerService *service.PartnerService
	logger         *zap.Logger
}

func NewPartnerHandler(partnerService *service.PartnerService, logger *zap.Logger) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		logger:         logger,
	}
}

// List godoc
// @Summary List partners
// @Description Get paginated list of partners ordered by name
// @Tags Partners
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.PartnerDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /partners [get]
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.partnerService.List(r.Context(), page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "list partners")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get partner by ID
// @Tags Partners
// @Produce json
// @Param id path string true "Partner ID" format(uuid)
// @Success 200 {object} domain.PartnerDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /partners/{id} [get]
func (h *PartnerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "partner")
	if !ok {
		return
	}

	partner, err := h.partnerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get partner")
		return
	}

	respondJSON(w, http.StatusOK, partner)
}

// Create godoc
// @Summary Create partner
// @Tags Partners
// @Accept json
// @Produce json
// @Param request body domain.PartnerRequest true "Partner data"
// @Success 201 {object} domain.PartnerDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Duplicate name or code"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /partners [post]
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.PartnerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	partner, err := h.partnerService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create partner")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionPartners, partner.ID))
	respondJSON(w, http.StatusCreated, partner)
}

// Update godoc
// @Summary Update partner
// @Tags Partners
// @Accept json
// @Produce json
// @Param id path string true "Partner ID" format(uuid)
// @Param request body domain.PartnerRequest true "Partner data"
// @Success 200 {object} domain.PartnerDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /partners/{id} [put]
func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "partner")
	if !ok {
		return
	}

	var req domain.PartnerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	partner, err := h.partnerService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update partner")
		return
	}

	respondJSON(w, http.StatusOK, partner)
}

// Delete godoc
// @Summary Delete partner
// @Description Deletes the partner together with its clients, projects, environments, servers, resources and issues
// @Tags Partners
// @Param id path string true "Partner ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /partners/{id} [delete]
func (h *PartnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "partner")
	if !ok {
		return
	}

	if err := h.partnerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete partner")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
