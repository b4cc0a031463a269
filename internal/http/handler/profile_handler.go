package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

// ProfileHandler serves user profiles. Profiles live on UserService since a
// profile cannot exist without its user.
type ProfileHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewProfileHandler(userService *service.UserService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		logger:      logger,
	}
}

// List godoc
// @Summary List user profiles
// @Tags Profiles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param partnerId query string false "Filter by partner" format(uuid)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.UserProfileDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /profiles [get]
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	partnerID, ok := parseUUIDQuery(w, r, "partnerId")
	if !ok {
		return
	}

	result, err := h.userService.ListProfiles(r.Context(), page, pageSize, partnerID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list profiles")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get user profile by ID
// @Tags Profiles
// @Produce json
// @Param id path string true "Profile ID" format(uuid)
// @Success 200 {object} domain.UserProfileDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "profile")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Create godoc
// @Summary Create user profile
// @Description A user has at most one profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body domain.UserProfileRequest true "Profile data"
// @Success 201 {object} domain.UserProfileDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "User, partner or client not found"
// @Failure 409 {object} domain.APIError "User already has a profile"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /profiles [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UserProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	profile, err := h.userService.CreateProfile(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create profile")
		return
	}

	w.Header().Set("Location", domain.ReferenceFor(domain.CollectionProfiles, profile.ID))
	respondJSON(w, http.StatusCreated, profile)
}

// Update godoc
// @Summary Update user profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID" format(uuid)
// @Param request body domain.UserProfileRequest true "Profile data"
// @Success 200 {object} domain.UserProfileDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /profiles/{id} [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "profile")
	if !ok {
		return
	}

	var req domain.UserProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Delete godoc
// @Summary Delete user profile
// @Tags Profiles
// @Param id path string true "Profile ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "profile")
	if !ok {
		return
	}

	if err := h.userService.DeleteProfile(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
