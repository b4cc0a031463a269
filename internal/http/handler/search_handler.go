package handler

import (
	"net/http"

	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
	logger        *zap.Logger
}

func NewSearchHandler(searchService *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search godoc
// @Summary Global search
// @Description Case-insensitive substring search over partners, clients, projects, environments, servers, resources, issues, infra activities and users. At most 25 hits per type; a blank query returns no results.
// @Tags Search
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} domain.SearchResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondServiceError(w, h.logger, err, "search")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
