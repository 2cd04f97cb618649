package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(projectID); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid project id")
		return
	}

	ctx := r.Context()
	project, err := h.promotionService.GetProject(ctx, projectID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, project)
}

func (h *Handler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	response, err := h.promotionService.ListProjects(ctx, page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}
