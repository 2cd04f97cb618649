package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campushub/submission-service/internal/models"
	"github.com/campushub/submission-service/pkg/utils"
)

func (h *Handler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(submissionID); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid submission id")
		return
	}

	var req models.ReviewRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	ctx := r.Context()
	response, err := h.reviewService.Review(ctx, identityFromRequest(r), submissionID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}

// PromoteSubmission is the explicit second action: a faculty member accepted
// the submission earlier without the opt-in flag and publishes it now.
func (h *Handler) PromoteSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(submissionID); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid submission id")
		return
	}

	var req models.PromoteRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	ctx := r.Context()
	project, err := h.promotionService.Promote(ctx, identityFromRequest(r), submissionID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    project,
	})
}
