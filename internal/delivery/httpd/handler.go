package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/campushub/submission-service/internal/apperrors"
	"github.com/campushub/submission-service/internal/service"
)

type Handler struct {
	submissionService service.SubmissionService
	reviewService     service.ReviewService
	promotionService  service.PromotionService
	validate          *validator.Validate
	logger            zerolog.Logger
}

func NewHandler(
	submissionService service.SubmissionService,
	reviewService service.ReviewService,
	promotionService service.PromotionService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		submissionService: submissionService,
		reviewService:     reviewService,
		promotionService:  promotionService,
		validate:          validator.New(),
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Group(func(r chi.Router) {
			r.Use(RequireIdentity)

			r.Route("/submissions", func(r chi.Router) {
				r.Post("/", h.CreateSubmission)
				r.Get("/", h.GetAllSubmissions)
				r.Get("/{id}", h.GetSubmissionByID)
				r.Delete("/{id}", h.DeleteSubmission)
				r.Post("/{id}/resubmit", h.ResubmitSubmission)
				r.Post("/{id}/review", h.ReviewSubmission)
				r.Post("/{id}/promote", h.PromoteSubmission)
			})

			r.Get("/assignments/{id}/submissions", h.GetSubmissionsByAssignment)
			r.Get("/students/{id}/submissions", h.GetSubmissionsByStudent)
		})

		// Repository artifacts are publicly browsable.
		api.Route("/projects", func(r chi.Router) {
			r.Get("/", h.GetAllProjects)
			r.Get("/{id}", h.GetProjectByID)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "submission-service",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"kind":    kind,
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}

// handleServiceError maps the error taxonomy to HTTP statuses. Kinds are
// stable machine-readable tags; the UI maps them to user-facing text.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal", "internal server error")
		return
	}

	var status int
	switch kind {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindInvalidState,
		apperrors.KindDeadlinePassed,
		apperrors.KindDuplicateSubmission,
		apperrors.KindAlreadyPromoted:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	writeError(w, status, string(kind), err.Error())
}
