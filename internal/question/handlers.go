package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/felayo/trivia-api/internal/logging"
	"github.com/felayo/trivia-api/internal/pagination"
	httperrors "github.com/felayo/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for trivia endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Categories handles GET /categories
func (h *HTTPHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		h.log(r).Error().Err(err).Msg("list categories failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       categories,
		"total_categories": len(categories),
	})
}

// Questions handles GET /questions?page=N and POST /questions
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.createQuestion(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

func (h *HTTPHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageFromQuery(r.URL.Query().Get("page"))

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		h.log(r).Error().Err(err).Int("page", page).Msg("list questions failed")
		httperrors.RespondInternalError(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"categories":       result.Categories,
		"current_category": nil,
	})
}

func (h *HTTPHandlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req NewQuestion
	present, err := decodeBody(w, r, &req)
	if err != nil || !present {
		httperrors.RespondUnprocessable(w)
		return
	}

	created, err := h.svc.CreateQuestion(r.Context(), req)
	if err != nil {
		h.log(r).Warn().Err(err).Msg("create question rejected")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"created":  created.ID,
		"question": created,
	})
}

// DeleteQuestion handles DELETE /questions/{id}?page=N
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}
	page := pagination.PageFromQuery(r.URL.Query().Get("page"))

	result, err := h.svc.DeleteQuestion(r.Context(), id, page)
	if err != nil {
		// Deleting an unknown id is reported as unprocessable, not 404.
		h.log(r).Warn().Err(err).Int32("question_id", id).Msg("delete question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":             true,
		"deleted":             result.Deleted,
		"questions":           result.Questions,
		"remaining_questions": result.Remaining,
	})
}

// Search handles POST /search
func (h *HTTPHandlers) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if _, err := decodeBody(w, r, &req); err != nil {
		req.SearchTerm = ""
	}

	results, err := h.svc.Search(r.Context(), req.SearchTerm)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		// Search failures keep the historical 405 code existing clients expect.
		h.log(r).Error().Err(err).Msg("search failed")
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       results,
		"total_questions": len(results),
	})
}

// CategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	questions, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.log(r).Error().Err(err).Int32("category_id", id).Msg("list category questions failed")
		}
		httperrors.RespondNotFound(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        questions,
		"current_category": id,
		"total_questions":  len(questions),
	})
}

// Quizzes handles POST /quizzes
func (h *HTTPHandlers) Quizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req QuizRequest
	present, err := decodeBody(w, r, &req)
	if err != nil || !present || req.QuizCategory == nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	next, err := h.svc.DrawQuizQuestion(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		h.log(r).Error().Err(err).Msg("quiz draw failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": next,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

// log prefers the request-scoped logger installed by the server middleware.
func (h *HTTPHandlers) log(r *http.Request) *zerolog.Logger {
	logger := logging.FromContext(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}
	return &logger
}

// decodeBody decodes a JSON body into v. present is false for an empty body.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) (present bool, err error) {
	if r.Body == nil {
		return false, nil
	}
	err = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func pathID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(id), true
}
