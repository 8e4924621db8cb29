package trivia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the question service over REST.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the trivia routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)
}

// ListCategories handles GET /categories
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": nonNil(categories),
	})
}

// ListQuestions handles GET /questions?page=N. A missing or unparsable page
// means page 1.
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        nonNil(result.Questions),
		"total_questions":  result.TotalQuestions,
		"categories":       nonNil(result.Categories),
		"current_category": result.CurrentCategory,
	})
}

type createQuestionRequest struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *flexInt `json:"category"`
	Difficulty *flexInt `json:"difficulty"`
}

func (r createQuestionRequest) missingField() string {
	switch {
	case r.Question == nil:
		return "question"
	case r.Answer == nil:
		return "answer"
	case r.Category == nil:
		return "category"
	case r.Difficulty == nil:
		return "difficulty"
	}
	return ""
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	if field := req.missingField(); field != "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, field+" is required", field)
		return
	}

	created, err := h.svc.CreateQuestion(r.Context(), NewQuestion{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   int64(*req.Category),
		Difficulty: int(*req.Difficulty),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"created": created.ID,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, msgNotFound)
		return
	}
	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.SearchTerm == nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "searchTerm is required", "searchTerm")
		return
	}

	result, err := h.svc.SearchQuestions(r.Context(), *req.SearchTerm)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       result.Questions,
		"total_questions": result.TotalQuestions,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions
func (h *HTTPHandler) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, msgNotFound)
		return
	}

	result, err := h.svc.QuestionsByCategory(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.TotalQuestions,
		"current_category": result.CurrentCategory,
	})
}

type quizRequest struct {
	PreviousQuestions []int64 `json:"previous_questions"`
	QuizCategory      *struct {
		ID   *flexInt `json:"id"`
		Type string   `json:"type"`
	} `json:"quiz_category"`
}

// NextQuizQuestion handles POST /quizzes. An exhausted pool answers with a null
// question and success=true.
func (h *HTTPHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	in := QuizRequest{PreviousQuestions: req.PreviousQuestions}
	if req.QuizCategory != nil {
		if req.QuizCategory.ID == nil {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "quiz_category.id is required", "quiz_category.id")
			return
		}
		in.Category = &QuizCategory{ID: int64(*req.QuizCategory.ID), Type: req.QuizCategory.Type}
	}

	next, err := h.svc.NextQuizQuestion(r.Context(), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	outcome := "question"
	if next == nil {
		outcome = "exhausted"
	}
	metrics.QuizSelections.WithLabelValues(outcome).Inc()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": next,
	})
}

const (
	msgNotFound      = "Not Found"
	msgUnprocessable = "Unprocessable"
	msgOutOfRange    = "Page out of range"
)

// respondError maps service failures onto HTTP statuses. Clients get a fixed
// message per failure kind; the wrapped error only goes to the log.
func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := h.requestLogger(r)
	switch {
	case errors.Is(err, ErrInvalidArgument):
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid argument")
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeInvalidArgument, msgUnprocessable)
	case errors.Is(err, ErrValidation):
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("validation failed")
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeValidationFailed, msgUnprocessable)
	case errors.Is(err, ErrOutOfRange):
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("page out of range")
		httperrors.RespondErrorWithDetails(w, http.StatusNotFound, httperrors.ErrCodeOutOfRange, msgOutOfRange,
			map[string]interface{}{"max_page": MaxPage})
	case errors.Is(err, ErrNotFound):
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("not found")
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, msgNotFound)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		httperrors.RespondInternalError(w, "Internal Server Error")
	}
}

func (h *HTTPHandler) requestLogger(r *http.Request) zerolog.Logger {
	logger := logging.FromContext(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		return h.logger
	}
	return logger
}

// decodeJSON reads the request body into v. An empty body decodes as {} so
// the missing-field checks answer it.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// flexInt accepts a JSON number or a numeric string. The frontend sends
// select-box values as strings.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*f = flexInt(n)
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
