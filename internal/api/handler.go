package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/eduquiz/backend/internal/configsource"
	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/testsession"
	"github.com/eduquiz/backend/internal/service"
	"github.com/eduquiz/backend/internal/store"
	"github.com/eduquiz/backend/internal/transfer"
)

const maxBodySize = 10 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	lessons *service.LessonService
	tests   *service.TestService
	logger  *slog.Logger
}

func NewHandler(lessons *service.LessonService, tests *service.TestService, logger *slog.Logger) *Handler {
	return &Handler{
		lessons: lessons,
		tests:   tests,
		logger:  logger,
	}
}

type ErrorResponse struct {
	Error string `json:"error" example:"lesson not found"`
	Code  string `json:"code,omitempty" example:"configuration_error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

func respondErrorCode(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// ============================================================================
// Request decoding
// ============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the request body into v. It writes a 400 and returns
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the body, checks validate tags and then the
// request's own Validate method if it has one.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	if vv, ok := v.(validatable); ok {
		if err := vv.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return false
		}
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			msgs[i] = fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			msgs[i] = fmt.Sprintf("%s: must satisfy %s", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}

// ============================================================================
// Error mapping
// ============================================================================

// handleServiceError maps service and domain errors to HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoQuiz):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, testsession.ErrEmptySelection):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, transfer.ErrInvalidDocument):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, lesson.ErrLastLesson),
		errors.Is(err, testsession.ErrSelectionLocked),
		errors.Is(err, testsession.ErrSessionCompleted),
		errors.Is(err, service.ErrNotCompleted):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, assessment.ErrNoMatchingRange),
		errors.Is(err, service.ErrInvalidConfig):
		h.logger.Error("configuration error", "error", err, "entity", entity)
		respondErrorCode(w, http.StatusInternalServerError, "configuration_error", err.Error())
	case errors.Is(err, configsource.ErrConfigUnavailable):
		h.logger.Warn("configuration unavailable", "error", err)
		respondErrorCode(w, http.StatusServiceUnavailable, "config_unavailable", "configuration unavailable")

	default:
		h.logger.Error("service error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
