// Package rest serves the JSON API under /api/v1 and the operational
// endpoints (/live, /ready, /health, /metrics).
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Fields  []fieldErrorBody `json:"fields,omitempty"`
}

type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// errorStatus maps an error to its HTTP status and error body. Unknown
// errors become a 500 with a generic message.
func errorStatus(err error) (int, errorBody) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		body := errorBody{Code: "validation_error", Message: "validation failed"}
		for _, fe := range ve.Errors {
			body.Fields = append(body.Fields, fieldErrorBody{Field: fe.Field, Message: fe.Message})
		}
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorBody{Code: "validation_error", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorBody{Code: "unauthorized", Message: "unauthorized"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody{Code: "forbidden", Message: "forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody{Code: "not_found", Message: "not found"}
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, errorBody{Code: "already_exists", Message: "already exists"}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorBody{Code: "conflict", Message: "conflict"}
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, errorBody{Code: "unavailable", Message: "service temporarily unavailable"}
	default:
		return http.StatusInternalServerError, errorBody{Code: "internal", Message: "internal server error"}
	}
}

// respondError writes the error envelope for err. Server errors are logged.
func respondError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, status, errorResponse{Error: body})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// pathID parses the UUID route parameter name.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryParser collects field errors while reading query parameters.
type queryParser struct {
	r    *http.Request
	errs []domain.FieldError
}

func (p *queryParser) int(name string) int {
	raw := p.r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, domain.FieldError{Field: name, Message: "must be an integer"})
	}
	return n
}

func (p *queryParser) bool(name string) *bool {
	raw := p.r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, domain.FieldError{Field: name, Message: "must be true or false"})
		return nil
	}
	return &b
}

func (p *queryParser) uuid(name string) *uuid.UUID {
	raw := p.r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.errs = append(p.errs, domain.FieldError{Field: name, Message: "must be a UUID"})
		return nil
	}
	return &id
}

func (p *queryParser) time(name string) *time.Time {
	raw := p.r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		p.errs = append(p.errs, domain.FieldError{Field: name, Message: fmt.Sprintf("must be RFC 3339, got %q", raw)})
		return nil
	}
	return &t
}

func (p *queryParser) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(p.errs)
}
