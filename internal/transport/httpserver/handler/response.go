package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodgram-go/internal/domain/errs"
	"foodgram-go/internal/transport/httpserver/middleware"
	"foodgram-go/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type pageResponse[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeValidationError(w http.ResponseWriter, err error) {
	body := errorBody{Code: "invalid_request", Message: err.Error()}
	for _, field := range errs.Fields(err) {
		body.Fields = append(body.Fields, fieldError{Field: field.Field, Message: field.Message})
	}
	if len(body.Fields) > 1 {
		body.Message = "invalid request"
	}
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// decodeRequest reads the body into dst and runs its validate tags. It writes
// the error response itself and reports whether the handler may continue.
func (h *Handlers) decodeRequest(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := decodeJSON(r, dst); err != nil {
		h.logger(r).BusinessError(op+": invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.logger(r).BusinessError(op+": validation failed", err)
		writeValidationError(w, err)
		return false
	}
	return true
}

// writeDomainError maps an error kind to its status code. Internal failures
// are logged with their cause and answered with a generic message.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := h.logger(r)
	switch {
	case errors.Is(err, errs.ErrValidation):
		log.BusinessError(op+": validation failed", err, args...)
		writeValidationError(w, err)
	case errors.Is(err, errs.ErrDuplicate):
		log.BusinessError(op+": already exists", err, args...)
		writeError(w, http.StatusBadRequest, "already_exists", err.Error())
	case errors.Is(err, errs.ErrNotFound):
		log.BusinessError(op+": not found", err, args...)
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, errs.ErrForbidden):
		log.BusinessError(op+": forbidden", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handlers) logger(r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), h.log)
}

// requireUser returns the principal or answers 401.
func requireUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}
