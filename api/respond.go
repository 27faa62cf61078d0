package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")

		jsonData, err = json.Marshal(internalErrorBody)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteNoContent answers 204 with an empty body.
func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError renders err. An *errs.ApiErr keeps its status and message;
// anything else is logged in full and answered with a generic 500.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	logger := r.logger.With().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("requestID", ctxGetRequestID(req.Context())).
		Logger()

	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, internalErrorBody)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger.Error().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request failed")
	} else if apiErr.Cause != nil {
		logger.Debug().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request rejected")
	}

	r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
		Errors:  apiErr.Violations,
	})
}
