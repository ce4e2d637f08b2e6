package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	appErrors "menutree/internal/errors"
	"menutree/internal/wire"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	internalMessage = "Internal server error"
	maxBodyBytes    = 1 << 20
)

// StatusFor maps an error code to its HTTP status.
func StatusFor(code appErrors.Code) int {
	switch code {
	case appErrors.CodeNotFound:
		return http.StatusNotFound
	case appErrors.CodeValidation, appErrors.CodeCyclicMove, appErrors.CodeMenuMismatch:
		return http.StatusBadRequest
	case appErrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type responder struct {
	logger *zap.Logger
	now    func() time.Time
}

func (rs responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (rs responder) respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondError writes the envelope for err. Client errors carry their own
// message; anything else is logged with its cause and reported generically.
func (rs responder) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := appErrors.CodeOf(err)
	status := StatusFor(code)
	msg := appErrors.MessageOf(err)
	if !appErrors.IsClientError(code) {
		rs.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("code", string(code)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		msg = internalMessage
	}
	rs.respondStatus(w, r, status, msg)
}

func (rs responder) respondStatus(w http.ResponseWriter, r *http.Request, status int, msg string) {
	rs.respondJSON(w, status, wire.ErrorEnvelope{
		StatusCode: status,
		Timestamp:  rs.now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Message:    msg,
	})
}

// decodeJSON reads a request body into dst and validates it. An empty body
// decodes as the zero value, so optional-only requests may omit it.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.New(appErrors.CodeValidation, "invalid request body: "+err.Error(), err)
	}
	return wire.ValidateStruct(dst)
}
