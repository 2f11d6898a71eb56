package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rupaladventures/basecamp/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorDetail under an "error" key.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// storeMessage is shown for every store failure; the cause is logged only.
const storeMessage = "the record store is unavailable, please try again"

// errBadRequest marks input rejected before it reaches a service, such as a
// malformed body or an unknown query key.
var errBadRequest = errors.New("bad request")

// badRequest is a request-level rejection with a user-facing message.
type badRequest struct{ message string }

func (e badRequest) Error() string { return e.message }
func (e badRequest) Unwrap() error { return errBadRequest }

func newBadRequest(message string) error { return badRequest{message: message} }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// classify maps an error onto its status and envelope. notFound is the
// message used for domain.ErrNotFound, because the handler is the layer that
// knows what was being looked up.
func classify(err error, notFound string) (int, ErrorDetail) {
	var (
		verr *domain.ValidationError
		bad  badRequest
		mbe  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "validation_error",
			Message: firstMessage(verr),
			Fields:  verr.Problems,
		}
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge, ErrorDetail{Code: "payload_too_large", Message: "request body too large"}
	case errors.As(err, &bad):
		return http.StatusBadRequest, ErrorDetail{Code: "bad_request", Message: bad.message}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "not_found", Message: notFound}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorDetail{Code: "unauthorized", Message: "sign in required"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorDetail{Code: "forbidden", Message: "you may not change this resource"}
	case errors.Is(err, domain.ErrStore):
		return http.StatusBadGateway, ErrorDetail{Code: "store_unavailable", Message: storeMessage}
	}
	return http.StatusInternalServerError, ErrorDetail{Code: "internal_error", Message: "internal server error"}
}

// respondErr writes the envelope for err. Server-side failures are logged
// with their cause, which never reaches the client.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status, detail := classify(err, notFound)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "handler: request failed",
			slog.String("path", r.URL.Path), slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, ErrorResponse{Error: detail})
}

func firstMessage(verr *domain.ValidationError) string {
	if len(verr.Problems) == 0 {
		return domain.ErrValidation.Error()
	}
	return verr.Problems[0].Message
}
