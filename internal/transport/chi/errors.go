package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	"github.com/kailas-cloud/ipadhilfe/internal/logger"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// defaultErrorHandlers maps the domain sentinels to HTTP statuses, most specific first.
func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, ErrorCodeNotFound),
		invalidRequestHandler,
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// The client sees only the sentinel's text.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// invalidRequestHandler passes the validation detail through to the client.
func invalidRequestHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
	return true
}

// handleError writes err through the handler chain. Unmatched errors become a 500
// carrying msg, a description of the failed operation; the cause is only logged.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
			return
		}
	}
	log.Error(msg,
		zap.String("path", r.URL.Path),
		zap.Bool("store_unavailable", errors.Is(err, domain.ErrStoreUnavailable)),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, msg)
}
