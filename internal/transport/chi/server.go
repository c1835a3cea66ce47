package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ipadhilfe/internal/domain"
	faquc "github.com/kailas-cloud/ipadhilfe/internal/usecase/faq"
	healthuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/health"
	preferencesuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/preferences"
	searchuc "github.com/kailas-cloud/ipadhilfe/internal/usecase/search"
)

// maxBodyBytes caps the PUT preferences body.
const maxBodyBytes = 64 << 10

// Server implements ServerInterface.
type Server struct {
	faq           *faquc.Service
	search        *searchuc.Service
	preferences   *preferencesuc.Service
	health        *healthuc.Service
	metrics       http.Handler
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	faq *faquc.Service,
	search *searchuc.Service,
	preferences *preferencesuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		faq:           faq,
		search:        search,
		preferences:   preferences,
		health:        health,
		metrics:       promhttp.Handler(),
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// HealthCheck handles GET /api/health. A failed probe is reported in the body, always with 200.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	if report.Status != healthuc.Healthy {
		s.logger.Warn("health probe failed", zap.String("error", report.Error))
	}
	writeJSON(w, http.StatusOK, healthToDTO(&report))
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.faq.Categories(r.Context())
	if err != nil {
		s.handleError(w, r, err, "failed to fetch categories")
		return
	}

	out := make([]CategoryInfo, len(cats))
	for i := range cats {
		out[i] = categoryToDTO(&cats[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// ListFAQ handles GET /api/faq.
func (s *Server) ListFAQ(w http.ResponseWriter, r *http.Request, params ListFAQParams) {
	items, err := s.faq.List(r.Context(), faquc.ListQuery{
		Category: deref(params.Category),
		Search:   deref(params.Search),
		Limit:    deref(params.Limit),
	})
	if err != nil {
		s.handleError(w, r, err, "failed to fetch FAQ items")
		return
	}
	writeJSON(w, http.StatusOK, itemsToDTO(items))
}

// GetFAQ handles GET /api/faq/{id}.
func (s *Server) GetFAQ(w http.ResponseWriter, r *http.Request, id string) {
	it, err := s.faq.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err, "failed to fetch FAQ item")
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(&it))
}

// SearchFAQ handles GET /api/search.
func (s *Server) SearchFAQ(w http.ResponseWriter, r *http.Request, params SearchFAQParams) {
	items, err := s.search.Search(r.Context(), params.Q, deref(params.Limit))
	if err != nil {
		s.handleError(w, r, err, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, itemsToDTO(items))
}

// GetPreferences handles GET /api/preferences/{user_id}.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request, userID string) {
	p, err := s.preferences.Get(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err, "failed to fetch preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefsToDTO(&p))
}

// PutPreferences handles PUT /api/preferences/{user_id}. The path user id wins over the body.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request, userID string) {
	var req PreferencesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.handleError(w, r, fmt.Errorf("%w: invalid request body: %w", domain.ErrInvalidRequest, err),
			"failed to update preferences")
		return
	}

	modified, err := s.preferences.Put(r.Context(), userID, updateFromDTO(&req))
	if err != nil {
		s.handleError(w, r, err, "failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, PutPreferencesResponse{Success: true, Modified: modified})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
