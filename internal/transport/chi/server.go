package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/stash/internal/logger"
	"github.com/kailas-cloud/stash/internal/metrics"
	itemrepo "github.com/kailas-cloud/stash/internal/repository/item"
	healthuc "github.com/kailas-cloud/stash/internal/usecase/health"
	libraryuc "github.com/kailas-cloud/stash/internal/usecase/library"
	searchuc "github.com/kailas-cloud/stash/internal/usecase/search"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	maxImportBytes   = 16 << 20
)

// Server exposes the library and the search engine over HTTP.
type Server struct {
	library       *libraryuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	library *libraryuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		library:       library,
		search:        search,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes mounts every API route on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/items", func(r chi.Router) {
		r.Get("/", s.ListItems)
		r.Post("/", s.SaveItem)
		r.Post("/import", s.ImportItems)
		r.Post("/reload", s.ReloadItems)
		r.Get("/{id}", s.GetItem)
		r.Delete("/{id}", s.DeleteItem)
	})

	r.Route("/search", func(r chi.Router) {
		r.Post("/", s.Search)
		r.Get("/", s.CurrentSearch)
		r.Delete("/", s.ClearSearch)
	})

	r.Post("/filter", s.ApplyFilters)
	r.Get("/suggestions", s.Suggestions)
}

// Handler builds a router with the API routes and no middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// ListItems handles GET /items.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	var limit, offset *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid limit: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", q, &offset); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid offset: "+err.Error())
		return
	}

	l := defaultListLimit
	if limit != nil {
		l = *limit
	}
	o := derefInt(offset)
	if l <= 0 || l > maxListLimit {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
		return
	}
	if o < 0 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "offset must not be negative")
		return
	}

	items, total, err := s.library.List(r.Context(), l, o)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ItemListResponse{
		Items:   itemsToDTO(items),
		Total:   total,
		Limit:   l,
		Offset:  o,
		HasMore: o+len(items) < total,
	})
}

// SaveItem handles POST /items.
func (s *Server) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	it, created, err := s.library.Save(r.Context(), draftFromRequest(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/items/"+it.ID())
	}
	writeJSON(w, status, itemToDTO(&it))
}

// ImportItems handles POST /items/import with a JSON export body.
func (s *Server) ImportItems(w http.ResponseWriter, r *http.Request) {
	items, err := itemrepo.Decode(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	n, err := s.library.Import(r.Context(), items)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Items: n})
}

// ReloadItems handles POST /items/reload.
func (s *Server) ReloadItems(w http.ResponseWriter, r *http.Request) {
	n, err := s.library.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CountResponse{Items: n})
}

// GetItem handles GET /items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToDTO(&it))
}

// DeleteItem handles DELETE /items/{id}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.library.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	searchReq, err := searchRequestFromDTO(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), &searchReq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(&page))
}

// CurrentSearch handles GET /search.
func (s *Server) CurrentSearch(w http.ResponseWriter, r *http.Request) {
	page := s.search.Current()
	resp := CurrentSearchResponse{PageResponse: pageToDTO(&page)}
	if active, ok := s.search.Active(); ok {
		resp.Query = searchRequestToDTO(&active)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ClearSearch handles DELETE /search.
func (s *Server) ClearSearch(w http.ResponseWriter, _ *http.Request) {
	s.search.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// ApplyFilters handles POST /filter: filter-only narrowing of the working set.
func (s *Server) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := filtersFromDTO(&req.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	items := s.search.ApplyFilters(s.search.Content(), filters)
	writeJSON(w, http.StatusOK, ItemListResponse{
		Items: itemsToDTO(items),
		Total: len(items),
		Limit: len(items),
	})
}

// Suggestions handles GET /suggestions?q=&no_results=.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	var query *string
	var noResults *bool
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &query); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "no_results", q, &noResults); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid no_results: "+err.Error())
		return
	}

	var text string
	if query != nil {
		text = *query
	}
	nr := noResults != nil && *noResults
	out := s.search.Suggestions(text, s.search.Content(), nr)
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: out})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
		Items:  report.Items,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}

// requestLogger prefers the request-scoped logger set by the wide event middleware.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l := logpkg.FromContext(r.Context()); l.Core().Enabled(zap.ErrorLevel) {
		return l
	}
	return s.logger
}
