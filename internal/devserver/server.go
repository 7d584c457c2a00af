package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"quotedesk/internal/api"
	"quotedesk/internal/debug"
	appErrors "quotedesk/internal/errors"
)

var serverLog = debug.Scope("devserver")

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Endpoint labels used in metrics.
const (
	EndpointListQuotations = "list_quotations"
	EndpointGetQuotation   = "get_quotation"
	EndpointProjects       = "projects"
	EndpointSuppliers      = "suppliers"
)

// Server answers the REST calls the quotation client makes.
type Server struct {
	store   *Store
	metrics *Metrics
}

// NewServer serves store. A nil metrics gets a fresh registry.
func NewServer(store *Store, metrics *Metrics) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{store: store, metrics: metrics}
}

// Metrics exposes the server's instruments.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler routes every endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/quotations", s.metrics.instrument(EndpointListQuotations, requireUser(s.handleListQuotations)))
	mux.HandleFunc("GET /api/quotations/{id}", s.metrics.instrument(EndpointGetQuotation, requireUser(s.handleGetQuotation)))
	mux.HandleFunc("GET /api/projects", s.metrics.instrument(EndpointProjects, requireUser(s.handleProjects)))
	mux.HandleFunc("GET /api/suppliers", s.metrics.instrument(EndpointSuppliers, requireUser(s.handleSuppliers)))
	mux.Handle("GET /metrics", s.metrics.Handler())
	return withJSONHeaders(mux)
}

func withJSONHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}

// requireUser rejects calls without an X-User-ID header.
func requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(api.HeaderUserID)) == "" {
			writeError(w, http.StatusUnauthorized, "missing "+api.HeaderUserID+" header")
			return
		}
		next(w, r)
	}
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(api.HeaderUserID))
}

// paging reads page and size, clamping size to (0, maxPageSize].
func paging(r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	page, size := 0, defaultPageSize
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		page = n
	}
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return 0, 0, false
		}
		size = min(n, maxPageSize)
	}
	return page, size, true
}

func (s *Server) handleListQuotations(w http.ResponseWriter, r *http.Request) {
	page, size, ok := paging(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page or size")
		return
	}
	q := r.URL.Query()
	filter := QuotationFilter{
		OwnerID:     userID(r),
		Keyword:     q.Get("keyword"),
		States:      upper(q["states"]),
		ProjectIDs:  q["projectIds"],
		SupplierIDs: q["supplierIds"],
		Page:        page,
		Size:        size,
	}
	rows, total, err := s.store.ListQuotations(r.Context(), filter)
	if err != nil {
		s.fail(w, "list quotations", err)
		return
	}
	writeJSON(w, http.StatusOK, api.PageDTO[api.QuotationDTO]{Content: rows, Page: page, Size: size, TotalElements: total})
}

func (s *Server) handleGetQuotation(w http.ResponseWriter, r *http.Request) {
	detail, err := s.store.GetQuotation(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		s.fail(w, "get quotation", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	page, size, ok := paging(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page or size")
		return
	}
	rows, total, err := s.store.SearchProjects(r.Context(), r.URL.Query().Get("keyword"), page, size)
	if err != nil {
		s.fail(w, "search projects", err)
		return
	}
	writeJSON(w, http.StatusOK, api.PageDTO[api.ProjectDTO]{Content: rows, Page: page, Size: size, TotalElements: total})
}

func (s *Server) handleSuppliers(w http.ResponseWriter, r *http.Request) {
	page, size, ok := paging(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page or size")
		return
	}
	rows, total, err := s.store.SearchSuppliers(r.Context(), r.URL.Query().Get("keyword"), page, size)
	if err != nil {
		s.fail(w, "search suppliers", err)
		return
	}
	writeJSON(w, http.StatusOK, api.PageDTO[api.SupplierDTO]{Content: rows, Page: page, Size: size, TotalElements: total})
}

// fail maps a store error onto a response.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if appErrors.IsCode(err, appErrors.CodeNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	serverLog.Logf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, op+" failed")
}

func upper(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		serverLog.Logf("encode response: %v", err)
	}
}
