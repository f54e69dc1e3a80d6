// Package chi exposes the fieldprobe HTTP API.
package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldprobe/internal/domain"
	"github.com/kailas-cloud/fieldprobe/internal/domain/record"
	aliasuc "github.com/kailas-cloud/fieldprobe/internal/usecase/alias"
	describeuc "github.com/kailas-cloud/fieldprobe/internal/usecase/describe"
	documentuc "github.com/kailas-cloud/fieldprobe/internal/usecase/document"
	healthuc "github.com/kailas-cloud/fieldprobe/internal/usecase/health"
	inferenceuc "github.com/kailas-cloud/fieldprobe/internal/usecase/inference"
)

// Error response codes.
const (
	codeBadRequest         = "bad_request"
	codeCollectionNotFound = "collection_not_found"
	codeNotFound           = "not_found"
	codeAlreadyExists      = "already_exists"
	codeInternal           = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	documents     *documentuc.Service
	inference     *inferenceuc.Service
	describe      *describeuc.Service
	aliases       *aliasuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. describe can be nil.
func NewServer(
	documents *documentuc.Service,
	inference *inferenceuc.Service,
	describe *describeuc.Service,
	aliases *aliasuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents: documents,
		inference: inference,
		describe:  describe,
		aliases:   aliases,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCollectionNotFound, http.StatusNotFound, codeCollectionNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrInvalidDocument, http.StatusBadRequest, codeBadRequest),
		sentinelHandler(domain.ErrInvalidAlias, http.StatusBadRequest, codeBadRequest),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Put("/collections/{collection}/documents/{id}", s.UpsertDocument)
	r.Get("/collections/{collection}/documents/{id}", s.GetDocument)
	r.Delete("/collections/{collection}/documents/{id}", s.DeleteDocument)
	r.Get("/collections/{collection}/schema", s.GetSchema)
	r.Put("/aliases/{alias}", s.PutAlias)
	r.Get("/health", s.Health)
}

// UpsertDocument handles PUT /collections/{collection}/documents/{id}.
func (s *Server) UpsertDocument(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "failed to read request body")
		return
	}
	rec, err := record.Decode(bytes.TrimSpace(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	created, err := s.documents.Upsert(r.Context(), collection, id, rec)
	if err != nil {
		s.handleError(w, err, "upsert document")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"created": created})
}

// GetDocument handles GET /collections/{collection}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	rec, err := s.documents.Get(r.Context(), collection, id)
	if err != nil {
		s.handleError(w, err, "get document")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteDocument handles DELETE /collections/{collection}/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	if err := s.documents.Delete(r.Context(), collection, id); err != nil {
		s.handleError(w, err, "delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSchema handles GET /collections/{collection}/schema.
// With ?describe=true the schema is enriched with generated descriptions.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	sch, err := s.inference.GetSchema(r.Context(), collection)
	if err != nil {
		s.handleError(w, err, "get schema")
		return
	}

	if r.URL.Query().Get("describe") == "true" && s.describe != nil {
		sch = s.describe.Enrich(r.Context(), sch)
	}

	writeJSON(w, http.StatusOK, sch)
}

// PutAlias handles PUT /aliases/{alias}.
func (s *Server) PutAlias(w http.ResponseWriter, r *http.Request) {
	alias := chi.URLParam(r, "alias")

	var req struct {
		Targets []string `json:"targets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := s.aliases.Set(r.Context(), alias, req.Targets); err != nil {
		s.handleError(w, err, "set alias")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleError walks the sentinel handlers and falls back to 500.
func (s *Server) handleError(w http.ResponseWriter, err error, msg string) {
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.String("op", msg), zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, msg+" failed")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg+": "+sentinel.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
