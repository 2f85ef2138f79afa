package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/contractlens/legal-intel/internal/core/domain"
	"github.com/contractlens/legal-intel/internal/core/ports"
	"github.com/contractlens/legal-intel/internal/observability/metrics"
)

// DashboardRenderer turns dashboard counts into a downloadable workbook.
type DashboardRenderer interface {
	Render(counts domain.DashboardCounts) ([]byte, error)
}

type Router struct {
	ingestor     ports.DocumentIngestor
	querySvc     ports.DocumentQueryService
	reader       ports.DocumentReader
	dashboard    ports.DashboardService
	reclassifier ports.DocumentReclassifier
	renderer     DashboardRenderer

	metrics        *metrics.HTTPServerMetrics
	service        string
	maxUploadBytes int64
	rateLimitRPS   int
	rateLimitBurst int
}

type RouterConfig struct {
	Service        string
	MaxUploadBytes int64
	RateLimitRPS   int
	RateLimitBurst int
}

func NewRouter(
	cfg RouterConfig,
	ingestor ports.DocumentIngestor,
	querySvc ports.DocumentQueryService,
	reader ports.DocumentReader,
	dashboard ports.DashboardService,
	reclassifier ports.DocumentReclassifier,
	renderer DashboardRenderer,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	service := cfg.Service
	if service == "" {
		service = "api"
	}
	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	return &Router{
		ingestor:       ingestor,
		querySvc:       querySvc,
		reader:         reader,
		dashboard:      dashboard,
		reclassifier:   reclassifier,
		renderer:       renderer,
		metrics:        serverMetrics,
		service:        service,
		maxUploadBytes: maxUploadBytes,
		rateLimitRPS:   cfg.RateLimitRPS,
		rateLimitBurst: cfg.RateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.Handle("/metrics", rt.metrics.Handler())
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/query", rt.query)
	mux.HandleFunc("/v1/dashboard", rt.dashboardCounts)
	mux.HandleFunc("/v1/dashboard/export", rt.dashboardExport)

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(rt.service, handler)
	handler = rateLimitMiddleware(rt.rateLimitRPS, rt.rateLimitBurst, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocuments(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocuments(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)
	if err := r.ParseMultipartForm(rt.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}

	uploads := make([]ports.FileUpload, 0, len(headers))
	for _, header := range headers {
		data, err := readUpload(header)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("read file %q: %v", header.Filename, err)})
			return
		}
		uploads = append(uploads, ports.FileUpload{Filename: header.Filename, Data: data})
	}

	report, err := rt.ingestor.UploadBatch(r.Context(), uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	rt.metrics.RecordIngest(rt.service, report.Processed, report.Failed)
	writeJSON(w, http.StatusOK, report)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := rt.reader.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": docs,
		"total":     len(docs),
	})
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id, ok := strings.CutSuffix(rest, "/reclassify"); ok {
		rt.reclassify(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.reader.GetByID(r.Context(), rest)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) reclassify(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	if err := rt.reclassifier.RequestReclassify(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"document_id": id,
		"status":      "queued",
	})
}

func (rt *Router) query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	intent, results, err := rt.querySvc.Ask(r.Context(), req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	rt.metrics.RecordQuery(rt.service, string(intent.Category), len(results))
	writeJSON(w, http.StatusOK, map[string]any{
		"intent":  intent,
		"results": results,
		"total":   len(results),
	})
}

func (rt *Router) dashboardCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	counts, err := rt.dashboard.Aggregate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (rt *Router) dashboardExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	counts, err := rt.dashboard.Aggregate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := rt.renderer.Render(counts)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("dashboard-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
