package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
	"github.com/Piyush-6177/Exam-Pilot/internal/core/usecase"
)

type RouterConfig struct {
	MaxUploadBytes int64
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

type Router struct {
	gateUC *usecase.GateUseCase
	jobsUC *usecase.AnalysisJobsUseCase
	cfg    RouterConfig
}

func NewRouter(
	gateUC *usecase.GateUseCase,
	jobsUC *usecase.AnalysisJobsUseCase,
	cfg RouterConfig,
) *Router {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	return &Router{
		gateUC: gateUC,
		jobsUC: jobsUC,
		cfg:    cfg,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents/check", rt.checkDocument)
	mux.HandleFunc("/v1/analyses", rt.createAnalysis)
	mux.HandleFunc("/v1/analyses/", rt.analysisByID)

	var handler http.Handler = mux
	if rt.cfg.MaxInFlight > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.MaxInFlight, 100*time.Millisecond)
	}
	if rt.cfg.RateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// checkDocument runs the soft per-file gate at file-selection time. The
// response never blocks an upload; a "warned" outcome is advisory.
func (rt *Router) checkDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)

	doc, ok := rt.readUpload(w, r, "file")
	if !ok {
		return
	}

	decision := rt.gateUC.CheckFile(r.Context(), doc)
	writeJSON(w, http.StatusOK, decision)
}

// createAnalysis accepts both documents and starts a background run. The
// client polls the returned job id for progress and the result.
func (rt *Router) createAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)

	syllabus, ok := rt.readUpload(w, r, "syllabus")
	if !ok {
		return
	}
	pastPapers, ok := rt.readUpload(w, r, "past_papers")
	if !ok {
		return
	}

	job, err := rt.jobsUC.Start(r.Context(), syllabus, pastPapers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (rt *Router) analysisByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/analyses/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "analysis id is required"})
		return
	}

	switch sub {
	case "":
		rt.getAnalysis(w, r, id)
	case "export":
		rt.exportAnalysis(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	job, err := rt.jobsUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request, field string) (*domain.UploadedDocument, bool) {
	file, fileHeader, err := r.FormFile(field)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "multipart field '" + field + "' is required",
		})
		return nil, false
	}
	defer file.Close()

	content, err := readAll(file, rt.cfg.MaxUploadBytes)
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
		return nil, false
	}

	return &domain.UploadedDocument{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  content,
	}, true
}

func readAll(file io.Reader, maxBytes int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if n > maxBytes {
		return nil, fmt.Errorf("upload exceeds %d bytes", maxBytes)
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
