package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/somya-ban/genoview/internal/config"
	"github.com/somya-ban/genoview/internal/fasta"
	"github.com/somya-ban/genoview/internal/pipeline"
)

// server holds the pieces the HTTP handlers need.
type server struct {
	cfg     *config.Config
	log     *log.Logger
	dataDir string
	newPipe func() *pipeline.Pipeline
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readFasta pulls FASTA text from a multipart "fasta" part or from the raw body.
func readFasta(r *http.Request) ([]byte, error) {
	ct := r.Header.Get("Content-Type")
	if len(ct) >= 19 && ct[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			return nil, err
		}
		f, _, err := r.FormFile("fasta")
		if err != nil {
			return nil, fmt.Errorf("missing multipart part %q: %w", "fasta", err)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, 8<<20))
	}
	return io.ReadAll(io.LimitReader(r.Body, 8<<20))
}

func (s *server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	data, err := readFasta(r)
	if err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, "request must carry FASTA text in the body or a 'fasta' multipart part")
		return
	}
	recs := fasta.Parse(bytes.NewReader(data))
	seqID := ""
	if len(recs) == 1 {
		seqID = recs[0].ID()
	}

	now := time.Now().UTC()
	job := AnalysisJob{
		ID:         uuid.New().String(),
		SequenceID: seqID,
		State:      "queued",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := upsertJob(job); err != nil {
		s.log.Error("failed to persist job", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to persist job")
		return
	}

	go s.runAnalysis(job, data)
	writeJSON(w, http.StatusAccepted, job)
}

// runAnalysis executes the pipeline in the background and records the outcome.
func (s *server) runAnalysis(job AnalysisJob, data []byte) {
	job.State = "running"
	job.UpdatedAt = time.Now().UTC()
	if err := upsertJob(job); err != nil {
		s.log.Error("failed to mark job running", "job", job.ID, "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	rep, err := s.newPipe().Run(ctx, data)
	job.UpdatedAt = time.Now().UTC()
	if err != nil {
		job.State = "failed"
		job.Message = err.Error()
		s.log.Error("analysis failed", "job", job.ID, "err", err)
		if perr := upsertJob(job); perr != nil {
			s.log.Error("failed to persist failed job", "job", job.ID, "err", perr)
		}
		return
	}
	out, err := json.MarshalIndent(rep, "", "  ")
	if err == nil {
		err = os.WriteFile(reportPath(s.dataDir, job.ID), out, 0o644)
	}
	if err != nil {
		job.State = "failed"
		job.Message = "failed to store report: " + err.Error()
	} else {
		job.State = "done"
		job.SequenceID = rep.Sequence.ID
		job.Message = ""
	}
	if perr := upsertJob(job); perr != nil {
		s.log.Error("failed to persist finished job", "job", job.ID, "err", perr)
	}
	s.log.Info("analysis job finished", "job", job.ID, "state", job.State,
		"orfs", len(rep.ORFs), "motifs", len(rep.Motifs))
}

func (s *server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	jobsMu.Lock()
	jobs, err := loadJobs(jobsPath)
	jobsMu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load jobs")
		return
	}
	if jobs == nil {
		jobs = []AnalysisJob{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok, err := findJob(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load jobs")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *server) getReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok, err := findJob(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load jobs")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	if job.State != "done" {
		writeError(w, http.StatusConflict, "analysis is "+job.State)
		return
	}
	data, err := os.ReadFile(reportPath(s.dataDir, id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "report file missing")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api/analyses", func(r chi.Router) {
		r.Post("/", s.createAnalysis)
		r.Get("/", s.listAnalyses)
		r.Get("/{id}", s.getAnalysis)
		r.Get("/{id}/report", s.getReport)
	})
	return r
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dataDir := flag.String("data", "data", "directory for stored reports")
	store := flag.String("jobs-store", "json", "jobs persistence backend: json or sqlite")
	storePath := flag.String("jobs-path", "", "jobs store path (default data/jobs.json or data/jobs.db)")
	skipDomains := flag.Bool("skip-domains", false, "skip the InterProScan domain lookup for all jobs")
	skipLLM := flag.Bool("skip-llm", false, "skip the LLM summary for all jobs")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "genoview-web"})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", "err", err)
	}
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		logger.Fatal("failed to create data dir", "dir", *dataDir, "err", err)
	}
	path := *storePath
	if path == "" {
		if *store == "sqlite" {
			path = *dataDir + "/jobs.db"
		} else {
			path = *dataDir + "/jobs.json"
		}
	}
	if err := initJobsStore(*store, path); err != nil {
		logger.Fatal("failed to init jobs store", "store", *store, "err", err)
	}

	s := &server{
		cfg:     cfg,
		log:     logger,
		dataDir: *dataDir,
		newPipe: func() *pipeline.Pipeline {
			p := pipeline.New(cfg, logger)
			p.SkipDomains = *skipDomains
			p.SkipSummary = *skipLLM
			return p
		},
	}

	srv := &http.Server{
		Addr:         *addr,
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	logger.Info("serving analysis API", "addr", *addr, "jobs_store", *store, "jobs_path", path)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", "err", err)
	}
}
