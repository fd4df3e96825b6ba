package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/somya-ban/genoview/internal/config"
	"github.com/somya-ban/genoview/internal/pipeline"
	"github.com/somya-ban/genoview/internal/seq"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a
// timestamped line to the underlying writer. Partial lines stay buffered.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return n, err
		}
	}
	return n, nil
}

func newLogger(cfg *config.Config, verbose bool) *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	logger := log.New(&timestampWriter{w: out})
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

func main() {
	inputFlag := flag.String("in", "", "input FASTA file path (single record); '-' reads stdin")
	outputFlag := flag.String("out", "report.json", "output JSON report path; '-' writes stdout")
	minORF := flag.Int("min-orf", 0, "minimum ORF length in codons (0 uses config/default, negative disables)")
	skipDomains := flag.Bool("skip-domains", false, "skip the InterProScan domain lookup")
	skipLLM := flag.Bool("skip-llm", false, "skip the LLM summary")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("genoview", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "genoview:", err)
		os.Exit(1)
	}
	if *minORF != 0 {
		cfg.MinORFCodons = *minORF
	}

	logger := newLogger(cfg, *verbose)
	logger.Info("starting genoview", "version", version, "in", *inputFlag, "out", *outputFlag,
		"min_orf_codons", cfg.MinORFCodons, "skip_domains", *skipDomains, "skip_llm", *skipLLM)

	if *inputFlag == "" {
		logger.Fatal("no input file; pass -in <file.fasta>")
	}
	var data []byte
	if *inputFlag == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*inputFlag)
	}
	if err != nil {
		logger.Fatal("failed to read input fasta", "path", *inputFlag, "err", err)
	}

	if cfg.EBIEmail == "" && !*skipDomains {
		logger.Warn("EBI_EMAIL not set; domain lookup will be recorded as failed")
	}
	if cfg.HFToken == "" && !*skipLLM {
		logger.Warn("HF_API_TOKEN not set; summary will be recorded as failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg, logger)
	p.SkipDomains = *skipDomains
	p.SkipSummary = *skipLLM

	start := time.Now()
	rep, err := p.Run(ctx, data)
	if err != nil {
		if errors.Is(err, seq.ErrInvalid) {
			logger.Fatal("input rejected", "err", err)
		}
		logger.Fatal("analysis failed", "err", err)
	}
	logger.Info("analysis finished", "duration_ms", time.Since(start).Milliseconds(),
		"orfs", len(rep.ORFs), "motifs", len(rep.Motifs), "domains", len(rep.Domains),
		"status_domains", rep.Status.Domains, "status_summary", rep.Status.Summary)

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		logger.Fatal("json marshal failed", "err", err)
	}
	if *outputFlag == "-" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(*outputFlag, out, 0o644); err != nil {
		logger.Fatal("failed to write report", "path", *outputFlag, "err", err)
	}
	logger.Info("wrote report", "path", *outputFlag, "bytes", len(out))
}
