package pipeline

// Package pipeline drives one full analysis: parse and validate the input,
// run the local ORF and motif scans, then fan out to the two external
// collaborators and assemble everything into a report. A collaborator
// failure degrades its section, never the whole run.

import (
	"bytes"
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/somya-ban/genoview/internal/config"
	"github.com/somya-ban/genoview/internal/fasta"
	"github.com/somya-ban/genoview/internal/interpro"
	"github.com/somya-ban/genoview/internal/llm"
	"github.com/somya-ban/genoview/internal/motif"
	"github.com/somya-ban/genoview/internal/orf"
	"github.com/somya-ban/genoview/internal/report"
	"github.com/somya-ban/genoview/internal/seq"
)

// DomainFinder is the domain-lookup collaborator boundary.
type DomainFinder interface {
	FindDomains(ctx context.Context, queries []interpro.ProteinQuery) ([]interpro.Domain, error)
}

// Summarizer is the LLM summary collaborator boundary.
type Summarizer interface {
	Summarize(ctx context.Context, digest string) (string, error)
}

// Pipeline runs analyses with a fixed configuration. The collaborator
// fields are exported so callers (and tests) can substitute their own.
type Pipeline struct {
	Domains    DomainFinder
	Summarizer Summarizer

	SkipDomains bool
	SkipSummary bool

	cfg *config.Config
	log *log.Logger
}

// New wires a pipeline with the real collaborator clients built from cfg.
func New(cfg *config.Config, logger *log.Logger) *Pipeline {
	return &Pipeline{
		Domains:    interpro.NewClient(cfg.InterproBaseURL, cfg.EBIEmail, cfg.PollInterval, cfg.DomainTimeout),
		Summarizer: llm.NewClient(cfg.HFModelURL, cfg.HFToken, 0),
		cfg:        cfg,
		log:        logger,
	}
}

// Run analyzes one FASTA input and returns the finalized report. It fails
// only on invalid input; external-collaborator problems end up as section
// statuses inside the report.
func (p *Pipeline) Run(ctx context.Context, fastaText []byte) (*report.Report, error) {
	rec, err := fasta.ParseSingle(bytes.NewReader(fastaText))
	if err != nil {
		return nil, err
	}
	store, err := seq.New(rec.Sequence)
	if err != nil {
		return nil, err
	}
	p.log.Info("sequence accepted", "id", rec.ID(), "length", store.Length(), "rna", store.IsRNA())

	asm := report.NewAssembler(report.SequenceInfo{
		ID:         rec.ID(),
		Length:     store.Length(),
		StrandInfo: "double-stranded; reverse strand analyzed as reverse complement",
		RNA:        store.IsRNA(),
	})

	orfs := orf.NewScanner(orf.Options{
		StartCodons: p.cfg.StartCodons,
		StopCodons:  p.cfg.StopCodons,
		MinCodons:   p.cfg.MinORFCodons,
	}).Scan(store)
	_ = asm.SetORFs(orfs)
	p.log.Info("orf scan complete", "orfs", len(orfs))

	ms := motif.NewScanner(p.cfg.Motifs)
	for _, perr := range ms.Errors() {
		p.log.Warn("motif pattern rejected", "motif", perr.Name, "err", perr.Err)
	}
	matches := ms.Scan(store)
	_ = asm.SetMotifs(matches)
	p.log.Info("motif scan complete", "matches", len(matches))

	p.annotate(ctx, asm, rec, store, orfs, matches)

	return asm.Finalize()
}

// annotate runs the two external calls concurrently, each under its own
// timeout, and records their outcomes on the assembler. The assembler is
// only touched after both goroutines are done.
func (p *Pipeline) annotate(ctx context.Context, asm *report.Assembler, rec fasta.Record, store *seq.Store, orfs []orf.ORF, matches []motif.Match) {
	var queries []interpro.ProteinQuery
	for _, o := range orfs {
		if o.Translation != "" {
			queries = append(queries, interpro.ProteinQuery{ORFID: o.ID, Protein: o.Translation})
		}
	}

	var (
		wg         sync.WaitGroup
		domains    []interpro.Domain
		domainsErr error
		runDomains = !p.SkipDomains && len(queries) > 0

		summary    string
		summaryErr error
	)

	if runDomains {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dctx, cancel := context.WithTimeout(ctx, p.cfg.DomainTimeout)
			defer cancel()
			domains, domainsErr = p.Domains.FindDomains(dctx, queries)
		}()
	}

	if !p.SkipSummary {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, p.cfg.SummaryTimeout)
			defer cancel()
			digest := llm.BuildDigest(rec.ID(), store.Length(), orfs, matches)
			summary, summaryErr = p.Summarizer.Summarize(sctx, digest)
		}()
	}

	wg.Wait()

	switch {
	case !runDomains:
		_ = asm.MarkSkipped(report.SectionDomains)
		if p.SkipDomains {
			p.log.Info("domain lookup skipped by request")
		} else {
			p.log.Info("domain lookup skipped: no translated ORFs")
		}
	case domainsErr != nil:
		_ = asm.MarkFailed(report.SectionDomains)
		p.log.Error("domain lookup failed", "err", domainsErr)
	default:
		_ = asm.SetDomains(domains)
		p.log.Info("domain lookup complete", "domains", len(domains))
	}

	switch {
	case p.SkipSummary:
		_ = asm.MarkSkipped(report.SectionSummary)
		p.log.Info("summary skipped by request")
	case summaryErr != nil:
		_ = asm.MarkFailed(report.SectionSummary)
		p.log.Error("summary generation failed", "err", summaryErr)
	default:
		_ = asm.SetSummary(summary)
		p.log.Info("summary generated", "chars", len(summary))
	}
}
