package report

// Package report assembles locally computed scan results and externally
// supplied annotations into one immutable analysis record and serializes it.

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/somya-ban/genoview/internal/interpro"
	"github.com/somya-ban/genoview/internal/motif"
	"github.com/somya-ban/genoview/internal/orf"
)

// ErrIncomplete is returned when serialization is requested while a section
// is still pending (neither completed nor explicitly failed/skipped).
var ErrIncomplete = errors.New("report incomplete")

// SectionStatus records how one analysis stage ended.
type SectionStatus string

const (
	StatusPending SectionStatus = ""
	StatusOK      SectionStatus = "ok"
	StatusFailed  SectionStatus = "failed"
	StatusSkipped SectionStatus = "skipped"
)

// Section names track the four report stages.
const (
	SectionORFs    = "orfs"
	SectionMotifs  = "motifs"
	SectionDomains = "domains"
	SectionSummary = "summary"
)

// SequenceInfo is the source-sequence metadata carried into the report.
type SequenceInfo struct {
	ID         string `json:"id,omitempty"`
	Length     int    `json:"length"`
	StrandInfo string `json:"strand_info"`
	RNA        bool   `json:"rna,omitempty"`
}

// Status maps each section to its outcome.
type Status struct {
	ORFs    SectionStatus `json:"orfs"`
	Motifs  SectionStatus `json:"motifs"`
	Domains SectionStatus `json:"domains"`
	Summary SectionStatus `json:"summary"`
}

// Report is the aggregate analysis output.
type Report struct {
	Sequence    SequenceInfo      `json:"sequence"`
	ORFs        []orf.ORF         `json:"orfs"`
	Motifs      []motif.Match     `json:"motifs"`
	Domains     []interpro.Domain `json:"domains"`
	Summary     string            `json:"summary"`
	Status      Status            `json:"status"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Assembler builds a Report incrementally. Each section must end in a
// terminal status before the report can be finalized; a failed external
// call never blocks the locally computed sections.
type Assembler struct {
	report    Report
	finalized bool
}

// NewAssembler starts an empty report for the given sequence.
func NewAssembler(info SequenceInfo) *Assembler {
	return &Assembler{report: Report{
		Sequence: info,
		ORFs:     []orf.ORF{},
		Motifs:   []motif.Match{},
		Domains:  []interpro.Domain{},
	}}
}

// SetORFs records the ORF section as completed.
func (a *Assembler) SetORFs(orfs []orf.ORF) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if orfs != nil {
		a.report.ORFs = orfs
	}
	a.report.Status.ORFs = StatusOK
	return nil
}

// SetMotifs records the motif section as completed.
func (a *Assembler) SetMotifs(matches []motif.Match) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if matches != nil {
		a.report.Motifs = matches
	}
	a.report.Status.Motifs = StatusOK
	return nil
}

// SetDomains records the domain section as completed.
func (a *Assembler) SetDomains(domains []interpro.Domain) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if domains != nil {
		a.report.Domains = domains
	}
	a.report.Status.Domains = StatusOK
	return nil
}

// SetSummary records the summary section as completed.
func (a *Assembler) SetSummary(summary string) error {
	if err := a.mutable(); err != nil {
		return err
	}
	a.report.Summary = summary
	a.report.Status.Summary = StatusOK
	return nil
}

// MarkFailed closes a section with a "failed" status.
func (a *Assembler) MarkFailed(section string) error { return a.close(section, StatusFailed) }

// MarkSkipped closes a section with a "skipped" status.
func (a *Assembler) MarkSkipped(section string) error { return a.close(section, StatusSkipped) }

func (a *Assembler) close(section string, st SectionStatus) error {
	if err := a.mutable(); err != nil {
		return err
	}
	switch section {
	case SectionORFs:
		a.report.Status.ORFs = st
	case SectionMotifs:
		a.report.Status.Motifs = st
	case SectionDomains:
		a.report.Status.Domains = st
	case SectionSummary:
		a.report.Status.Summary = st
	default:
		return fmt.Errorf("unknown report section %q", section)
	}
	return nil
}

func (a *Assembler) mutable() error {
	if a.finalized {
		return errors.New("report already finalized")
	}
	return nil
}

// Finalize freezes the report. It fails with ErrIncomplete while any section
// is still pending; partial results are fine as long as their sections were
// explicitly marked failed or skipped.
func (a *Assembler) Finalize() (*Report, error) {
	for section, st := range map[string]SectionStatus{
		SectionORFs:    a.report.Status.ORFs,
		SectionMotifs:  a.report.Status.Motifs,
		SectionDomains: a.report.Status.Domains,
		SectionSummary: a.report.Status.Summary,
	} {
		if st == StatusPending {
			return nil, fmt.Errorf("%w: section %q still pending", ErrIncomplete, section)
		}
	}
	if !a.finalized {
		a.report.GeneratedAt = time.Now().UTC()
		a.finalized = true
	}
	return &a.report, nil
}

// MarshalJSON serializes the finalized report with indentation, matching the
// CLI's on-disk format.
func (a *Assembler) MarshalJSON() ([]byte, error) {
	rep, err := a.Finalize()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(rep, "", "  ")
}
