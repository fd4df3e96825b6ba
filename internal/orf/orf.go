package orf

// Package orf enumerates open reading frames on both strands of a stored
// sequence, across the three reading frames of each strand.

import (
	"strconv"
	"strings"

	"github.com/somya-ban/genoview/internal/seq"
)

// ORF is one open reading frame. Positions are 0-based and relative to the
// strand the ORF was found on; End is exclusive and sits immediately after
// the stop codon when one was found.
type ORF struct {
	ID          string     `json:"orf_id,omitempty"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	Strand      seq.Strand `json:"strand"`
	Frame       int        `json:"frame"`
	Translation string     `json:"translation"`
	HasStop     bool       `json:"has_stop"`
}

// Options configures a Scanner. Zero values fall back to the defaults used
// throughout the project: ATG starts, the three standard stops, and a
// 25-codon minimum.
type Options struct {
	StartCodons []string
	StopCodons  []string
	// MinCodons is the minimum translated length (codons, stop excluded)
	// for an ORF to be reported. Negative disables the filter entirely.
	MinCodons int
}

// DefaultMinCodons is the 25-residue reporting cutoff.
const DefaultMinCodons = 25

// Scanner finds ORFs according to a fixed set of options.
type Scanner struct {
	starts map[string]bool
	stops  map[string]bool
	min    int
}

// NewScanner builds a Scanner from opts, filling in defaults.
func NewScanner(opts Options) *Scanner {
	if len(opts.StartCodons) == 0 {
		opts.StartCodons = []string{"ATG"}
	}
	if len(opts.StopCodons) == 0 {
		opts.StopCodons = []string{"TAA", "TAG", "TGA"}
	}
	min := opts.MinCodons
	if min == 0 {
		min = DefaultMinCodons
	}
	if min < 0 {
		min = 0
	}
	s := &Scanner{
		starts: make(map[string]bool, len(opts.StartCodons)),
		stops:  make(map[string]bool, len(opts.StopCodons)),
		min:    min,
	}
	for _, c := range opts.StartCodons {
		s.starts[strings.ToUpper(c)] = true
	}
	for _, c := range opts.StopCodons {
		s.stops[strings.ToUpper(c)] = true
	}
	return s
}

// Scan returns every ORF on both strands, ordered by strand (forward first),
// then frame, then ascending start position. ORF IDs are assigned in that
// order so downstream domain annotations can refer back to them.
func (s *Scanner) Scan(store *seq.Store) []ORF {
	var out []ORF
	for _, strand := range []seq.Strand{seq.Forward, seq.Reverse} {
		text := store.Strand(strand)
		for frame := 0; frame < 3; frame++ {
			out = append(out, s.scanFrame(text, strand, frame)...)
		}
	}
	for i := range out {
		out[i].ID = orfID(i)
	}
	return out
}

// scanFrame walks one strand in one frame, codon by codon. A start codon
// opens an ORF; further start codons inside an open ORF are not new starts.
// The ORF closes at a stop codon or, unterminated, at the end of the frame.
func (s *Scanner) scanFrame(text string, strand seq.Strand, frame int) []ORF {
	var orfs []ORF
	start := -1
	var protein strings.Builder

	flush := func(end int, hasStop bool) {
		tr := protein.String()
		if len(tr) >= s.min {
			orfs = append(orfs, ORF{
				Start:       start,
				End:         end,
				Strand:      strand,
				Frame:       frame,
				Translation: tr,
				HasStop:     hasStop,
			})
		}
		start = -1
		protein.Reset()
	}

	for i := frame; i+3 <= len(text); i += 3 {
		codon := text[i : i+3]
		if start == -1 {
			if s.starts[codon] {
				start = i
				protein.WriteByte(translateResidue(codon))
			}
			continue
		}
		if s.stops[codon] {
			flush(i+3, true)
			continue
		}
		protein.WriteByte(translateResidue(codon))
	}
	if start != -1 {
		// ran off the sequence without a stop; the trailing partial
		// codon (if any) is covered by extending End to the strand end
		flush(len(text), false)
	}
	return orfs
}

// translateResidue translates one codon for inclusion in a protein. Codons
// whose expansions disagree, or that could only be stops outside the
// configured stop set, come out as the placeholder residue.
func translateResidue(codon string) byte {
	aa := translateCodon(codon)
	if aa == '*' {
		return 'X'
	}
	return aa
}

// orfID yields orf_1, orf_2, ... in report order.
func orfID(i int) string {
	return "orf_" + strconv.Itoa(i+1)
}
