package motif

// Package motif reports every occurrence of a set of named patterns on both
// strands of a sequence. Matching is anchored at every position so that
// overlapping occurrences of the same motif are all reported; a plain
// FindAll pass would silently drop them.

import (
	"fmt"
	"regexp"

	"github.com/somya-ban/genoview/internal/seq"
)

// Motif is a named pattern. Pattern is a regular expression over the
// nucleotide alphabet; declaration order is preserved in the output.
type Motif struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// Match is one occurrence of a motif. Positions are 0-based, End exclusive,
// relative to the strand the match was found on.
type Match struct {
	Name   string     `json:"name"`
	Strand seq.Strand `json:"strand"`
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Match  string     `json:"match"`
}

// PatternError reports a motif whose pattern failed to compile. Scanning of
// the remaining motifs continues.
type PatternError struct {
	Name string
	Err  error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("motif %q: invalid pattern: %v", e.Name, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Defaults are the built-in promoter-element motifs.
func Defaults() []Motif {
	return []Motif{
		{Name: "TATA_BOX_LIKE", Pattern: `TATA[AT]A[AT]`},
		{Name: "GC_BOX_LIKE", Pattern: `GGGCGG`},
		{Name: "INR_LIKE", Pattern: `[CT][CT]A[AGCT][AT][CT][CT]`},
		{Name: "CAAT_BOX_LIKE", Pattern: `GG[CT]CAATCT`},
	}
}

// Scanner matches an ordered motif set against sequences.
type Scanner struct {
	motifs   []Motif
	compiled []*regexp.Regexp
	errs     []*PatternError
}

// NewScanner compiles the given motifs (Defaults() when empty). Motifs with
// malformed patterns are dropped from scanning and reported via Errors().
func NewScanner(motifs []Motif) *Scanner {
	if len(motifs) == 0 {
		motifs = Defaults()
	}
	s := &Scanner{}
	for _, m := range motifs {
		// anchored compile so a test at position i looks only at i
		re, err := regexp.Compile(`^(?:` + m.Pattern + `)`)
		if err != nil {
			s.errs = append(s.errs, &PatternError{Name: m.Name, Err: err})
			continue
		}
		s.motifs = append(s.motifs, m)
		s.compiled = append(s.compiled, re)
	}
	return s
}

// Errors returns one PatternError per motif that failed to compile.
func (s *Scanner) Errors() []*PatternError { return s.errs }

// Scan reports all matches on both strands, grouped by strand, then motif
// declaration order, then ascending start position.
func (s *Scanner) Scan(store *seq.Store) []Match {
	var out []Match
	for _, strand := range []seq.Strand{seq.Forward, seq.Reverse} {
		text := store.Strand(strand)
		for mi, re := range s.compiled {
			out = append(out, s.scanStrand(text, strand, s.motifs[mi].Name, re)...)
		}
	}
	return out
}

// scanStrand slides a one-symbol window over text and tests the anchored
// pattern at every offset, so overlapping occurrences are all found.
func (s *Scanner) scanStrand(text string, strand seq.Strand, name string, re *regexp.Regexp) []Match {
	var matches []Match
	for i := 0; i < len(text); i++ {
		loc := re.FindStringIndex(text[i:])
		if loc == nil || loc[1] == 0 {
			continue
		}
		matches = append(matches, Match{
			Name:   name,
			Strand: strand,
			Start:  i,
			End:    i + loc[1],
			Match:  text[i : i+loc[1]],
		})
	}
	return matches
}
