package seq

// Package seq holds the validated nucleotide sequence an analysis runs
// against, together with its reverse complement. Construction validates the
// alphabet once; everything downstream works on immutable strings.

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalid is returned when the input cannot be accepted as a nucleotide
// sequence (empty, or characters outside the IUPAC alphabet).
var ErrInvalid = errors.New("invalid nucleotide sequence")

// Strand identifies which strand of the double-stranded sequence an analysis
// result refers to.
type Strand string

const (
	Forward Strand = "forward"
	Reverse Strand = "reverse"
)

// complement maps each IUPAC nucleotide code to its complement. Zero entries
// mark bytes outside the alphabet.
var complement [256]byte

func init() {
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
		'R': 'Y', 'Y': 'R',
		'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D',
		'N': 'N',
	}
	for b, c := range pairs {
		complement[b] = c
	}
}

// Store owns the canonical forward sequence and lazily computes its reverse
// complement. A Store is immutable after New and safe for concurrent use.
type Store struct {
	forward string
	rna     bool

	revOnce sync.Once
	revComp string
}

// New validates raw sequence text and builds a Store. Whitespace is ignored,
// case is not significant and RNA input (U instead of T) is normalized to DNA
// with the RNA origin recorded.
func New(raw string) (*Store, error) {
	var b strings.Builder
	b.Grow(len(raw))
	rna := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == 'U' {
			rna = true
			c = 'T'
		}
		if complement[c] == 0 {
			return nil, fmt.Errorf("%w: symbol %q at position %d", ErrInvalid, raw[i], i)
		}
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalid)
	}
	return &Store{forward: b.String(), rna: rna}, nil
}

// Forward returns the normalized forward-strand sequence.
func (s *Store) Forward() string { return s.forward }

// ReverseComplement returns the reverse complement of the forward strand,
// computed once on first use.
func (s *Store) ReverseComplement() string {
	s.revOnce.Do(func() {
		n := len(s.forward)
		out := make([]byte, n)
		for i := 0; i < n; i++ {
			out[i] = complement[s.forward[n-1-i]]
		}
		s.revComp = string(out)
	})
	return s.revComp
}

// Strand returns the sequence as read on the given strand.
func (s *Store) Strand(st Strand) string {
	if st == Reverse {
		return s.ReverseComplement()
	}
	return s.forward
}

// Length returns the number of nucleotides.
func (s *Store) Length() int { return len(s.forward) }

// IsRNA reports whether the original input used U rather than T.
func (s *Store) IsRNA() bool { return s.rna }
