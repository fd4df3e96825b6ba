package seq

import (
	"errors"
	"testing"
)

func TestReverseComplement(t *testing.T) {
	s, err := New("ATGC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.ReverseComplement(); got != "GCAT" {
		t.Fatalf("expected GCAT, got %q", got)
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	for _, in := range []string{"A", "ATGC", "ATGAAATAG", "ACGTNRYSWKMBDHV"} {
		s, err := New(in)
		if err != nil {
			t.Fatalf("New(%q): %v", in, err)
		}
		rc, err := New(s.ReverseComplement())
		if err != nil {
			t.Fatalf("New(revcomp(%q)): %v", in, err)
		}
		if rc.ReverseComplement() != s.Forward() {
			t.Fatalf("revcomp(revcomp(%q)) = %q, want %q", in, rc.ReverseComplement(), s.Forward())
		}
	}
}

func TestInvalidSymbol(t *testing.T) {
	if _, err := New("ATGZ"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for Z, got %v", err)
	}
	if _, err := New(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty sequence, got %v", err)
	}
	if _, err := New("  \n\t"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for whitespace-only sequence, got %v", err)
	}
}

func TestRNANormalization(t *testing.T) {
	s, err := New("augc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Forward() != "ATGC" {
		t.Fatalf("expected ATGC, got %q", s.Forward())
	}
	if !s.IsRNA() {
		t.Fatal("expected RNA flag to be set")
	}
}

func TestStrandAccess(t *testing.T) {
	s, err := New("AACG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Strand(Forward) != "AACG" {
		t.Fatalf("unexpected forward strand %q", s.Strand(Forward))
	}
	if s.Strand(Reverse) != "CGTT" {
		t.Fatalf("unexpected reverse strand %q", s.Strand(Reverse))
	}
	if s.Length() != 4 {
		t.Fatalf("unexpected length %d", s.Length())
	}
}
