package fasta

import (
	"errors"
	"strings"
	"testing"

	"github.com/somya-ban/genoview/internal/seq"
)

func TestParseSimple(t *testing.T) {
	input := ">seq1\nATGC\n>seq2 desc\nGGTT\n"
	recs := Parse(strings.NewReader(input))
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Header != "seq1" || recs[0].Sequence != "ATGC" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].Header != "seq2 desc" || recs[1].Sequence != "GGTT" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
	if recs[1].ID() != "seq2" {
		t.Fatalf("unexpected ID: %q", recs[1].ID())
	}
}

func TestParseMultilineSequence(t *testing.T) {
	input := ">seq1 sample\nATGC\nGGTT\n"
	recs := Parse(strings.NewReader(input))
	if len(recs) != 1 || recs[0].Sequence != "ATGCGGTT" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestParseSingle(t *testing.T) {
	rec, err := ParseSingle(strings.NewReader(">seq1\nATGAAATAG\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Sequence != "ATGAAATAG" {
		t.Fatalf("unexpected sequence: %q", rec.Sequence)
	}
}

func TestParseSingleRejects(t *testing.T) {
	cases := map[string]string{
		"empty input":    "",
		"multi record":   ">a\nATG\n>b\nTGA\n",
		"empty sequence": ">a\n",
	}
	for name, input := range cases {
		if _, err := ParseSingle(strings.NewReader(input)); !errors.Is(err, seq.ErrInvalid) {
			t.Fatalf("%s: expected seq.ErrInvalid, got %v", name, err)
		}
	}
}
