package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/somya-ban/genoview/internal/motif"
	"github.com/somya-ban/genoview/internal/orf"
	"github.com/somya-ban/genoview/internal/seq"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestSummarize(t *testing.T) {
	httpClient = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("missing bearer token, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "ORFs found") {
			t.Fatalf("digest not forwarded: %s", body)
		}
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`[{"generated_text": " A short coding region was found. "}]`)),
			Header:     make(http.Header),
		}, nil
	})}

	c := NewClient("https://example.org/model", "tok", 0)
	got, err := c.Summarize(context.Background(), "ORFs found: 1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A short coding region was found." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummarizeRequiresToken(t *testing.T) {
	c := NewClient("", "", 0)
	if _, err := c.Summarize(context.Background(), "digest"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestSummarizeRejectsBadResponse(t *testing.T) {
	httpClient = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(`{"error": "model loading"}`)),
			Header:     make(http.Header),
		}, nil
	})}
	c := NewClient("", "tok", 0)
	if _, err := c.Summarize(context.Background(), "digest"); err == nil {
		t.Fatal("expected error for non-list response")
	}
}

func TestBuildDigest(t *testing.T) {
	orfs := []orf.ORF{
		{ID: "orf_1", Start: 0, End: 9, Strand: seq.Forward, Translation: "MK", HasStop: true},
		{ID: "orf_2", Start: 3, End: 30, Strand: seq.Reverse, Translation: "MKTAYIAK", HasStop: false},
	}
	motifs := []motif.Match{
		{Name: "TATA_BOX_LIKE", Strand: seq.Forward, Start: 2, End: 9},
		{Name: "TATA_BOX_LIKE", Strand: seq.Reverse, Start: 5, End: 12},
	}
	digest := BuildDigest("seq1", 120, orfs, motifs)

	for _, want := range []string{
		"sequence seq1 (120 bp)",
		"ORFs found: 2",
		"Longest ORF: 8 residues on the reverse strand",
		"ORFs with a stop codon: 1 of 2",
		"TATA_BOX_LIKE: 2 occurrence(s)",
	} {
		if !strings.Contains(digest, want) {
			t.Fatalf("digest missing %q:\n%s", want, digest)
		}
	}
}
