package fasta

// Package fasta contains minimal helpers to parse FASTA formatted data used
// by the project. It intentionally keeps parsing simple and conservative.

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/somya-ban/genoview/internal/seq"
)

// Record represents a single FASTA record (header and sequence).
type Record struct {
	Header   string
	Sequence string
}

// Parse reads FASTA records from r and returns a slice of Record.
// Lines beginning with '>' denote headers; sequence lines are concatenated.
func Parse(r io.Reader) []Record {
	scanner := bufio.NewScanner(r)
	var records []Record
	var current Record
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			if current.Header != "" {
				records = append(records, current)
			}
			current = Record{Header: strings.TrimSpace(line[1:]), Sequence: ""}
		} else {
			current.Sequence += line
		}
	}
	if current.Header != "" {
		records = append(records, current)
	}
	return records
}

// ParseSingle enforces the one-record contract of an analysis input: exactly
// one header and a non-empty sequence. Violations are reported as
// seq.ErrInvalid so callers can treat them uniformly with alphabet failures.
func ParseSingle(r io.Reader) (Record, error) {
	records := Parse(r)
	switch {
	case len(records) == 0:
		return Record{}, fmt.Errorf("%w: no FASTA record found", seq.ErrInvalid)
	case len(records) > 1:
		return Record{}, fmt.Errorf("%w: expected a single FASTA record, found %d", seq.ErrInvalid, len(records))
	}
	rec := records[0]
	if rec.Sequence == "" {
		return Record{}, fmt.Errorf("%w: record %q has an empty sequence", seq.ErrInvalid, rec.Header)
	}
	return rec, nil
}

// ID returns the first whitespace-delimited token of the header, the
// conventional sequence identifier.
func (r Record) ID() string {
	fields := strings.Fields(r.Header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
