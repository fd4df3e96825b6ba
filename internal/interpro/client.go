package interpro

// Package interpro talks to the EBI InterProScan v5 REST service: submit one
// protein per job, poll job status, then fetch and flatten the JSON result.
// The service requires a contact email with every submission.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// httpClient performs requests; tests may replace it with a mock transport.
var httpClient = &http.Client{Timeout: 60 * time.Second}

// DefaultBaseURL is the iprscan5 REST root.
const DefaultBaseURL = "https://www.ebi.ac.uk/Tools/services/rest/iprscan5"

// ErrNoEmail is returned when a lookup is attempted without the contact
// email the EBI usage policy requires.
var ErrNoEmail = errors.New("interpro: contact email not configured")

// Domain is one protein domain/signature match, flattened from the
// InterProScan result JSON and keyed back to the ORF it was found in.
type Domain struct {
	ORFID        string `json:"orf_id"`
	SourceDB     string `json:"source_db"`
	Accession    string `json:"accession"`
	Description  string `json:"description"`
	StartAA      int    `json:"start_aa"`
	EndAA        int    `json:"end_aa"`
	Evalue       string `json:"evalue"`
	InterproID   string `json:"interpro_id,omitempty"`
	InterproDesc string `json:"interpro_desc,omitempty"`
}

// ProteinQuery is one translated ORF to scan.
type ProteinQuery struct {
	ORFID   string
	Protein string
}

// Client drives the submit/poll/fetch cycle against one InterProScan
// endpoint. Construct with NewClient; the zero value is not usable.
type Client struct {
	baseURL      string
	email        string
	pollInterval time.Duration
	maxWait      time.Duration
}

// NewClient builds a client. Zero durations fall back to a 20s poll
// interval and 30min total wait, matching the service's guidance.
func NewClient(baseURL, email string, pollInterval, maxWait time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pollInterval <= 0 {
		pollInterval = 20 * time.Second
	}
	if maxWait <= 0 {
		maxWait = 30 * time.Minute
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		email:        email,
		pollInterval: pollInterval,
		maxWait:      maxWait,
	}
}

// Submit posts one protein sequence and returns the plain-text job id.
// A 429 response is retried with backoff, honoring Retry-After.
func (c *Client) Submit(ctx context.Context, q ProteinQuery) (string, error) {
	if c.email == "" {
		return "", ErrNoEmail
	}
	form := url.Values{
		"email":    {c.email},
		"title":    {"genoview_" + q.ORFID},
		"goterms":  {"false"},
		"pathways": {"false"},
		"stype":    {"p"},
		"sequence": {q.Protein},
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/run", strings.NewReader(form.Encode()))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "text/plain")

		resp, err := httpClient.Do(req)
		if err != nil {
			return "", err
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("interpro submit for %s: rate limited", q.ORFID)
			wait := time.Duration(attempt*500) * time.Millisecond
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, perr := strconv.Atoi(ra); perr == nil && secs > 0 {
					wait = time.Duration(secs) * time.Second
				}
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", fmt.Errorf("interpro submit for %s: %s: %s", q.ORFID, resp.Status, strings.TrimSpace(string(body)))
		}
		jobID := strings.TrimSpace(string(body))
		if jobID == "" {
			return "", fmt.Errorf("interpro submit for %s: empty job id", q.ORFID)
		}
		return jobID, nil
	}
	return "", lastErr
}

// Status fetches the job state (RUNNING, QUEUED, FINISHED, ERROR, FAILURE,
// NOT_FOUND) as reported by the service.
func (c *Client) Status(ctx context.Context, jobID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status/"+jobID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return "NOT_FOUND", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("interpro status for %s: %s", jobID, resp.Status)
	}
	return strings.ToUpper(strings.TrimSpace(string(body))), nil
}

// resultPayload mirrors the slice of the InterProScan result JSON we use.
type resultPayload struct {
	Results []struct {
		Matches []struct {
			Signature struct {
				Accession        string `json:"accession"`
				Name             string `json:"name"`
				Description      string `json:"description"`
				SignatureLibrary string `json:"signatureLibrary"`
				Entry            *struct {
					Accession string `json:"accession"`
					Name      string `json:"name"`
				} `json:"entry"`
			} `json:"signature"`
			Locations []struct {
				Start  int      `json:"start"`
				End    int      `json:"end"`
				Evalue *float64 `json:"evalue"`
			} `json:"locations"`
		} `json:"matches"`
	} `json:"results"`
}

// Result fetches a finished job's JSON result and flattens the matches into
// Domain records attributed to orfID.
func (c *Client) Result(ctx context.Context, jobID, orfID string) ([]Domain, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/result/"+jobID+"/json", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("interpro result for %s: %s: %s", jobID, resp.Status, strings.TrimSpace(string(body)))
	}
	var payload resultPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("interpro result for %s: decode: %w", jobID, err)
	}

	var domains []Domain
	if len(payload.Results) == 0 {
		return domains, nil
	}
	for _, m := range payload.Results[0].Matches {
		sig := m.Signature
		if sig.Accession == "" || len(m.Locations) == 0 {
			continue
		}
		loc := m.Locations[0]
		desc := sig.Name
		if desc == "" {
			desc = sig.Description
		}
		evalue := "N/A"
		if loc.Evalue != nil {
			evalue = fmt.Sprintf("%g", *loc.Evalue)
		}
		d := Domain{
			ORFID:       orfID,
			SourceDB:    strings.ToUpper(sig.SignatureLibrary),
			Accession:   sig.Accession,
			Description: desc,
			StartAA:     loc.Start,
			EndAA:       loc.End,
			Evalue:      evalue,
		}
		if sig.Entry != nil {
			d.InterproID = sig.Entry.Accession
			d.InterproDesc = sig.Entry.Name
		}
		domains = append(domains, d)
	}
	return domains, nil
}

// FindDomains runs the full cycle for a batch of proteins: submit each, then
// poll until every job reaches a terminal state or the overall deadline
// passes. Per-job failures are collected, not fatal; the error is non-nil
// only when no job could be submitted at all.
func (c *Client) FindDomains(ctx context.Context, queries []ProteinQuery) ([]Domain, error) {
	if len(queries) == 0 {
		return nil, nil
	}
	if c.email == "" {
		return nil, ErrNoEmail
	}

	type pending struct {
		jobID string
		orfID string
	}
	var jobs []pending
	var submitErr error
	for _, q := range queries {
		// the service rejects very short queries
		if len(q.Protein) < 5 {
			continue
		}
		jobID, err := c.Submit(ctx, q)
		if err != nil {
			submitErr = err
			continue
		}
		jobs = append(jobs, pending{jobID: jobID, orfID: q.ORFID})
	}
	if len(jobs) == 0 {
		if submitErr != nil {
			return nil, fmt.Errorf("interpro: no jobs submitted: %w", submitErr)
		}
		return nil, nil
	}

	deadline := time.Now().Add(c.maxWait)
	var domains []Domain
	for len(jobs) > 0 {
		if time.Now().After(deadline) {
			return domains, fmt.Errorf("interpro: %d job(s) still pending after %s", len(jobs), c.maxWait)
		}
		job := jobs[0]
		jobs = jobs[1:]

		status, err := c.Status(ctx, job.jobID)
		if err != nil {
			if ctx.Err() != nil {
				return domains, ctx.Err()
			}
			// transient; requeue
			jobs = append(jobs, job)
		} else {
			switch status {
			case "FINISHED":
				found, rerr := c.Result(ctx, job.jobID, job.orfID)
				if rerr == nil {
					domains = append(domains, found...)
				}
			case "RUNNING", "QUEUED", "PENDING":
				jobs = append(jobs, job)
			default:
				// ERROR, FAILURE, NOT_FOUND: terminal, drop the job
			}
		}

		if len(jobs) > 0 {
			select {
			case <-ctx.Done():
				return domains, ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}
	}
	return domains, nil
}
