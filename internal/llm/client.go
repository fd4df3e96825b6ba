package llm

// Package llm generates a free-text biological summary of the analysis
// findings through a Hugging Face style text-generation inference endpoint.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// httpClient performs requests; tests may replace it with a mock transport.
var httpClient = &http.Client{Timeout: 2 * time.Minute}

// DefaultModelURL points at a hosted instruct model suitable for short
// scientific summaries.
const DefaultModelURL = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.2"

// ErrNoToken is returned when summarization is attempted without an API
// token configured.
var ErrNoToken = errors.New("llm: API token not configured")

// Client calls one inference endpoint with a bearer token.
type Client struct {
	modelURL  string
	token     string
	maxTokens int
}

// NewClient builds a client. An empty modelURL falls back to
// DefaultModelURL; maxTokens <= 0 falls back to 150.
func NewClient(modelURL, token string, maxTokens int) *Client {
	if modelURL == "" {
		modelURL = DefaultModelURL
	}
	if maxTokens <= 0 {
		maxTokens = 150
	}
	return &Client{modelURL: modelURL, token: token, maxTokens: maxTokens}
}

type generateRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens   int     `json:"max_new_tokens"`
		Temperature    float64 `json:"temperature"`
		ReturnFullText bool    `json:"return_full_text"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Summarize sends the digest as a prompt and returns the generated summary.
func (c *Client) Summarize(ctx context.Context, digest string) (string, error) {
	if c.token == "" {
		return "", ErrNoToken
	}
	var payload generateRequest
	payload.Inputs = prompt(digest)
	payload.Parameters.MaxNewTokens = c.maxTokens
	payload.Parameters.Temperature = 0.6
	payload.Parameters.ReturnFullText = false
	payload.Options.WaitForModel = true

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out []generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("llm: unexpected response shape: %w", err)
	}
	if len(out) == 0 || strings.TrimSpace(out[0].GeneratedText) == "" {
		return "", errors.New("llm: empty generation")
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}

// prompt wraps the digest with the summarization instruction.
func prompt(digest string) string {
	return "You are a bioinformatics assistant. Summarize the following " +
		"sequence analysis results in 3-4 plain sentences for a biologist. " +
		"Mention coding potential and notable regulatory motifs.\n\n" + digest
}
