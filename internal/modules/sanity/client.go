package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var apiVersionPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Config holds connection settings for the content store.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string // YYYY-MM-DD, pins query-language compatibility
	UseCDN     bool   // cached reads vs strongly-consistent reads
	Token      string // credential required for create operations

	// QueryBaseURL / MutateBaseURL override the hosted endpoints; used by
	// tests and self-hosted mirrors. Left empty in production.
	QueryBaseURL  string
	MutateBaseURL string
}

// Client is a thin wrapper over the store's HTTP query and mutate endpoints.
// Reads may go through the CDN host with bounded staleness; writes always hit
// the consistent host. It provides no atomic check-and-create.
type Client struct {
	cfg       Config
	http      *http.Client
	queryURL  string
	mutateURL string
}

// New validates the configuration and builds a client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("sanity: project id is required")
	}
	if strings.TrimSpace(cfg.Dataset) == "" {
		return nil, errors.New("sanity: dataset is required")
	}
	if !apiVersionPattern.MatchString(cfg.APIVersion) {
		return nil, fmt.Errorf("sanity: api version %q must be YYYY-MM-DD", cfg.APIVersion)
	}

	queryHost := "api.sanity.io"
	if cfg.UseCDN {
		queryHost = "apicdn.sanity.io"
	}
	queryURL := cfg.QueryBaseURL
	if queryURL == "" {
		queryURL = fmt.Sprintf("https://%s.%s/v%s", cfg.ProjectID, queryHost, cfg.APIVersion)
	}
	mutateURL := cfg.MutateBaseURL
	if mutateURL == "" {
		mutateURL = fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.ProjectID, cfg.APIVersion)
	}

	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: 15 * time.Second},
		queryURL:  strings.TrimRight(queryURL, "/"),
		mutateURL: strings.TrimRight(mutateURL, "/"),
	}, nil
}

// Fetch runs a GROQ query with named parameters and decodes the result field
// into out. Parameters travel as $name query values, JSON-encoded, so caller
// input never interpolates into the query string itself.
func (c *Client) Fetch(ctx context.Context, query string, params map[string]string, out any) error {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return &QueryError{Err: fmt.Errorf("encode param %s: %w", name, err)}
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.queryURL, c.cfg.Dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &QueryError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &QueryError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &QueryError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &QueryError{Status: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &QueryError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if out == nil || len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return &QueryError{Err: fmt.Errorf("decode result: %w", err)}
	}
	return nil
}

// Create submits a single create mutation and returns the new document id.
func (c *Client) Create(ctx context.Context, doc map[string]any) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"mutations": []map[string]any{{"create": doc}},
	})
	if err != nil {
		return "", &WriteError{Err: err}
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnIds=true", c.mutateURL, c.cfg.Dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &WriteError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &WriteError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &WriteError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &WriteError{Status: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	var result struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &WriteError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(result.Results) == 0 {
		return "", &WriteError{Status: resp.StatusCode, Message: "mutation returned no results"}
	}
	return result.Results[0].ID, nil
}

// apiErrorMessage pulls the human-readable description out of an API error
// body, falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var apiErr struct {
		Error struct {
			Description string `json:"description"`
			Type        string `json:"type"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		if apiErr.Error.Description != "" {
			return apiErr.Error.Description
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return msg
}
