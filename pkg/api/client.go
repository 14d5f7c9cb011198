// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
Package api provides the typed HTTP client for the ML Studio backend.

# Problem Statement

The backend exposes a small JSON-over-HTTP surface (health, upload, analyze,
dataset lookups). Callers need typed requests and responses, and a single
place where transport failures and non-success responses are translated into
a stable error taxonomy, so the orchestration layer never inspects HTTP
status codes or raw JSON itself.

# Solution

Client wraps one operation per backend endpoint:

	┌──────────────────────────────────────────────────────────┐
	│                       api.Client                         │
	├──────────────────────────────────────────────────────────┤
	│  CheckHealth     GET  /health          → bool            │
	│  Upload          POST /upload          → UploadResult    │
	│  Analyze         POST /analyze         → []AlgorithmResult │
	│  GetColumns      GET  /get_columns/f   → []string        │
	│  GetDatasetInfo  GET  /dataset_info/f  → DatasetInfo     │
	│  ListDatasets    GET  /list_datasets   → []string        │
	│  DeleteDataset   POST /delete          → error           │
	└──────────────────────────────────────────────────────────┘

All failures come back as *Error with a Kind (network, service, protocol),
a user-facing Message, and a Detail string for logs. Success payloads are
decoded into explicit structs and structurally validated; a malformed body
is a protocol error, never a zero-valued struct handed to the caller.

# Retry Policy

None. Every request is stateless and independently retryable, so retrying
is the caller's decision. CheckHealth never returns an error at all; an
unreachable backend is simply "not connected".

# Usage

	client := api.NewClient("http://localhost:5000", logger)

	if !client.CheckHealth(ctx) {
	    return errors.New("backend is not reachable")
	}

	result, err := client.Upload(ctx, "sales.csv", file)
	if err != nil {
	    var apiErr *api.Error
	    if errors.As(err, &apiErr) {
	        fmt.Println(apiErr.Message)
	    }
	}

# Related Files

  - types.go: Wire types and their structural invariants
  - errors.go: Error taxonomy
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/AleutianAI/MLStudio/pkg/logging"
)

// Backend endpoint paths.
const (
	endpointHealth       = "/health"
	endpointUpload       = "/upload"
	endpointAnalyze      = "/analyze"
	endpointColumns      = "/get_columns"
	endpointDatasetInfo  = "/dataset_info"
	endpointListDatasets = "/list_datasets"
	endpointDelete       = "/delete"
)

// Per-operation default messages for service errors whose body carried no
// usable error field.
const (
	defaultUploadError  = "Upload failed"
	defaultAnalyzeError = "Analysis failed"
	defaultColumnsError = "Failed to load columns"
	defaultInfoError    = "Failed to load dataset info"
	defaultListError    = "Failed to list datasets"
	defaultDeleteError  = "Delete failed"
)

// Client talks to one ML Studio backend. It is stateless apart from its
// configuration and safe for concurrent use.
type Client struct {
	// baseURL is the backend URL without a trailing slash.
	baseURL string

	// httpClient is used for all requests. Timeouts are left to the
	// transport defaults; callers bound operations via context.
	httpClient *http.Client

	log *logging.Logger
}

// NewClient creates a Client for the given backend URL.
// A trailing slash on baseURL is removed. A nil logger falls back to the
// package default.
func NewClient(baseURL string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// BaseURL returns the backend URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// -----------------------------------------------------------------------------
// Health
// -----------------------------------------------------------------------------

// CheckHealth probes the backend. It reports true when the backend answered
// the health endpoint with a success status. It never returns an error:
// transport failures and non-2xx responses both mean "not connected".
func (c *Client) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpointHealth, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("health probe failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// -----------------------------------------------------------------------------
// Upload
// -----------------------------------------------------------------------------

// uploadResponse is the raw wire shape of a successful upload.
type uploadResponse struct {
	Success          bool        `json:"success"`
	Filename         string      `json:"filename"`
	OriginalFilename string      `json:"original_filename"`
	Info             DatasetInfo `json:"info"`
	Error            string      `json:"error"`
}

// Upload sends file content as a multipart form and returns the
// server-assigned dataset reference with its metadata.
//
// Failure modes:
//   - backend unreachable → *Error{Kind: KindNetwork}
//   - non-2xx response → *Error{Kind: KindService} carrying the body's
//     error field when present, else "Upload failed"
//   - malformed success payload → *Error{Kind: KindProtocol}
func (c *Client) Upload(ctx context.Context, name string, data io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, c.protocolError("upload", defaultUploadError, "building multipart form", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, c.protocolError("upload", defaultUploadError, "reading file content", err)
	}
	if err := writer.Close(); err != nil {
		return nil, c.protocolError("upload", defaultUploadError, "finalizing multipart form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpointUpload, &body)
	if err != nil {
		return nil, c.protocolError("upload", defaultUploadError, "building request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.networkError("upload", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.serviceError("upload", resp, defaultUploadError)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, c.protocolError("upload", defaultUploadError, "decoding response body", err)
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = defaultUploadError
		}
		return nil, &Error{Kind: KindService, Op: "upload", Message: msg, StatusCode: resp.StatusCode}
	}
	if decoded.Filename == "" {
		return nil, c.protocolError("upload", defaultUploadError, "response missing dataset reference", nil)
	}
	if err := decoded.Info.Validate(); err != nil {
		return nil, c.protocolError("upload", defaultUploadError, "invalid dataset metadata", err)
	}

	c.log.Info("upload complete", "dataset", decoded.Filename, "rows", decoded.Info.Rows)
	return &UploadResult{
		Filename:         decoded.Filename,
		OriginalFilename: decoded.OriginalFilename,
		Info:             decoded.Info,
	}, nil
}

// -----------------------------------------------------------------------------
// Analyze
// -----------------------------------------------------------------------------

// analyzeRequest is the wire shape of the analysis request.
type analyzeRequest struct {
	Filename   string   `json:"filename"`
	Algorithms []string `json:"algorithms"`
}

// analyzeResponse is the raw wire shape of an analysis response.
type analyzeResponse struct {
	Success bool              `json:"success"`
	Results []AlgorithmResult `json:"results"`
	Error   string            `json:"error"`
}

// Analyze runs the given algorithms against a previously uploaded dataset.
// The returned batch preserves the order the backend evaluated in; each
// entry is either a metric result or an error-tagged entry for one
// algorithm. An empty batch on a success response is a protocol error.
func (c *Client) Analyze(ctx context.Context, dataset string, algorithms []string) ([]AlgorithmResult, error) {
	payload, err := json.Marshal(analyzeRequest{Filename: dataset, Algorithms: algorithms})
	if err != nil {
		return nil, c.protocolError("analyze", defaultAnalyzeError, "encoding request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpointAnalyze,
		bytes.NewReader(payload))
	if err != nil {
		return nil, c.protocolError("analyze", defaultAnalyzeError, "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.networkError("analyze", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.serviceError("analyze", resp, defaultAnalyzeError)
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, c.protocolError("analyze", defaultAnalyzeError, "decoding response body", err)
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = defaultAnalyzeError
		}
		return nil, &Error{Kind: KindService, Op: "analyze", Message: msg, StatusCode: resp.StatusCode}
	}
	if len(decoded.Results) == 0 {
		return nil, c.protocolError("analyze", defaultAnalyzeError, "response carried no results", nil)
	}

	c.log.Info("analysis complete", "dataset", dataset, "models", len(decoded.Results))
	return decoded.Results, nil
}

// -----------------------------------------------------------------------------
// Dataset Lookups
// -----------------------------------------------------------------------------

// GetColumns returns the column names of an uploaded dataset.
// The backend does not guarantee a structured error body here, so any
// non-success response maps to a generic service error.
func (c *Client) GetColumns(ctx context.Context, dataset string) ([]string, error) {
	target := c.baseURL + endpointColumns + "/" + url.PathEscape(dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, c.protocolError("columns", defaultColumnsError, "building request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.networkError("columns", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{
			Kind: KindService, Op: "columns",
			Message: defaultColumnsError, StatusCode: resp.StatusCode,
		}
	}

	var columns []string
	if err := json.NewDecoder(resp.Body).Decode(&columns); err != nil {
		return nil, c.protocolError("columns", defaultColumnsError, "decoding response body", err)
	}
	return columns, nil
}

// GetDatasetInfo returns the metadata snapshot for an uploaded dataset.
// Like GetColumns, non-success responses are opaque and map to a generic
// service error.
func (c *Client) GetDatasetInfo(ctx context.Context, dataset string) (*DatasetInfo, error) {
	target := c.baseURL + endpointDatasetInfo + "/" + url.PathEscape(dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, c.protocolError("dataset_info", defaultInfoError, "building request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.networkError("dataset_info", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{
			Kind: KindService, Op: "dataset_info",
			Message: defaultInfoError, StatusCode: resp.StatusCode,
		}
	}

	var info DatasetInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, c.protocolError("dataset_info", defaultInfoError, "decoding response body", err)
	}
	if err := info.Validate(); err != nil {
		return nil, c.protocolError("dataset_info", defaultInfoError, "invalid dataset metadata", err)
	}
	return &info, nil
}

// listResponse is the wire shape of the dataset listing.
type listResponse struct {
	Datasets []string `json:"datasets"`
}

// ListDatasets returns the names of all datasets stored on the backend.
func (c *Client) ListDatasets(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpointListDatasets, nil)
	if err != nil {
		return nil, c.protocolError("list", defaultListError, "building request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.networkError("list", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{
			Kind: KindService, Op: "list",
			Message: defaultListError, StatusCode: resp.StatusCode,
		}
	}

	var decoded listResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, c.protocolError("list", defaultListError, "decoding response body", err)
	}
	return decoded.Datasets, nil
}

// deleteRequest is the wire shape of the delete request.
type deleteRequest struct {
	Filename string `json:"filename"`
}

// DeleteDataset removes a stored dataset from the backend.
func (c *Client) DeleteDataset(ctx context.Context, dataset string) error {
	payload, err := json.Marshal(deleteRequest{Filename: dataset})
	if err != nil {
		return c.protocolError("delete", defaultDeleteError, "encoding request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpointDelete,
		bytes.NewReader(payload))
	if err != nil {
		return c.protocolError("delete", defaultDeleteError, "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.networkError("delete", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.serviceError("delete", resp, defaultDeleteError)
	}
	io.Copy(io.Discard, resp.Body)

	c.log.Info("dataset deleted", "dataset", dataset)
	return nil
}

// -----------------------------------------------------------------------------
// Error Construction
// -----------------------------------------------------------------------------

// networkError wraps a transport failure.
func (c *Client) networkError(op string, err error) *Error {
	c.log.Warn("backend unreachable", "op", op, "error", err)
	return &Error{
		Kind:    KindNetwork,
		Op:      op,
		Message: "Cannot reach the ML Studio backend",
		Detail:  err.Error(),
		Err:     err,
	}
}

// serviceError builds a service error from a non-success response,
// preferring a server-supplied {"error": "..."} body over the default.
func (c *Client) serviceError(op string, resp *http.Response, defaultMsg string) *Error {
	msg := defaultMsg

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	c.log.Warn("backend rejected request", "op", op, "status", resp.StatusCode, "message", msg)
	return &Error{
		Kind:       KindService,
		Op:         op,
		Message:    msg,
		StatusCode: resp.StatusCode,
	}
}

// protocolError wraps a malformed payload or request construction failure.
func (c *Client) protocolError(op, msg, detail string, err error) *Error {
	if err != nil {
		detail = fmt.Sprintf("%s: %v", detail, err)
	}
	c.log.Warn("protocol error", "op", op, "detail", detail)
	return &Error{
		Kind:    KindProtocol,
		Op:      op,
		Message: msg,
		Detail:  detail,
		Err:     err,
	}
}
