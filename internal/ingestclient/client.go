// Package ingestclient talks to the remote recording/event-ingest service:
// requesting signed upload URLs for completed segments and posting the
// final batch of captured input events. Both calls are best-effort,
// discard-on-failure — there's no retry wrapper here, by design (see
// DESIGN.md).
package ingestclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/captureforge/engine/internal/model"
)

// Client is a thin wrapper around the two remote endpoints the engine
// depends on, plus the raw signed-URL PUT.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New builds a Client rooted at baseURL. authToken, if non-empty, is sent
// as a bearer token on every request.
func New(baseURL, authToken string) *Client {
	return &Client{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchSaveURL requests a signed upload URL for one recording fragment via
// POST /recordings/fetch_save_url. The response body is a plain-text signed
// URL, not JSON.
func (c *Client) FetchSaveURL(ctx context.Context, req model.SaveRecordingRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("ingestclient: marshal save-url request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recordings/fetch_save_url", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ingestclient: build save-url request: %w", err)
	}
	c.applyHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ingestclient: fetch save url: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ingestclient: read save-url response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ingestclient: fetch save url returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return string(bytes.TrimSpace(respBody)), nil
}

// PutSegment uploads the segment body to the signed URL returned by
// FetchSaveURL.
func (c *Client) PutSegment(ctx context.Context, signedURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ingestclient: build segment put request: %w", err)
	}
	req.Header.Set("Content-Type", "video/x-matroska")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ingestclient: put segment: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ingestclient: put segment returned status %d", resp.StatusCode)
	}
	return nil
}

// PostEvents submits the drained event batch via POST /devents/create.
// Called once at stop.
func (c *Client) PostEvents(ctx context.Context, batch model.DeventBatch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("ingestclient: marshal devent batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/devents/create", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ingestclient: build devent batch request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ingestclient: post devent batch: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ingestclient: post devent batch returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
