// Package backend is the HTTP client for the AAS service. The service owns
// storage, format conversion and authentication; this client only moves JSON
// and files across its endpoints.
package backend

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
	"time"

	"github.com/rs/zerolog"

	"github.com/greentwin/aas-cockpit/internal/models"
)

// ExportRequest is the body of POST /aas/export.
type ExportRequest struct {
	ExportFormat string   `json:"exportFormat"`
	SelectedItem []string `json:"selectedItem"`
}

// Client talks to the AAS service.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// FetchAll returns the entire asset collection.
func (c *Client) FetchAll(ctx context.Context) ([]models.AssetRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/aas", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch aas collection: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var records []models.AssetRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode aas collection: %w", err)
	}
	return records, nil
}

// FetchOne looks a record up by its assetID. A missing record is not an
// error: the backend answers with an empty or null sequence and the caller
// treats nil as "create new".
func (c *Client) FetchOne(ctx context.Context, assetID string) (*models.AssetRecord, error) {
	endpoint := c.baseURL + "/aas/get?" + url.Values{"aas_url": {assetID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch aas %s: %w", assetID, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var records []models.AssetRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode aas %s: %w", assetID, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Submit posts a create/update payload. The record must already be in wire
// shape; the backend decides between insert and replace by assetID.
func (c *Client) Submit(ctx context.Context, record models.AssetRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/aas/submission", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit aas: %w", err)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("assetID", record.AssetID).Int("status", resp.StatusCode).Msg("submission")
	return checkStatus(resp)
}

// Delete removes a record by assetID.
func (c *Client) Delete(ctx context.Context, assetID string) error {
	endpoint := c.baseURL + "/aas/delete?" + url.Values{"aas_url": {assetID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete aas %s: %w", assetID, err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Import uploads an AASX/JSON file as multipart field "file".
func (c *Client) Import(ctx context.Context, filename string, file io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/aas/import", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("import aas: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Export asks the backend to render the selected records in the requested
// format ("json" or "aasx"). The caller owns the returned body and must close
// it; the download name comes from the "filenames" response header.
func (c *Client) Export(ctx context.Context, format string, assetIDs []string) (string, io.ReadCloser, error) {
	body, err := json.Marshal(ExportRequest{ExportFormat: format, SelectedItem: assetIDs})
	if err != nil {
		return "", nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/aas/export", bytes.NewReader(body))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("export aas: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return "", nil, err
	}
	return resp.Header.Get("filenames"), resp.Body, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return payload.Token, nil
}

// checkStatus turns a non-2xx response into an error carrying whatever
// message the backend offered: response body first, status text otherwise.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := http.StatusText(resp.StatusCode)
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		if text := strings.TrimSpace(string(body)); text != "" {
			msg = text
		}
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
}
