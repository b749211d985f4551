// Package apikeys is the HTTP client for the API-key management service.
// It is independent of the AAS backend and authorizes every call with the
// configured master key.
package apikeys

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Key is one owner entry as listed by the service. KeyHash is the stored
// hash; the plaintext key only ever appears in create/regenerate responses.
type Key struct {
	Owner   string `json:"owner"`
	KeyHash string `json:"keyHash"`
}

// Client talks to the key service.
type Client struct {
	baseURL   string
	masterKey string
	http      *http.Client
}

// New creates a client for the given base URL and master key.
func New(baseURL, masterKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		masterKey: masterKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// List returns all key owners.
func (c *Client) List(ctx context.Context) ([]Key, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/getAll", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var keys []Key
	if err := json.NewDecoder(resp.Body).Decode(&keys); err != nil {
		return nil, fmt.Errorf("decode api keys: %w", err)
	}
	return keys, nil
}

// Create registers a new owner and returns the freshly generated plaintext
// key. The service never hands the plaintext out again.
func (c *Client) Create(ctx context.Context, owner string) (string, error) {
	return c.keyResponse(ctx, http.MethodPost, "/create", url.Values{"owner": {owner}})
}

// Delete removes an owner and its key.
func (c *Client) Delete(ctx context.Context, owner string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/delete", strings.NewReader(url.Values{"owner": {owner}}.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Rename changes an owner's name; the key itself is untouched.
func (c *Client) Rename(ctx context.Context, oldOwner, newOwner string) error {
	form := url.Values{"oldOwnerName": {oldOwner}, "newOwnerName": {newOwner}}
	req, err := c.newRequest(ctx, http.MethodPut, "/rename", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rename api key: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Regenerate invalidates the owner's key and returns the new plaintext key.
func (c *Client) Regenerate(ctx context.Context, owner string) (string, error) {
	return c.keyResponse(ctx, http.MethodPut, "/regenerate", url.Values{"owner": {owner}})
}

func (c *Client) keyResponse(ctx context.Context, method, path string, form url.Values) (string, error) {
	req, err := c.newRequest(ctx, method, path, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode key response: %w", err)
	}
	return payload.Message, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apiKey", c.masterKey)
	return req, nil
}

// checkStatus prefers the service's JSON {"message": ...} error shape and
// falls back to a generic message.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := "unknown error occurred"
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			msg = payload.Message
		}
	}
	return fmt.Errorf("key service returned %d: %s", resp.StatusCode, msg)
}
