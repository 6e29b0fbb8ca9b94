// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrapbook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/scrapbook/internal/platform/apperr"
)

// clientTimeout bounds a single API round trip.
const clientTimeout = 15 * time.Second

// TransportError reports that the API could not be reached at all.
//
// The request may or may not have been applied. Callers decide whether to
// retry; the client never retries on its own.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("scrapbook: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable is always true: nothing was learned from the server.
func (e *TransportError) Retryable() bool { return true }

// APIError is a non-2xx response carrying the server error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []apperr.FieldError
}

func (e *APIError) Error() string {
	return e.Message
}

// AdminToken is an issued admin bearer token.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Client talks to a running scrapbook server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. A non-empty token is
// sent as a bearer token on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// List fetches every item in ascending id order.
func (client *Client) List(ctx context.Context) ([]*Item, error) {
	items := make([]*Item, 0)
	if err := client.do(ctx, "list items", http.MethodGet, "/api/scrapbook-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Create stores a new item and returns it with its assigned id.
func (client *Client) Create(ctx context.Context, input NewItem) (*Item, error) {
	var item Item
	if err := client.do(ctx, "create item", http.MethodPost, "/api/scrapbook-items", input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item with id; deleting an absent id succeeds.
func (client *Client) Delete(ctx context.Context, id int64) error {
	path := "/api/scrapbook-items/" + strconv.FormatInt(id, 10)
	return client.do(ctx, "delete item", http.MethodDelete, path, nil, nil)
}

// Capabilities reports what the client's token may do.
func (client *Client) Capabilities(ctx context.Context) (*Capabilities, error) {
	var capabilities Capabilities
	if err := client.do(ctx, "get capabilities", http.MethodGet, "/api/capabilities", nil, &capabilities); err != nil {
		return nil, err
	}
	return &capabilities, nil
}

// RequestAdminToken exchanges the admin passphrase for a bearer token.
func (client *Client) RequestAdminToken(ctx context.Context, passphrase string) (*AdminToken, error) {
	var token AdminToken
	body := map[string]string{"passphrase": passphrase}
	if err := client.do(ctx, "request admin token", http.MethodPost, "/api/admin/token", body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// do sends one request. A nil out discards the response body.
func (client *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("scrapbook: %s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("scrapbook: %s: failed to create request: %w", op, err)
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeAPIError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// decodeAPIError reads the error envelope, falling back to the status text
// when the body is not one.
func decodeAPIError(response *http.Response) error {
	apiError := &APIError{StatusCode: response.StatusCode}

	var envelope struct {
		Message string              `json:"message"`
		Code    string              `json:"code"`
		Details []apperr.FieldError `json:"details"`
	}
	payload, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Message != "" {
		apiError.Message = envelope.Message
		apiError.Code = envelope.Code
		apiError.Details = envelope.Details
		return apiError
	}

	apiError.Message = http.StatusText(response.StatusCode)
	return apiError
}

// IsRetryable reports whether err is a transport failure worth retrying.
func IsRetryable(err error) bool {
	var transportError *TransportError
	return errors.As(err, &transportError) && transportError.Retryable()
}
