// Package client is a typed Go client for the CRM HTTP API.
package client

import (
	"bytes"
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

// Sentinels matched by *APIError under errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Config configures the client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// APIError is returned for any non-2xx response. It matches ErrInvalidInput,
// ErrNotFound and ErrConflict for 400, 404 and 409 under errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("crm api: %d %s: %s", e.StatusCode, e.Message, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("crm api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return target == ErrInvalidInput
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusConflict:
		return target == ErrConflict
	}
	return false
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return nil
}

func pageQuery(search string, page, limit int) string {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ========== Customers ==========

func (c *Client) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*Customer, error) {
	var out struct {
		Customer Customer `json:"customer"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/customers", req, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) (*CustomerPage, error) {
	var out CustomerPage
	path := "/api/customers" + pageQuery(opts.Search, opts.Page, opts.Limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchByLocation(ctx context.Context, opts ListOptions) (*LocationPage, error) {
	var out LocationPage
	path := "/api/customers/search" + pageQuery(opts.Search, opts.Page, opts.Limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*CustomerDetail, error) {
	var out CustomerDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/customers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, req *UpdateCustomerRequest) (*Customer, error) {
	var out struct {
		Customer Customer `json:"customer"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/customers/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/customers/%d", id), nil, nil)
}

// ========== Addresses ==========

func (c *Client) CreateAddress(ctx context.Context, req *CreateAddressRequest) (*Address, error) {
	var out struct {
		Address Address `json:"address"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/addresses", req, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

func (c *Client) GetAddress(ctx context.Context, id int64) (*Address, error) {
	var out Address
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/addresses/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAddresses(ctx context.Context, customerID int64) ([]Address, error) {
	var out struct {
		Addresses []Address `json:"addresses"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/addresses/customer/%d", customerID), nil, &out); err != nil {
		return nil, err
	}
	return out.Addresses, nil
}

func (c *Client) ListCustomersWithMultipleAddresses(ctx context.Context) ([]CustomerSummary, error) {
	var out struct {
		Customers []CustomerSummary `json:"customers"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/addresses/multiple", nil, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, req *UpdateAddressRequest) (*Address, error) {
	var out struct {
		Address Address `json:"address"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/addresses/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out.Address, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/addresses/%d", id), nil, nil)
}

// ========== Dashboard ==========

func (c *Client) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns nil when the server and its database are up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
