// Package newsclient is the Go data-access layer for the news API. Every call
// maps to one HTTP request; bodies carrying an image are sent as multipart.
package newsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 30 * time.Second

// News is an item as returned by the API.
type News struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Image is an image upload or download.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ListParams selects a page of news. Zero values are left to the server defaults.
type ListParams struct {
	Query    string
	Page     int
	PageSize int
}

// Page is one page of a list call with its pagination metadata.
type Page struct {
	Items      []News
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// CreateInput holds the fields of a new item.
type CreateInput struct {
	Title    string
	Content  string
	Author   string
	Category string
	Image    *Image
}

// UpdateInput holds a partial update; nil fields are not sent.
type UpdateInput struct {
	Title    *string
	Content  *string
	Author   *string
	Category *string
	Image    *Image
}

// String returns a pointer to s, for UpdateInput fields.
func String(s string) *string { return &s }

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// Client calls the news API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the traced default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newsURL(id int64, suffix string) string {
	return c.baseURL + "/api/news/" + strconv.FormatInt(id, 10) + suffix
}

// ImageURL is the address of an item's image.
func (c *Client) ImageURL(id int64) string {
	return c.newsURL(id, "/image")
}

// List fetches a page of news. Missing pagination headers fall back to the
// request parameters and the size of the returned page.
func (c *Client) List(ctx context.Context, p ListParams) (*Page, error) {
	q := url.Values{}
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	u := c.baseURL + "/api/news"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var items []News
	resp, err := c.do(ctx, http.MethodGet, u, nil, "", &items)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Items:    items,
		Total:    headerInt(resp.Header, "X-Total-Count", len(items)),
		Page:     headerInt(resp.Header, "X-Page", firstPositive(p.Page, 1)),
		PageSize: headerInt(resp.Header, "X-Page-Size", firstPositive(p.PageSize, len(items))),
	}
	page.TotalPages = headerInt(resp.Header, "X-Total-Pages", totalPages(page.Total, page.PageSize))
	return page, nil
}

// Get fetches one item.
func (c *Client) Get(ctx context.Context, id int64) (*News, error) {
	var n News
	if _, err := c.do(ctx, http.MethodGet, c.newsURL(id, ""), nil, "", &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetImage downloads an item's image.
func (c *Client) GetImage(ctx context.Context, id int64) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &Image{ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}

// Create stores a new item.
func (c *Client) Create(ctx context.Context, in CreateInput) (*News, error) {
	body, ct, err := multipartBody([]field{
		{"title", &in.Title},
		{"content", &in.Content},
		{"author", &in.Author},
		{"category", &in.Category},
	}, in.Image)
	if err != nil {
		return nil, err
	}
	var n News
	if _, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/news", body, ct, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update applies a partial update.
func (c *Client) Update(ctx context.Context, id int64, in UpdateInput) (*News, error) {
	body, ct, err := multipartBody([]field{
		{"title", in.Title},
		{"content", in.Content},
		{"author", in.Author},
		{"category", in.Category},
	}, in.Image)
	if err != nil {
		return nil, err
	}
	var n News
	if _, err := c.do(ctx, http.MethodPut, c.newsURL(id, ""), body, ct, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateImage replaces only the image.
func (c *Client) UpdateImage(ctx context.Context, id int64, img *Image) (*News, error) {
	if img == nil {
		return nil, errors.New("image is required")
	}
	body, ct, err := multipartBody(nil, img)
	if err != nil {
		return nil, err
	}
	var n News
	if _, err := c.do(ctx, http.MethodPut, c.ImageURL(id), body, ct, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// DeleteImage clears an item's image.
func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.ImageURL(id), nil, "", nil)
	return err
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.newsURL(id, ""), nil, "", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader, contentType string, out any) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, decodeError(resp)
	}
	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp, nil
}

func decodeError(resp *http.Response) error {
	ae := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var payload struct {
		RequestID string `json:"request_id"`
		Error     struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error.Code != "" {
		ae.Code = payload.Error.Code
		ae.Message = payload.Error.Message
		ae.RequestID = payload.RequestID
		return ae
	}
	ae.Message = strings.TrimSpace(string(raw))
	return ae
}

type field struct {
	name  string
	value *string
}

func multipartBody(fields []field, img *Image) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := w.WriteField(f.name, *f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if img != nil {
		filename := img.Filename
		if filename == "" {
			filename = "image"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
		ct := img.ContentType
		if ct == "" {
			ct = http.DetectContentType(img.Data)
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func headerInt(h http.Header, key string, fallback int) int {
	n, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return fallback
	}
	return n
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func totalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}
