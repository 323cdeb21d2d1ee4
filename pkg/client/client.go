// Package client is a typed REST client for the concierge API. Each method
// issues exactly one HTTP call, validates its input before the call and
// returns *Error on failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, timeout included.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTimeout sets the per-call timeout on a copy of the HTTP client, so a
// client passed through WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// New builds a client for the API rooted at baseURL, e.g. "https://host/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// File is one part of a multipart upload.
type File struct {
	Name    string
	Content io.Reader
}

type call struct {
	method      string
	path        string
	query       url.Values
	auth        bool
	session     *Session
	body        io.Reader
	contentType string
}

// as marks cl as authenticated by s. The session is checked before the
// request is built, a nil session included.
func (cl call) as(s *Session) call {
	cl.auth = true
	cl.session = s
	return cl
}

type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	if cl.auth {
		if err := c.checkSession(cl.session); err != nil {
			return nil, err
		}
	}

	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.auth {
		req.Header.Set("Authorization", "Bearer "+cl.session.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("api call failed", "method", cl.method, "url", u, "duration", time.Since(start), "error", err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.log.Debug("api call", "method", cl.method, "url", u, "status", resp.StatusCode, "duration", time.Since(start))
	if err != nil {
		return nil, transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serverError(resp.StatusCode, raw)
	}
	return raw, nil
}

func jsonCall(method, path string, in any) (call, error) {
	cl := call{method: method, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return cl, &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
		}
		cl.body = bytes.NewReader(b)
		cl.contentType = "application/json"
	}
	return cl, nil
}

func multipartCall(method, path string, fields map[string]string, fileField string, files []File) (call, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return call{}, &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(fileField, f.Name)
		if err != nil {
			return call{}, &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return call{}, &Error{Kind: KindValidation, Message: "Unable to read " + f.Name, Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return call{}, &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
	}
	return call{method: method, path: path, body: &buf, contentType: w.FormDataContentType()}, nil
}

func decode[T any](raw []byte) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &Error{Kind: KindServer, Message: "Unexpected server response", Err: err}
	}
	return out, nil
}

// data performs cl and unwraps the "data" member of the success envelope.
func data[T any](ctx context.Context, c *Client, cl call) (T, error) {
	var zero T
	raw, err := c.do(ctx, cl)
	if err != nil {
		return zero, err
	}
	env, err := decode[envelope[T]](raw)
	if err != nil {
		return zero, err
	}
	return env.Data, nil
}

// sendJSON performs an authenticated JSON call and unwraps its data.
func sendJSON[T any](ctx context.Context, c *Client, method, path string, s *Session, in any) (T, error) {
	cl, err := jsonCall(method, path, in)
	if err != nil {
		var zero T
		return zero, err
	}
	return data[T](ctx, c, cl.as(s))
}

// sendPublic is sendJSON for endpoints that take no session.
func sendPublic[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	cl, err := jsonCall(method, path, in)
	if err != nil {
		var zero T
		return zero, err
	}
	return data[T](ctx, c, cl)
}
