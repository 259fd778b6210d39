// Package http sends single requests to a Harvest service and classifies the
// outcome.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/harvest-client/internal/constants"
	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

// Header names and media types set by the dispatcher.
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderAPIToken    = "Api-Token"
	HeaderUserAgent   = "User-Agent"

	MediaTypeJSON = "application/json"
)

// Static errors for err113 compliance.
var (
	ErrURLRequired = errors.New("request URL is required")
)

// TokenSource supplies the token attached to each request.
type TokenSource interface {
	Token() string
}

// Logger is the logging interface used by the dispatcher.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Recorder receives one observation per dispatched request.
type Recorder interface {
	ObserveRequest(method string, statusCode int, elapsed time.Duration)
}

// Request describes one request. URL must be absolute.
type Request struct {
	Method  string
	URL     string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	URL        string
}

// JSON decodes the response body into v.
func (r *Response) JSON(v interface{}) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response from %s: %w", r.URL, err)
	}

	return nil
}

// Client dispatches requests.
type Client struct {
	httpClient *retryablehttp.Client
	tokens     TokenSource
	logger     Logger
	recorder   Recorder
	debug      bool
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// WithHTTPClient sets the underlying transport. The client is copied; when it
// has no cookie jar the copy gets one.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient == nil {
			return
		}

		transport := *httpClient
		c.httpClient.HTTPClient = &transport
	}
}

// WithTimeout sets the overall timeout of the underlying transport.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// NewClient creates a dispatcher. tokens may be nil.
func NewClient(tokens TokenSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	// Every request is sent exactly once; callers own retry policy.
	retryClient.RetryMax = 0
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, nil
	}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		httpClient: retryClient,
		tokens:     tokens,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient.HTTPClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err == nil {
			client.httpClient.HTTPClient.Jar = jar
		}
	}

	if client.logger != nil && client.debug {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// Do sends the request. Responses with a status of 400 or above are returned
// together with a *harvest.HTTPStatusError; transport failures are returned as
// *harvest.ConnectionError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.URL == "" {
		return nil, ErrURLRequired
	}

	target, err := setQuery(req.URL, req.Query)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
		if req.Body != nil {
			method = http.MethodPost
		}
	}

	header := make(http.Header)
	for key, value := range req.Headers {
		header.Set(key, value)
	}

	body, err := encodeBody(req.Body, header)
	if err != nil {
		return nil, err
	}

	if header.Get(HeaderAccept) == "" {
		header.Set(HeaderAccept, MediaTypeJSON)
	}

	if header.Get(HeaderUserAgent) == "" && c.userAgent != "" {
		header.Set(HeaderUserAgent, c.userAgent)
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			header.Set(HeaderAPIToken, token)
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = header

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": method,
			"url":    target,
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(method, 0, start)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, target, ctxErr)
		}

		return nil, &harvest.ConnectionError{URL: target, Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.observe(method, httpResp.StatusCode, start)

		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.observe(method, httpResp.StatusCode, start)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       respBody,
		URL:        target,
	}

	if httpResp.Request != nil && httpResp.Request.URL != nil {
		resp.URL = httpResp.Request.URL.String()
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":   method,
			"url":      resp.URL,
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, &harvest.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        resp.URL,
			Body:       resp.Body,
		}
	}

	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, target string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: target, Query: query})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, target string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, URL: target, Body: body})
}

func (c *Client) observe(method string, statusCode int, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveRequest(method, statusCode, time.Since(start))
	}
}

// setQuery sets each parameter on target, replacing any value already present
// under the same key.
func setQuery(target string, query url.Values) (string, error) {
	if len(query) == 0 {
		return target, nil
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	values := parsed.Query()
	for key, value := range query {
		values.Del(key)

		for _, v := range value {
			values.Add(key, v)
		}
	}

	parsed.RawQuery = values.Encode()

	return parsed.String(), nil
}

// encodeBody JSON-encodes body unless the caller chose a non-JSON content type,
// in which case the body is passed through.
func encodeBody(body interface{}, header http.Header) (interface{}, error) {
	if body == nil {
		return nil, nil
	}

	contentType := header.Get(HeaderContentType)
	if contentType == "" {
		contentType = MediaTypeJSON
		header.Set(HeaderContentType, contentType)
	}

	if !strings.HasPrefix(contentType, MediaTypeJSON) {
		switch raw := body.(type) {
		case string:
			return []byte(raw), nil
		case []byte, io.Reader:
			return raw, nil
		default:
			return nil, fmt.Errorf("%w: %T", constants.ErrUnsupportedBody, body)
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return bytes.NewReader(data), nil
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return out
}
