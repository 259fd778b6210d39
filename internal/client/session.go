package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/harvest-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/harvest-client/internal/http"
	"github.com/fivetwenty-io/harvest-client/internal/links"
	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

const handshakeKey = "handshake"

// Request describes a request against a relation. Rel may also be a literal
// URL, in which case Vars is ignored.
type Request struct {
	Rel     string
	Vars    map[string]string
	Method  string
	Body    interface{}
	Query   url.Values
	Headers map[string]string
}

// Dispatcher sends relation-based requests. It is implemented by Session.
type Dispatcher interface {
	Do(ctx context.Context, req *Request) (*internalhttp.Response, error)
}

// Session is one logical connection to a Harvest service. It owns the token
// and the relations discovered by the handshake.
type Session struct {
	baseURL         string
	httpClient      *internalhttp.Client
	logger          harvest.Logger
	metrics         harvest.MetricsRecorder
	observers       []harvest.SessionObserver
	monitorInterval time.Duration

	flight singleflight.Group

	mutex       sync.RWMutex
	creds       harvest.Credentials
	token       string
	table       *links.Table
	generation  uint64
	stopMonitor context.CancelFunc
}

// NewSession creates an uninitialized session for config.URL.
func NewSession(config *harvest.Config) *Session {
	session := &Session{
		baseURL:         config.URL,
		logger:          config.Logger,
		metrics:         config.Metrics,
		observers:       config.Observers,
		monitorInterval: config.MonitorInterval,
		creds:           config.Credentials(),
	}

	session.httpClient = internalhttp.NewClient(session, createHTTPClientOptions(config)...)

	return session
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *harvest.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Metrics != nil {
		httpOpts = append(httpOpts, internalhttp.WithRecorder(config.Metrics))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// Token returns the current token, or "" when there is none.
func (s *Session) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Initialized reports whether the handshake has populated the relations.
func (s *Session) Initialized() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.table != nil
}

// EnsureInitialized performs the handshake unless it already succeeded.
// Concurrent callers share a single handshake.
func (s *Session) EnsureInitialized(ctx context.Context) error {
	if s.Initialized() {
		return nil
	}

	return s.wait(ctx, s.flight.DoChan(handshakeKey, func() (interface{}, error) {
		if s.Initialized() {
			return nil, nil
		}

		return nil, s.handshake(context.WithoutCancel(ctx))
	}))
}

// Open discards the current session and performs a new handshake. A nil creds
// reuses the credentials the session already has.
func (s *Session) Open(ctx context.Context, creds *harvest.Credentials) error {
	if creds != nil {
		err := creds.Validate()
		if err != nil {
			return err
		}
	}

	s.mutex.Lock()
	if creds != nil {
		s.creds = *creds
	}

	had := s.resetLocked()
	s.mutex.Unlock()

	if had {
		s.notify(harvest.SessionClosed, nil)
	}

	return s.wait(ctx, s.flight.DoChan(handshakeKey, func() (interface{}, error) {
		return nil, s.handshake(context.WithoutCancel(ctx))
	}))
}

// Close stops the monitor and drops the token and relations. The next request
// performs a new handshake.
func (s *Session) Close() {
	s.mutex.Lock()
	had := s.resetLocked()
	s.mutex.Unlock()

	if !had {
		return
	}

	s.logInfo("Session closed", map[string]interface{}{"url": s.baseURL})
	s.notify(harvest.SessionClosed, nil)
}

// Resolve turns a relation name into a URL. Literal URLs are returned
// unchanged. With non-nil vars the relation is looked up among the link
// templates and substituted, otherwise among the links.
func (s *Session) Resolve(rel string, vars map[string]string) (string, error) {
	if isLiteralURL(rel) {
		return rel, nil
	}

	s.mutex.RLock()
	table := s.table
	s.mutex.RUnlock()

	if vars != nil {
		template, ok := table.Template(rel)
		if !ok {
			return "", &harvest.UnknownLinkError{Rel: rel}
		}

		return links.Substitute(template.URL, vars), nil
	}

	link, ok := table.Link(rel)
	if !ok {
		return "", &harvest.UnknownLinkError{Rel: rel}
	}

	return link.URL, nil
}

// Do performs the handshake if needed, then resolves and sends req.
func (s *Session) Do(ctx context.Context, req *Request) (*internalhttp.Response, error) {
	err := s.EnsureInitialized(ctx)
	if err != nil {
		return nil, err
	}

	return s.send(ctx, req)
}

// Ping checks the session is still valid. A successful response reporting a
// timeout status yields a *harvest.TimeoutError.
func (s *Session) Ping(ctx context.Context) (*harvest.PingStatus, error) {
	err := s.EnsureInitialized(ctx)
	if err != nil {
		return nil, err
	}

	return s.ping(ctx)
}

// Relations returns a snapshot of the discovered relations.
func (s *Session) Relations(ctx context.Context) (*harvest.Relations, error) {
	err := s.EnsureInitialized(ctx)
	if err != nil {
		return nil, err
	}

	s.mutex.RLock()
	table := s.table
	s.mutex.RUnlock()

	return &harvest.Relations{
		Links:     table.Links(),
		Templates: table.Templates(),
	}, nil
}

func (s *Session) wait(ctx context.Context, result <-chan singleflight.Result) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for handshake: %w", ctx.Err())
	case res := <-result:
		return res.Err
	}
}

func (s *Session) send(ctx context.Context, req *Request) (*internalhttp.Response, error) {
	target, err := s.Resolve(req.Rel, req.Vars)
	if err != nil {
		return nil, err
	}

	return s.httpClient.Do(ctx, &internalhttp.Request{
		Method:  req.Method,
		URL:     s.absolute(target),
		Query:   req.Query,
		Body:    req.Body,
		Headers: req.Headers,
	})
}

func (s *Session) ping(ctx context.Context) (*harvest.PingStatus, error) {
	target, err := s.Resolve(RelPing, nil)
	if err != nil {
		return nil, fmt.Errorf("pinging: %w", err)
	}

	resp, err := s.httpClient.Get(ctx, s.absolute(target), nil)
	if err != nil {
		return nil, fmt.Errorf("pinging: %w", err)
	}

	var status harvest.PingStatus

	err = resp.JSON(&status)
	if err != nil {
		return nil, fmt.Errorf("parsing ping: %w", err)
	}

	if status.Status == harvest.PingStatusTimeout {
		return nil, &harvest.TimeoutError{StatusCode: resp.StatusCode, URL: resp.URL}
	}

	return &status, nil
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

// handshake sends the discovery request, authenticating when a username is
// configured, and installs the token and relations from its response.
func (s *Session) handshake(ctx context.Context) error {
	s.mutex.RLock()
	creds := s.creds
	generation := s.generation
	s.mutex.RUnlock()

	s.logDebug("Performing handshake", map[string]interface{}{
		"url":          s.baseURL,
		"authenticate": creds.Username != "",
	})

	token, table, err := s.discover(ctx, creds)
	if s.metrics != nil {
		s.metrics.ObserveHandshake(err)
	}

	if err != nil {
		return err
	}

	s.mutex.Lock()
	if s.generation != generation {
		s.mutex.Unlock()

		return constants.ErrSessionReset
	}

	s.token = token
	s.table = table
	s.generation++
	s.startMonitorLocked(s.generation)
	s.mutex.Unlock()

	s.logInfo("Session opened", map[string]interface{}{
		"url":       s.baseURL,
		"relations": table.Len(),
	})
	s.notify(harvest.SessionOpened, nil)

	return nil
}

// discover posts the credentials when a username is set and otherwise fetches
// the base URL, presenting the configured token.
func (s *Session) discover(ctx context.Context, creds harvest.Credentials) (string, *links.Table, error) {
	var (
		resp *internalhttp.Response
		err  error
	)

	if creds.Username != "" {
		resp, err = s.httpClient.Post(ctx, s.baseURL, authRequest{Username: creds.Username, Password: creds.Password})
		if err != nil {
			return "", nil, fmt.Errorf("authenticating: %w", err)
		}
	} else {
		req := &internalhttp.Request{URL: s.baseURL}
		if creds.Token != "" {
			req.Headers = map[string]string{internalhttp.HeaderAPIToken: creds.Token}
		}

		resp, err = s.httpClient.Do(ctx, req)
		if err != nil {
			return "", nil, fmt.Errorf("discovering links: %w", err)
		}
	}

	token := creds.Token

	if creds.Username != "" {
		var auth authResponse

		err = resp.JSON(&auth)
		if err != nil {
			return "", nil, fmt.Errorf("parsing authentication response: %w", err)
		}

		if auth.Token == "" {
			return "", nil, harvest.ErrTokenNotReturned
		}

		token = auth.Token
	}

	base, err := url.Parse(resp.URL)
	if err != nil {
		return "", nil, fmt.Errorf("parsing discovery URL: %w", err)
	}

	return token, links.Parse(resp.Header, base), nil
}

// resetLocked clears the session and reports whether it had been initialized.
// A handshake still in flight belongs to the discarded session, so later
// callers start a new one instead of joining it. Callers hold the write lock.
func (s *Session) resetLocked() bool {
	if s.stopMonitor != nil {
		s.stopMonitor()
		s.stopMonitor = nil
	}

	had := s.table != nil
	s.token = ""
	s.table = nil
	s.generation++
	s.flight.Forget(handshakeKey)

	return had
}

func (s *Session) startMonitorLocked(generation uint64) {
	if s.monitorInterval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopMonitor = cancel

	go s.monitor(ctx, generation)
}

// monitor pings on every tick and tears the session down on the first failure.
func (s *Session) monitor(ctx context.Context, generation uint64) {
	ticker := time.NewTicker(s.monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logDebug("Session monitor stopped", map[string]interface{}{"url": s.baseURL})

			return
		case <-ticker.C:
			_, err := s.ping(ctx)
			if err == nil {
				continue
			}

			if ctx.Err() != nil {
				return
			}

			s.expire(generation, err)

			return
		}
	}
}

// expire closes the session the monitor was started for. A newer session is
// left alone.
func (s *Session) expire(generation uint64, cause error) {
	s.mutex.Lock()
	if s.generation != generation {
		s.mutex.Unlock()

		return
	}

	had := s.resetLocked()
	s.mutex.Unlock()

	if !had {
		return
	}

	s.logWarn("Session expired", map[string]interface{}{
		"url":   s.baseURL,
		"error": cause.Error(),
	})
	s.notify(harvest.SessionExpired, cause)
}

func (s *Session) notify(eventType harvest.SessionEventType, cause error) {
	if s.metrics != nil {
		s.metrics.ObserveSessionEvent(eventType)
	}

	if len(s.observers) == 0 {
		return
	}

	event := harvest.SessionEvent{
		Type: eventType,
		URL:  s.baseURL,
		Time: time.Now().UTC(),
	}

	if cause != nil {
		event.Error = cause.Error()
	}

	for _, observer := range s.observers {
		observer.OnSessionEvent(event)
	}
}

// absolute prefixes root-relative URLs with the scheme and host of the base URL.
func (s *Session) absolute(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return target
	}

	base, err := url.Parse(s.baseURL)
	if err != nil || base.Host == "" {
		return target
	}

	return base.Scheme + "://" + base.Host + target
}

func (s *Session) logDebug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}

func (s *Session) logInfo(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, fields)
	}
}

func (s *Session) logWarn(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, fields)
	}
}

func isLiteralURL(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "/")
}
