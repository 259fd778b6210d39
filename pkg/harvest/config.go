package harvest

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents client configuration for building a harvest.Client.
//
// # Authentication
//
// The handshake is the first request the client sends to URL. Its response
// headers advertise the relations every other call is resolved against.
//  1. Username/Password: the handshake is a POST of both values to URL; the
//     token in the JSON response is sent as Api-Token on later requests.
//  2. Token: sent as Api-Token starting with the handshake itself.
//  3. Neither: the handshake is a plain GET.
//
// # Monitoring
//
// When MonitorInterval is positive the session pings the service on that
// interval after each handshake and closes itself on the first failure. The
// next call then performs a fresh handshake.
type Config struct {
	// URL: base URL of the Harvest API, e.g. "https://harvest.example.org/api/".
	URL string

	// Username and Password authenticate the handshake.
	Username string
	Password string
	// Token: an API token already issued by the service.
	Token string

	// HTTPClient: transport used for every request. A pooled client with a
	// cookie jar is created when nil. A client without a jar gets one so that
	// session cookies survive between requests.
	HTTPClient *http.Client
	// HTTPTimeout: overall timeout applied to the default HTTPClient.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// MonitorInterval: ping interval of the session monitor. Zero disables it.
	MonitorInterval time.Duration
	// DiscoverOnInit: perform the handshake while constructing the client
	// instead of on first use.
	DiscoverOnInit bool

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
	// Metrics: optional recorder for request and session metrics.
	Metrics MetricsRecorder
	// Observers are notified of session lifecycle events.
	Observers []SessionObserver
}

// Credentials are passed to Client.Open to re-authenticate a session.
type Credentials struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Token    string `json:"token,omitempty"    yaml:"token,omitempty"`
}

// Validate checks the credentials carry either a username or a token.
func (c *Credentials) Validate() error {
	if c.Username == "" && c.Token == "" {
		return &CredentialsError{Reason: "credentials must be username/password or token"}
	}

	return nil
}

// Credentials returns the credentials embedded in the config.
func (c *Config) Credentials() Credentials {
	return Credentials{
		Username: c.Username,
		Password: c.Password,
		Token:    c.Token,
	}
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Password, validation.When(c.Username != "", validation.Required)),
		validation.Field(&c.MonitorInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.HTTPTimeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func absoluteURL(value interface{}) error {
	raw, _ := value.(string)

	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
