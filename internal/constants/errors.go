package constants

import "errors"

// Request errors.
var (
	ErrUnsupportedBody = errors.New("unsupported request body type for non-JSON content type")
)

// Session errors.
var (
	ErrSessionReset = errors.New("session was reset while the handshake was in flight")
)

// CLI configuration errors.
var (
	ErrNoURLConfigured = errors.New("no Harvest URL configured, use --url or 'harvest login'")
	ErrUnknownOutput   = errors.New("unknown output format")
)
