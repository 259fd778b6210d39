package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as ping.
	ShortHTTPTimeout = 10 * time.Second
)

// Session monitoring.
const (
	// DefaultMonitorInterval is the ping interval used by the CLI monitor.
	DefaultMonitorInterval = 30 * time.Second
)

// Client identification.
const (
	// DefaultUserAgent is sent unless overridden in the config.
	DefaultUserAgent = "harvest-client-go"
)

// NATS subjects.
const (
	// DefaultSubjectPrefix prefixes session lifecycle event subjects.
	DefaultSubjectPrefix = "harvest.session"
)
