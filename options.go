package framegate

import (
	"net/http"

	"github.com/vigil-labs/framegate/internal/cliconfig"
	"github.com/vigil-labs/framegate/internal/ports"
	"github.com/vigil-labs/framegate/pkg/log"
)

// Config holds the gateway configuration. Zero-valued fields are
// filled with defaults by New().
type Config = cliconfig.Config

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// BatchSubmitter delivers a batch of frames to the inference service.
// The default submitter speaks the service's multipart HTTP protocol;
// inject a custom one for testing or alternative transports.
type BatchSubmitter = ports.BatchSubmitter

// QueueStats is a snapshot of frame queue counters.
type QueueStats = ports.QueueStats

// Option configures optional behavior of a Gateway.
type Option func(*options)

// options holds the optional configuration for a Gateway instance.
type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	eventHandler EventHandler
	submitter    ports.BatchSubmitter
}

// defaultOptions returns options with sensible defaults.
func defaultOptions(client *http.Client) options {
	return options{
		httpClient: client,
		logger:     log.NewNoopLogger(),
	}
}

// WithHTTPClient sets a custom HTTP client for inference service
// communication. If not provided, a default client with the configured
// timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for gateway events.
// Events are called synchronously from gateway goroutines.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithSubmitter replaces the default multipart HTTP submitter for
// batch delivery. Health and statistics probes still go over HTTP to
// the configured ServiceURL.
func WithSubmitter(submitter BatchSubmitter) Option {
	return func(o *options) {
		o.submitter = submitter
	}
}
