// Package log provides the logging abstraction used by framegate components.
//
// A [Logger] carries structured key-value fields. The default implementation
// wraps zerolog; a no-op logger is provided for tests and embedded use.
//
//	logger := log.NewZerologAdapter()
//	logger.Info("batch dispatched", log.Int("frames", 7))
//
// Implement the Logger interface to plug in existing logging infrastructure.
package log
