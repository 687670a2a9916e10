// Package logging provides structured logging using uber/zap.
//
// Two encodings are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The server logs to stdout. CLI commands log to stderr so that their
// stdout can be piped.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Failed to open store", zap.Error(err))
package logging
