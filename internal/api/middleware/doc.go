// Package middleware provides the gin middleware shared by the HTTP API:
// CORS via gin-contrib/cors and token bucket rate limiting via
// golang.org/x/time/rate, either per client IP or global.
package middleware
