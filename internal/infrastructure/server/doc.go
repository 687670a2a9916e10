// Package server assembles the launcher service: it opens the bench and
// its record store, builds the resolver, and serves it over gin with
// tracing, metrics, CORS, rate limiting and gzip compression.
package server
