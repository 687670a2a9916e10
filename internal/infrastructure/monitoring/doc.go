/*
Package monitoring provides Prometheus metrics for the launcher service.

# Overview

Metrics cover HTTP traffic, tile resolution (which tier produced each app's
route and where logos came from) and uptime. Each Metrics value owns its own
registry so independent instances can coexist in tests.

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", monitoring.Handler(metrics))

	metrics.RecordTier("workspace")
	metrics.RecordLogo("search")

# Metrics

	launcher_http_requests_total{method,path,status}
	launcher_http_request_duration_seconds{method,path}
	launcher_http_response_size_bytes{method,path}
	launcher_app_resolutions_total{tier}      hook, workspace, page, dropped
	launcher_logos_total{source}              hook, search, none
	launcher_resolve_duration_seconds
	launcher_tiles
	launcher_uptime_seconds
*/
package monitoring
