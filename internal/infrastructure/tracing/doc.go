/*
Package tracing provides lightweight request tracing.

# Overview

Each HTTP request gets a span; operations inside the request (such as
resolving launcher tiles) open child spans from the request context. Finished
spans are buffered and logged through zap by a single collector goroutine.

# Usage

	tracer := tracing.New("launcher", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "launcher.resolve")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

Traces use HTTP headers for propagation:
- X-Trace-ID: Unique identifier for entire request flow
- X-Span-ID: Identifier for current operation

IDs are random UUIDs.
*/
package tracing
