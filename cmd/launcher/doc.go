/*
Launcher resolves and serves the home screen tiles of a bench.

Usage:

	launcher serve [--port 8000] [--host 0.0.0.0]
	launcher apps [--envelope]
	launcher seed <fixtures.yaml>...
	launcher migrate [--list]

Global flags:

	--bench      bench directory (BENCH_PATH)
	--db         record database (DB_PATH, default <bench>/sites/launcher.db)
	--log-level  log level (LOG_LEVEL)
	--dev        development logging (LOG_DEV)
*/
package main
