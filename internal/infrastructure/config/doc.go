// Package config loads service configuration from environment variables.
//
// Every setting has a default, so the service starts with no environment at
// all against a bench in the working directory. Command line flags override
// the loaded values.
package config
