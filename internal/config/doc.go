// Package config loads application configuration from environment
// variables (FINMODEL_ prefix) and an optional YAML file, with env values
// taking precedence. Configuration covers only the service envelope
// (server, logging, export output), never calculation inputs, which
// arrive with each request.
package config
