// Package app wires the application together: configuration, logging,
// the modeling service, HTTP routes and server lifecycle.
package app
