// Package http contains the HTTP transport layer: request binding,
// struct validation, and the chi route handlers that front the modeling
// service. Errors surface as RFC 7807 problem documents.
package http
