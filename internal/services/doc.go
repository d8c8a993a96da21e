// Package services contains the application service layer sitting between
// the HTTP transport and the calculation engine. Services validate and
// orchestrate; all arithmetic lives in internal/finance.
package services
