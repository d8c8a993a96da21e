// Package exporter renders computed statements and sensitivity series to
// xlsx workbooks, CSV, and display strings. It never computes anything;
// callers hand it finished records from internal/finance.
package exporter
