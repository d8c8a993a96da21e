// Package finance implements the corporate-finance calculation engine:
// income statements, cash-flow statements, discounted-cash-flow (DCF)
// valuations, and sensitivity sweeps of a valuation across a rate range.
//
// # Architecture
//
// Every operation is a pure function of its arguments. Nothing in this
// package performs I/O, holds state between calls, or mutates its inputs,
// so the engine is safe to call from any number of concurrent request
// contexts without coordination.
//
// Data flows one way through three calculators:
//
//  1. ComputeIncomeStatement: assumptions -> income statement
//  2. ComputeCashFlowStatement: net income + non-cash items -> cash-flow statement
//  3. ComputeDCF: forecast + rates -> single valuation figure
//
// RunSensitivity repeatedly invokes ComputeDCF across a half-open rate
// range and collects (rate, valuation) pairs in sweep order.
//
// # Error Policy
//
// Failure conditions surface as typed errors, never as silently wrong
// numbers: malformed or empty forecasts yield a *ValidationError, and a
// discount rate equal to the terminal growth rate yields a
// *DivisionByZeroError instead of an infinite terminal value. A failure
// inside a sweep aborts the sweep with a *SweepError naming the swept
// value that triggered it.
//
// A discount rate below the terminal growth rate is deliberately not
// rejected; the resulting negative terminal value is a mathematically
// valid output and is propagated as-is.
package finance
