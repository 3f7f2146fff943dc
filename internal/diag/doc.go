// Package diag defines the diagnostic model shared by every analysis phase.
//
// Diagnostic is the central record: severity, a stable numeric code with a
// category tag, a message, and the primary source span. Notes carry optional
// secondary context. The package performs no formatting or IO; rendering
// lives in internal/diagfmt and orchestration in internal/driver.
//
// Producers emit through the Reporter interface so they stay decoupled from
// storage. BagReporter aggregates into a Bag, which is the diagnostic
// collector: it sorts by file position and merges duplicate (code, span)
// entries without hiding anything else.
package diag
