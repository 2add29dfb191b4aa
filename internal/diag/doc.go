// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: severity, originating phase, stable
// numeric code, primary span, message, and optional notes. Producers emit
// through a Reporter so they stay decoupled from storage; BagReporter
// aggregates into a Bag, the per-compile collector that the driver drains
// exactly once at the end of the pipeline.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver. Keep the data
// model deterministic so diagnostics can be serialized for testing.
package diag
