// Package services defines shared utilities consumed by the collector, the
// Letterboxd importer, and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation IDs and workflow stage names
//     for logging.
//   - Structured error markers plus the Wrap helper that let the CLI classify
//     a fatal failure (precondition, transport, timeout, configuration)
//     without string matching.
//
// Use these helpers when wiring new integration code so operational behaviour
// stays uniform across the run.
package services
