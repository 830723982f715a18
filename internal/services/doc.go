// Package services defines shared utilities consumed by the studio
// operations and the generative API client.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, operation names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (validation vs configuration vs capacity vs production)
//     consistent across the pipeline.
//
// Use these helpers when wiring new operation logic so operational behaviour
// (error handling, observability, retries) stays uniform across the system.
package services
