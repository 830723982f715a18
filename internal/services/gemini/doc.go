// Package gemini wraps the Google generative language REST API with the
// resilience layer the rest of Reelsmith depends on.
//
// Key responsibilities:
//   - A retry/backoff engine that classifies rate-limit errors, applies
//     exponential growth with jitter, and emits an observability event for
//     every retry.
//   - A self-healing decoder that recovers structured JSON from prose-wrapped
//     or near-valid model output, failing hard when nothing can be recovered.
//   - Grounding extraction that maps web citation metadata into ordered
//     source lists.
//   - A bounded poller that drives long-running video operations to a
//     terminal state.
//   - A process-wide token bucket shared by every remote call so concurrent
//     operations cannot stampede the API.
//
// Callers describe each call with a CallDescriptor and receive either a typed
// Result or a classified error; the package never substitutes partial or
// default values for failures.
package gemini
