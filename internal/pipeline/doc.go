// Package pipeline wires the detection and measurement stages into the
// single call the application makes: encoded image bytes in, a structured
// measurement outcome out.
//
// One invocation is synchronous, CPU-bound and self-contained: it owns an
// arena for every native buffer it allocates, shares no mutable state with
// other invocations, and releases everything before returning, on success,
// failure and panic paths alike. Concurrent invocations from independent
// goroutines are safe.
package pipeline
