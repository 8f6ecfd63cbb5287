// Package timeouts defines shared timeout constants used across services.
// Centralizing these values prevents drift between service boundaries and
// makes the durations discoverable.
package timeouts

import "time"

// ExternalRequest caps a single outbound call to a third-party API such as
// the YouTube Data API.
const ExternalRequest = 10 * time.Second

// Refine caps one text refinement round trip; generation is slower than a
// metadata lookup.
const Refine = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreOpen caps database and object store connection attempts at startup.
const StoreOpen = 10 * time.Second
