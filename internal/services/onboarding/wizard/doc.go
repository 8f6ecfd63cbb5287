// Package wizard holds onboarding wizard state and the step machines that
// drive the creator and brand flows.
//
// A State is owned by one session. Handlers load it, apply one user input or
// enrichment response, and save it back. Enrichment responses are applied
// only when they carry the latest generation issued for their field, so
// overlapping lookups resolve to the last request fired rather than the last
// one to return.
package wizard
