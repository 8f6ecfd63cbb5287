// Package domain implements the MCP tool handlers for onboarding helpers:
// channel lookup, bio refinement, and creator step validation.
package domain
