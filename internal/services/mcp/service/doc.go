// Package service hosts the onboarding MCP server over stdio or streamable
// HTTP.
package service
