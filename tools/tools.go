//go:build tools

// Package tools documents development tool dependencies.
// These tools are run with `go run` or installed via `go install` and are not
// tracked in go.mod since they are development tools, not runtime dependencies.
package tools

// Development tools:
//
// Air - Live reload for the portal with DEV=true (templates and static files are read from disk)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// mockgen - Regenerates internal/mocks from the ports interfaces
//   Run: go generate ./internal/mocks
//   Docs: https://github.com/uber-go/mock
