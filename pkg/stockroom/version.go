// Package stockroom carries module-level metadata shared by the CLI and
// build tooling.
package stockroom

// Version is the release version of the stockroom module.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/stockroom"
