//go:build mage

// Package main provides build targets for the stockroom project using Mage.
//
// Usage:
//
//	mage build             Compile the stockroom binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude tests/)
//	mage test:integration  Run only integration tests (builds first)
//	mage test:cover        Run unit tests with a coverage profile
//	mage fmt               Fail on files gofmt would change
//	mage vet               Run go vet
//	mage lint              Run fmt, vet, then golangci-lint
//	mage demo              Build and run the reference scenario
//	mage clean             Remove build artifacts
//	mage install           Install stockroom to GOPATH/bin
//	mage stats             Print Go LOC per package as JSON
package main

// Default target to run when none is specified.
var Default = Build
