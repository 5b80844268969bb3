//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binLint  = "golangci-lint"
	binGofmt = "gofmt"
)

// Fmt fails when any Go file outside _examples is not gofmt-clean.
func Fmt() error {
	out, err := sh.Output(binGofmt, "-l", "cmd", "internal", "pkg", "tests", "magefiles")
	if err != nil {
		return err
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("gofmt needed:\n%s", files)
	}
	return nil
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV(binGo, "vet", "./...")
}

// Lint checks formatting and vet, then runs golangci-lint.
func Lint() error {
	mg.SerialDeps(Fmt, Vet)
	return sh.RunV(binLint, "run", "./...")
}
