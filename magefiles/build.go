//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "stockroom"
	binaryDir  = "bin"
	cmdDir     = "./cmd/stockroom"
)

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}

// Build compiles the stockroom binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", binaryPath(), cmdDir)
}

// Demo builds the binary and runs the reference scenario.
func Demo() error {
	mg.Deps(Build)
	return sh.RunV(binaryPath(), "demo")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, binaryPath())
}
