// Package integration runs the stockroom binary end to end.
package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// stockroomBin is the path to the built stockroom binary.
	stockroomBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot walks up from the working directory to the directory
// holding go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv is an isolated config and data directory for one test.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
	Env     []string
}

// NewTestEnv creates a test environment whose config.yaml selects backend.
func NewTestEnv(t *testing.T, backend string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build stockroom: %v", buildErr)
	}
	if stockroomBin == "" {
		t.Fatal("stockroom binary not built")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: " + backend + "\ndata_dir: " + dataDir + "\nlog_level: error\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{t: t, TempDir: tempDir, Config: configDir, DataDir: dataDir}
}

// CmdResult holds the result of a stockroom command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes stockroom with the environment's config directory. The data
// directory comes from config.yaml.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(stockroomBin, allArgs...)
	cmd.Env = append(os.Environ(), e.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("failed to run stockroom: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// MustRun executes stockroom and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("stockroom %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// ReadJSONLFile reads a JSONL file (one JSON object per line) and returns a slice.
func ReadJSONLFile[T any](t *testing.T, path string) []T {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open JSONL file %s: %v", path, err)
	}
	defer f.Close()

	var results []T
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("failed to parse JSONL line in %s: %v", path, err)
		}
		results = append(results, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan JSONL file %s: %v", path, err)
	}
	return results
}
