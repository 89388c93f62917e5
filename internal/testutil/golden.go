// Package testutil provides shared test helpers for golden file testing.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// Update is a flag that, when set, regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// FixFunc fixes PHP source.
type FixFunc func(input string) (string, error)

// RunGolden runs a single golden file test in the given directory.
// It reads input.php, applies fixFn, and compares against expected.php.
// The expected output must also be a fixed point of fixFn.
func RunGolden(t *testing.T, dir string, fixFn FixFunc) {
	t.Helper()

	inputPath := filepath.Join(dir, "input.php")
	expectedPath := filepath.Join(dir, "expected.php")

	inputBytes, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", inputPath, err)
	}

	actual, err := fixFn(string(inputBytes))
	if err != nil {
		t.Fatalf("failed to fix %s: %v", inputPath, err)
	}

	if *Update {
		if err := os.WriteFile(expectedPath, []byte(actual), 0o644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", expectedPath, err)
		}
		t.Logf("updated golden file: %s", expectedPath)
		return
	}

	expectedBytes, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", expectedPath, err)
	}

	expected := string(expectedBytes)
	if actual != expected {
		t.Errorf("output mismatch for %s:\n--- expected\n%s\n--- actual\n%s", dir, expected, actual)
	}

	again, err := fixFn(expected)
	if err != nil {
		t.Fatalf("failed to fix %s: %v", expectedPath, err)
	}

	if again != expected {
		t.Errorf("expected output of %s is not stable:\n%s", dir, again)
	}
}

// RunGoldenDir walks all subdirectories under testdataDir and runs
// RunGolden for each as a subtest.
func RunGoldenDir(t *testing.T, testdataDir string, fixFn FixFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("failed to read testdata dir %s: %v", testdataDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			dir := filepath.Join(testdataDir, entry.Name())
			RunGolden(t, dir, fixFn)
		})
	}
}
