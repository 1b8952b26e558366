// Package fstest provides a conformance test suite for fs.Filesystem
// implementations.
//
// The suite checks the contract the sync orchestrator and the git facade rely
// on: reads report fs.ErrNotExist for missing files, WriteFile creates parent
// directories and truncates, Exists never fails for missing paths, and Glob
// returns sorted file names only.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() fs.Filesystem {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/PeterVoronov/action-prepare-locales/fs"
)

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each test.
func TestSuite(t *testing.T, newFS func() fs.Filesystem) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs conformance tests with optional test skipping.
// The skipTests parameter is a slice of test names to skip (e.g. "ManageFS").
func TestSuiteWithSkip(t *testing.T, newFS func() fs.Filesystem, skipTests []string) {
	shouldSkip := func(testName string) bool {
		for _, skip := range skipTests {
			if skip == testName {
				return true
			}
		}
		return false
	}

	suites := []struct {
		name string
		run  func(*testing.T, fs.Filesystem)
	}{
		{"ReadFS", TestReadFS},
		{"WriteFS", TestWriteFS},
		{"ManageFS", TestManageFS},
		{"GlobFS", TestGlobFS},
	}

	for _, s := range suites {
		t.Run(s.name, func(t *testing.T) {
			if shouldSkip(s.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			s.run(t, newFS())
		})
	}
}
