package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/leaptable"

// packageImports returns the imports of every non-test file in dir, keyed by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[entry.Name()] = append(out[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsOnlyStdlib verifies pkg/core depends on nothing but the standard library.
// The Golden Rule: pkg/core imports ONLY stdlib.
func TestCoreImportsOnlyStdlib(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, imp := range imports {
			// stdlib paths have no dot in their first element
			if strings.Contains(strings.SplitN(imp, "/", 2)[0], ".") {
				t.Errorf("%s imports non-stdlib package: %s", file, imp)
			}
		}
	}
}

// TestBuildersDoNotExecute verifies the statement builders stay pure text
// rendering: no executor, adapter, or driver packages.
func TestBuildersDoNotExecute(t *testing.T) {
	forbidden := []string{
		modulePath + "/pkg/executor",
		modulePath + "/pkg/adapter",
		modulePath + "/pkg/table",
		"database/sql",
	}

	for file, imports := range packageImports(t, filepath.Join("..", "statement")) {
		for _, imp := range imports {
			for _, f := range forbidden {
				if imp == f || strings.HasPrefix(imp, f+"/") {
					t.Errorf("statement/%s imports %s", file, imp)
				}
			}
		}
	}
}

// TestPublicPackagesDoNotImportInternal verifies nothing under pkg/ reaches into internal/.
func TestPublicPackagesDoNotImportInternal(t *testing.T) {
	for _, dir := range []string{".", "../statement", "../result", "../executor", "../table", "../adapter", "../dialect"} {
		for file, imports := range packageImports(t, dir) {
			for _, imp := range imports {
				if strings.HasPrefix(imp, modulePath+"/internal/") {
					t.Errorf("%s/%s imports internal package %s", filepath.Base(dir), file, imp)
				}
			}
		}
	}
}
