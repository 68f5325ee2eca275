// Package main provides build targets for the slatedesk project using Mage.
//
// Usage:
//
//	mage build      Compile slatedesk binary to bin/
//	mage test       Run all tests
//	mage cover      Run tests with a coverage summary
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install slatedesk to GOPATH/bin
//	mage stats      Print Go LOC and documentation word counts

//go:build mage

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "slatedesk"
	binaryDir  = "bin"
	cmdDir     = "./cmd/slatedesk"
)

// Build compiles the slatedesk binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Cover runs the tests with per-package coverage output.
func Cover() error {
	return sh.RunV("go", "test", "-cover", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(
		filepath.Join(gopath, "bin", binaryName),
		filepath.Join(binaryDir, binaryName))
}

// Stats prints Go lines of code and documentation word counts.
func Stats() error {
	var prodLines, testLines int

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "magefiles":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		lines := strings.Count(string(data), "\n")
		if strings.HasSuffix(path, "_test.go") {
			testLines += lines
		} else {
			prodLines += lines
		}
		return nil
	})
	if err != nil {
		return err
	}

	docWords := 0
	for _, pattern := range []string{"README.md", "docs/*.md"} {
		matches, _ := filepath.Glob(pattern)
		for _, path := range matches {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				continue
			}
			docWords += len(strings.Fields(string(data)))
		}
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of code (Go, total):      %d\n", prodLines+testLines)
	fmt.Printf("Words (documentation):          %d\n", docWords)
	return nil
}
