//go:build mage

// Package main provides build targets for the backpack project using Mage.
//
// Usage:
//
//	mage build   Compile backpack binary to bin/
//	mage test    Run all tests
//	mage race    Run all tests with the race detector
//	mage smoke   Build, then replay the sample loadout script
//	mage lint    Run golangci-lint
//	mage clean   Remove build artifacts
//	mage install Install backpack to GOPATH/bin
//	mage stats   Print Go LOC for production and test code
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "backpack"
	binaryDir   = "bin"
	cmdDir      = "./cmd/backpack"
	smokeScript = "scripts/loadout.bp"
)

// Build compiles the backpack binary to bin/.
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

// Race runs all tests with the race detector enabled.
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Smoke builds the binary and replays the sample script in strict mode
// against throwaway config and data directories.
func Smoke() error {
	mg.Deps(Build)
	tmp, err := os.MkdirTemp("", "backpack-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	env := map[string]string{
		"BACKPACK_CONFIG_DIR": filepath.Join(tmp, "config"),
		"BACKPACK_DATA_DIR":   filepath.Join(tmp, "data"),
	}
	bin := filepath.Join(binaryDir, binaryName)
	if err := sh.RunWithV(env, bin, "run", "--strict", smokeScript); err != nil {
		return err
	}
	return sh.RunWithV(env, bin, "history", "--session", "last")
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
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Stats prints Go lines of code.
func Stats() error {
	var prodLines, testLines int

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", "_examples", "magefiles", binaryDir:
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") {
			testLines += count
		} else {
			prodLines += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of code (Go, total):      %d\n", prodLines+testLines)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
