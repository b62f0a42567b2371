//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	modulePath = "github.com/dkoosis/fluid"
	binPath    = "./bin/fluid"
)

// Default target - build the binary
var Default = Build

// Build builds the fluid binary with version metadata
func Build() error {
	if err := os.MkdirAll("bin", 0o750); err != nil {
		return err
	}
	fmt.Println("Building fluid...")
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, "./cmd/fluid"); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Printf("✓ Built: %s\n", binPath)
	return nil
}

// Install installs fluid into GOBIN
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/fluid")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("./bin")
}

// QA runs formatting, vet, tests and build
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test.Race, Build)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs all linters; golangci-lint is skipped when not installed
func (Lint) All() error {
	var errs []error
	for _, fn := range []func() error{Lint{}.Format, Lint{}.Vet, Lint{}.Golangci} {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("⚠ golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

func ldflags() string {
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-s -w -X '%[1]s/internal/version.Version=%[2]s' -X '%[1]s/internal/version.CommitHash=%[3]s' -X '%[1]s/internal/version.BuildDate=%[4]s'",
		modulePath, gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*"), gitOutput("unknown", "rev-parse", "--short", "HEAD"), date)
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}
