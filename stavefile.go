//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the sacrebleu binary with version information.
func Build() error {
	st.Deps(Init)

	rebuild, err := target.Glob("bin/sacrebleu", "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("sacrebleu is up to date")
		}
		return nil
	}

	ldflags := buildLdflags()
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/sacrebleu", "./cmd/sacrebleu")
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.build=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode (skips long-running tests).
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// TestVerbose runs tests with verbose output.
func TestVerbose() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "-v", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// LintFix runs golangci-lint with auto-fix enabled.
func LintFix() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{
		"bin/",
		"sacrebleu",
		"coverage.out",
		"coverage.html",
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binary to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	dst := bin + "/sacrebleu"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	if err := sh.Copy(dst, "bin/sacrebleu"); err != nil {
		return fmt.Errorf("installing sacrebleu: %w", err)
	}
	if st.Verbose() {
		fmt.Printf("Installed sacrebleu to %s\n", dst)
	}
	return nil
}

// Score namespace for scoring the sample corpus in testdata.
type Score st.Namespace

// sampleArgs returns the CLI arguments for the sample corpus. SACREBLEU_SYS
// and SACREBLEU_REFS (comma-separated) point it at other files.
func sampleArgs() []string {
	sys := os.Getenv("SACREBLEU_SYS")
	if sys == "" {
		sys = "testdata/sample.sys"
	}
	refs := []string{"testdata/sample.ref1", "testdata/sample.ref2"}
	if env := os.Getenv("SACREBLEU_REFS"); env != "" {
		refs = strings.Split(env, ",")
	}
	return append([]string{"-i", sys}, refs...)
}

// BLEU scores the sample corpus with BLEU and chrF.
func (Score) BLEU() error {
	st.Deps(Build)
	args := append([]string{"-m", "bleu,chrf"}, sampleArgs()...)
	return sh.RunV("./bin/sacrebleu", args...)
}

// Tokenizers scores the sample corpus once per tokenizer.
func (Score) Tokenizers() error {
	st.Deps(Build)
	for _, tok := range []string{"13a", "intl", "zh", "none"} {
		args := append([]string{"-tok", tok, "-short"}, sampleArgs()...)
		if err := sh.RunV("./bin/sacrebleu", args...); err != nil {
			return fmt.Errorf("tokenizer %s: %w", tok, err)
		}
	}
	return nil
}

// Sentences prints sentence-level BLEU for the sample corpus.
func (Score) Sentences() error {
	st.Deps(Build)
	args := append([]string{"-sl", "-w", "2"}, sampleArgs()...)
	return sh.RunV("./bin/sacrebleu", args...)
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Tidy runs go mod tidy and verifies the go.sum is clean.
func Tidy() error {
	if err := sh.Run("go", "mod", "tidy"); err != nil {
		return err
	}
	// Verify no changes to go.sum (useful for CI)
	output, err := sh.Output("git", "diff", "--exit-code", "go.sum")
	if err != nil {
		if output != "" {
			return fmt.Errorf("go.sum is not clean:\n%s", output)
		}
	}
	return nil
}
