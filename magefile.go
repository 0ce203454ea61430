//go:build mage

package main

import (
	"fmt"
	"os/exec"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when no target is specified
var Default = Test

// Test runs the full unit suite for every package.
func Test() error {
	fmt.Println("🚀 Running corelang test suite")
	fmt.Println("===============================")
	return sh.RunV("go", "test", "-v", "./...")
}

// TestLexer runs only the lexer package's tests.
func TestLexer() error {
	fmt.Println("🔤 Running lexer tests...")
	return sh.RunV("go", "test", "-v", "./lexer/...")
}

// TestParser runs only the parser package's tests.
func TestParser() error {
	fmt.Println("🌳 Running parser tests...")
	return sh.RunV("go", "test", "-v", "./parser/...")
}

// Bench runs every Benchmark function in the module with memory stats;
// the module defines none, so this reports no results.
func Bench() error {
	fmt.Println("⚡ Running benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// BenchProfile runs the bench package driver, which parses a sample
// workload under CPU profiling and prints its pprof top-10 summary.
func BenchProfile() error {
	fmt.Println("⚡ Profiling parser benchmarks...")
	return sh.RunV("go", "run", "./bench", "-cpuprofile=corelang.prof")
}

// Fuzz runs the parser's fuzz target for a short, CI-friendly duration.
func Fuzz() error {
	fmt.Println("🔀 Fuzzing parser...")
	return sh.RunV("go", "test", "-run=^$", "-fuzz=FuzzParse", "-fuzztime=30s", "./parser/...")
}

// Build compiles the corelc CLI.
func Build() error {
	fmt.Println("🔨 Building corelc...")
	return sh.RunV("go", "build", "-o", "bin/corelc", "./cmd/corelc")
}

// Clean removes generated files.
func Clean() error {
	fmt.Println("🧹 Cleaning generated files...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("corelang.prof")
}

// Install downloads module dependencies.
func Install() error {
	fmt.Println("📦 Installing dependencies...")
	return sh.RunV("go", "mod", "download")
}

// Tidy cleans up go.mod.
func Tidy() error {
	fmt.Println("🔧 Tidying go.mod...")
	return sh.RunV("go", "mod", "tidy")
}

// Lint runs golangci-lint if it's installed.
func Lint() error {
	fmt.Println("🔍 Running linter...")
	if !commandExists("golangci-lint") {
		fmt.Println("⚠️  golangci-lint not found, skipping...")
		return nil
	}
	return sh.RunV("golangci-lint", "run")
}

// Dev runs the test suite in watch mode (requires watchexec).
func Dev() error {
	fmt.Println("🚀 Starting development mode...")
	if !commandExists("watchexec") {
		fmt.Println("ℹ️  Install watchexec for auto-testing: brew install watchexec")
		return fmt.Errorf("watchexec not found")
	}
	return sh.RunV("watchexec", "-e", "go", "-i", "bin/", "--", "mage", "test")
}

// Release prepares a full release: clean, install, tidy, lint, test, build.
func Release() error {
	fmt.Println("🚢 Preparing release...")
	mg.SerialDeps(Clean, Install, Tidy, Lint, Test, Build)
	fmt.Println("🎉 Release ready!")
	return nil
}

// CI runs the continuous-integration pipeline.
func CI() error {
	fmt.Println("🔄 Running CI pipeline...")
	mg.SerialDeps(Install, Lint, Test)
	return nil
}

// commandExists checks whether a command is on PATH.
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
