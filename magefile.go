//go:build mage

package main

import (
	"fmt"
	"log"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
// Usage: mage
var Default = Test

// Build compiles and vets every package.
func Build() error {
	fmt.Println("Building...")
	if err := sh.RunV("go", "build", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "./...")
}

// Test runs all unit tests with the race detector.
// Usage: mage test
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Cover writes a coverage profile to coverage.out.
func Cover() error {
	fmt.Println("Running tests with coverage...")
	return sh.RunV("go", "test", "-coverprofile=coverage.out", "./...")
}

// Example runs the ticker example.
// Usage: mage example
func Example() error {
	return sh.RunV("go", "run", "./examples/ticker", "--count=5")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning...")
	return sh.Rm("coverage.out")
}

// Fmt runs go fmt on the module.
func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("go", "fmt", "./...")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Tidying go.mod...")
	return sh.RunV("go", "mod", "tidy")
}

// All runs formatting, tidy, build and tests (good for local pre-push).
func All() {
	mg.SerialDeps(Fmt, Tidy, Build, Test)
}

// CI is a stricter pipeline entrypoint; logs failure early.
func CI() {
	if err := Build(); err != nil {
		log.Fatalf("CI failed: %v", err)
	}
	if err := Test(); err != nil {
		log.Fatalf("CI failed: %v", err)
	}
}
