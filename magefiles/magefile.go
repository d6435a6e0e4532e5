//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the wordreel binary
func Build() error {
	fmt.Println("Building wordreel...")
	return sh.RunV("go", "build", "-o", "wordreel", "./cmd/wordreel")
}

// Test runs all tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	fmt.Println("Installing wordreel...")
	return sh.RunV("go", "install", "./cmd/wordreel")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("wordreel")
}
