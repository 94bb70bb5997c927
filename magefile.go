//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "wortkarte"

var Default = Build

// Build compiles the wortkarte binary into the repository root.
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/wortkarte")
}

// Test runs all unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and copies the binary to ~/go/bin.
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dest := filepath.Join(home, "go", "bin")
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	return sh.Copy(filepath.Join(dest, binary), binary)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binary)
}
