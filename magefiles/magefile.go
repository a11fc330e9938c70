//go:build mage

// Package main contains Mage build targets for the site maintenance tools.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// commands lists the binaries built from cmd/.
var commands = []string{"update-scholar", "update-teasers"}

// siteDirs lists the directories the commands read and write.
var siteDirs = []string{
	"data",
	"assets/images/teasers",
	".cache",
	".secrets",
}

// Init creates the site directories the commands expect.
func Init() error {
	for _, dir := range siteDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Site directories initialized.")
	return nil
}

// Build compiles both commands into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for _, name := range commands {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, "./cmd/"+name); err != nil {
			return fmt.Errorf("go build %s: %w", name, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Scholar refreshes data/publications.json from the configured profile.
func Scholar() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "update-scholar"))
}

// Teasers refreshes teaser image pointers in data/featured_details.json.
func Teasers() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "update-teasers"))
}
