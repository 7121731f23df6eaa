// Package main contains Mage build targets for autoblog developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// siteDirs lists the directories a Hugo site driven by autoblog needs.
var siteDirs = []string{
	"content/posts",
	".github/workflows",
	".secrets",
	".autoblog",
}

const (
	binDir   = "bin"
	binName  = "autoblog"
	cmdPkg   = "./cmd/autoblog"
	postsDir = "content/posts"
)

// Init creates the site directory structure autoblog writes into.
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

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Validate builds the CLI and runs the configuration check.
func Validate() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "validate")
}

// Stats prints project metrics: Go production/test LOC and the number and
// word count of generated posts.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	posts, words, err := countPosts(postsDir)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Posts:                          %d\n", posts)
	fmt.Printf("Words (posts):                  %d\n", words)
	return nil
}

// countGoLines counts non-blank lines in Go files, split into production
// and test files. The _examples directory is skipped.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countPosts counts Markdown files under root and the words in their bodies.
// A missing directory counts as empty.
func countPosts(root string) (posts, words int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		posts++
		words += len(strings.Fields(stripFrontMatter(string(data))))
		return nil
	})
	return posts, words, err
}

// stripFrontMatter drops a leading +++ delimited block.
func stripFrontMatter(doc string) string {
	if !strings.HasPrefix(doc, "+++\n") {
		return doc
	}
	rest := doc[len("+++\n"):]
	if i := strings.Index(rest, "\n+++\n"); i >= 0 {
		return rest[i+len("\n+++\n"):]
	}
	return doc
}
