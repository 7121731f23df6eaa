// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish commits generated documents to a git working tree and
// pushes them. Stage, commit, and push are separate operations; each reports
// its own error and a failed step leaves earlier steps in place.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const binGit = "git"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

var defaultExec executor = &osExecutor{}

// Repo runs git commands in one working tree.
type Repo struct {
	dir  string
	exec executor
}

// NewRepo returns a Repo for the working tree at dir.
func NewRepo(dir string) *Repo {
	return newRepo(dir, defaultExec)
}

func newRepo(dir string, exec executor) *Repo {
	if dir == "" {
		dir = "."
	}
	return &Repo{dir: dir, exec: exec}
}

// Dir returns the working tree directory.
func (r *Repo) Dir() string { return r.dir }

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	return r.exec.Output(ctx, r.dir, binGit, args...)
}

// Available reports whether git is on PATH.
func (r *Repo) Available() bool {
	_, err := r.exec.LookPath(binGit)
	return err == nil
}

// IsWorkTree returns nil when dir is inside a git working tree.
func (r *Repo) IsWorkTree(ctx context.Context) error {
	if _, err := r.git(ctx, "rev-parse", "--git-dir"); err != nil {
		return fmt.Errorf("%s is not a git repository: %w", r.dir, err)
	}
	return nil
}

// ConfigValue returns a git config value such as user.name.
func (r *Repo) ConfigValue(ctx context.Context, key string) (string, error) {
	v, err := r.git(ctx, "config", key)
	if err != nil {
		return "", fmt.Errorf("git config %s: %w", key, err)
	}
	if v == "" {
		return "", fmt.Errorf("git config %s is empty", key)
	}
	return v, nil
}

// RemoteURL returns the URL of the named remote.
func (r *Repo) RemoteURL(ctx context.Context, remote string) (string, error) {
	v, err := r.git(ctx, "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("git remote %s: %w", remote, err)
	}
	return v, nil
}

// Stage adds paths to the index.
func (r *Repo) Stage(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if _, err := r.git(ctx, args...); err != nil {
		return fmt.Errorf("git add %s: %w", strings.Join(paths, " "), err)
	}
	return nil
}

// Commit records the index with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if _, err := r.git(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// Push pushes branch to remote.
func (r *Repo) Push(ctx context.Context, remote, branch string) error {
	if _, err := r.git(ctx, "push", remote, branch); err != nil {
		return fmt.Errorf("git push %s %s: %w", remote, branch, err)
	}
	return nil
}
