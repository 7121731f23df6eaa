// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/autoblog/pkg/types"
)

// mockExecutor records calls and fails the commands listed in failing.
type mockExecutor struct {
	onPath  bool
	failing map[string]bool   // "git add" -> fail
	outputs map[string]string // "git config user.name" -> output
	calls   []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Output(_ context.Context, _ string, name string, args ...string) (string, error) {
	full := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, full)
	for prefix := range m.failing {
		if strings.HasPrefix(full, prefix) {
			return "", errors.New("exit status 1")
		}
	}
	return m.outputs[full], nil
}

var publishDate = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

func testPublisher(exec *mockExecutor) (*Publisher, *bytes.Buffer) {
	var out bytes.Buffer
	p := newPublisher(newRepo("/site", exec), types.PublishConfig{}, func() time.Time { return publishDate }, &out)
	return p, &out
}

func TestCommitMessage(t *testing.T) {
	msg := CommitMessage(3, publishDate)
	assert.Contains(t, msg, "3")
	assert.Contains(t, msg, "2024-03-05")
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name      string
		failing   map[string]bool
		want      Result
		wantCalls int
	}{
		{
			name:      "all steps succeed",
			want:      Result{Staged: true, Committed: true, Pushed: true},
			wantCalls: 3,
		},
		{
			name:      "stage fails",
			failing:   map[string]bool{"git add": true},
			want:      Result{},
			wantCalls: 1,
		},
		{
			name:      "commit fails after staging",
			failing:   map[string]bool{"git commit": true},
			want:      Result{Staged: true},
			wantCalls: 2,
		},
		{
			name:      "push fails after commit",
			failing:   map[string]bool{"git push": true},
			want:      Result{Staged: true, Committed: true},
			wantCalls: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{failing: tt.failing}
			p, _ := testPublisher(exec)

			got := p.Publish(context.Background(), []string{"a.md", "b.md"})

			assert.Equal(t, tt.want.Staged, got.Staged)
			assert.Equal(t, tt.want.Committed, got.Committed)
			assert.Equal(t, tt.want.Pushed, got.Pushed)
			assert.Equal(t, got.Complete(), got.Err == nil)
			assert.Len(t, exec.calls, tt.wantCalls)
		})
	}
}

func TestPublish_Commands(t *testing.T) {
	exec := &mockExecutor{}
	p, out := testPublisher(exec)
	res := p.Publish(context.Background(), []string{"a.md", "b.md"})
	require.True(t, res.Complete())

	require.Len(t, exec.calls, 3)
	assert.Equal(t, "git add -- content/posts/", exec.calls[0])
	assert.Equal(t, "git commit -m "+CommitMessage(2, publishDate), exec.calls[1])
	assert.Equal(t, "git push origin main", exec.calls[2])
	assert.Contains(t, out.String(), "pushed to origin/main")
}

func TestRepoInspection(t *testing.T) {
	exec := &mockExecutor{
		onPath: true,
		outputs: map[string]string{
			"git config user.name":      "Ada",
			"git remote get-url origin": "git@example.com:blog.git",
		},
		failing: map[string]bool{"git config user.email": true},
	}
	r := newRepo("", exec)
	ctx := context.Background()

	assert.Equal(t, ".", r.Dir())
	assert.True(t, r.Available())
	assert.NoError(t, r.IsWorkTree(ctx))

	name, err := r.ConfigValue(ctx, "user.name")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)

	_, err = r.ConfigValue(ctx, "user.email")
	assert.Error(t, err)

	_, err = r.ConfigValue(ctx, "core.editor")
	assert.Error(t, err, "empty values are reported")

	url, err := r.RemoteURL(ctx, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:blog.git", url)
}

func TestRepoAvailable_NoGitOnPath(t *testing.T) {
	r := newRepo("", &mockExecutor{onPath: false})
	assert.False(t, r.Available())
}

// TestPublish_RealGit exercises the os/exec path against a throwaway
// repository with a bare remote.
func TestPublish_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	base := t.TempDir()
	remote := filepath.Join(base, "remote.git")
	site := filepath.Join(base, "site")

	run := func(dir string, args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(site, "content", "posts"), 0o755))
	run(base, "init", "--bare", remote)
	run(site, "init")
	run(site, "symbolic-ref", "HEAD", "refs/heads/main")
	run(site, "config", "commit.gpgsign", "false")
	run(site, "config", "user.name", "Test")
	run(site, "config", "user.email", "test@example.com")
	run(site, "remote", "add", "origin", remote)

	post := filepath.Join(site, "content", "posts", "2024-01-01-hello.md")
	require.NoError(t, os.WriteFile(post, []byte("+++\n+++\n\nhi"), 0o644))

	p := NewPublisher(types.PublishConfig{RepoDir: site}, nil)
	res := p.Publish(context.Background(), []string{post})
	require.NoError(t, res.Err)
	assert.True(t, res.Complete())

	r := NewRepo(site)
	assert.NoError(t, r.IsWorkTree(context.Background()))
	assert.Error(t, NewRepo(base).IsWorkTree(context.Background()))
}
