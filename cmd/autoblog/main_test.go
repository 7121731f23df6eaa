// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run more
// than once in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args against a config file whose paths all live
// in a temporary directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "autoblog.yaml")
	data := fmt.Sprintf(`generation:
  content_dir: %q
  batch_delay: 0s
topics:
  catalog_file: %q
history:
  db_path: %q
validation:
  root_dir: %q
`, filepath.Join(dir, "content", "posts"), filepath.Join(dir, "topics.json"),
		filepath.Join(dir, "history.db"), dir)
	require.NoError(t, os.WriteFile(cfgFile, []byte(data), 0o644))

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{
		"--config", cfgFile,
		"--env-file", filepath.Join(dir, "missing.env"),
		"--secrets-dir", filepath.Join(dir, "secrets"),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// clearEnv unsets the variables that would leak the caller's setup into a run.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "POSTS_PER_DAY",
		"AUTO_PUBLISH", "TECH_TOPICS", "TUTORIAL_CATEGORIES", "GITHUB_TOKEN", "GITHUB_REPO",
	} {
		t.Setenv(name, "")
	}
}

func completionServer(t *testing.T, status int) (*httptest.Server, func() []string) {
	t.Helper()
	var mu sync.Mutex
	var prompts []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		prompts = append(prompts, string(body))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
			return
		}
		resp, _ := json.Marshal(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-3.5-turbo",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": "TITLE: Field Notes\nSUMMARY: Short\nTAGS: go\nCATEGORY: Tech\nCONTENT: # Field Notes\n\nBody.",
				},
			}},
		})
		w.Write(resp)
	}))
	t.Cleanup(ts.Close)
	return ts, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), prompts...)
	}
}

func TestSchedule_NoFlagPrintsUsage(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
}

func TestSchedule_FailsOnMalformedScheduleValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTS_PER_DAY", "abc")
	_, err := execute(t, "schedule", "--test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule.posts_per_day")
}

func TestTopics_AddRequiresCategoryAndTopic(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no topic", []string{"topics", "--add", "--category=tech"}},
		{"no category", []string{"topics", "--add", "--topic=WebGPU"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "--add requires --category and --topic")
		})
	}
}

func TestValidate_ReportsMalformedConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTS_PER_DAY", "abc")

	out, err := execute(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation found")
	assert.NotContains(t, err.Error(), "posts_per_day")

	assert.Contains(t, out, "invalid configuration value schedule.posts_per_day")
	assert.Contains(t, out, "missing required environment variable OPENAI_API_KEY")
	assert.Contains(t, out, "checking git...")
	assert.Contains(t, out, "Validation failed with")
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is not set")
}

func TestGenerate_BatchWithFailingAPISucceeds(t *testing.T) {
	clearEnv(t)
	ts, prompts := completionServer(t, http.StatusInternalServerError)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)

	out, err := execute(t, "generate", "--count=2")
	require.NoError(t, err)
	assert.Contains(t, out, "batch: 0 of 2 article(s) generated")
	assert.Len(t, prompts(), 2)
}

func TestGenerate_OneShotFailureFails(t *testing.T) {
	clearEnv(t)
	ts, _ := completionServer(t, http.StatusInternalServerError)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)

	_, err := execute(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating article")
}

func TestGenerate_BatchIgnoresTopic(t *testing.T) {
	clearEnv(t)
	ts, prompts := completionServer(t, http.StatusOK)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)
	t.Setenv("TECH_TOPICS", "Alpha")

	out, err := execute(t, "generate", "--count=2", "--type=tech", "--topic=Zeta")
	require.NoError(t, err)
	assert.Contains(t, out, "batch: 2 of 2 article(s) generated")

	got := prompts()
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Contains(t, p, "Alpha")
		assert.False(t, strings.Contains(p, "Zeta"), "batch prompt used --topic")
	}
}

func TestGenerate_MalformedScheduleValueDoesNotBlock(t *testing.T) {
	clearEnv(t)
	ts, _ := completionServer(t, http.StatusOK)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", ts.URL)
	t.Setenv("POSTS_PER_DAY", "abc")

	_, err := execute(t, "generate", "--topic=Zeta")
	require.NoError(t, err)
}
