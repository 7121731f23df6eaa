// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "tech": {
    "frontend": ["React", "Vue"],
    "backend": ["Go", "Rust", "Node"]
  },
  "trending": ["Web3", "Deno"]
}`

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// openSample writes sampleCatalog to a temp file and opens it.
func openSample(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))
	s, err := Open(path, seeded())
	require.NoError(t, err)
	return s, path
}

func TestOpen_InstallsDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "topics.json")

	s, err := Open(path, seeded())
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "tutorials", "trending"}, s.Categories())

	data, err := os.ReadFile(path)
	require.NoError(t, err, "default catalog must be persisted")

	reloaded := &Node{}
	require.NoError(t, json.Unmarshal(data, reloaded))
	assert.Equal(t, DefaultCatalog().Leaves(), reloaded.Leaves())
}

func TestOpen_PreservesKeyOrder(t *testing.T) {
	s, _ := openSample(t)
	assert.Equal(t, []string{"tech", "trending"}, s.Categories())
	assert.Equal(t, []string{"React", "Vue", "Go", "Rust", "Node"}, s.TopicsByCategory("tech", ""))
}

func TestOpen_RejectsMalformedCatalog(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json"},
		{"top level array", `["a", "b"]`},
		{"scalar leaf", `{"tech": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "topics.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Open(path, seeded())
			assert.Error(t, err)
		})
	}
}

func TestRandomTopic_StaysInCatalog(t *testing.T) {
	s, _ := openSample(t)
	all := s.TopicsByCategory("tech", "")
	all = append(all, s.TopicsByCategory("trending", "")...)

	for range 200 {
		got, err := s.RandomTopic("")
		require.NoError(t, err)
		assert.Contains(t, all, got)

		got, err = s.RandomTopic("trending")
		require.NoError(t, err)
		assert.Contains(t, []string{"Web3", "Deno"}, got)

		got, err = s.RandomTopic("tech")
		require.NoError(t, err)
		assert.Contains(t, []string{"React", "Vue", "Go", "Rust", "Node"}, got)
	}
}

func TestRandomTopic_UnknownCategory(t *testing.T) {
	s, _ := openSample(t)
	got, err := s.RandomTopic("cooking")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Empty(t, got)
}

func TestRandomTopic_EmptyCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"empty": [], "hollow": {}}`), 0o644))
	s, err := Open(path, seeded())
	require.NoError(t, err)

	_, err = s.RandomTopic("empty")
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = s.RandomTopic("hollow")
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = s.RandomTopic("")
	assert.ErrorIs(t, err, ErrEmpty)
}

// Nested categories pick a sub-category first, so a lone topic in a small
// sub-category wins about half the draws even though it is 1 of 10 leaves.
func TestRandomTopic_TwoStageBias(t *testing.T) {
	root := Nested(Child{Name: "lopsided", Node: Nested(
		Child{Name: "small", Node: Flat("solo")},
		Child{Name: "large", Node: Flat("a", "b", "c", "d", "e", "f", "g", "h", "i")},
	)})
	s := &Store{root: root, rng: seeded()}

	const draws = 10000
	solo := 0
	for range draws {
		got, err := s.RandomTopic("lopsided")
		require.NoError(t, err)
		if got == "solo" {
			solo++
		}
	}
	assert.InDelta(t, 0.5, float64(solo)/draws, 0.05)

	// The unscoped draw is uniform over leaves.
	solo = 0
	for range draws {
		got, err := s.RandomTopic("")
		require.NoError(t, err)
		if got == "solo" {
			solo++
		}
	}
	assert.InDelta(t, 0.1, float64(solo)/draws, 0.03)
}

func TestTopicsByCategory(t *testing.T) {
	s, _ := openSample(t)
	tests := []struct {
		name     string
		category string
		sub      string
		want     []string
	}{
		{"flat", "trending", "", []string{"Web3", "Deno"}},
		{"sub-category", "tech", "backend", []string{"Go", "Rust", "Node"}},
		{"nested concatenated", "tech", "", []string{"React", "Vue", "Go", "Rust", "Node"}},
		{"unknown category", "cooking", "", nil},
		{"unknown sub-category", "tech", "mobile", nil},
		{"sub-category of flat", "trending", "x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.TopicsByCategory(tt.category, tt.sub))
		})
	}
}

func TestAddTopic_AppendsAndPersists(t *testing.T) {
	tests := []struct {
		name     string
		category string
		sub      string
		topic    string
	}{
		{"existing flat", "trending", "", "Bun"},
		{"existing sub-category", "tech", "frontend", "Svelte"},
		{"new sub-category", "tech", "mobile", "SwiftUI"},
		{"new flat category", "cooking", "", "Sourdough"},
		{"new nested category", "career", "interviews", "System design rounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := openSample(t)
			require.NoError(t, s.AddTopic(tt.category, tt.topic, tt.sub))

			got := s.TopicsByCategory(tt.category, tt.sub)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.topic, got[len(got)-1])
			assert.Equal(t, 1, countOf(got, tt.topic))

			reloaded, err := Open(path, seeded())
			require.NoError(t, err)
			assert.Equal(t, got, reloaded.TopicsByCategory(tt.category, tt.sub))
		})
	}
}

func TestAddTopic_KeepsDuplicates(t *testing.T) {
	s, _ := openSample(t)
	require.NoError(t, s.AddTopic("trending", "Web3", ""))
	assert.Equal(t, []string{"Web3", "Deno", "Web3"}, s.TopicsByCategory("trending", ""))
}

func TestAddTopic_Errors(t *testing.T) {
	s, path := openSample(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.ErrorIs(t, s.AddTopic("trending", "x", "sub"), ErrKindMismatch)
	assert.ErrorIs(t, s.AddTopic("tech", "x", ""), ErrKindMismatch)
	assert.Error(t, s.AddTopic("", "x", ""))
	assert.Error(t, s.AddTopic("tech", "  ", "frontend"))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed adds must not touch the file")
}

func TestListAll(t *testing.T) {
	s, _ := openSample(t)
	var buf bytes.Buffer
	s.ListAll(&buf)

	out := buf.String()
	assert.Contains(t, out, "TECH:")
	assert.Contains(t, out, "  frontend:\n    1. React\n    2. Vue\n")
	assert.Contains(t, out, "TRENDING:\n  1. Web3\n  2. Deno\n")
}

func TestNodeJSONRoundTripKeepsOrder(t *testing.T) {
	root := &Node{}
	require.NoError(t, json.Unmarshal([]byte(sampleCatalog), root))
	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, sampleCatalog, string(data))
	assert.Less(t, bytes.Index(data, []byte("frontend")), bytes.Index(data, []byte("backend")))
}

func countOf(list []string, s string) int {
	n := 0
	for v := range slices.Values(list) {
		if v == s {
			n++
		}
	}
	return n
}
