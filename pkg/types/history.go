// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HistoryEntry records one generated document in the history ledger.
type HistoryEntry struct {
	// RunID groups the documents produced by one batch or one-shot run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Path is the document path as written to disk.
	Path string `json:"path" yaml:"path"`

	Title    string      `json:"title" yaml:"title"`
	Type     ArticleType `json:"type" yaml:"type"`
	Topic    string      `json:"topic,omitempty" yaml:"topic,omitempty"`
	Category string      `json:"category" yaml:"category"`
	Tags     []string    `json:"tags,omitempty" yaml:"tags,omitempty"`

	// CreatedAt is the generation timestamp stamped into the front matter.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
