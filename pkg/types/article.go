// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for autoblog: configuration,
// generation requests, articles, and history entries.
package types

import "fmt"

// ArticleType classifies a generation request.
type ArticleType string

const (
	ArticleTech     ArticleType = "tech"
	ArticleTutorial ArticleType = "tutorial"
)

// ArticleTypes lists every supported ArticleType in a stable order.
var ArticleTypes = []ArticleType{ArticleTech, ArticleTutorial}

// ParseArticleType converts a flag value into an ArticleType.
func ParseArticleType(s string) (ArticleType, error) {
	switch ArticleType(s) {
	case ArticleTech, ArticleTutorial:
		return ArticleType(s), nil
	}
	return "", fmt.Errorf("unknown article type %q (want tech or tutorial)", s)
}

// GenerationRequest asks for one article. An empty Topic lets the prompt
// builder draw one from the built-in topic list.
type GenerationRequest struct {
	Type  ArticleType
	Topic string
}

// Article is the structured result of one model invocation.
type Article struct {
	// Title is required; an article without one is rejected.
	Title string `json:"title" yaml:"title"`

	// Summary is a one or two sentence abstract.
	Summary string `json:"summary" yaml:"summary"`

	// Tags are trimmed labels in the order the model returned them.
	Tags []string `json:"tags" yaml:"tags"`

	// Category is the single site category. Defaults to DefaultCategory.
	Category string `json:"category" yaml:"category"`

	// Content is the Markdown body; required.
	Content string `json:"content" yaml:"content"`
}

// DefaultCategory is used when the model response carries no category.
const DefaultCategory = "Tech"

// Valid reports whether the article carries the required title and body.
func (a Article) Valid() bool {
	return a.Title != "" && a.Content != ""
}
