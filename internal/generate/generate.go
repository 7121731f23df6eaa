// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate turns model responses into Hugo blog documents.
// A Generator builds a prompt, calls the chat completion backend, parses the
// labeled response into an Article, and writes it under the content
// directory. Batches run articles one at a time with a fixed delay between
// calls and skip failed iterations.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/autoblog/pkg/types"
)

// ErrInvalidContent is returned when the model response lacks a title or body.
var ErrInvalidContent = errors.New("model response missing title or content")

const (
	defaultContentDir = "content/posts"
	defaultAuthor     = "AI Assistant"
)

// Recorder stores a ledger entry for every persisted document.
type Recorder interface {
	Record(ctx context.Context, e types.HistoryEntry) error
}

// Result describes one generated document.
type Result struct {
	Path    string
	Article types.Article
	Type    types.ArticleType
	Topic   string
}

// Generator produces articles. It is safe for concurrent use.
type Generator struct {
	backend  Backend
	cfg      types.GenerationConfig
	recorder Recorder
	out      io.Writer
	now      func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source for topic and type draws.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithClock sets the time source used for dates and file names.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithRecorder records every persisted document.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithOutput sets where progress lines are written.
func WithOutput(w io.Writer) Option {
	return func(g *Generator) { g.out = w }
}

// New returns a Generator calling backend.
func New(backend Backend, cfg types.GenerationConfig, opts ...Option) *Generator {
	g := &Generator{
		backend: backend,
		cfg:     cfg,
		out:     io.Discard,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func (g *Generator) contentDir() string {
	if g.cfg.ContentDir == "" {
		return defaultContentDir
	}
	return g.cfg.ContentDir
}

func (g *Generator) author() string {
	if g.cfg.Author == "" {
		return defaultAuthor
	}
	return g.cfg.Author
}

// GenerateOne produces and persists a single article.
func (g *Generator) GenerateOne(ctx context.Context, req types.GenerationRequest) (Result, error) {
	return g.generate(ctx, req, uuid.NewString())
}

func (g *Generator) generate(ctx context.Context, req types.GenerationRequest, runID string) (Result, error) {
	prompt, err := g.BuildPrompt(req)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(g.out, "generating %s article: %s\n", req.Type, prompt.Topic)

	raw, err := g.backend.Complete(ctx, prompt)
	if err != nil {
		return Result{}, err
	}

	article := ParseResponse(raw)
	if !article.Valid() {
		return Result{}, ErrInvalidContent
	}
	if article.Summary == "" {
		article.Summary = Summarize(article.Content, summaryLimit)
	}

	path, err := g.Persist(article)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(g.out, "saved %s\n", path)
	fmt.Fprintf(g.out, "  title:    %s\n", article.Title)
	fmt.Fprintf(g.out, "  tags:     %s\n", strings.Join(article.Tags, ", "))
	fmt.Fprintf(g.out, "  category: %s\n", article.Category)
	fmt.Fprintf(g.out, "  sections: %d\n", len(Outline(article.Content)))

	if g.recorder != nil {
		entry := types.HistoryEntry{
			RunID:     runID,
			Path:      path,
			Title:     article.Title,
			Type:      req.Type,
			Topic:     prompt.Topic,
			Category:  article.Category,
			Tags:      article.Tags,
			CreatedAt: g.now(),
		}
		if err := g.recorder.Record(ctx, entry); err != nil {
			fmt.Fprintf(g.out, "  warning: recording history: %v\n", err)
		}
	}

	return Result{Path: path, Article: article, Type: req.Type, Topic: prompt.Topic}, nil
}

// GenerateBatch runs count generations and returns the paths that were
// written. An empty kind draws tech or tutorial uniformly per iteration.
// Iterations after the first wait BatchDelay. Failed iterations are logged
// and skipped; cancelling ctx stops the batch at the next delay.
func (g *Generator) GenerateBatch(ctx context.Context, count int, kind types.ArticleType) []string {
	fmt.Fprintf(g.out, "batch: generating %d article(s)\n", count)

	runID := uuid.NewString()
	var paths []string

	for i := 0; i < count; i++ {
		if i > 0 && g.cfg.BatchDelay > 0 {
			fmt.Fprintf(g.out, "waiting %v\n", g.cfg.BatchDelay)
			select {
			case <-ctx.Done():
				fmt.Fprintf(g.out, "batch: cancelled: %v\n", ctx.Err())
				return paths
			case <-time.After(g.cfg.BatchDelay):
			}
		}

		t := kind
		if t == "" {
			t = types.ArticleTypes[g.intN(len(types.ArticleTypes))]
		}

		res, err := g.generate(ctx, types.GenerationRequest{Type: t}, runID)
		if err != nil {
			fmt.Fprintf(g.out, "failed  article %d/%d: %v\n", i+1, count, err)
			continue
		}
		paths = append(paths, res.Path)
	}

	fmt.Fprintf(g.out, "batch: %d of %d article(s) generated\n", len(paths), count)
	return paths
}
