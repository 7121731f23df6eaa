// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/autoblog/internal/generate"
	"github.com/pdiddy/autoblog/internal/history"
	"github.com/pdiddy/autoblog/internal/httputil"
	"github.com/pdiddy/autoblog/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one article or a batch of articles",
	Long: `Generate asks the model for an article and writes it under the content
directory as a Hugo document. With --count greater than one it runs a batch,
pausing between articles; failed articles in a batch are skipped.

The topic is drawn from the built-in list (TECH_TOPICS overrides it) unless
--topic is given. Tutorials draw a category from TUTORIAL_CATEGORIES.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	count, _ := cmd.Flags().GetInt("count")
	topic, _ := cmd.Flags().GetString("topic")

	kind, err := types.ParseArticleType(typeFlag)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}
	if err := requireConfig("generation"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeFn, err := newGenerator(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeFn()

	if count > 1 {
		var batchKind types.ArticleType
		if cmd.Flags().Changed("type") {
			batchKind = kind
		}
		gen.GenerateBatch(ctx, count, batchKind)
		return nil
	}

	if _, err := gen.GenerateOne(ctx, types.GenerationRequest{Type: kind, Topic: topic}); err != nil {
		return fmt.Errorf("generating article: %w", err)
	}
	return nil
}

// newGenerator wires the model backend and the history ledger from
// appConfig. The returned func closes the ledger.
func newGenerator(out io.Writer) (*generate.Generator, func(), error) {
	cfg := appConfig.Generation
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	backend := generate.NewOpenAIBackend(cfg.AIConfig, httputil.NewClient(cfg.HTTPConfig))
	opts := []generate.Option{generate.WithOutput(out)}
	closeFn := func() {}

	if path := appConfig.History.DBPath; path != "" {
		store, err := history.Open(path)
		if err != nil {
			fmt.Fprintf(out, "warning: history disabled: %v\n", err)
		} else {
			opts = append(opts, generate.WithRecorder(store))
			closeFn = func() { store.Close() }
		}
	}

	return generate.New(backend, cfg, opts...), closeFn, nil
}

func init() {
	generateCmd.Flags().String("type", string(types.ArticleTech), "article type: tech or tutorial")
	generateCmd.Flags().Int("count", 1, "number of articles; more than one runs a batch")
	generateCmd.Flags().String("topic", "", "article topic (single article only)")

	rootCmd.AddCommand(generateCmd)
}
