// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/autoblog/internal/config"
	"github.com/pdiddy/autoblog/internal/generate"
	"github.com/pdiddy/autoblog/internal/httputil"
	"github.com/pdiddy/autoblog/internal/publish"
	"github.com/pdiddy/autoblog/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check environment, site layout, model API, and git setup",
	Long: `Validate runs five independent checks and prints a report: required and
optional environment variables, required directories and files, one live model
API call, the Hugo site configuration and theme, and the git working tree.

Exits 0 when no errors were found and 1 otherwise. Warnings never fail.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	out := cmd.OutOrStdout()
	backend := generate.NewOpenAIBackend(cfg.Generation.AIConfig, httputil.NewClient(cfg.Generation.HTTPConfig))

	var git validate.GitInspector
	if repo := publish.NewRepo(cfg.Validation.RootDir); repo.Available() {
		git = repo
	}

	v := validate.New(cfg.Validation, cfg.Generation.APIKey, os.LookupEnv, backend, git, out)
	for _, problem := range config.Problems(configErr) {
		v.AddConfigProblems(problem)
	}
	report := v.Run(context.Background())
	fmt.Fprintln(out)
	report.Print(out)

	if !report.OK() {
		return fmt.Errorf("validation found %d error(s)", len(report.Errors))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
