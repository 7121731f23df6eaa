// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/autoblog/internal/publish"
	"github.com/pdiddy/autoblog/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily and weekly generation jobs",
	Long: `Schedule runs the long-lived generation service. The daily job writes
POSTS_PER_DAY articles and, when GITHUB_TOKEN and GITHUB_REPO are both set,
commits and pushes them. The weekly job writes one tutorial.

Use --start to run the service until interrupted, or --test to run the daily
job once immediately.`,
	RunE: runSchedule,
}

func runSchedule(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetBool("start")
	test, _ := cmd.Flags().GetBool("test")
	if !start && !test {
		return cmd.Help()
	}

	if err := requireConfig("generation", "publish", "schedule"); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeFn, err := newGenerator(out)
	if err != nil {
		return err
	}
	defer closeFn()

	var pub schedule.Publisher
	if appConfig.Publish.AutoCommit() {
		pub = publish.NewPublisher(appConfig.Publish, out)
	} else {
		fmt.Fprintln(out, "auto-commit disabled: GITHUB_TOKEN or GITHUB_REPO not set")
	}

	s := schedule.New(gen, pub, appConfig.Schedule, appConfig.Publish.AutoCommit(), out)
	if test {
		fmt.Fprintln(out, "test run: executing the daily job once")
		s.RunDaily(ctx)
		return nil
	}
	return s.Start(ctx)
}

func init() {
	scheduleCmd.Flags().Bool("start", false, "start the scheduler and block until interrupted")
	scheduleCmd.Flags().Bool("test", false, "run the daily job once and exit")

	rootCmd.AddCommand(scheduleCmd)
}
