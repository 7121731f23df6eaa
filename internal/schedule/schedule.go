// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule runs generation jobs on a timetable: a daily batch that
// may be committed and pushed, and a weekly single tutorial. Jobs never
// return errors to the timer; failures are logged and the process keeps
// running. Each job runs at most once at a time, and a firing that overlaps
// a still-running job is skipped.
package schedule

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/autoblog/internal/generate"
	"github.com/pdiddy/autoblog/internal/publish"
	"github.com/pdiddy/autoblog/pkg/types"
)

// Generator produces articles.
type Generator interface {
	GenerateBatch(ctx context.Context, count int, kind types.ArticleType) []string
	GenerateOne(ctx context.Context, req types.GenerationRequest) (generate.Result, error)
}

// Publisher commits and pushes generated files.
type Publisher interface {
	Publish(ctx context.Context, files []string) publish.Result
}

// Scheduler owns the daily and weekly jobs.
type Scheduler struct {
	gen        Generator
	pub        Publisher
	cfg        types.ScheduleConfig
	autoCommit bool
	out        io.Writer

	daily  *semaphore.Weighted
	weekly *semaphore.Weighted
}

// New returns a Scheduler. Auto-commit runs only when autoCommit is set and
// pub is non-nil.
func New(gen Generator, pub Publisher, cfg types.ScheduleConfig, autoCommit bool, out io.Writer) *Scheduler {
	if out == nil {
		out = io.Discard
	}
	return &Scheduler{
		gen:        gen,
		pub:        pub,
		cfg:        cfg,
		autoCommit: autoCommit && pub != nil,
		out:        out,
		daily:      semaphore.NewWeighted(1),
		weekly:     semaphore.NewWeighted(1),
	}
}

// DailySpec returns the five-field cron expression for the daily batch.
func (s *Scheduler) DailySpec() string {
	return fmt.Sprintf("0 %d * * *", s.cfg.DailyHour)
}

// WeeklySpec returns the five-field cron expression for the weekly tutorial.
func (s *Scheduler) WeeklySpec() string {
	return fmt.Sprintf("0 %d * * %d", s.cfg.WeeklyHour, int(s.cfg.WeeklyDay))
}

// RunDaily generates the daily quota and, when auto-commit is on and at
// least one file was written, publishes the files. It returns the paths
// written, or nil when the run was skipped.
func (s *Scheduler) RunDaily(ctx context.Context) []string {
	var files []string
	s.guard("daily", s.daily, func() {
		fmt.Fprintf(s.out, "daily: starting at %s, %d article(s) planned\n",
			time.Now().Format(time.DateTime), s.cfg.PostsPerDay)

		files = s.gen.GenerateBatch(ctx, s.cfg.PostsPerDay, "")

		switch {
		case len(files) == 0:
		case !s.autoCommit:
			fmt.Fprintln(s.out, "daily: auto-commit disabled, skipping publish")
		default:
			if res := s.pub.Publish(ctx, files); res.Err != nil {
				fmt.Fprintf(s.out, "daily: publish incomplete: %v\n", res.Err)
			}
		}
		fmt.Fprintf(s.out, "daily: done, %d article(s) generated\n", len(files))
	})
	return files
}

// RunWeeklySpecial generates one tutorial article and returns its path, or
// "" when generation failed or the run was skipped.
func (s *Scheduler) RunWeeklySpecial(ctx context.Context) string {
	var path string
	s.guard("weekly", s.weekly, func() {
		fmt.Fprintln(s.out, "weekly: generating tutorial article")
		res, err := s.gen.GenerateOne(ctx, types.GenerationRequest{Type: types.ArticleTutorial})
		if err != nil {
			fmt.Fprintf(s.out, "weekly: tutorial generation failed: %v\n", err)
			return
		}
		path = res.Path
		fmt.Fprintf(s.out, "weekly: tutorial written to %s\n", path)
	})
	return path
}

// guard runs job unless another run of the same job holds sem. A panic in
// job is logged and swallowed.
func (s *Scheduler) guard(name string, sem *semaphore.Weighted, job func()) {
	if !sem.TryAcquire(1) {
		fmt.Fprintf(s.out, "%s: previous run still in progress, skipping\n", name)
		return
	}
	defer sem.Release(1)
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(s.out, "%s: recovered from panic: %v\n", name, r)
		}
	}()
	job()
}

// Start registers both jobs and blocks until ctx is cancelled. It waits for
// running jobs to finish before returning.
func (s *Scheduler) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", s.cfg.Timezone, err)
	}

	logger := cron.PrintfLogger(log.New(s.out, "cron: ", 0))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)
	if _, err := c.AddFunc(s.DailySpec(), func() { s.RunDaily(ctx) }); err != nil {
		return fmt.Errorf("registering daily job: %w", err)
	}
	if _, err := c.AddFunc(s.WeeklySpec(), func() { s.RunWeeklySpecial(ctx) }); err != nil {
		return fmt.Errorf("registering weekly job: %w", err)
	}

	fmt.Fprintf(s.out, "scheduler: daily at %02d:00, weekly on %s at %02d:00 (%s)\n",
		s.cfg.DailyHour, s.cfg.WeeklyDay, s.cfg.WeeklyHour, loc)
	fmt.Fprintf(s.out, "scheduler: %d article(s) per day, auto-commit %t\n", s.cfg.PostsPerDay, s.autoCommit)

	c.Start()
	<-ctx.Done()
	fmt.Fprintln(s.out, "scheduler: stopping")
	<-c.Stop().Done()
	return nil
}
