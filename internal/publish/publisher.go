// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/autoblog/pkg/types"
)

const (
	defaultStagePath = "content/posts/"
	defaultRemote    = "origin"
	defaultBranch    = "main"
)

// Result reports how far a publish got. A result with Staged and Committed
// set but Pushed clear is a valid terminal state: the commit stays local.
type Result struct {
	Staged    bool
	Committed bool
	Pushed    bool

	// Err is the error of the first failed step, or nil.
	Err error
}

// Complete reports whether all three steps succeeded.
func (r Result) Complete() bool {
	return r.Staged && r.Committed && r.Pushed
}

// Publisher stages, commits, and pushes generated documents.
type Publisher struct {
	repo *Repo
	cfg  types.PublishConfig
	now  func() time.Time
	out  io.Writer
}

// NewPublisher returns a Publisher for the working tree in cfg.RepoDir.
// Progress lines go to out.
func NewPublisher(cfg types.PublishConfig, out io.Writer) *Publisher {
	return newPublisher(NewRepo(cfg.RepoDir), cfg, time.Now, out)
}

func newPublisher(repo *Repo, cfg types.PublishConfig, now func() time.Time, out io.Writer) *Publisher {
	if cfg.StagePath == "" {
		cfg.StagePath = defaultStagePath
	}
	if cfg.Remote == "" {
		cfg.Remote = defaultRemote
	}
	if cfg.Branch == "" {
		cfg.Branch = defaultBranch
	}
	if out == nil {
		out = io.Discard
	}
	return &Publisher{repo: repo, cfg: cfg, now: now, out: out}
}

// CommitMessage returns the commit message for count documents dated t.
func CommitMessage(count int, t time.Time) string {
	return fmt.Sprintf("content: add %d AI-generated post(s) - %s", count, t.Format("2006-01-02"))
}

// Publish stages the content path, commits, and pushes. It stops at the first
// failing step and never undoes completed ones.
func (p *Publisher) Publish(ctx context.Context, files []string) Result {
	var res Result
	fmt.Fprintf(p.out, "publish: committing %d file(s)\n", len(files))

	if err := p.repo.Stage(ctx, p.cfg.StagePath); err != nil {
		return p.fail(res, err)
	}
	res.Staged = true

	if err := p.repo.Commit(ctx, CommitMessage(len(files), p.now())); err != nil {
		return p.fail(res, err)
	}
	res.Committed = true

	if err := p.repo.Push(ctx, p.cfg.Remote, p.cfg.Branch); err != nil {
		return p.fail(res, err)
	}
	res.Pushed = true

	fmt.Fprintf(p.out, "publish: pushed to %s/%s\n", p.cfg.Remote, p.cfg.Branch)
	return res
}

func (p *Publisher) fail(res Result, err error) Result {
	res.Err = err
	fmt.Fprintf(p.out, "publish: failed (staged=%t committed=%t): %v\n", res.Staged, res.Committed, err)
	return res
}
