// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate runs the on-demand configuration diagnostic. It checks
// the environment, the site layout, one live model API call, the Hugo site
// configuration, and the git working tree. Every check appends to a shared
// Report; none of them stops the pass.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/autoblog/pkg/types"
)

const (
	envAPIKey          = "OPENAI_API_KEY"
	defaultPingTimeout = 10 * time.Second
	replyPreviewRunes  = 50
)

// optionalEnv lists variables whose absence is only a warning.
var optionalEnv = []string{"OPENAI_BASE_URL", "POSTS_PER_DAY", "AUTO_PUBLISH"}

// siteKeys are the Hugo settings the site check expects.
var siteKeys = []string{"baseURL", "title", "theme"}

// Pinger performs one small live completion.
type Pinger interface {
	Ping(ctx context.Context) (string, error)
}

// GitInspector reads the state of a git working tree.
type GitInspector interface {
	IsWorkTree(ctx context.Context) error
	ConfigValue(ctx context.Context, key string) (string, error)
	RemoteURL(ctx context.Context, remote string) (string, error)
}

// Validator holds the collaborators for one validation pass.
type Validator struct {
	cfg    types.ValidationConfig
	apiKey string
	lookup func(string) (string, bool)
	pinger Pinger
	git    GitInspector
	out    io.Writer

	configProblems []error
}

// New returns a Validator. apiKey is the resolved model API key, which may
// come from the environment, .env or .secrets/. lookup reads the optional
// environment variables; nil uses os.LookupEnv. A nil pinger skips the API
// check with a warning. A nil git means git is not installed, which is an
// error.
func New(cfg types.ValidationConfig, apiKey string, lookup func(string) (string, bool), pinger Pinger, git GitInspector, out io.Writer) *Validator {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if out == nil {
		out = io.Discard
	}
	return &Validator{cfg: cfg, apiKey: apiKey, lookup: lookup, pinger: pinger, git: git, out: out}
}

// AddConfigProblems records configuration values that failed to load. Run
// reports each as an error.
func (v *Validator) AddConfigProblems(errs ...error) {
	v.configProblems = append(v.configProblems, errs...)
}

// Run performs all checks and returns the report.
func (v *Validator) Run(ctx context.Context) *Report {
	r := &Report{}
	fmt.Fprintln(v.out, "checking configuration values...")
	v.CheckConfig(r)
	fmt.Fprintln(v.out, "checking environment...")
	v.CheckEnvironment(r)
	fmt.Fprintln(v.out, "checking directory layout...")
	v.CheckLayout(r)
	fmt.Fprintln(v.out, "checking model API...")
	v.CheckAPI(ctx, r)
	fmt.Fprintln(v.out, "checking site configuration...")
	v.CheckSite(r)
	fmt.Fprintln(v.out, "checking git...")
	v.CheckGit(ctx, r)
	return r
}

func (v *Validator) path(rel string) string {
	if filepath.IsAbs(rel) || v.cfg.RootDir == "" {
		return rel
	}
	return filepath.Join(v.cfg.RootDir, rel)
}

// CheckConfig reports every configuration value that failed to load.
func (v *Validator) CheckConfig(r *Report) {
	for _, err := range v.configProblems {
		r.errorf("invalid configuration value %v", err)
	}
	if len(v.configProblems) == 0 {
		r.passf("configuration values are well formed")
	}
}

// CheckEnvironment requires the API key and warns about unset optional
// variables.
func (v *Validator) CheckEnvironment(r *Report) {
	if v.apiKey == "" {
		r.errorf("missing required environment variable %s", envAPIKey)
	} else {
		r.passf("%s is set", envAPIKey)
	}
	for _, name := range optionalEnv {
		if val, ok := v.lookup(name); ok && val != "" {
			r.passf("%s = %s", name, val)
		} else {
			r.warnf("optional environment variable %s is not set", name)
		}
	}
}

// CheckLayout requires every configured directory and file to exist.
func (v *Validator) CheckLayout(r *Report) {
	for _, dir := range v.cfg.RequiredDirs {
		info, err := os.Stat(v.path(dir))
		switch {
		case err != nil:
			r.errorf("missing directory %s", dir)
		case !info.IsDir():
			r.errorf("%s is not a directory", dir)
		default:
			r.passf("directory %s exists", dir)
		}
	}
	for _, file := range v.cfg.RequiredFiles {
		info, err := os.Stat(v.path(file))
		switch {
		case err != nil:
			r.errorf("missing file %s", file)
		case info.IsDir():
			r.errorf("%s is a directory, expected a file", file)
		default:
			r.passf("file %s exists", file)
		}
	}
}

// CheckAPI makes one live completion within the ping timeout. Without an API
// key the check is skipped, since CheckEnvironment already reports it.
func (v *Validator) CheckAPI(ctx context.Context, r *Report) {
	if v.apiKey == "" {
		r.warnf("API check skipped: no API key")
		return
	}
	if v.pinger == nil {
		r.warnf("API check skipped: no client configured")
		return
	}

	timeout := v.cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := v.pinger.Ping(ctx)
	if err != nil {
		r.errorf("%s", describeAPIError(err))
		return
	}
	r.passf("model API reachable, reply: %s", preview(reply, replyPreviewRunes))
}

// describeAPIError distinguishes HTTP failures from transport failures.
func describeAPIError(err error) string {
	var apiErr *openai.Error
	switch {
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Sprintf("API call failed: %d - %s", apiErr.StatusCode, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return "API call timed out"
	default:
		return fmt.Sprintf("API connection failed: %v", err)
	}
}

func preview(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}

// CheckSite parses the Hugo configuration and warns about missing keys. A
// configured theme must have a matching themes/<name> directory.
func (v *Validator) CheckSite(r *Report) {
	name := v.cfg.SiteConfigFile
	data, err := os.ReadFile(v.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.errorf("site configuration %s not found", name)
			return
		}
		r.errorf("reading site configuration %s: %v", name, err)
		return
	}

	settings, err := ParseSiteConfig(name, data)
	if err != nil {
		r.errorf("parsing site configuration %s: %v", name, err)
		return
	}

	for _, key := range siteKeys {
		if siteValue(settings, key) == nil {
			r.warnf("site configuration may be missing %s", key)
		} else {
			r.passf("site configuration sets %s", key)
		}
	}

	theme, ok := siteValue(settings, "theme").(string)
	if !ok || theme == "" {
		return
	}
	themeDir := filepath.Join("themes", theme)
	if info, err := os.Stat(v.path(themeDir)); err != nil || !info.IsDir() {
		r.errorf("theme %s is configured but %s does not exist", theme, themeDir)
		return
	}
	r.passf("theme %s is installed", theme)
}

// ParseSiteConfig decodes a Hugo configuration file by extension. Files
// without a recognised extension are read as TOML.
func ParseSiteConfig(name string, data []byte) (map[string]any, error) {
	settings := map[string]any{}
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &settings)
	case ".json":
		err = json.Unmarshal(data, &settings)
	default:
		err = toml.Unmarshal(data, &settings)
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// siteValue looks key up case-insensitively, as Hugo does. Empty strings
// count as unset.
func siteValue(settings map[string]any, key string) any {
	for k, val := range settings {
		if !strings.EqualFold(k, key) {
			continue
		}
		if s, ok := val.(string); ok && strings.TrimSpace(s) == "" {
			return nil
		}
		return val
	}
	return nil
}

// CheckGit requires a git working tree and warns about a missing identity
// or origin remote.
func (v *Validator) CheckGit(ctx context.Context, r *Report) {
	if v.git == nil {
		r.errorf("git is not installed")
		return
	}
	if err := v.git.IsWorkTree(ctx); err != nil {
		r.errorf("current directory is not a git repository")
		return
	}
	r.passf("git repository initialised")

	userName, nameErr := v.git.ConfigValue(ctx, "user.name")
	userEmail, emailErr := v.git.ConfigValue(ctx, "user.email")
	if nameErr != nil || emailErr != nil {
		r.warnf("git user identity is not configured")
	} else {
		r.passf("git user %s <%s>", userName, userEmail)
	}

	if remote, err := v.git.RemoteURL(ctx, "origin"); err != nil {
		r.warnf("git remote origin is not configured")
	} else {
		r.passf("git remote origin %s", remote)
	}
}
