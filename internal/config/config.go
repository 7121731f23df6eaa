// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the runtime configuration from viper state.
// Values come, in increasing precedence, from built-in defaults, the
// .secrets/ directory, the config file, and the environment. The legacy
// environment names (OPENAI_API_KEY, POSTS_PER_DAY, GITHUB_TOKEN, ...) are
// bound explicitly; every other key is also reachable as AUTOBLOG_<KEY>.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/pdiddy/autoblog/pkg/types"
)

// EnvPrefix is the prefix for environment overrides of config file keys.
const EnvPrefix = "AUTOBLOG"

// Viper keys.
const (
	KeyBaseURL            = "generation.base_url"
	KeyAPIKey             = "generation.api_key"
	KeyModel              = "generation.model"
	KeyMaxTokens          = "generation.max_tokens"
	KeyTemperature        = "generation.temperature"
	KeyTimeout            = "generation.timeout"
	KeyUserAgent          = "generation.user_agent"
	KeyContentDir         = "generation.content_dir"
	KeyBatchDelay         = "generation.batch_delay"
	KeyAutoPublish        = "generation.auto_publish"
	KeyAuthor             = "generation.author"
	KeyLanguage           = "generation.language"
	KeySlugLanguage       = "generation.slug_language"
	KeyTechTopics         = "generation.tech_topics"
	KeyTutorialCategories = "generation.tutorial_categories"

	KeyGitHubToken = "publish.token"
	KeyGitHubRepo  = "publish.repo"
	KeyRepoDir     = "publish.repo_dir"
	KeyStagePath   = "publish.stage_path"
	KeyRemote      = "publish.remote"
	KeyBranch      = "publish.branch"

	KeyPostsPerDay = "schedule.posts_per_day"
	KeyDailyHour   = "schedule.daily_hour"
	KeyWeeklyDay   = "schedule.weekly_day"
	KeyWeeklyHour  = "schedule.weekly_hour"
	KeyTimezone    = "schedule.timezone"

	KeyCatalogFile = "topics.catalog_file"

	KeyRootDir        = "validation.root_dir"
	KeyRequiredDirs   = "validation.required_dirs"
	KeyRequiredFiles  = "validation.required_files"
	KeySiteConfigFile = "validation.site_config_file"
	KeyPingTimeout    = "validation.ping_timeout"

	KeyHistoryDB = "history.db_path"
)

// legacyEnv maps keys to the environment names the deployment scripts use.
var legacyEnv = map[string]string{
	KeyAPIKey:             "OPENAI_API_KEY",
	KeyBaseURL:            "OPENAI_BASE_URL",
	KeyModel:              "OPENAI_MODEL",
	KeyPostsPerDay:        "POSTS_PER_DAY",
	KeyAutoPublish:        "AUTO_PUBLISH",
	KeyTechTopics:         "TECH_TOPICS",
	KeyTutorialCategories: "TUTORIAL_CATEGORIES",
	KeyGitHubToken:        "GITHUB_TOKEN",
	KeyGitHubRepo:         "GITHUB_REPO",
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, "https://api.openai.com/v1")
	v.SetDefault(KeyModel, "gpt-3.5-turbo")
	v.SetDefault(KeyMaxTokens, 3000)
	v.SetDefault(KeyTemperature, 0.7)
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyContentDir, "content/posts")
	v.SetDefault(KeyBatchDelay, 2*time.Second)
	v.SetDefault(KeyAutoPublish, false)
	v.SetDefault(KeyAuthor, "AI Assistant")
	v.SetDefault(KeyLanguage, "English")
	v.SetDefault(KeySlugLanguage, "en")

	v.SetDefault(KeyRepoDir, ".")
	v.SetDefault(KeyStagePath, "content/posts/")
	v.SetDefault(KeyRemote, "origin")
	v.SetDefault(KeyBranch, "main")

	v.SetDefault(KeyPostsPerDay, 2)
	v.SetDefault(KeyDailyHour, 9)
	v.SetDefault(KeyWeeklyDay, "monday")
	v.SetDefault(KeyWeeklyHour, 10)
	v.SetDefault(KeyTimezone, "Asia/Shanghai")

	v.SetDefault(KeyCatalogFile, "topics.json")

	v.SetDefault(KeyRootDir, ".")
	v.SetDefault(KeyRequiredDirs, []string{"content", "content/posts", ".github/workflows"})
	v.SetDefault(KeyRequiredFiles, []string{"hugo.toml"})
	v.SetDefault(KeySiteConfigFile, "hugo.toml")
	v.SetDefault(KeyPingTimeout, 10*time.Second)

	v.SetDefault(KeyHistoryDB, ".autoblog/history.db")
}

// BindEnv wires the legacy environment names and the AUTOBLOG_ prefix.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, env, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}

// FieldError reports one malformed configuration value. Load substitutes
// the built-in default for that value and keeps going.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string { return e.Key + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Section returns the top-level group of the key, such as "schedule".
func (e *FieldError) Section() string {
	section, _, _ := strings.Cut(e.Key, ".")
	return section
}

// Problems returns every FieldError joined into err.
func Problems(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, Problems(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

// Filter keeps the problems in err that belong to one of sections. It
// returns nil when none do.
func Filter(err error, sections ...string) error {
	var kept []error
	for _, fe := range Problems(err) {
		if slices.Contains(sections, fe.Section()) {
			kept = append(kept, fe)
		}
	}
	return errors.Join(kept...)
}

// loader reads typed values from v, falling back to the built-in default
// for any key whose value is malformed.
type loader struct {
	v        *viper.Viper
	defaults *viper.Viper
	problems []error
}

func (l *loader) fail(key string, err error) {
	l.problems = append(l.problems, &FieldError{Key: key, Err: err})
}

func (l *loader) number(key string, check func(int) error) int {
	n, err := intValue(l.v.Get(key))
	if err == nil && check != nil {
		err = check(n)
	}
	if err != nil {
		l.fail(key, err)
		n, _ = intValue(l.defaults.Get(key))
	}
	return n
}

func (l *loader) float(key string) float64 {
	f, err := cast.ToFloat64E(l.v.Get(key))
	if err != nil {
		l.fail(key, err)
		f = cast.ToFloat64(l.defaults.Get(key))
	}
	return f
}

func (l *loader) duration(key string) time.Duration {
	d, err := durationValue(l.v.Get(key))
	if err != nil {
		l.fail(key, err)
		d, _ = durationValue(l.defaults.Get(key))
	}
	return d
}

func (l *loader) list(key string) []string {
	items, err := listValue(l.v.Get(key))
	if err != nil {
		l.fail(key, err)
		items, _ = listValue(l.defaults.Get(key))
	}
	return items
}

func (l *loader) weekday(key string) time.Weekday {
	d, err := ParseWeekday(l.v.GetString(key))
	if err != nil {
		l.fail(key, err)
		d, _ = ParseWeekday(l.defaults.GetString(key))
	}
	return d
}

func (l *loader) timezone(key string) string {
	tz := l.v.GetString(key)
	if _, err := time.LoadLocation(tz); err != nil {
		l.fail(key, err)
		tz = l.defaults.GetString(key)
	}
	return tz
}

// Load converts v into a Config. Malformed values are replaced with their
// built-in defaults and reported together as FieldErrors in the returned
// error, so callers can decide which sections they depend on.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	defaults := viper.New()
	SetDefaults(defaults)
	l := &loader{v: v, defaults: defaults}

	g := &cfg.Generation
	g.BaseURL = v.GetString(KeyBaseURL)
	g.APIKey = strings.TrimSpace(v.GetString(KeyAPIKey))
	g.Model = v.GetString(KeyModel)
	g.MaxTokens = l.number(KeyMaxTokens, nil)
	g.Temperature = l.float(KeyTemperature)
	g.Timeout = l.duration(KeyTimeout)
	g.UserAgent = v.GetString(KeyUserAgent)
	g.ContentDir = v.GetString(KeyContentDir)
	g.BatchDelay = l.duration(KeyBatchDelay)
	g.AutoPublish = isTrue(v.Get(KeyAutoPublish))
	g.Author = v.GetString(KeyAuthor)
	g.Language = v.GetString(KeyLanguage)
	g.SlugLanguage = v.GetString(KeySlugLanguage)
	g.TechTopics = l.list(KeyTechTopics)
	g.TutorialCategories = l.list(KeyTutorialCategories)

	cfg.Publish = types.PublishConfig{
		Token:     strings.TrimSpace(v.GetString(KeyGitHubToken)),
		Repo:      strings.TrimSpace(v.GetString(KeyGitHubRepo)),
		RepoDir:   v.GetString(KeyRepoDir),
		StagePath: v.GetString(KeyStagePath),
		Remote:    v.GetString(KeyRemote),
		Branch:    v.GetString(KeyBranch),
	}

	s := &cfg.Schedule
	s.PostsPerDay = l.number(KeyPostsPerDay, atLeastOne)
	s.DailyHour = l.number(KeyDailyHour, validHour)
	s.WeeklyHour = l.number(KeyWeeklyHour, validHour)
	s.WeeklyDay = l.weekday(KeyWeeklyDay)
	s.Timezone = l.timezone(KeyTimezone)

	cfg.Topics.CatalogFile = v.GetString(KeyCatalogFile)

	val := &cfg.Validation
	val.RootDir = v.GetString(KeyRootDir)
	val.RequiredDirs = l.list(KeyRequiredDirs)
	val.RequiredFiles = l.list(KeyRequiredFiles)
	val.SiteConfigFile = v.GetString(KeySiteConfigFile)
	val.PingTimeout = l.duration(KeyPingTimeout)

	cfg.History.DBPath = v.GetString(KeyHistoryDB)
	return cfg, errors.Join(l.problems...)
}

func intValue(raw any) (int, error) {
	return cast.ToIntE(strings.TrimSpace(cast.ToString(raw)))
}

func atLeastOne(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

func validHour(h int) error {
	if h < 0 || h > 23 {
		return fmt.Errorf("must be between 0 and 23, got %d", h)
	}
	return nil
}

func durationValue(raw any) (time.Duration, error) {
	d, err := cast.ToDurationE(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must not be negative, got %s", d)
	}
	return d, nil
}

// isTrue matches the deployment scripts, where only the literal "true"
// enables a flag held in the environment.
func isTrue(raw any) bool {
	switch x := raw.(type) {
	case bool:
		return x
	case string:
		return strings.TrimSpace(x) == "true"
	default:
		return false
	}
}

// listValue accepts a YAML list or a comma-separated string. Entries are
// trimmed and empty entries dropped. An unset value yields nil.
func listValue(raw any) ([]string, error) {
	var items []string
	switch x := raw.(type) {
	case nil:
		return nil, nil
	case string:
		items = strings.Split(x, ",")
	default:
		var err error
		if items, err = cast.ToStringSliceE(x); err != nil {
			return nil, err
		}
	}
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// ParseWeekday accepts an English day name, its three-letter abbreviation,
// or a number 0-6 with 0 for Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	if n, err := cast.ToIntE(s); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}
