package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that call the
// model API.
type HTTPConfig struct {
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "autoblog/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for the OpenAI-compatible chat completion API.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root; requests go to BaseURL/chat/completions.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent as a bearer token.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the chat model identifier (e.g. "gpt-3.5-turbo").
	Model string `json:"model" yaml:"model"`

	// MaxTokens bounds the completion length (default 3000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// GenerationConfig holds settings for the content generator.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// ContentDir is where documents are written (default "content/posts").
	ContentDir string `json:"content_dir" yaml:"content_dir"`

	// BatchDelay is the pause between consecutive batch iterations (default 2s).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// AutoPublish writes documents with draft = false.
	AutoPublish bool `json:"auto_publish" yaml:"auto_publish"`

	// Author is stamped into every document's front matter.
	Author string `json:"author" yaml:"author"`

	// Language is the language the model is asked to write in.
	Language string `json:"language" yaml:"language"`

	// SlugLanguage selects the transliteration table used for filenames.
	SlugLanguage string `json:"slug_language" yaml:"slug_language"`

	// TechTopics overrides the built-in prompt topic list.
	TechTopics []string `json:"tech_topics,omitempty" yaml:"tech_topics,omitempty"`

	// TutorialCategories overrides the built-in tutorial category list.
	TutorialCategories []string `json:"tutorial_categories,omitempty" yaml:"tutorial_categories,omitempty"`
}

// PublishConfig holds settings for committing generated documents.
type PublishConfig struct {
	// Token and Repo identify the hosted repository. Auto-commit runs only
	// when both are set.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	Repo  string `json:"repo" yaml:"repo"`

	// RepoDir is the working tree git commands run in (default ".").
	RepoDir string `json:"repo_dir" yaml:"repo_dir"`

	// StagePath is the path staged before committing (default "content/posts/").
	StagePath string `json:"stage_path" yaml:"stage_path"`

	Remote string `json:"remote" yaml:"remote"`
	Branch string `json:"branch" yaml:"branch"`
}

// AutoCommit reports whether generated batches should be committed and pushed.
func (c PublishConfig) AutoCommit() bool {
	return c.Token != "" && c.Repo != ""
}

// ScheduleConfig holds settings for the long-running scheduler.
type ScheduleConfig struct {
	// PostsPerDay is the daily batch size (default 2).
	PostsPerDay int `json:"posts_per_day" yaml:"posts_per_day"`

	// DailyHour is the hour the daily batch fires (default 9).
	DailyHour int `json:"daily_hour" yaml:"daily_hour"`

	// WeeklyDay and WeeklyHour place the weekly tutorial run (default Monday 10:00).
	WeeklyDay  time.Weekday `json:"weekly_day" yaml:"weekly_day"`
	WeeklyHour int          `json:"weekly_hour" yaml:"weekly_hour"`

	// Timezone is an IANA zone name (default "Asia/Shanghai").
	Timezone string `json:"timezone" yaml:"timezone"`
}

// TopicsConfig holds settings for the topic catalog.
type TopicsConfig struct {
	// CatalogFile is the JSON catalog path (default "topics.json").
	CatalogFile string `json:"catalog_file" yaml:"catalog_file"`
}

// ValidationConfig holds settings for the configuration validator.
type ValidationConfig struct {
	// RootDir is the site root every relative path is checked against.
	RootDir string `json:"root_dir" yaml:"root_dir"`

	RequiredDirs  []string `json:"required_dirs" yaml:"required_dirs"`
	RequiredFiles []string `json:"required_files" yaml:"required_files"`

	// SiteConfigFile is the Hugo configuration file (default "hugo.toml").
	SiteConfigFile string `json:"site_config_file" yaml:"site_config_file"`

	// PingTimeout bounds the live API check (default 10s).
	PingTimeout time.Duration `json:"ping_timeout" yaml:"ping_timeout"`
}

// HistoryConfig holds settings for the generation ledger.
type HistoryConfig struct {
	// DBPath is the SQLite database path. Empty disables the ledger.
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups every component configuration. It is built once at startup
// and handed to constructors.
type Config struct {
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Publish    PublishConfig    `json:"publish" yaml:"publish"`
	Schedule   ScheduleConfig   `json:"schedule" yaml:"schedule"`
	Topics     TopicsConfig     `json:"topics" yaml:"topics"`
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}
