package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds every tunable the pipeline needs. It is loaded once in main
// and passed into constructors; nothing in collector/ or sentiment/ reads the
// environment directly.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	OpenAI   OpenAIConfig
	Webhook  WebhookConfig
	Browser  BrowserConfig
	Twitter  TwitterConfig
	Reddit   RedditConfig
	Email    EmailConfig
}

type AppConfig struct {
	Env      string `envconfig:"TSLAMOOD_ENV" default:"dev"`
	LogLevel string `envconfig:"TSLAMOOD_LOG_LEVEL" default:"info"`
	CacheDir string `envconfig:"TSLAMOOD_CACHE_DIR" default:"cache"`
}

type PostgresConfig struct {
	// Supabase hands out a plain Postgres DSN; any reachable Postgres works.
	DSN string `envconfig:"SUPABASE_DB_DSN"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type OpenAIConfig struct {
	APIKey  string        `envconfig:"OPENAI_API_KEY"`
	Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
}

type WebhookConfig struct {
	// n8n base URL; the Twitter scraper workflow listens on
	// {base}/webhook/twitter-scraper.
	BaseURL string        `envconfig:"N8N_BASE_URL"`
	Timeout time.Duration `envconfig:"N8N_TIMEOUT" default:"300s"`
}

type BrowserConfig struct {
	Headless       bool          `envconfig:"BROWSER_HEADLESS" default:"true"`
	ExecPath       string        `envconfig:"BROWSER_EXEC_PATH"`
	RunTimeout     time.Duration `envconfig:"BROWSER_RUN_TIMEOUT" default:"180s"`
	SessionMaxAge  time.Duration `envconfig:"BROWSER_SESSION_MAX_AGE" default:"24h"`
	MaxScrolls     int           `envconfig:"BROWSER_MAX_SCROLLS" default:"6"`
	ScrollWaitTime time.Duration `envconfig:"BROWSER_SCROLL_WAIT" default:"4s"`
}

type TwitterConfig struct {
	Query       string `envconfig:"TWITTER_QUERY" default:"TSLA OR Tesla"`
	Lang        string `envconfig:"TWITTER_LANG" default:"en"`
	MinReplies  int    `envconfig:"TWITTER_MIN_REPLIES" default:"10"`
	MinFaves    int    `envconfig:"TWITTER_MIN_FAVES" default:"50"`
	MinRetweets int    `envconfig:"TWITTER_MIN_RETWEETS" default:"10"`
	TargetCount int    `envconfig:"TWITTER_TARGET_COUNT" default:"75"`
}

type RedditConfig struct {
	Subreddit   string `envconfig:"REDDIT_SUBREDDIT" default:"wallstreetbets"`
	Query       string `envconfig:"REDDIT_QUERY" default:"TSLA OR Tesla"`
	SortBy      string `envconfig:"REDDIT_SORT" default:"top"`
	MinUpvotes  int    `envconfig:"REDDIT_MIN_UPVOTES" default:"0"`
	MinComments int    `envconfig:"REDDIT_MIN_COMMENTS" default:"0"`
	TargetCount int    `envconfig:"REDDIT_TARGET_COUNT" default:"50"`
}

type EmailConfig struct {
	SMTPHost   string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort   int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser   string `envconfig:"SMTP_USER"`
	SMTPPass   string `envconfig:"SMTP_PASSWORD"`
	Sender     string `envconfig:"SENDER_EMAIL"`
	Recipients string `envconfig:"RECIPIENT_EMAILS"`
}

func (c EmailConfig) RecipientList() []string {
	if c.Recipients == "" {
		return nil
	}
	var out []string
	for _, r := range strings.Split(c.Recipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Load reads the full configuration from the environment. Call after
// dotenv.LoadDotEnvs so .env files are visible.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment config")
	}
	return &cfg, nil
}
