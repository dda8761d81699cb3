package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v6"
)

// Config is loaded once from the environment at startup and stays immutable
// for the process lifetime.
type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
	AdminUserID      int64  `env:"ADMIN_USER"`

	// Storage. Files rotate once they grow past MAX_FILE_SIZE_MB (50 MB
	// unless overridden).
	DataDir       string `env:"DATA_DIR" envDefault:"data/chats"`
	MaxFileSizeMB int64  `env:"MAX_FILE_SIZE_MB" envDefault:"50"`

	// Routing
	EnableGroup    bool     `env:"ENABLE_GROUP" envDefault:"true"`
	EnablePrivate  bool     `env:"ENABLE_PRIVATE" envDefault:"true"`
	GroupWhitelist []string `env:"GROUP_WHITELIST" envSeparator:":"`
	GroupBlacklist []string `env:"GROUP_BLACKLIST" envSeparator:":"`
	SaveSystemInfo bool     `env:"SAVE_SYSTEM_INFO" envDefault:"true"`

	// Web UI
	WebHost string `env:"WEB_HOST" envDefault:"0.0.0.0"`
	WebPort int    `env:"WEB_PORT" envDefault:"8866"`

	// Daily report schedule (cron, UTC)
	ReportCron string `env:"REPORT_CRON" envDefault:"0 21 * * *"`

	// Optional LLM replies
	LLMProvider        string `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
	OpenAIModel        string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`
	YandexOAuthToken   string `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID     string `env:"YANDEX_FOLDER_ID"`

	// Prompts
	SystemPromptPath string `env:"SYSTEM_PROMPT_PATH"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	if err := cfg.validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB)
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("WEB_PORT out of range: %d", c.WebPort)
	}
	return nil
}

// MaxFileSize returns the rotation threshold in bytes.
func (c *Config) MaxFileSize() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}
