package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	OpenAI   OpenAIConfig
	Deepgram DeepgramConfig
	Telegram TelegramConfig

	// STTProvider selects the transcription stage: "openai" or "deepgram".
	STTProvider string

	MaxUploadBytes   int64
	UpstreamTimeout  time.Duration
	ProcessRateLimit int
	AllowedOrigins   []string
}

type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	NotesModel      string
}

type DeepgramConfig struct {
	APIKey  string
	BaseURL string
}

type TelegramConfig struct {
	BotToken    string
	AdminChatID int64
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.AdminChatID != 0
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port: getenv("PORT"),
		OpenAI: OpenAIConfig{
			APIKey:          getenv("OPENAI_API_KEY"),
			BaseURL:         getenv("OPENAI_BASE_URL"),
			TranscribeModel: getenv("OPENAI_TRANSCRIBE_MODEL"),
			NotesModel:      getenv("OPENAI_NOTES_MODEL"),
		},
		Deepgram: DeepgramConfig{
			APIKey:  getenv("DEEPGRAM_API_KEY"),
			BaseURL: getenv("DEEPGRAM_BASE_URL"),
		},
		Telegram: TelegramConfig{
			BotToken: getenv("TELEGRAM_BOT_TOKEN"),
		},
		STTProvider:      strings.ToLower(getenv("STT_PROVIDER")),
		ProcessRateLimit: 10,
	}

	var err error
	if v := getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		if cfg.Telegram.AdminChatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}
	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		if cfg.MaxUploadBytes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
		}
	}
	if v := getenv("UPSTREAM_TIMEOUT"); v != "" {
		if cfg.UpstreamTimeout, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
		}
	}
	if v := getenv("PROCESS_RATE_LIMIT"); v != "" {
		if cfg.ProcessRateLimit, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("PROCESS_RATE_LIMIT: %w", err)
		}
	}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills defaults and reports the first missing setting.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	switch c.STTProvider {
	case "":
		c.STTProvider = "openai"
	case "openai":
	case "deepgram":
		if c.Deepgram.APIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}

	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must not be negative")
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative")
	}
	if c.ProcessRateLimit < 0 {
		return fmt.Errorf("PROCESS_RATE_LIMIT must not be negative")
	}

	if c.Port == "" {
		c.Port = "8080"
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 100 << 20
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}

	return nil
}
