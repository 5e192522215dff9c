package config

import (
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromEnv(env(map[string]string{"OPENAI_API_KEY": "sk-test"}))
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.STTProvider != "openai" {
		t.Errorf("STTProvider = %q, want openai", cfg.STTProvider)
	}
	if cfg.MaxUploadBytes != 100<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.ProcessRateLimit != 10 {
		t.Errorf("ProcessRateLimit = %d, want 10", cfg.ProcessRateLimit)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Telegram.Enabled() {
		t.Error("Telegram enabled without token")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromEnv(env(map[string]string{
		"OPENAI_API_KEY":         "sk-test",
		"PORT":                   "9000",
		"STT_PROVIDER":           "Deepgram",
		"DEEPGRAM_API_KEY":       "dg",
		"MAX_UPLOAD_BYTES":       "1024",
		"UPSTREAM_TIMEOUT":       "90s",
		"PROCESS_RATE_LIMIT":     "0",
		"CORS_ALLOWED_ORIGINS":   "https://a.example, https://b.example",
		"TELEGRAM_BOT_TOKEN":     "123:abc",
		"TELEGRAM_ADMIN_CHAT_ID": "-100200",
	}))
	if err != nil {
		t.Fatalf("fromEnv() error = %v", err)
	}

	if cfg.Port != "9000" || cfg.STTProvider != "deepgram" || cfg.MaxUploadBytes != 1024 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.UpstreamTimeout != 90*time.Second {
		t.Errorf("UpstreamTimeout = %v", cfg.UpstreamTimeout)
	}
	if cfg.ProcessRateLimit != 0 {
		t.Errorf("ProcessRateLimit = %d, want 0 (disabled)", cfg.ProcessRateLimit)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.Telegram.Enabled() || cfg.Telegram.AdminChatID != -100200 {
		t.Errorf("Telegram = %+v", cfg.Telegram)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing openai key", map[string]string{}},
		{"deepgram without key", map[string]string{"OPENAI_API_KEY": "k", "STT_PROVIDER": "deepgram"}},
		{"unknown provider", map[string]string{"OPENAI_API_KEY": "k", "STT_PROVIDER": "vosk"}},
		{"bad size", map[string]string{"OPENAI_API_KEY": "k", "MAX_UPLOAD_BYTES": "big"}},
		{"negative size", map[string]string{"OPENAI_API_KEY": "k", "MAX_UPLOAD_BYTES": "-1"}},
		{"negative rate limit", map[string]string{"OPENAI_API_KEY": "k", "PROCESS_RATE_LIMIT": "-5"}},
		{"bad timeout", map[string]string{"OPENAI_API_KEY": "k", "UPSTREAM_TIMEOUT": "soon"}},
		{"bad chat id", map[string]string{"OPENAI_API_KEY": "k", "TELEGRAM_ADMIN_CHAT_ID": "admins"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := fromEnv(env(tt.env)); err == nil {
				t.Error("fromEnv() should return error")
			}
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-env" || cfg.Port != "7070" {
		t.Errorf("cfg = %+v", cfg)
	}
}
