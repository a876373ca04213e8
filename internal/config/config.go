package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	CryptoCompareAPIKey string
	HTTPPort            int
	RedisURL            string
	StaticDir           string

	// Outbound retry policy, applied to transient upstream failures only.
	RetryMaxAttempts int
	RetryBackoff     time.Duration

	PriceTimeout   time.Duration
	NewsTimeout    time.Duration
	GeneralTimeout time.Duration
	SocialTimeout  time.Duration

	OpenAIAPIKey     string
	OpenAIModel      string
	TelegramBotToken string

	SSHPort        int
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		CryptoCompareAPIKey: os.Getenv("CRYPTOCOMPARE_API_KEY"),
		RedisURL:            os.Getenv("REDIS_URL"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.CryptoCompareAPIKey == "" {
		log.Println("Warning: CRYPTOCOMPARE_API_KEY not set, upstream calls will be rejected")
	}
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, price caching disabled")
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.StaticDir = strings.TrimSpace(os.Getenv("STATIC_DIR"))
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}

	cfg.RetryMaxAttempts = 3
	if v := strings.TrimSpace(os.Getenv("HTTP_RETRY_MAX_ATTEMPTS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryMaxAttempts = n
		}
	}

	cfg.RetryBackoff = 500 * time.Millisecond
	if v := strings.TrimSpace(os.Getenv("HTTP_RETRY_BACKOFF_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetryBackoff = time.Duration(n) * time.Millisecond
		}
	}

	cfg.PriceTimeout = durationSecs("PRICE_TIMEOUT_SECS", 5)
	cfg.NewsTimeout = durationSecs("NEWS_TIMEOUT_SECS", 10)
	cfg.GeneralTimeout = durationSecs("GENERAL_INFO_TIMEOUT_SECS", 10)
	cfg.SocialTimeout = durationSecs("SOCIAL_TIMEOUT_SECS", 30)

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.SSHPort = 2222
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/coinboard_ed25519"
	}

	return cfg
}

func durationSecs(envVar string, def int) time.Duration {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
