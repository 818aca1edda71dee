package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shouni/gemini-graffiti-kit/pkg/generator"
	"github.com/shouni/gemini-graffiti-kit/pkg/intake"
)

// Config はプロセス起動時に一度だけ読み込むアプリケーション設定です。
// 生成処理の途中で環境変数を参照することはありません。
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	Prompt       string
	SystemPrompt string
	AspectRatio  string
	Seed         *int64

	CompressPayload    bool
	CompressionQuality int

	GenerationTimeout time.Duration
	FetchTimeout      time.Duration
	MaxUploadBytes    int64 // 参考値。超えても拒否しない
	SessionTTL        time.Duration

	ListenAddr string
	LogLevel   slog.Level
}

// Load は .env ファイル（存在する場合）と環境変数から設定を読み込みます。
func Load() (*Config, error) {
	// ファイルがなくてもエラーにしない
	_ = godotenv.Load(".env", ".env.local")
	return FromEnv(os.Getenv)
}

// FromEnv は getenv から設定を組み立てて検証します。
func FromEnv(getenv func(string) string) (*Config, error) {
	e := &env{getenv: getenv}

	cfg := &Config{
		APIKey:             e.str("GEMINI_API_KEY", e.str("API_KEY", "")),
		BaseURL:            e.str("GEMINI_BASE_URL", ""),
		Model:              e.str("GEMINI_MODEL", generator.DefaultModel),
		Prompt:             e.str("GRAFFITI_PROMPT", generator.GraffitiPrompt),
		SystemPrompt:       e.str("GRAFFITI_SYSTEM_PROMPT", ""),
		AspectRatio:        e.str("GRAFFITI_ASPECT_RATIO", generator.DefaultAspectRatio),
		CompressPayload:    e.boolean("GRAFFITI_COMPRESS_PAYLOAD", false),
		CompressionQuality: e.integer("GRAFFITI_COMPRESSION_QUALITY", generator.ImageCompressionQuality),
		GenerationTimeout:  e.duration("GENERATION_TIMEOUT", 2*time.Minute),
		FetchTimeout:       e.duration("FETCH_TIMEOUT", 30*time.Second),
		MaxUploadBytes:     int64(e.integer("MAX_UPLOAD_BYTES", int(intake.DefaultMaxBytes))),
		SessionTTL:         e.duration("SESSION_TTL", 2*time.Hour),
		ListenAddr:         e.str("LISTEN_ADDR", ":8080"),
	}

	// Gemini のシードは int32 のため、範囲外の値は起動時に拒否する
	if raw := e.str("GRAFFITI_SEED", ""); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			e.fail("GRAFFITI_SEED must be a 32-bit integer: %w", err)
		} else {
			cfg.Seed = &seed
		}
	}

	level, err := parseLevel(e.str("LOG_LEVEL", "info"))
	if err != nil {
		e.errs = append(e.errs, err)
	}
	cfg.LogLevel = level

	if err := errors.Join(e.errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は必須項目と値の範囲を確認します。
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.CompressionQuality < 1 || c.CompressionQuality > 100 {
		return fmt.Errorf("GRAFFITI_COMPRESSION_QUALITY must be between 1 and 100, got %d", c.CompressionQuality)
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// MaskedAPIKey はログ出力用に API キーを伏せ字にします。
func (c *Config) MaskedAPIKey() string {
	if len(c.APIKey) <= 8 {
		return "****"
	}
	return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// env は環境変数を読み取り、解析エラーを集約します。
type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) fail(format string, args ...any) {
	e.errs = append(e.errs, fmt.Errorf(format, args...))
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *env) boolean(key string, def bool) bool {
	v := strings.ToLower(e.str(key, ""))
	switch v {
	case "":
		return def
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	e.fail("%s must be a boolean, got %q", key, v)
	return def
}

func (e *env) integer(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		e.fail("%s must be an integer: %w", key, err)
		return def
	}
	return i
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.fail("%s must be a duration such as 30s or 2m: %w", key, err)
		return def
	}
	return d
}
