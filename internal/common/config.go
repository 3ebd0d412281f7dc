package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
	Renderer RendererConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development | production
	LogLevel string
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Addr string
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// GeminiConfig holds extraction-service settings.
type GeminiConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration
}

// UploadConfig holds ingestion intake settings.
type UploadConfig struct {
	// Dir is where normalized temporary files are written before extraction.
	Dir string
	// RenderSpreadsheets selects the spreadsheet normalization variant:
	// false = serialize rows as a JSON text dump, true = print rows to PDF
	// through the headless-browser renderer.
	RenderSpreadsheets bool
}

// RendererConfig holds headless-browser settings.
type RendererConfig struct {
	ChromeBin string
}

// LoadConfig reads configuration from environment variables, with an optional
// .env file for local development. Env vars take precedence.
func LoadConfig() *Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "30m")
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", "5m")
	v.SetDefault("DB_DIAL_TIMEOUT", "3s")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("GEMINI_TEMPERATURE", 0.0)
	v.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 8192)
	v.SetDefault("GEMINI_TIMEOUT", "60s")
	v.SetDefault("UPLOAD_DIR", "./tmp")
	v.SetDefault("RENDER_SPREADSHEETS", false)
	v.SetDefault("CHROME_BIN", "chromium")

	return &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("HTTP_ADDR"),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("DB_URL"),
			MaxConns:        v.GetInt32("DB_MAX_CONNS"),
			MinConns:        v.GetInt32("DB_MIN_CONNS"),
			MaxConnLifetime: v.GetDuration("DB_MAX_CONN_LIFETIME"),
			MaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
			DialTimeout:     v.GetDuration("DB_DIAL_TIMEOUT"),
		},
		Gemini: GeminiConfig{
			APIKey:          v.GetString("GEMINI_API_KEY"),
			Model:           v.GetString("GEMINI_MODEL"),
			BaseURL:         v.GetString("GEMINI_BASE_URL"),
			Temperature:     float32(v.GetFloat64("GEMINI_TEMPERATURE")),
			MaxOutputTokens: v.GetInt("GEMINI_MAX_OUTPUT_TOKENS"),
			Timeout:         v.GetDuration("GEMINI_TIMEOUT"),
		},
		Upload: UploadConfig{
			Dir:                v.GetString("UPLOAD_DIR"),
			RenderSpreadsheets: v.GetBool("RENDER_SPREADSHEETS"),
		},
		Renderer: RendererConfig{
			ChromeBin: v.GetString("CHROME_BIN"),
		},
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", nil)
	}
	if c.Gemini.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", nil)
	}
	if c.HTTP.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", nil)
	}
	return nil
}
