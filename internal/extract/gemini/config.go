package gemini

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config for the Gemini client.
type Config struct {
	APIKey          string // if empty, falls back to env GEMINI_API_KEY
	BaseURL         string // default https://generativelanguage.googleapis.com/v1beta
	Model           string // e.g. "gemini-1.5-flash"
	Temperature     float32
	MaxOutputTokens int
	Timeout         time.Duration // http client timeout
}

// Client calls the Gemini REST API over plain net/http.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 8192
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}
