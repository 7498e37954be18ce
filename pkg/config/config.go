package config

import (
	"time"

	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/storage"
)

// Content source kinds.
const (
	SourceHTTP    = "http"
	SourceStorage = "storage"
)

// Index provider kinds.
const (
	IndexDocument = "document"
	IndexListing  = "listing"
)

// Localization strategies.
const (
	StrategySuffix    = "suffix"
	StrategyHeuristic = "heuristic"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      logger.Config  `koanf:"log"`
	Content  ContentConfig  `koanf:"content"`
	Storage  storage.Config `koanf:"storage"`
	Redis    redis.Config   `koanf:"redis"`
	Analyzer AnalyzerConfig `koanf:"analyzer"`
	Diagrams DiagramConfig  `koanf:"diagrams"`
	Profile  ProfileConfig  `koanf:"profile"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	AnalyzeTimeout  time.Duration `koanf:"analyze_timeout"`
	// CORSOrigins are allowed to call /api/*. Empty allows any origin.
	CORSOrigins  []string `koanf:"cors_origins"`
	SecureCookie bool     `koanf:"secure_cookie"`
}

type ContentConfig struct {
	// Source is where documents are read from: "http" or "storage".
	Source string `koanf:"source"`
	// Index is how the manifest is obtained: "document" (index.json) or
	// "listing" (Git-hosted-content API).
	Index string `koanf:"index"`
	// BaseURL is the public content host for the http source.
	BaseURL string `koanf:"base_url"`
	// ListingURL is the directory-listing API root, e.g.
	// https://api.github.com/repos/{owner}/{repo}/contents.
	ListingURL string            `koanf:"listing_url"`
	Headers    map[string]string `koanf:"headers"`
	// Strategy is the single localization strategy: "suffix" or "heuristic".
	Strategy        string        `koanf:"strategy"`
	StaleAfter      time.Duration `koanf:"stale_after"`
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
	// CacheEntries bounds the in-memory document cache. Zero keeps every
	// document for the life of the process.
	CacheEntries int `koanf:"cache_entries"`
}

type AnalyzerConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type DiagramConfig struct {
	// RendererURL is a Kroki-compatible endpoint. Empty leaves diagrams to
	// the browser.
	RendererURL string        `koanf:"renderer_url"`
	Timeout     time.Duration `koanf:"timeout"`
}

type ProfileConfig struct {
	Name        string    `koanf:"name"`
	Roles       []string  `koanf:"roles"`
	Tagline     i18n.Text `koanf:"tagline"`
	ImageKey    string    `koanf:"image_key"`
	ImageURL    string    `koanf:"image_url"`
	ScheduleURL string    `koanf:"schedule_url"`
	Email       string    `koanf:"email"`
	GitHub      string    `koanf:"github"`
	LinkedIn    string    `koanf:"linkedin"`
}

// PlaceholderImage replaces a profile picture that fails to load.
const PlaceholderImage = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop&crop=face"

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  15 * time.Second,
			AnalyzeTimeout:  30 * time.Second,
		},
		Log: logger.Config{
			Level:     "info",
			Format:    logger.FormatJSON,
			Component: "folio",
		},
		Content: ContentConfig{
			Source:          SourceHTTP,
			Index:           IndexDocument,
			Strategy:        StrategySuffix,
			StaleAfter:      10 * time.Minute,
			RefreshInterval: 5 * time.Minute,
			FetchTimeout:    10 * time.Second,
		},
		Analyzer: AnalyzerConfig{Timeout: 30 * time.Second},
		Diagrams: DiagramConfig{Timeout: 10 * time.Second},
		Profile: ProfileConfig{
			Name:  "Enzo Lebrun",
			Roles: []string{"Lead Backend & GenAI", "Data Scientist & AI Engineer"},
			Tagline: i18n.Text{
				i18n.EN: "I design backends and GenAI systems that ship.",
				i18n.FR: "Je conçois des backends et des systèmes GenAI qui passent en production.",
			},
			ImageKey:    "me.png",
			ScheduleURL: "https://calendar.google.com/calendar/u/0/r/eventedit?text=Meeting+with+Enzo+Lebrun&details=Let's+discuss+your+project+or+opportunity!",
		},
	}
}
