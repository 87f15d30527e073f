// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Sector is one Catho listing to crawl.
type Sector struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Config struct {
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL       string `yaml:"redis_url" env:"REDIS_URL"`
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	Port           string `yaml:"port" env:"PORT"`

	//Scraping
	Sectors  []Sector `yaml:"sectors"`
	MaxPages int      `yaml:"max_pages"`
	AllPages bool     `yaml:"all_pages"`
	Headless bool     `yaml:"headless"`

	//Normalization
	SectorMapPath string              `yaml:"sector_map_path"`
	SkillTaxonomy map[string][]string `yaml:"skill_taxonomy"`

	//Filtering
	Include       []string `yaml:"include_keywords"`
	Exclude       []string `yaml:"exclude_keywords"`
	MinConfidence float64  `yaml:"min_confidence"`
	MaxAgeDays    int      `yaml:"max_age_days"`

	//Dedup and upload
	DedupThreshold float64 `yaml:"dedup_threshold"`
	BatchSize      int     `yaml:"batch_size"`
	UploadRate     float64 `yaml:"upload_rate"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`
	LocalDBPath string `yaml:"local_db_path"`
}

// Load reads .env, then the YAML file at path (a missing file is not an error),
// applies env overrides and defaults, and validates.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Headless: true}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("⚠️ Config file %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 1
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 60
	}
	if c.DedupThreshold == 0 {
		c.DedupThreshold = 0.85
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies"
	}
	if c.CachePath == "" {
		c.CachePath = ".cache"
	}
	if c.LocalDBPath == "" {
		c.LocalDBPath = "data/vagas.db"
	}
}

// Validate checks ranges. Credentials are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be within [0,1], got %v", c.MinConfidence)
	}
	if c.DedupThreshold <= 0 || c.DedupThreshold > 1 {
		return fmt.Errorf("dedup_threshold must be within (0,1], got %v", c.DedupThreshold)
	}
	if c.UploadRate < 0 {
		return fmt.Errorf("upload_rate must not be negative")
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	for i, s := range c.Sectors {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("sector %d needs both name and url", i)
		}
	}
	return nil
}

// MaxAge is MaxAgeDays as a duration.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

// TelegramEnabled reports whether notifications can be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// SelectSectors returns the configured sectors whose names are in names, or all of them when names is empty.
func (c *Config) SelectSectors(names []string) ([]Sector, error) {
	if len(names) == 0 {
		return c.Sectors, nil
	}
	byName := make(map[string]Sector, len(c.Sectors))
	for _, s := range c.Sectors {
		byName[s.Name] = s
	}
	out := make([]Sector, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown sector %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}
