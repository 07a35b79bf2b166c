// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// CachePath is the sqlite research cache location.
	CachePath string
	// AnthropicAPIKey may be empty; commands that need the LLM fail at the
	// point of use, not at startup.
	AnthropicAPIKey string
	LLMModel        string
	OTLPEndpoint    string
	HTTPAddr        string
	EdgarUserAgent  string
	MaxTrials       int
	RequestDelay    time.Duration
}

// Load reads a .env file if present, then the environment. Every field has a
// working default except the API key.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("targetscout config dotenv_skipped err=%v", err)
	}
	return Config{
		CachePath:       getenv("TARGETSCOUT_CACHE_PATH", defaultCachePath()),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		LLMModel:        os.Getenv("TARGETSCOUT_LLM_MODEL"),
		OTLPEndpoint:    os.Getenv("TARGETSCOUT_OTLP_ENDPOINT"),
		HTTPAddr:        getenv("TARGETSCOUT_HTTP_ADDR", ":8089"),
		EdgarUserAgent:  os.Getenv("TARGETSCOUT_EDGAR_USER_AGENT"),
		MaxTrials:       getenvInt("TARGETSCOUT_MAX_TRIALS", 100),
		RequestDelay:    getenvDuration("TARGETSCOUT_REQUEST_DELAY", 250*time.Millisecond),
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "targetscout-cache.db"
	}
	return filepath.Join(home, ".targetscout", "cache.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("targetscout config bad_int key=%s value=%s", key, v)
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("targetscout config bad_duration key=%s value=%s", key, v)
		return fallback
	}
	return d
}
