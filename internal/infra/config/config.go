package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env      string
	HTTPAddr string
	Location *time.Location

	APIBaseURL string
	APIKey     string
	APIToken   string
	APITimeout time.Duration

	// VenueFixtures, when set, replaces the remote API with venues read
	// from a JSON file.
	VenueFixtures string

	CacheBackend     string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	IntervalCacheTTL time.Duration

	SessionBackend string
	MongoURI       string
	MongoDB        string
	SessionTTL     time.Duration

	KafkaBrokers     []string
	KafkaTopicPrefix string
	EventSource      string
}

// Load reads an optional .env file and then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		APIBaseURL:       strings.TrimRight(getEnv("HOLIDAZE_API_URL", "https://v2.api.noroff.dev"), "/"),
		APIKey:           os.Getenv("HOLIDAZE_API_KEY"),
		APIToken:         os.Getenv("HOLIDAZE_API_TOKEN"),
		VenueFixtures:    os.Getenv("VENUE_FIXTURES"),
		CacheBackend:     strings.ToLower(getEnv("CACHE_BACKEND", BackendMemory)),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		SessionBackend:   strings.ToLower(getEnv("SESSION_BACKEND", BackendMemory)),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "holidaze"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		EventSource:      getEnv("EVENT_SOURCE", "app://holidaze"),
	}

	loc, err := time.LoadLocation(getEnv("CALENDAR_LOCATION", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CALENDAR_LOCATION: %w", err)
	}
	cfg.Location = loc

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.APITimeout, err = parseDurationEnv("HOLIDAZE_API_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.IntervalCacheTTL, err = parseDurationEnv("INTERVAL_CACHE_TTL", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	switch cfg.CacheBackend {
	case BackendMemory, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}
	switch cfg.SessionBackend {
	case BackendMemory:
	case BackendMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required for SESSION_BACKEND=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}
