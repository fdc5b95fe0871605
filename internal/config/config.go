// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alex-user-go/eywa/internal/providers"
	"github.com/alex-user-go/eywa/internal/registry"
	"github.com/alex-user-go/eywa/internal/routing"
)

type Config struct {
	Server      ServerConfig
	Routing     routing.Config
	Properties  []registry.Property
	HotelRunner HotelRunnerConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Observ      ObservabilityConfig
	Tools       ToolsConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	Debug          bool
	RatePerMinute  int
	RatePerDay     int
	ShutdownPeriod time.Duration
}

type HotelRunnerConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	TopicBookings string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type ToolsConfig struct {
	RejectPastCheckIn bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            getEnv("EYWA_ENV", "development"),
			ShutdownPeriod: 10 * time.Second,
		},
		HotelRunner: HotelRunnerConfig{
			BaseURL: strings.TrimRight(getEnv("HOTELRUNNER_BASE_URL", "https://app.hotelrunner.com/api/v2/apps"), "/"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			TopicBookings: getEnv("KAFKA_TOPIC_BOOKING_EVENTS", "booking-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
	}

	var err error
	if cfg.Server.RatePerMinute, err = getInt("EYWA_HTTP_RATE_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if cfg.Server.RatePerDay, err = getInt("EYWA_HTTP_RATE_PER_DAY", 10000); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.HotelRunner.Timeout, err = getDuration("HOTELRUNNER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Tools.RejectPastCheckIn, err = getBool("EYWA_REJECT_PAST_CHECKIN", false); err != nil {
		return nil, err
	}
	if cfg.Server.Debug, err = getBool("EYWA_DEBUG", false); err != nil {
		return nil, err
	}

	if cfg.Routing.Default, err = providers.ParseID(getEnv("EYWA_DEFAULT_PROVIDER", string(providers.Reference))); err != nil {
		return nil, fmt.Errorf("EYWA_DEFAULT_PROVIDER: %w", err)
	}
	if cfg.Routing.Destinations, err = ParseDestinationRoutes(getEnv("EYWA_DESTINATION_ROUTES", "")); err != nil {
		return nil, fmt.Errorf("EYWA_DESTINATION_ROUTES: %w", err)
	}
	if cfg.Routing.Properties, err = ParsePropertyRoutes(getEnv("EYWA_PROPERTY_ROUTES", "")); err != nil {
		return nil, fmt.Errorf("EYWA_PROPERTY_ROUTES: %w", err)
	}
	if path := getEnv("EYWA_PROPERTIES_FILE", ""); path != "" {
		if cfg.Properties, err = LoadProperties(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ParseDestinationRoutes parses an ordered "pattern=provider,..." list.
func ParseDestinationRoutes(s string) ([]routing.Rule, error) {
	var rules []routing.Rule
	for _, pair := range splitList(s) {
		key, id, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		rules = append(rules, routing.Rule{Pattern: key, Provider: id})
	}
	return rules, nil
}

// ParsePropertyRoutes parses an "id=provider,..." list.
func ParsePropertyRoutes(s string) (map[string]providers.ID, error) {
	routes := make(map[string]providers.ID)
	for _, pair := range splitList(s) {
		key, id, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		routes[key] = id
	}
	return routes, nil
}

func parsePair(pair string) (string, providers.ID, error) {
	key, value, ok := strings.Cut(pair, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("malformed route %q, expected key=provider", pair)
	}
	id, err := providers.ParseID(value)
	if err != nil {
		return "", "", err
	}
	return key, id, nil
}

// LoadProperties reads HotelRunner property registrations from a JSON file.
// Registrations without a provider belong to HotelRunner.
func LoadProperties(path string) ([]registry.Property, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read properties file: %w", err)
	}

	var props []registry.Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("parse properties file %s: %w", path, err)
	}

	for i, p := range props {
		if p.ID == "" || p.AccountID == "" || p.Token == "" {
			return nil, fmt.Errorf("property %d in %s: id, hrId and token are required", i, path)
		}
		if p.Provider == "" {
			props[i].Provider = providers.HotelRunner
		}
	}
	return props, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// getDuration accepts Go durations ("15s") and plain milliseconds.
func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
