package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/efreitasn/matchbook/internal/domain"
)

// Config holds all runtime configuration for matchbook.
type Config struct {
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// StatsAddr is the listen address of the introspection server. Empty
	// disables it.
	StatsAddr string
	TickSize  domain.TickSize

	DemoOrders  int
	DemoFeeds   int
	FeedBuffer  int
	FillHistory int
	VWAPFills   int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. If CONFIG_FILE names a YAML file, its entries are
// used as base values that environment variables override. It returns an
// error for any invalid value.
func Load() (*Config, error) {
	src := source{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("invalid CONFIG_FILE: %w", err)
		}
		src.file = file
	}

	logLevel := src.getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	logMaxSize, err := src.getNonNegativeInt("LOG_MAX_SIZE_MB", 10)
	if err != nil {
		return nil, err
	}
	logMaxBackups, err := src.getNonNegativeInt("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}
	logMaxAge, err := src.getNonNegativeInt("LOG_MAX_AGE_DAYS", 28)
	if err != nil {
		return nil, err
	}

	tickSize, err := domain.ParseTickSize(src.getStr("TICK_SIZE", "0.01"))
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_SIZE: %w", err)
	}

	demoOrders, err := src.getNonNegativeInt("DEMO_ORDERS", 10)
	if err != nil {
		return nil, err
	}

	demoFeeds, err := src.getInt("DEMO_FEEDS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid DEMO_FEEDS: %w", err)
	}
	if demoFeeds < 1 {
		return nil, fmt.Errorf("invalid DEMO_FEEDS: %d, must be at least 1", demoFeeds)
	}

	feedBuffer, err := src.getInt("FEED_BUFFER", 1024)
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_BUFFER: %w", err)
	}
	if feedBuffer < 1 {
		return nil, fmt.Errorf("invalid FEED_BUFFER: %d, must be at least 1", feedBuffer)
	}

	fillHistory, err := src.getInt("FILL_HISTORY", 10000)
	if err != nil {
		return nil, fmt.Errorf("invalid FILL_HISTORY: %w", err)
	}
	if fillHistory < 1 {
		return nil, fmt.Errorf("invalid FILL_HISTORY: %d, must be at least 1", fillHistory)
	}

	vwapFills, err := src.getInt("VWAP_FILLS", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid VWAP_FILLS: %w", err)
	}
	if vwapFills < 1 {
		return nil, fmt.Errorf("invalid VWAP_FILLS: %d, must be at least 1", vwapFills)
	}

	readTimeout, err := src.getDuration("READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := src.getDuration("WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := src.getDuration("IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid IDLE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := src.getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		LogLevel:        logLevel,
		LogFile:         src.getStr("LOG_FILE", ""),
		LogMaxSizeMB:    logMaxSize,
		LogMaxBackups:   logMaxBackups,
		LogMaxAgeDays:   logMaxAge,
		StatsAddr:       src.getStr("STATS_ADDR", ""),
		TickSize:        tickSize,
		DemoOrders:      demoOrders,
		DemoFeeds:       demoFeeds,
		FeedBuffer:      feedBuffer,
		FillHistory:     fillHistory,
		VWAPFills:       vwapFills,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

// readFile parses a flat YAML mapping. Keys are matched case-insensitively
// against the environment variable names, so both "log_level" and
// "LOG_LEVEL" set LOG_LEVEL.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("parse %s: key %q must be a scalar", path, k)
		case nil:
			continue
		}
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}

// source resolves a key from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s source) getStr(key, defaultVal string) string {
	v := s.lookup(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func (s source) getInt(key string, defaultVal int) (int, error) {
	v := s.lookup(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func (s source) getNonNegativeInt(key string, defaultVal int) (int, error) {
	n, err := s.getInt(key, defaultVal)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s: %d, must not be negative", key, n)
	}
	return n, nil
}

func (s source) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := s.lookup(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
