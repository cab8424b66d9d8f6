package config

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// validLogLevels are the accepted log level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// durationEnvKeys lists all Config fields that are parsed as time.Duration.
var durationEnvKeys = []string{
	"READ_TIMEOUT",
	"WRITE_TIMEOUT",
	"IDLE_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
}

// positiveIntEnvKeys lists the integer fields that must be at least 1.
var positiveIntEnvKeys = []string{
	"DEMO_FEEDS",
	"FEED_BUFFER",
	"FILL_HISTORY",
	"VWAP_FILLS",
}

// allEnvKeys is every config-related env var key.
var allEnvKeys = append(append([]string{
	"CONFIG_FILE", "LOG_LEVEL", "LOG_FILE", "LOG_MAX_SIZE_MB",
	"LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "STATS_ADDR", "TICK_SIZE",
	"DEMO_ORDERS",
}, positiveIntEnvKeys...), durationEnvKeys...)

// unsetAllConfigEnv clears all config env vars.
func unsetAllConfigEnv() {
	for _, key := range allEnvKeys {
		os.Unsetenv(key)
	}
}

// genDurationString generates a valid Go duration string (e.g. "3s", "500ms", "2m").
func genDurationString() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		unit := rapid.SampledFrom([]string{"ms", "s", "m"}).Draw(t, "unit")
		val := rapid.IntRange(1, 600).Draw(t, "val")
		return fmt.Sprintf("%d%s", val, unit)
	})
}

// parseDurationOrDefault parses a duration string, returning the default if empty.
func parseDurationOrDefault(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, _ := time.ParseDuration(s)
	return d
}

func TestProperty_ValidConfigParsing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		unsetAllConfigEnv()
		defer unsetAllConfigEnv()

		// Empty string means "use default" (env var not set).
		logLevel := rapid.OneOf(
			rapid.Just(""),
			rapid.SampledFrom(validLogLevels),
		).Draw(t, "logLevel")

		tickSize := rapid.OneOf(
			rapid.Just(""),
			rapid.SampledFrom([]string{"1", "0.5", "0.01", "0.0001", "25"}),
		).Draw(t, "tickSize")

		ints := make(map[string]int, len(positiveIntEnvKeys))
		for _, key := range positiveIntEnvKeys {
			ints[key] = rapid.IntRange(0, 100000).Draw(t, key)
		}

		durStrs := make(map[string]string, len(durationEnvKeys))
		for _, key := range durationEnvKeys {
			durStrs[key] = rapid.OneOf(
				rapid.Just(""),
				genDurationString(),
			).Draw(t, key)
		}

		if logLevel != "" {
			os.Setenv("LOG_LEVEL", logLevel)
		}
		if tickSize != "" {
			os.Setenv("TICK_SIZE", tickSize)
		}
		// Zero stands for "unset".
		for key, v := range ints {
			if v != 0 {
				os.Setenv(key, strconv.Itoa(v))
			}
		}
		for _, key := range durationEnvKeys {
			if durStrs[key] != "" {
				os.Setenv(key, durStrs[key])
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned error for valid inputs: %v", err)
		}

		expectedLogLevel := "info"
		if logLevel != "" {
			expectedLogLevel = logLevel
		}
		if cfg.LogLevel != expectedLogLevel {
			t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, expectedLogLevel)
		}

		expectedTick := "0.01"
		if tickSize != "" {
			expectedTick = tickSize
		}
		if cfg.TickSize.String() != expectedTick {
			t.Fatalf("TickSize = %s, want %s", cfg.TickSize, expectedTick)
		}

		type intField struct {
			envKey string
			got    int
			defVal int
		}
		for _, f := range []intField{
			{"DEMO_FEEDS", cfg.DemoFeeds, 1},
			{"FEED_BUFFER", cfg.FeedBuffer, 1024},
			{"FILL_HISTORY", cfg.FillHistory, 10000},
			{"VWAP_FILLS", cfg.VWAPFills, 100},
		} {
			expected := f.defVal
			if ints[f.envKey] != 0 {
				expected = ints[f.envKey]
			}
			if f.got != expected {
				t.Fatalf("%s = %d, want %d", f.envKey, f.got, expected)
			}
		}

		type durField struct {
			envKey string
			got    time.Duration
			defVal time.Duration
		}
		durFields := []durField{
			{"READ_TIMEOUT", cfg.ReadTimeout, 5 * time.Second},
			{"WRITE_TIMEOUT", cfg.WriteTimeout, 10 * time.Second},
			{"IDLE_TIMEOUT", cfg.IdleTimeout, 60 * time.Second},
			{"SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, 10 * time.Second},
		}
		for _, df := range durFields {
			expected := parseDurationOrDefault(durStrs[df.envKey], df.defVal)
			if df.got != expected {
				t.Fatalf("%s = %v, want %v (env=%q)", df.envKey, df.got, expected, durStrs[df.envKey])
			}
		}
	})
}

func TestProperty_NonPositiveCountsReturnError(t *testing.T) {
	for _, key := range positiveIntEnvKeys {
		t.Run(key, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				unsetAllConfigEnv()
				defer unsetAllConfigEnv()

				v := rapid.IntRange(-1000, 0).Draw(t, "value")
				os.Setenv(key, strconv.Itoa(v))

				if _, err := Load(); err == nil {
					t.Fatalf("Load() should return error for %s=%d", key, v)
				}
			})
		})
	}
}

func TestProperty_InvalidLogLevelReturnsError(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		unsetAllConfigEnv()
		defer unsetAllConfigEnv()

		invalidLevel := rapid.StringMatching(`[a-z]{1,20}`).Filter(func(s string) bool {
			for _, v := range validLogLevels {
				if s == v {
					return false
				}
			}
			return s != ""
		}).Draw(t, "invalidLevel")

		os.Setenv("LOG_LEVEL", invalidLevel)

		_, err := Load()
		if err == nil {
			t.Fatalf("Load() should return error for invalid LOG_LEVEL %q", invalidLevel)
		}
	})
}

func TestProperty_InvalidDurationReturnsError(t *testing.T) {
	for _, key := range durationEnvKeys {
		t.Run(key, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				unsetAllConfigEnv()
				defer unsetAllConfigEnv()

				invalidDur := rapid.OneOf(
					rapid.StringMatching(`[a-zA-Z]{2,10}`),
					rapid.Just("notaduration"),
					rapid.Just("5x"),
					rapid.Just("abc123"),
				).Filter(func(s string) bool {
					if s == "" {
						return false
					}
					_, err := time.ParseDuration(s)
					return err != nil
				}).Draw(t, "invalidDuration")

				os.Setenv(key, invalidDur)

				_, err := Load()
				if err == nil {
					t.Fatalf("Load() should return error for invalid %s=%q", key, invalidDur)
				}
			})
		})
	}
}
