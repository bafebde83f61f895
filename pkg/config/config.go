package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerAddr string
	APIToken   string // optional bearer token for the detect API; empty disables auth

	UserAgent       string
	ProbeTimeout    time.Duration // per outbound probe
	PathConcurrency int           // simultaneous path-fingerprint probes per run
	ProbeRate       float64       // probes per second against a single target, 0 = unlimited

	Outputs []string // enabled sinks: log, kafka, postgres
	PGDSN   string
	PGTable string
}

func getOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	switch v {
	case "1", "t", "true", "y", "yes":
		return true
	case "0", "f", "false", "n", "no":
		return false
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getStringSlice(k, def string) []string {
	v := os.Getenv(k)
	if v == "" {
		v = def
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func Load() Config {
	return Config{
		ServerAddr:      getOr("SERVER_ADDR", ":19790"),
		APIToken:        getOr("API_TOKEN", ""),
		UserAgent:       getOr("PROBE_USER_AGENT", "SEOAgent-HostProbe/1.0 (+https://seoagent.com)"),
		ProbeTimeout:    getDuration("PROBE_TIMEOUT", 5*time.Second),
		PathConcurrency: getInt("PATH_CONCURRENCY", 8),
		ProbeRate:       getFloat("PROBE_RATE", 10),
		Outputs:         getStringSlice("OUTPUTS", "log"),
		PGDSN:           getOr("PG_DSN", ""),
		PGTable:         getOr("PG_TABLE", "detections"),
	}
}
