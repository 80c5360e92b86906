package config

import (
	"os"
	"strconv"
	"time"
)

// Get returns the environment value for key, or fallback when unset/empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetDuration parses the environment value as a time.Duration
// (e.g. "1s", "1500ms"), or returns fallback when unset or malformed.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// GetFloat parses the environment value as a float64, or returns fallback
// when unset or malformed.
func GetFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
