// Package config provides shared configuration utilities and tunables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidScale is returned by ParseScale for values that are neither
// "auto" nor a positive number.
var ErrInvalidScale = errors.New(`config: scale must be "auto" or a positive number`)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by
// the key, or fallback if it is unset. A set but malformed value is an error.
func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// ParseScale parses a display scale. "auto" (or "") yields 0, the auto-fit
// sentinel.
func ParseScale(value string) (float64, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "auto" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("scale %q: %w", value, ErrInvalidScale)
	}
	return f, nil
}

// GetEnvScale reads a display scale from the environment named by the key.
func GetEnvScale(key, fallback string) (float64, error) {
	s, err := ParseScale(GetEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return s, nil
}
