// Package envutil reads typed configuration values from the process
// environment, falling back to values loaded from a .env file.
package envutil

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Env looks up variables in the process environment first and in fallback second.
// It never modifies the process environment.
type Env struct {
	fallback map[string]string
}

// New returns an Env backed by the process environment and fallback.
func New(fallback map[string]string) Env {
	return Env{fallback: fallback}
}

// Get returns the value of key, or "" when it is unset or empty everywhere.
func (e Env) Get(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return e.fallback[key]
}

// GetString reads a string variable with a default fallback.
func (e Env) GetString(key, defaultValue string) string {
	if val := e.Get(key); val != "" {
		return val
	}
	return defaultValue
}

// GetInt reads an integer variable with a default fallback.
// Logs a warning if the value is invalid.
func (e Env) GetInt(key string, defaultValue int) int {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("invalid integer value for environment variable",
			"key", key,
			"value", val,
			"default", defaultValue)
		return defaultValue
	}

	return intVal
}

// GetBool reads a boolean variable with a default fallback.
// Accepts: "true", "1" (true), "false", "0" (false), case-insensitive.
// Logs a warning if the value is invalid.
func (e Env) GetBool(key string, defaultValue bool) bool {
	val := e.Get(key)
	if val == "" {
		return defaultValue
	}

	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		slog.Warn("invalid boolean value for environment variable",
			"key", key,
			"value", val,
			"default", defaultValue)
		return defaultValue
	}
}
