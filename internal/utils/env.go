package utils

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvOrDefault returns the value of an environment variable or a fallback.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ParseInteger parses a string as int, returning the default on failure.
func ParseInteger(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// ParseBoolean parses a string as bool, returning the default on failure.
func ParseBoolean(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}
