package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

// GetEnvAsInt64 gets an environment variable as a 64-bit integer
func GetEnvAsInt64(key string, defaultValue int64) (int64, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

// GetEnvAsFloat gets an environment variable as a float
func GetEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	switch strings.ToLower(valueStr) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return defaultValue, fmt.Errorf("%s: invalid boolean %q", key, valueStr)
}

// GetEnvAsDuration gets an environment variable as a duration or returns a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
