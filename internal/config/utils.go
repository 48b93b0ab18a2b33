package config

import (
	"os"
	"strconv"
)

func stringLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func floatLookup(key string) (float64, bool) {
	valueStr, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func stringOrEmpty(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func floatOrEmpty(key string, defaultValue float64) float64 {
	value, ok := floatLookup(key)
	if !ok {
		return defaultValue
	}
	return value
}
