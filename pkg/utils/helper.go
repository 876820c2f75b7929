package utils

import "strconv"

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat converts an optional query parameter to a float pointer.
// Returns nil when the value is empty or malformed.
func ParseFloat(value string) *float64 {
	if value == "" {
		return nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}

	return &result
}
