// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RequireNonEmpty returns an error naming the first blank value.
func RequireNonEmpty(values map[string]string) error {
	for _, name := range sortedKeys(values) {
		if strings.TrimSpace(values[name]) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
