package configutil

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads the given .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotenv(paths ...string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		slog.Debug("loaded environment file", "path", p)
	}
	return nil
}

// RequireEnv returns the values of the given variables, it fails on the
// first one that is unset or empty.
func RequireEnv(keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	for i, k := range keys {
		v := os.Getenv(k)
		if v == "" {
			return nil, fmt.Errorf("environment variable %s is not set", k)
		}
		values[i] = v
	}
	return values, nil
}
