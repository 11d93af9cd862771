package git

import (
	"fmt"
)

// GetConfig reads a repository-scoped config value. An unset key returns
// the empty string, not an error.
func GetConfig(key string) (string, error) {
	value, _, err := LookupConfig(key)
	return value, err
}

// LookupConfig reads a repository-scoped config value and reports whether
// the key is set at all, so an explicitly-empty value can be told apart
// from an absent key.
func LookupConfig(key string) (string, bool, error) {
	value, err := RunGitCommand("config", "--get", key)
	if err != nil {
		// git config --get exits 1 for an unset key
		if exitCode(err) == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return value, true, nil
}

// SetConfig writes a repository-scoped config value
func SetConfig(key, value string) error {
	_, err := RunGitCommand("config", key, value)
	if err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}
