package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GFLOW_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gflow/logs/gflow.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GFLOW_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "gflow.log"
	}

	return filepath.Join(homeDir, ".gflow", "logs", "gflow.log")
}
