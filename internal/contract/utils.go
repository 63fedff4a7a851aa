package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/climb-tre/claspar/schema"
)

// Confidence label constants.
const (
	HighValue = "High" // High confidence call
	LowValue  = "Low"  // Low confidence call
)

// Color variables for console output.
var (
	HighColor = color.New(color.FgGreen, color.Bold) // highColor marks calls passing all thresholds.
	LowColor  = color.New(color.FgYellow)            // lowColor marks calls failing at least one threshold.
)

// GetPlainConfidence returns a plain text label for a species confidence level.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainConfidence(conf schema.Confidence) string {
	if conf == schema.HighConfidence {
		return HighValue
	}
	return LowValue
}

// GetColorConfidence returns a colored text label for console output (table).
// It uses GetPlainConfidence to determine the string, and then applies the appropriate color.
func GetColorConfidence(conf schema.Confidence) string {
	text := GetPlainConfidence(conf)
	if text == HighValue {
		return HighColor.Sprint(text)
	}
	return LowColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. An empty path falls back to os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetArchiveDBFilePath returns the path to the SQLite DB file for archive storage.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".claspar_archive.db"
	}
	return filepath.Join(homeDir, ".claspar_archive.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
