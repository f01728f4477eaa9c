package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	DemColor         = color.New(color.FgBlue, color.Bold)   // Democratic-leaning result
	RepColor         = color.New(color.FgRed, color.Bold)    // Republican-leaning result
	TossupColor      = color.New(color.FgWhite)              // Neutral tossup
	UncontestedColor = color.New(color.FgYellow)             // Uncontested contest
	OtherColor       = color.New(color.FgMagenta, color.Bold) // Third-party-leaning result
)

// GetPlainLabel returns the plain text label for a rating. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(rating schema.Rating) string {
	return rating.Label
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// color of the leading party.
func GetColorLabel(rating schema.Rating) string {
	text := GetPlainLabel(rating)

	switch rating.Party {
	case "Democratic":
		return DemColor.Sprint(text)
	case "Republican":
		return RepColor.Sprint(text)
	case schema.UncontestedCategory:
		return UncontestedColor.Sprint(text)
	default:
		if rating.Code == schema.UncontestedCode {
			return UncontestedColor.Sprint(text)
		}
		if rating.Category == rating.Party {
			// Tossup categories carry their own name as the party.
			return TossupColor.Sprint(text)
		}
		return OtherColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename. A partially written file is never left
// at the destination on any failure path.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("cannot sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot move output into place at %s: %w", path, err)
	}
	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
}
