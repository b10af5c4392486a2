package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeeftor/nsiskit/internal/logging"
	"github.com/spf13/afero"
)

// EnsureDirectory creates a directory and all necessary parent directories
func EnsureDirectory(fs afero.Fs, path string) error {
	if path == "." || path == "" {
		return nil // Current directory always exists
	}

	return fs.MkdirAll(path, 0755)
}

// EnsureDirectoryForFile creates the parent directory for a given file path
func EnsureDirectoryForFile(fs afero.Fs, filePath string) error {
	return EnsureDirectory(fs, filepath.Dir(filePath))
}

// CheckFileExists verifies that a file exists and is readable
func CheckFileExists(fs afero.Fs, path string) error {
	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file '%s' does not exist: %w", path, err)
		}
		return fmt.Errorf("cannot access file '%s': %w", path, err)
	}
	return nil
}

// WriteFileWithDirectory writes content to a file, creating directories as needed
func WriteFileWithDirectory(fs afero.Fs, filePath string, content []byte, perm os.FileMode) error {
	if err := EnsureDirectoryForFile(fs, filePath); err != nil {
		return fmt.Errorf("failed to create directory for file '%s': %w", filePath, err)
	}

	return afero.WriteFile(fs, filePath, content, perm)
}

// ReadFileWithLogging reads a whole file and logs its size
func ReadFileWithLogging(fs afero.Fs, filePath string) ([]byte, error) {
	start := time.Now()
	data, err := afero.ReadFile(fs, filePath)
	if err != nil {
		logging.Debug("File read failed",
			"file_path", filePath,
			"error", err,
			"duration", time.Since(start))
		return nil, err
	}

	logging.Debug("File read completed",
		"file_path", filePath,
		"size_bytes", len(data),
		"duration", time.Since(start))
	return data, nil
}

// GetFileExtension returns the lowercase file extension without the dot
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// TrimExtension returns the base name of path without its extension
func TrimExtension(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SiblingPath returns dir/<name without extension>.<ext>. An empty dir
// keeps the result relative to the working directory.
func SiblingPath(dir, name, ext string) string {
	target := TrimExtension(name) + "." + ext
	if dir == "" {
		return target
	}
	return filepath.Join(dir, target)
}

// IsNLFFile checks if a file path represents an NLF language file
func IsNLFFile(path string) bool {
	return GetFileExtension(path) == "nlf"
}

// IsJSONFile checks if a file path represents a JSON file
func IsJSONFile(path string) bool {
	ext := GetFileExtension(path)
	return ext == "json" || ext == "json5"
}

// IsScriptFile checks if a file path represents an NSIS script or header
func IsScriptFile(path string) bool {
	ext := GetFileExtension(path)
	return ext == "nsi" || ext == "nsh"
}

// GetAbsolutePath converts a path to absolute form, handling ~ expansion
func GetAbsolutePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path provided")
	}

	// Handle ~ expansion
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		if len(path) == 1 {
			path = homeDir
		} else {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return filepath.Abs(path)
}

// ValidateInputFile validates that an input file exists and is not a directory
func ValidateInputFile(fs afero.Fs, inputFile string, paramName string) error {
	if inputFile == "" {
		return fmt.Errorf("%s is required", paramName)
	}

	stat, err := fs.Stat(inputFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s '%s' does not exist: %w", paramName, inputFile, err)
		}
		return fmt.Errorf("cannot access %s '%s': %w", paramName, inputFile, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%s '%s' is a directory", paramName, inputFile)
	}

	return nil
}
