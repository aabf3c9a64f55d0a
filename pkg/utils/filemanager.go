// =============================================================================
// Sales Analytics - File Manager Utilities
// =============================================================================
//
// This module handles the filesystem chores around a pipeline run: making
// sure the output and archive directories exist, generating output file
// names from the configured format, and archiving processed input files.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles directories and file movement for a pipeline run.
type FileManager struct {
	// OutputDir is where generated files are written.
	OutputDir string

	// ArchiveDir is where processed input files are moved.
	ArchiveDir string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates the output and archive directories if they do
// not already exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ArchiveInputFile moves a processed input file into the archive directory.
// The archived name carries a timestamp so repeated runs over files with the
// same name never collide. Returns the archive path.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	archived := fmt.Sprintf("%s_%s%s", name, time.Now().Format("20060102_150405"), ext)
	archivePath := filepath.Join(fm.ArchiveDir, archived)

	if err := os.Rename(filePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", filePath, err)
	}
	return archivePath, nil
}

// DiscoverInputFiles scans a directory for sales data files matching a glob
// pattern. An empty pattern defaults to "*.txt". Directories matching the
// pattern are skipped. Results come back in lexical order.
func DiscoverInputFiles(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.txt"
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, file := range matches {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			files = append(files, file)
		}
	}

	return files, nil
}

// GenerateOutputFileName expands an output name format.
//
// Supported placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current time as YYYYMMDD_HHMMSS
//	{name}      - base name of the input file without its extension
func GenerateOutputFileName(format, inputFile string) string {
	base := filepath.Base(inputFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	out := format
	out = strings.ReplaceAll(out, "{uuid}", uuid.NewString())
	out = strings.ReplaceAll(out, "{timestamp}", time.Now().Format("20060102_150405"))
	out = strings.ReplaceAll(out, "{name}", name)
	return out
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
