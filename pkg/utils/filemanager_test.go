package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(filepath.Join(base, "out"), filepath.Join(base, "arch"))

	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}
	for _, dir := range []string{fm.OutputDir, fm.ArchiveDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}

	// Idempotent.
	if err := fm.EnsureDirectories(); err != nil {
		t.Errorf("second EnsureDirectories() error = %v", err)
	}
}

func TestArchiveInputFile(t *testing.T) {
	base := t.TempDir()
	fm := NewFileManager(filepath.Join(base, "out"), filepath.Join(base, "arch"))
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	input := filepath.Join(base, "sales_data.txt")
	if err := os.WriteFile(input, []byte("data"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	archived, err := fm.ArchiveInputFile(input)
	if err != nil {
		t.Fatalf("ArchiveInputFile() error = %v", err)
	}

	if FileExists(input) {
		t.Error("input file still present after archiving")
	}
	if !FileExists(archived) {
		t.Errorf("archive file %s missing", archived)
	}

	base_ := filepath.Base(archived)
	if !strings.HasPrefix(base_, "sales_data_") || !strings.HasSuffix(base_, ".txt") {
		t.Errorf("archive name = %q, want sales_data_<timestamp>.txt", base_)
	}
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b_sales.txt", "a_sales.txt", "notes.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	// A directory matching the pattern must not be picked up.
	if err := os.Mkdir(filepath.Join(dir, "old.txt"), 0755); err != nil {
		t.Fatal(err)
	}

	// Empty pattern defaults to *.txt.
	files, err := DiscoverInputFiles(dir, "")
	if err != nil {
		t.Fatalf("DiscoverInputFiles() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, "a_sales.txt"),
		filepath.Join(dir, "b_sales.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("DiscoverInputFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}

	csvs, err := DiscoverInputFiles(dir, "*.csv")
	if err != nil {
		t.Fatalf("DiscoverInputFiles(*.csv) error = %v", err)
	}
	if len(csvs) != 1 || filepath.Base(csvs[0]) != "notes.csv" {
		t.Errorf("DiscoverInputFiles(*.csv) = %v, want [notes.csv]", csvs)
	}
}

func TestDiscoverInputFiles_EmptyDirectory(t *testing.T) {
	files, err := DiscoverInputFiles(t.TempDir(), "")
	if err != nil {
		t.Fatalf("DiscoverInputFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("DiscoverInputFiles() = %v, want none", files)
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	got := GenerateOutputFileName("enriched_{name}_{timestamp}.txt", "/data/sales_data.txt")

	re := regexp.MustCompile(`^enriched_sales_data_\d{8}_\d{6}\.txt$`)
	if !re.MatchString(got) {
		t.Errorf("GenerateOutputFileName() = %q, want enriched_sales_data_<timestamp>.txt", got)
	}
}

func TestGenerateOutputFileName_UUID(t *testing.T) {
	a := GenerateOutputFileName("{uuid}.txt", "ignored.txt")
	b := GenerateOutputFileName("{uuid}.txt", "ignored.txt")

	if a == b {
		t.Errorf("uuid names should differ: %q", a)
	}
	if !strings.HasSuffix(a, ".txt") || len(a) != 40 {
		t.Errorf("unexpected uuid name %q", a)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if FileExists(dir) {
		t.Error("FileExists() true for a directory")
	}
	if FileExists(filepath.Join(dir, "nope")) {
		t.Error("FileExists() true for a missing path")
	}

	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() false for an existing file")
	}
}
