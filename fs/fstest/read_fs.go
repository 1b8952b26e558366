package fstest

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"testing"

	"github.com/PeterVoronov/action-prepare-locales/fs"
)

const (
	sourceDir  = "locales/source"
	sourceFile = "locales/source/core_en.json"
)

var sourceContent = []byte(`{"menu":{"a":"X","b":""}}`)

// TestReadFS tests read operations: Open, Stat, ReadDir, ReadFile, Exists.
func TestReadFS(t *testing.T, filesystem fs.Filesystem) {
	if err := filesystem.WriteFile(sourceFile, sourceContent, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v, want nil", sourceFile, err)
	}

	t.Run("Open", func(t *testing.T) {
		testReadFSOpen(t, filesystem)
	})
	t.Run("StatFile", func(t *testing.T) {
		testReadFSStatFile(t, filesystem)
	})
	t.Run("StatDir", func(t *testing.T) {
		testReadFSStatDir(t, filesystem)
	})
	t.Run("ReadDir", func(t *testing.T) {
		testReadFSReadDir(t, filesystem)
	})
	t.Run("ReadFile", func(t *testing.T) {
		testReadFSReadFile(t, filesystem)
	})
	t.Run("NotExist", func(t *testing.T) {
		testReadFSNotExist(t, filesystem)
	})
	t.Run("Exists", func(t *testing.T) {
		testReadFSExists(t, filesystem)
	})
}

// testReadFSOpen tests Open() and reading the whole file through it.
func testReadFSOpen(t *testing.T, filesystem fs.Filesystem) {
	f, err := filesystem.Open(sourceFile)
	if err != nil {
		t.Fatalf("Open(%q): got error %v, want nil", sourceFile, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			t.Errorf("Close(): got error %v", closeErr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll(): got error %v, want nil", err)
	}
	if !bytes.Equal(data, sourceContent) {
		t.Errorf("ReadAll(): got %q, want %q", data, sourceContent)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("File.Stat(): got error %v, want nil", err)
	}
	if info.Size() != int64(len(sourceContent)) {
		t.Errorf("File.Stat(): Size() = %d, want %d", info.Size(), len(sourceContent))
	}
}

// testReadFSStatFile tests Stat() on a file.
func testReadFSStatFile(t *testing.T, filesystem fs.Filesystem) {
	info, err := filesystem.Stat(sourceFile)
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", sourceFile, err)
	}
	if info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = true, want false", sourceFile)
	}
	if info.Name() != "core_en.json" {
		t.Errorf("Stat(%q): Name() = %q, want %q", sourceFile, info.Name(), "core_en.json")
	}
}

// testReadFSStatDir tests Stat() on a directory created implicitly by WriteFile.
func testReadFSStatDir(t *testing.T, filesystem fs.Filesystem) {
	info, err := filesystem.Stat(sourceDir)
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", sourceDir, err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", sourceDir)
	}
}

// testReadFSReadDir tests ReadDir() on a directory with one file.
func testReadFSReadDir(t *testing.T, filesystem fs.Filesystem) {
	entries, err := filesystem.ReadDir(sourceDir)
	if err != nil {
		t.Fatalf("ReadDir(%q): got error %v, want nil", sourceDir, err)
	}
	if len(entries) != 1 {
		t.Fatalf("ReadDir(%q): got %d entries, want 1", sourceDir, len(entries))
	}
	if entries[0].Name() != "core_en.json" {
		t.Errorf("ReadDir(%q): got entry name %q, want %q", sourceDir, entries[0].Name(), "core_en.json")
	}
}

// testReadFSReadFile tests ReadFile() returns the entire contents.
func testReadFSReadFile(t *testing.T, filesystem fs.Filesystem) {
	data, err := filesystem.ReadFile(sourceFile)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", sourceFile, err)
	}
	if !bytes.Equal(data, sourceContent) {
		t.Errorf("ReadFile(%q): got %q, want %q", sourceFile, data, sourceContent)
	}
}

// testReadFSNotExist tests that missing files report fs.ErrNotExist.
func testReadFSNotExist(t *testing.T, filesystem fs.Filesystem) {
	if _, err := filesystem.Open("locales/locale_xx.json"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Open(missing): got error %v, want fs.ErrNotExist", err)
	}
	if _, err := filesystem.ReadFile("locales/locale_xx.json"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("ReadFile(missing): got error %v, want fs.ErrNotExist", err)
	}
	if _, err := filesystem.Stat("locales/locale_xx.json"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Stat(missing): got error %v, want fs.ErrNotExist", err)
	}
}

// testReadFSExists tests Exists() for files, directories and missing paths.
func testReadFSExists(t *testing.T, filesystem fs.Filesystem) {
	tests := []struct {
		path string
		want bool
	}{
		{sourceFile, true},
		{sourceDir, true},
		{"locales/locale_xx.json", false},
		{"missing/dir/file.json", false},
	}

	for _, tt := range tests {
		exists, err := filesystem.Exists(tt.path)
		if err != nil {
			t.Errorf("Exists(%q): got error %v, want nil", tt.path, err)
			continue
		}
		if exists != tt.want {
			t.Errorf("Exists(%q): got %v, want %v", tt.path, exists, tt.want)
		}
	}
}
