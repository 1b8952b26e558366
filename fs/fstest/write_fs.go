package fstest

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/PeterVoronov/action-prepare-locales/fs"
)

// TestWriteFS tests write operations: Create, OpenFile, WriteFile, MkdirAll.
func TestWriteFS(t *testing.T, filesystem fs.Filesystem) {
	t.Run("CreateAndWrite", func(t *testing.T) {
		testWriteFSCreate(t, filesystem)
	})
	t.Run("WriteFileCreatesParents", func(t *testing.T) {
		testWriteFSWriteFileParents(t, filesystem)
	})
	t.Run("WriteFileTruncates", func(t *testing.T) {
		testWriteFSWriteFileTruncates(t, filesystem)
	})
	t.Run("OpenFileAppend", func(t *testing.T) {
		testWriteFSOpenFileAppend(t, filesystem)
	})
	t.Run("MkdirAll", func(t *testing.T) {
		testWriteFSMkdirAll(t, filesystem)
	})
}

// testWriteFSCreate tests Create() new file, write data, verify contents.
func testWriteFSCreate(t *testing.T, filesystem fs.Filesystem) {
	testData := []byte(`{"type":"telegramMenuTranslation"}`)

	f, err := filesystem.Create("created.json")
	if err != nil {
		t.Fatalf("Create(%q): got error %v, want nil", "created.json", err)
	}
	n, err := f.Write(testData)
	if err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if n != len(testData) {
		_ = f.Close()
		t.Fatalf("Write(): wrote %d bytes, want %d", n, len(testData))
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("created.json")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", "created.json", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("ReadFile(%q): got %q, want %q", "created.json", data, testData)
	}
}

// testWriteFSWriteFileParents tests WriteFile() into directories that don't exist yet.
func testWriteFSWriteFileParents(t *testing.T, filesystem fs.Filesystem) {
	const name = "published/de/locale_de.json"
	if err := filesystem.WriteFile(name, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v, want nil", name, err)
	}

	info, err := filesystem.Stat("published/de")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "published/de", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", "published/de")
	}
}

// testWriteFSWriteFileTruncates tests that WriteFile() replaces longer content.
func testWriteFSWriteFileTruncates(t *testing.T, filesystem fs.Filesystem) {
	const name = "locale_en.json"
	if err := filesystem.WriteFile(name, []byte(`{"translation":{"a":"A","b":"B"}}`), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v, want nil", name, err)
	}
	if err := filesystem.WriteFile(name, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) overwrite: got error %v, want nil", name, err)
	}

	data, err := filesystem.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", name, err)
	}
	if string(data) != `{}` {
		t.Errorf("ReadFile(%q): got %q, want %q", name, data, `{}`)
	}
}

// testWriteFSOpenFileAppend tests OpenFile() with O_APPEND.
func testWriteFSOpenFileAppend(t *testing.T, filesystem fs.Filesystem) {
	const name = "append.log"
	if err := filesystem.WriteFile(name, []byte("one\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): got error %v, want nil", name, err)
	}

	f, err := filesystem.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("OpenFile(%q): got error %v, want nil", name, err)
	}
	if _, err := io.WriteString(f, "two\n"); err != nil {
		_ = f.Close()
		t.Fatalf("Write(): got error %v, want nil", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", name, err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("ReadFile(%q): got %q, want %q", name, data, "one\ntwo\n")
	}
}

// testWriteFSMkdirAll tests MkdirAll() nested directories and idempotency.
func testWriteFSMkdirAll(t *testing.T, filesystem fs.Filesystem) {
	for i := 0; i < 2; i++ {
		if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
			t.Fatalf("MkdirAll(%q) call %d: got error %v, want nil", "a/b/c", i+1, err)
		}
	}

	info, err := filesystem.Stat("a/b/c")
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", "a/b/c", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", "a/b/c")
	}
}
