package fstest

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/PeterVoronov/action-prepare-locales/fs"
)

// TestManageFS tests management operations: Remove, Rename, Walk, TempDir.
func TestManageFS(t *testing.T, filesystem fs.Filesystem) {
	t.Run("Remove", func(t *testing.T) {
		testManageFSRemove(t, filesystem)
	})
	t.Run("Rename", func(t *testing.T) {
		testManageFSRename(t, filesystem)
	})
	t.Run("Walk", func(t *testing.T) {
		testManageFSWalk(t, filesystem)
	})
	t.Run("TempDir", func(t *testing.T) {
		testManageFSTempDir(t, filesystem)
	})
}

// testManageFSRemove tests Remove() of a file.
func testManageFSRemove(t *testing.T, filesystem fs.Filesystem) {
	if err := filesystem.WriteFile("remove.json", []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile(): got error %v, want nil", err)
	}
	if err := filesystem.Remove("remove.json"); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", "remove.json", err)
	}
	if _, err := filesystem.Stat("remove.json"); !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Stat(removed): got error %v, want fs.ErrNotExist", err)
	}
}

// testManageFSRename tests Rename() of a file.
func testManageFSRename(t *testing.T, filesystem fs.Filesystem) {
	if err := filesystem.WriteFile("old.json", []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile(): got error %v, want nil", err)
	}
	if err := filesystem.Rename("old.json", "new.json"); err != nil {
		t.Fatalf("Rename(): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("new.json")
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", "new.json", err)
	}
	if string(data) != "old" {
		t.Errorf("ReadFile(%q): got %q, want %q", "new.json", data, "old")
	}
	if exists, _ := filesystem.Exists("old.json"); exists {
		t.Errorf("Exists(%q): got true after rename, want false", "old.json")
	}
}

// testManageFSWalk tests Walk() visits every file below root.
func testManageFSWalk(t *testing.T, filesystem fs.Filesystem) {
	files := []string{"tree/a.json", "tree/sub/b.json", "tree/sub/deeper/c.json"}
	for _, name := range files {
		if err := filesystem.WriteFile(name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): got error %v, want nil", name, err)
		}
	}

	var visited []string
	err := filesystem.Walk("tree", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			visited = append(visited, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk(%q): got error %v, want nil", "tree", err)
	}

	sort.Strings(visited)
	if strings.Join(visited, ",") != strings.Join(files, ",") {
		t.Errorf("Walk(%q): visited %v, want %v", "tree", visited, files)
	}
}

// testManageFSTempDir tests TempDir() creates a usable directory.
func testManageFSTempDir(t *testing.T, filesystem fs.Filesystem) {
	if err := filesystem.MkdirAll("tmp", 0o755); err != nil {
		t.Fatalf("MkdirAll(): got error %v, want nil", err)
	}
	dir, err := filesystem.TempDir("tmp", "locales-")
	if err != nil {
		t.Fatalf("TempDir(): got error %v, want nil", err)
	}

	info, err := filesystem.Stat(dir)
	if err != nil {
		t.Fatalf("Stat(%q): got error %v, want nil", dir, err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q): IsDir() = false, want true", dir)
	}
}
