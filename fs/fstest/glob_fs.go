package fstest

import (
	"strings"
	"testing"

	"github.com/PeterVoronov/action-prepare-locales/fs"
)

// TestGlobFS tests Glob(): sorted results, files only, no error for
// patterns that match nothing.
func TestGlobFS(t *testing.T, filesystem fs.Filesystem) {
	for _, name := range []string{
		"locales/source/core_ru.json",
		"locales/source/core_en.json",
		"locales/source/core_eng.json",
		"locales/source/other_en.json",
	} {
		if err := filesystem.WriteFile(name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): got error %v, want nil", name, err)
		}
	}
	if err := filesystem.MkdirAll("locales/source/core_de.json", 0o755); err != nil {
		t.Fatalf("MkdirAll(): got error %v, want nil", err)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{
			pattern: "locales/source/core_??.json",
			want:    []string{"locales/source/core_en.json", "locales/source/core_ru.json"},
		},
		{
			pattern: "locales/source/*_en.json",
			want:    []string{"locales/source/core_en.json", "locales/source/other_en.json"},
		},
		{
			pattern: "locales/*/core_[e]*.json",
			want:    []string{"locales/source/core_en.json", "locales/source/core_eng.json"},
		},
		{
			pattern: "missing/*.json",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := filesystem.Glob(tt.pattern)
			if err != nil {
				t.Fatalf("Glob(%q): got error %v, want nil", tt.pattern, err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Glob(%q): got %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}
