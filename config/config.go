// Package config provides the run configuration of prepare-locales: where
// source translations are discovered, where published documents are written,
// and who authors the resulting commit.
package config

import (
	"path"
	"strings"
)

const (
	// DefaultSourcePattern discovers sources like locales/source/core_en.json.
	DefaultSourcePattern = "locales/source/core_(??).json"

	// DefaultTargetPathAndPattern places targets one directory above the source.
	DefaultTargetPathAndPattern = "../locale_$language.json"

	// DefaultAuthorName is the committer name used when none is configured.
	DefaultAuthorName = "github-actions"

	// DefaultAuthorEmail is the committer email used when none is configured.
	DefaultAuthorEmail = "github-actions@github.com"
)

// LanguagePlaceholders are the tokens replaced by the language identifier in
// a target template. The longer form is tried first.
var LanguagePlaceholders = []string{"$language$", "$language"}

// Config holds the settings of a single run.
type Config struct {
	// SourcePattern is a glob with exactly one parenthesised group capturing
	// the language identifier.
	SourcePattern string

	// TargetPathAndPattern is the target file template, relative to the
	// directory of each source file.
	TargetPathAndPattern string

	// AuthorName and AuthorEmail sign the commit.
	AuthorName  string
	AuthorEmail string

	// DryRun writes targets but skips staging and committing.
	DryRun bool
}

// Default returns a Config with every field set to its default.
func Default() Config {
	return Config{
		SourcePattern:        DefaultSourcePattern,
		TargetPathAndPattern: DefaultTargetPathAndPattern,
		AuthorName:           DefaultAuthorName,
		AuthorEmail:          DefaultAuthorEmail,
	}
}

// WithDefaults returns a copy of c where every empty string field is
// replaced by its default.
func (c Config) WithDefaults() Config {
	d := Default()
	if strings.TrimSpace(c.SourcePattern) == "" {
		c.SourcePattern = d.SourcePattern
	}
	if strings.TrimSpace(c.TargetPathAndPattern) == "" {
		c.TargetPathAndPattern = d.TargetPathAndPattern
	}
	if strings.TrimSpace(c.AuthorName) == "" {
		c.AuthorName = d.AuthorName
	}
	if strings.TrimSpace(c.AuthorEmail) == "" {
		c.AuthorEmail = d.AuthorEmail
	}
	return c
}

// TargetPath resolves the target file for a source file and language.
// The template's directory part is taken relative to the source's directory.
func (c Config) TargetPath(source, language string) string {
	name := c.TargetPathAndPattern
	for _, p := range LanguagePlaceholders {
		name = strings.ReplaceAll(name, p, language)
	}
	return path.Join(path.Dir(path.Clean(source)), name)
}

// hasPlaceholder reports whether the target template contains a language
// placeholder.
func (c Config) hasPlaceholder() bool {
	for _, p := range LanguagePlaceholders {
		if strings.Contains(c.TargetPathAndPattern, p) {
			return true
		}
	}
	return false
}
