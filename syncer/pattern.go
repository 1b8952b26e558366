package syncer

import (
	"path"
	"regexp"
	"strings"

	"github.com/PeterVoronov/action-prepare-locales/config"
	"github.com/PeterVoronov/action-prepare-locales/errors"
	"github.com/PeterVoronov/action-prepare-locales/fs"
)

// Pattern is a compiled discovery pattern: a glob with one parenthesised
// group marking the language identifier, e.g. "locales/source/core_(??).json".
type Pattern struct {
	raw  string
	glob string
	re   *regexp.Regexp
}

// CompilePattern parses a discovery pattern.
//
// Glob syntax follows path.Match: '?' matches one character other than '/',
// '*' matches any run of them, '[...]' is a character class and '\' escapes
// the next character. The pattern must contain exactly one group.
//
// The pattern is cleaned with path.Clean first, so "./a/(??).json" and
// "a//(??).json" match the cleaned paths returned by globbing.
func CompilePattern(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "source pattern is empty")
	}

	var glob, expr strings.Builder
	expr.WriteString("^")

	runes := []rune(path.Clean(pattern))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '(', ')':
			expr.WriteRune(r)
		case '?':
			glob.WriteRune(r)
			expr.WriteString("[^/]")
		case '*':
			glob.WriteRune(r)
			expr.WriteString("[^/]*")
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				return nil, errors.Newf(errors.CodeInvalidConfig, "source pattern %q has an unterminated character class", pattern)
			}
			class := string(runes[i : end+1])
			glob.WriteString(class)
			expr.WriteString(class)
			i = end
		case '\\':
			if i+1 >= len(runes) {
				return nil, errors.Newf(errors.CodeInvalidConfig, "source pattern %q ends with an escape", pattern)
			}
			i++
			glob.WriteRune('\\')
			glob.WriteRune(runes[i])
			expr.WriteString(regexp.QuoteMeta(string(runes[i])))
		default:
			glob.WriteRune(r)
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid source pattern",
			map[string]interface{}{"pattern": pattern})
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, errors.Newf(errors.CodeInvalidConfig,
			"source pattern %q must have exactly one group, found %d", pattern, n)
	}

	return &Pattern{raw: pattern, glob: glob.String(), re: re}, nil
}

// classEnd returns the index of the ']' closing the class opened at start,
// or -1.
func classEnd(runes []rune, start int) int {
	i := start + 1
	if i < len(runes) && runes[i] == '^' {
		i++
	}
	// a ']' right after the opening bracket is part of the class
	if i < len(runes) && runes[i] == ']' {
		i++
	}
	for ; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			i++
		case ']':
			return i
		}
	}
	return -1
}

// String returns the pattern as given.
func (p *Pattern) String() string {
	return p.raw
}

// Glob returns the pattern without its group markers.
func (p *Pattern) Glob() string {
	return p.glob
}

// Language extracts the language identifier from a matched path.
// It returns false if the path does not match or the capture is empty.
func (p *Pattern) Language(name string) (string, bool) {
	m := p.re.FindStringSubmatch(path.Clean(name))
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// Unit is one source file, the language it provides and the target file
// it publishes to.
type Unit struct {
	Source   string
	Language string
	Target   string
}

// Discover lists the units matching pattern, ordered by source path.
// Files whose language capture is empty are ignored.
func Discover(fsys fs.Filesystem, pattern *Pattern, cfg config.Config) ([]Unit, error) {
	matches, err := fsys.Glob(pattern.Glob())
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeDiscoveryFailed, "failed to list source files",
			map[string]interface{}{"pattern": pattern.String()})
	}

	units := make([]Unit, 0, len(matches))
	for _, source := range matches {
		language, ok := pattern.Language(source)
		if !ok {
			continue
		}
		units = append(units, Unit{
			Source:   source,
			Language: language,
			Target:   cfg.TargetPath(source, language),
		})
	}
	return units, nil
}
