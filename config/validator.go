package config

import (
	"fmt"
	"strings"

	"github.com/PeterVoronov/action-prepare-locales/errors"
)

// Validate checks that c can drive a run.
//
// It validates:
//   - SourcePattern is set and contains exactly one capture group
//   - TargetPathAndPattern is set and contains a language placeholder
//   - AuthorName and AuthorEmail are set
//
// All problems are reported together in a single CodeInvalidConfig error.
func (c Config) Validate() error {
	var validationErrors []string

	if err := validateSourcePattern(c.SourcePattern); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if strings.TrimSpace(c.TargetPathAndPattern) == "" {
		validationErrors = append(validationErrors, "target path and pattern is empty")
	} else if !c.hasPlaceholder() {
		validationErrors = append(validationErrors,
			fmt.Sprintf("target path and pattern %q has no %s placeholder",
				c.TargetPathAndPattern, LanguagePlaceholders[1]))
	}

	if strings.TrimSpace(c.AuthorName) == "" {
		validationErrors = append(validationErrors, "author name is empty")
	}
	if strings.TrimSpace(c.AuthorEmail) == "" {
		validationErrors = append(validationErrors, "author email is empty")
	}

	if len(validationErrors) > 0 {
		return errors.New(
			errors.CodeInvalidConfig,
			fmt.Sprintf("configuration validation failed: %s", strings.Join(validationErrors, "; ")),
		)
	}

	return nil
}

// validateSourcePattern ensures the pattern has exactly one balanced,
// non-nested group. Parentheses that are escaped or inside a character
// class are literals.
func validateSourcePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("source pattern is empty")
	}

	groups, depth := 0, 0
	inClass := false
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			// escaped runes are literals
			i++
			continue
		}
		if inClass {
			if r == ']' {
				inClass = false
			}
			continue
		}
		switch r {
		case '[':
			inClass = true
			// a ']' right after the opening bracket (or its negation) is literal
			if i+1 < len(runes) && runes[i+1] == '^' {
				i++
			}
			if i+1 < len(runes) && runes[i+1] == ']' {
				i++
			}
		case '(':
			depth++
			if depth > 1 {
				return fmt.Errorf("source pattern %q has nested groups", pattern)
			}
			groups++
		case ')':
			depth--
			if depth < 0 {
				return fmt.Errorf("source pattern %q has unbalanced parentheses", pattern)
			}
		}
	}
	if inClass {
		return fmt.Errorf("source pattern %q has an unterminated character class", pattern)
	}
	if depth != 0 {
		return fmt.Errorf("source pattern %q has unbalanced parentheses", pattern)
	}
	if groups != 1 {
		return fmt.Errorf("source pattern %q must have exactly one group, found %d", pattern, groups)
	}
	return nil
}
