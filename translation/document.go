package translation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// DocumentType is the fixed type tag of a published document.
const DocumentType = "telegramMenuTranslation"

var (
	// ErrNoTranslation is returned when a document has no translation member.
	ErrNoTranslation = errors.New("document has no translation")

	// ErrIncompatibleVersion is returned when a document was written with an
	// incompatible schema version.
	ErrIncompatibleVersion = errors.New("document version is incompatible")
)

// Document is the envelope written to every target file.
// Field order matches the serialized member order.
type Document struct {
	Type        string `json:"type"`
	Language    string `json:"language"`
	Version     string `json:"version"`
	Translation Node   `json:"translation"`
}

// NewDocument wraps a normalized tree for the given language.
func NewDocument(language string, translation Node) *Document {
	if translation == nil {
		translation = Node{}
	}
	return &Document{
		Type:        DocumentType,
		Language:    language,
		Version:     SchemaVersion,
		Translation: translation,
	}
}

// Marshal serializes d with two-space indentation, sorted keys inside the
// translation, and no HTML escaping. U+2028 and U+2029 are written raw.
// The output has no trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes emitted by
// the encoder with the raw characters. An escaped backslash followed by
// "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i+1:]; bytes.HasPrefix(rest, []byte("u2028")) || bytes.HasPrefix(rest, []byte("u2029")) {
			if rest[4] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// ParseDocument decodes a previously published document.
//
// Only the translation member is required; a missing language or type is
// tolerated. A document whose version is incompatible with SchemaVersion
// yields ErrIncompatibleVersion.
func ParseDocument(data []byte) (*Document, error) {
	var raw struct {
		Type        string          `json:"type"`
		Language    string          `json:"language"`
		Version     string          `json:"version"`
		Translation json.RawMessage `json:"translation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if len(raw.Translation) == 0 || string(raw.Translation) == "null" {
		return nil, ErrNoTranslation
	}

	ok, err := IsCompatible(raw.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleVersion, raw.Version)
	}

	tree, err := ParseTree(raw.Translation)
	if err != nil {
		return nil, fmt.Errorf("invalid translation member: %w", err)
	}

	return &Document{
		Type:        raw.Type,
		Language:    raw.Language,
		Version:     raw.Version,
		Translation: tree,
	}, nil
}
