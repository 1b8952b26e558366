// Package actions adapts prepare-locales to the GitHub Actions runner:
// log records become workflow commands and run results become step outputs.
package actions

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// Handler is a slog.Handler that writes records as workflow commands.
// Debug records become ::debug, warnings ::warning and errors ::error;
// info records are printed as plain log lines.
type Handler struct {
	action *githubactions.Action
	level  slog.Leveler
	prefix string
	attrs  []string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler returns a Handler writing through action.
// If level is nil, every record down to debug is emitted and the runner
// decides whether debug output is shown.
func NewHandler(action *githubactions.Action, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &Handler{action: action, level: level}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		for _, s := range formatAttr(h.prefix, a) {
			b.WriteByte(' ')
			b.WriteString(s)
		}
		return true
	})
	msg := b.String()

	switch {
	case r.Level >= slog.LevelError:
		h.action.Errorf("%s", msg)
	case r.Level >= slog.LevelWarn:
		h.action.Warningf("%s", msg)
	case r.Level >= slog.LevelInfo:
		h.action.Infof("%s", msg)
	default:
		h.action.Debugf("%s", msg)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	for _, a := range attrs {
		next.attrs = append(next.attrs, formatAttr(h.prefix, a)...)
	}
	return next
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *Handler) clone() *Handler {
	return &Handler{
		action: h.action,
		level:  h.level,
		prefix: h.prefix,
		attrs:  append([]string(nil), h.attrs...),
	}
}

// formatAttr renders an attribute as key=value pairs, flattening groups
// into dotted keys.
func formatAttr(prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return nil
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return nil
		}
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		var out []string
		for _, ga := range group {
			out = append(out, formatAttr(p, ga)...)
		}
		return out
	}

	return []string{prefix + a.Key + "=" + formatValue(a.Value)}
}

func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
