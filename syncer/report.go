package syncer

import (
	"strings"

	"github.com/PeterVoronov/action-prepare-locales/git"
	"github.com/PeterVoronov/action-prepare-locales/translation"
)

// ChangeRecord describes what happened to one language during a run.
type ChangeRecord struct {
	Language     string
	Source       string
	SourceStatus git.FileStatus
	Target       string
	TargetStatus git.FileStatus
	// Changes holds per-key changes. It is empty when there was no readable
	// previous document.
	Changes translation.KeyChanges
}

// IsNew reports whether both files of the record are newly added.
func (c ChangeRecord) IsNew() bool {
	return c.SourceStatus == git.StatusAdded && c.TargetStatus == git.StatusAdded
}

// SyncReport is the ordered set of change records of a run, keyed by
// language. Adding a record for a language that is already present replaces
// it in place.
type SyncReport struct {
	records []ChangeRecord
	index   map[string]int
}

// NewSyncReport returns an empty report.
func NewSyncReport() *SyncReport {
	return &SyncReport{index: make(map[string]int)}
}

// Add records the outcome of a unit.
func (r *SyncReport) Add(rec ChangeRecord) {
	if i, ok := r.index[rec.Language]; ok {
		r.records[i] = rec
		return
	}
	r.index[rec.Language] = len(r.records)
	r.records = append(r.records, rec)
}

// Records returns a copy of the records in the order they were first added.
func (r *SyncReport) Records() []ChangeRecord {
	if r == nil {
		return nil
	}
	out := make([]ChangeRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of recorded languages.
func (r *SyncReport) Len() int {
	if r == nil {
		return 0
	}
	return len(r.records)
}

// Languages returns the recorded languages in order.
func (r *SyncReport) Languages() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Language
	}
	return out
}

// statusSymbol returns the commit message marker of a file status.
func statusSymbol(s git.FileStatus) string {
	switch s {
	case git.StatusAdded:
		return translation.Added.Symbol()
	case git.StatusModified:
		return translation.Modified.Symbol()
	case git.StatusDeleted:
		return translation.Deleted.Symbol()
	default:
		return translation.Unchanged.Symbol()
	}
}

// RenderReport formats r as a commit message:
//
//	Update of locale files for languages: en, de
//	  + language 'en':
//	   Changes in files:
//	    + locales/source/core_en.json,
//	    + locales/locale_en.json.
//	  * language 'de':
//	   Changes in files:
//	    * locales/source/core_de.json,
//	    * locales/locale_de.json.
//	   Changes in translation keys:
//	    * menu.b,
//	    + menu.c.
//
// An empty report renders as the empty string.
func RenderReport(r *SyncReport) string {
	if r.Len() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Update of locale files for languages: ")
	b.WriteString(strings.Join(r.Languages(), ", "))

	for _, rec := range r.records {
		marker := translation.Modified.Symbol()
		if rec.IsNew() {
			marker = translation.Added.Symbol()
		}
		b.WriteString("\n  " + marker + " language '" + rec.Language + "':")
		b.WriteString("\n   Changes in files:")
		b.WriteString("\n    " + statusSymbol(rec.SourceStatus) + " " + rec.Source + ",")
		b.WriteString("\n    " + statusSymbol(rec.TargetStatus) + " " + rec.Target + ".")

		keys := rec.Changes.Keys()
		if len(keys) == 0 {
			continue
		}
		b.WriteString("\n   Changes in translation keys:")
		for i, key := range keys {
			end := ","
			if i == len(keys)-1 {
				end = "."
			}
			b.WriteString("\n    " + rec.Changes[key].Symbol() + " " + key + end)
		}
	}

	return b.String()
}
