package syncer

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeterVoronov/action-prepare-locales/config"
	"github.com/PeterVoronov/action-prepare-locales/errors"
	fsb "github.com/PeterVoronov/action-prepare-locales/fs/billy"
	"github.com/PeterVoronov/action-prepare-locales/git"
	"github.com/PeterVoronov/action-prepare-locales/translation"
)

const (
	sourceEN = "locales/source/core_en.json"
	sourceDE = "locales/source/core_de.json"
	targetEN = "locales/locale_en.json"
	targetDE = "locales/locale_de.json"
)

func TestRun_NewSourceWithoutTarget(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, sourceEN, `{"a":"X"}`)

	result, err := f.run(t, config.Default())
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	assert.Equal(t,
		`{
  "type": "telegramMenuTranslation",
  "language": "en",
  "version": "1.0",
  "translation": {
    "a": "X"
  }
}`, f.read(t, targetEN))

	recs := result.Report.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, git.StatusAdded, recs[0].SourceStatus)
	assert.Equal(t, git.StatusAdded, recs[0].TargetStatus)
	assert.Empty(t, recs[0].Changes)

	wantMessage := "Update of locale files for languages: en" +
		"\n  + language 'en':" +
		"\n   Changes in files:" +
		"\n    + locales/source/core_en.json," +
		"\n    + locales/locale_en.json."
	assert.Equal(t, wantMessage, result.Message)

	assert.True(t, result.Committed)
	assert.Equal(t, []string{sourceEN, targetEN}, result.Staged)

	head := f.head(t)
	assert.Equal(t, result.Commit, head.Hash)
	assert.Equal(t, wantMessage, head.Message)
	assert.Equal(t, config.DefaultAuthorName, head.Author.Name)
	assert.Equal(t, config.DefaultAuthorEmail, head.Author.Email)
	assert.True(t, fixedTime.Equal(head.Author.When))
	assert.Equal(t, []string{targetEN, sourceEN}, head.Files)
}

func TestRun_NormalizesNestedSource(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, sourceEN, `{"menu": {"b": "", "a": "X"}}`)

	_, err := f.run(t, config.Default())
	require.NoError(t, err)

	doc, err := translation.ParseDocument([]byte(f.read(t, targetEN)))
	require.NoError(t, err)
	assert.Equal(t, translation.Node{
		"menu": translation.Node{"a": translation.Leaf("X"), "b": translation.Leaf("menu.b")},
	}, doc.Translation)
}

func TestRun_ModifiedSourceDiffsAgainstPreviousTarget(t *testing.T) {
	tests := []struct {
		name        string
		previous    translation.Node
		source      string
		wantChanges translation.KeyChanges
		wantKeys    string
	}{
		{
			name:     "modified and added keys",
			previous: translation.Node{"a": translation.Leaf("X"), "b": translation.Leaf("Y")},
			source:   `{"a":"X","b":"Z","c":"W"}`,
			wantChanges: translation.KeyChanges{
				"b": translation.Modified,
				"c": translation.Added,
			},
			wantKeys: "\n   Changes in translation keys:" +
				"\n    * b," +
				"\n    + c.",
		},
		{
			name:        "deleted key",
			previous:    translation.Node{"a": translation.Leaf("X"), "b": translation.Leaf("Y")},
			source:      `{"a":"X"}`,
			wantChanges: translation.KeyChanges{"b": translation.Deleted},
			wantKeys: "\n   Changes in translation keys:" +
				"\n    - b.",
		},
		{
			name:        "reordered keys only",
			previous:    translation.Node{"a": translation.Leaf("X"), "b": translation.Leaf("Y")},
			source:      `{"b":"Y","a":"X"}`,
			wantChanges: translation.KeyChanges{},
		},
		{
			name:     "nested default filled key",
			previous: translation.Node{"menu": translation.Node{"a": translation.Leaf("menu.a")}},
			source:   `{"menu":{"a":"","b":""}}`,
			wantChanges: translation.KeyChanges{
				"menu.b": translation.Added,
			},
			wantKeys: "\n   Changes in translation keys:" +
				"\n    + menu.b.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				sourceEN: `{"initial":"1"}`,
				targetEN: published(t, "en", tt.previous),
			})
			f.write(t, sourceEN, tt.source)

			result, err := f.run(t, config.Default())
			require.NoError(t, err)
			require.Empty(t, result.Errors)

			recs := result.Report.Records()
			require.Len(t, recs, 1)
			assert.Equal(t, git.StatusModified, recs[0].SourceStatus)
			assert.Equal(t, git.StatusModified, recs[0].TargetStatus)
			assert.Equal(t, tt.wantChanges, recs[0].Changes)

			wantMessage := "Update of locale files for languages: en" +
				"\n  * language 'en':" +
				"\n   Changes in files:" +
				"\n    * locales/source/core_en.json," +
				"\n    * locales/locale_en.json." +
				tt.wantKeys
			assert.Equal(t, wantMessage, result.Message)
			assert.Equal(t, wantMessage, f.head(t).Message)
		})
	}
}

func TestRun_UnchangedSourceIsSkipped(t *testing.T) {
	target := published(t, "en", translation.Node{"a": translation.Leaf("X")})
	f := newFixture(t, map[string]string{
		sourceEN: `{"a":"X"}`,
		targetEN: target,
	})
	initial := f.head(t)

	result, err := f.run(t, config.Default())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Report.Len())
	assert.Empty(t, result.Message)
	assert.Empty(t, result.Staged)
	assert.False(t, result.Committed)
	assert.Equal(t, []Unit{{Source: sourceEN, Language: "en", Target: targetEN}}, result.Skipped)
	assert.Equal(t, target, f.read(t, targetEN))
	assert.Equal(t, initial.Hash, f.head(t).Hash)
}

func TestRun_UnchangedSourceWithMissingTarget(t *testing.T) {
	f := newFixture(t, map[string]string{sourceEN: `{"a":""}`})

	result, err := f.run(t, config.Default())
	require.NoError(t, err)

	recs := result.Report.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, git.StatusUnmodified, recs[0].SourceStatus)
	assert.Equal(t, git.StatusAdded, recs[0].TargetStatus)
	assert.Contains(t, result.Message, "\n  * language 'en':")
	assert.Contains(t, result.Message, "\n    = locales/source/core_en.json,")
	assert.Contains(t, result.Message, "\n    + locales/locale_en.json.")
	assert.Equal(t, []string{targetEN}, f.head(t).Files)
}

func TestRun_CorruptPreviousTarget(t *testing.T) {
	tests := []struct {
		name     string
		previous string
	}{
		{name: "invalid json", previous: `{"translation": `},
		{name: "no translation", previous: `{"type":"telegramMenuTranslation"}`},
		{name: "incompatible version", previous: `{"version":"2.0","translation":{"a":"X"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				sourceEN: `{"a":"X"}`,
				targetEN: tt.previous,
			})
			f.write(t, sourceEN, `{"a":"Y"}`)

			result, err := f.run(t, config.Default())
			require.NoError(t, err)
			assert.Empty(t, result.Errors)

			recs := result.Report.Records()
			require.Len(t, recs, 1)
			assert.Equal(t, git.StatusModified, recs[0].TargetStatus)
			assert.Empty(t, recs[0].Changes)
			assert.NotContains(t, result.Message, "Changes in translation keys")
			assert.Equal(t, published(t, "en", translation.Node{"a": translation.Leaf("Y")}), f.read(t, targetEN))
		})
	}
}

func TestRun_UnitFailuresAreContained(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantCode errors.ErrorCode
	}{
		{name: "invalid json", source: `{"a": `, wantCode: errors.CodeParseFailed},
		{name: "not an object", source: `["a"]`, wantCode: errors.CodeParseFailed},
		{name: "empty object", source: `{}`, wantCode: errors.CodeEmptySource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.write(t, sourceDE, tt.source)
			f.write(t, sourceEN, `{"a":"X"}`)

			result, err := f.run(t, config.Default())
			require.NoError(t, err)

			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantCode, errors.GetCode(result.Errors[0]))
			assert.True(t, errors.GetCode(result.Errors[0]).IsUnitScoped())
			assert.False(t, f.exists(t, targetDE))

			assert.Equal(t, []string{"en"}, result.Report.Languages())
			assert.Equal(t, []string{sourceEN, targetEN}, result.Staged)
			assert.True(t, result.Committed)
			assert.Equal(t, []string{targetEN, sourceEN}, f.head(t).Files)
		})
	}
}

func TestRun_IOFailuresAreContained(t *testing.T) {
	diskErr := stderrors.New("input/output error")

	tests := []struct {
		name      string
		readErrs  map[string]error
		writeErrs map[string]error
		wantCode  errors.ErrorCode
	}{
		{
			name:     "source read fails",
			readErrs: map[string]error{sourceDE: diskErr},
			wantCode: errors.CodeReadFailed,
		},
		{
			name:      "target write fails",
			writeErrs: map[string]error{targetDE: diskErr},
			wantCode:  errors.CodeWriteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.write(t, sourceDE, `{"a":"X"}`)
			f.write(t, sourceEN, `{"a":"X"}`)

			faulty := &faultyFS{Filesystem: f.fs, readErrs: tt.readErrs, writeErrs: tt.writeErrs}
			result, err := f.runOn(t, faulty, config.Default())
			require.NoError(t, err)

			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantCode, errors.GetCode(result.Errors[0]))
			assert.ErrorIs(t, result.Errors[0], diskErr)
			assert.False(t, f.exists(t, targetDE))

			assert.Equal(t, []string{"en"}, result.Report.Languages())
			assert.NotContains(t, result.Staged, sourceDE)
			assert.NotContains(t, result.Staged, targetDE)
			assert.True(t, result.Committed)
			assert.Equal(t, []string{targetEN, sourceEN}, f.head(t).Files)
		})
	}
}

func TestRun_IOFailureOfOnlyUnit(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, sourceDE, `{"a":"X"}`)

	faulty := &faultyFS{Filesystem: f.fs, writeErrs: map[string]error{targetDE: stderrors.New("read-only file system")}}
	result, err := f.runOn(t, faulty, config.Default())
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.CodeWriteFailed, errors.GetCode(result.Errors[0]))
	assert.Zero(t, result.Report.Len())
	assert.Empty(t, result.Staged)
	assert.Empty(t, result.Message)
	assert.False(t, result.Committed)

	_, err = f.repo.Head(f.ctx)
	assert.ErrorIs(t, err, git.ErrNoHead)
}

func TestRun_MultipleLanguages(t *testing.T) {
	f := newFixture(t, map[string]string{
		sourceDE: `{"menu":{"a":"A"}}`,
		targetDE: published(t, "de", translation.Node{"menu": translation.Node{"a": translation.Leaf("A")}}),
	})
	f.write(t, sourceDE, `{"menu":{"a":"A","b":"B"}}`)
	f.write(t, sourceEN, `{"menu":{"a":"A"}}`)

	result, err := f.run(t, config.Default())
	require.NoError(t, err)

	want := "Update of locale files for languages: de, en" +
		"\n  * language 'de':" +
		"\n   Changes in files:" +
		"\n    * locales/source/core_de.json," +
		"\n    * locales/locale_de.json." +
		"\n   Changes in translation keys:" +
		"\n    + menu.b." +
		"\n  + language 'en':" +
		"\n   Changes in files:" +
		"\n    + locales/source/core_en.json," +
		"\n    + locales/locale_en.json."
	assert.Equal(t, want, result.Message)
	assert.Equal(t, []string{sourceDE, targetDE, sourceEN, targetEN}, result.Staged)
}

func TestRun_DryRun(t *testing.T) {
	f := newFixture(t, map[string]string{"README.md": "readme"})
	f.write(t, sourceEN, `{"core":{"testId":"test"}}`)
	initial := f.head(t)

	cfg := config.Default()
	cfg.DryRun = true
	result, err := f.run(t, cfg)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.False(t, result.Committed)
	assert.NotEmpty(t, result.Message)
	assert.Equal(t, initial.Hash, f.head(t).Hash)

	doc, err := translation.ParseDocument([]byte(f.read(t, targetEN)))
	require.NoError(t, err)
	assert.Equal(t, translation.Node{"core": translation.Node{"testId": translation.Leaf("test")}}, doc.Translation)

	status, err := f.repo.Status(f.ctx, targetEN)
	require.NoError(t, err)
	assert.Equal(t, git.StatusAdded, status, "target must stay untracked")
}

func TestRun_CustomPatterns(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "i18n/src/menu.uk.json", `{"a":""}`)
	f.write(t, "i18n/src/menu.json", `{"a":""}`)

	cfg := config.Config{
		SourcePattern:        "i18n/src/menu.(*).json",
		TargetPathAndPattern: "../dist/$language$/menu.json",
	}
	result, err := f.run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"uk"}, result.Report.Languages())
	assert.Equal(t, published(t, "uk", translation.Node{"a": translation.Leaf("a")}), f.read(t, "i18n/dist/uk/menu.json"))
}

func TestRun_NoSources(t *testing.T) {
	f := newFixture(t, map[string]string{"README.md": "readme"})

	result, err := f.run(t, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Report.Len())
	assert.Empty(t, result.Errors)
	assert.False(t, result.Committed)
}

func TestRun_CancelledContext(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, sourceEN, `{"a":"X"}`)

	s, err := NewSyncer(f.fs, f.repo, config.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	result, err := s.Run(ctx)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, f.exists(t, targetEN))
}

func TestRun_StatusFailure(t *testing.T) {
	memFS := fsb.NewInMemoryFS()
	require.NoError(t, memFS.WriteFile(sourceEN, []byte(`{"a":"X"}`), 0o644))

	vcs := &fakeVCS{statusErr: stderrors.New("index locked")}
	s, err := NewSyncer(memFS, vcs, config.Default())
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.CodeStatusFailed, errors.GetCode(result.Errors[0]))
	assert.Empty(t, vcs.added)
}

func TestRun_CancelledDuringStatusEndsRun(t *testing.T) {
	memFS := fsb.NewInMemoryFS()
	require.NoError(t, memFS.WriteFile(sourceDE, []byte(`{"a":"X"}`), 0o644))
	require.NoError(t, memFS.WriteFile(sourceEN, []byte(`{"a":"X"}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vcs := &fakeVCS{statusErr: context.Canceled, onStatus: cancel}

	s, err := NewSyncer(memFS, vcs, config.Default())
	require.NoError(t, err)

	result, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.GetCode(err).IsUnitScoped())

	assert.Equal(t, 1, vcs.statusCalls)
	assert.Empty(t, result.Errors)
	assert.Zero(t, result.Report.Len())
	assert.Empty(t, vcs.added)
}

func TestRun_StageAndCommitFailures(t *testing.T) {
	tests := []struct {
		name     string
		vcs      *fakeVCS
		wantCode errors.ErrorCode
	}{
		{
			name:     "staging fails",
			vcs:      &fakeVCS{addErr: stderrors.New("permission denied")},
			wantCode: errors.CodeStageFailed,
		},
		{
			name:     "commit fails",
			vcs:      &fakeVCS{commitErr: stderrors.New("object store full")},
			wantCode: errors.CodeCommitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memFS := fsb.NewInMemoryFS()
			require.NoError(t, memFS.WriteFile(sourceEN, []byte(`{"a":"X"}`), 0o644))
			tt.vcs.statuses = map[string]git.FileStatus{sourceEN: git.StatusAdded}

			s, err := NewSyncer(memFS, tt.vcs, config.Default())
			require.NoError(t, err)

			result, err := s.Run(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			assert.False(t, tt.wantCode.IsUnitScoped())

			assert.False(t, result.Committed)
			assert.NotEmpty(t, result.Message)
			assert.Equal(t, []string{sourceEN, targetEN}, tt.vcs.unstaged)
			assert.Empty(t, tt.vcs.committed)
		})
	}
}

func TestRun_FakeVCSCommit(t *testing.T) {
	memFS := fsb.NewInMemoryFS()
	require.NoError(t, memFS.WriteFile(sourceEN, []byte(`{"a":"X"}`), 0o644))
	vcs := &fakeVCS{statuses: map[string]git.FileStatus{sourceEN: git.StatusAdded}}

	s, err := NewSyncer(memFS, vcs, config.Default())
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, result.Message, vcs.committed)
	assert.Equal(t, []string{sourceEN, targetEN}, vcs.added)
	assert.Empty(t, vcs.unstaged)
}

func TestNewSyncer(t *testing.T) {
	memFS := fsb.NewInMemoryFS()
	vcs := &fakeVCS{}

	t.Run("defaults fill empty config", func(t *testing.T) {
		s, err := NewSyncer(memFS, vcs, config.Config{})
		require.NoError(t, err)
		assert.Equal(t, config.Default(), s.Config())
	})

	t.Run("literal parentheses", func(t *testing.T) {
		for _, pattern := range []string{`core_\((??)\).json`, "core_[()](??).json"} {
			_, err := NewSyncer(memFS, vcs, config.Config{SourcePattern: pattern})
			assert.NoError(t, err, pattern)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := NewSyncer(memFS, vcs, config.Config{SourcePattern: "core_??.json"})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
	})

	t.Run("nil collaborators", func(t *testing.T) {
		_, err := NewSyncer(nil, vcs, config.Default())
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

		_, err = NewSyncer(memFS, nil, config.Default())
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})
}
