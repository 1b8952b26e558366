package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/PeterVoronov/action-prepare-locales/config"
	"github.com/PeterVoronov/action-prepare-locales/errors"
	"github.com/PeterVoronov/action-prepare-locales/fs"
	"github.com/PeterVoronov/action-prepare-locales/git"
	"github.com/PeterVoronov/action-prepare-locales/translation"
)

// VCS is the version control collaborator of a run. *git.Repo satisfies it.
type VCS interface {
	// Status returns the change state of a single path.
	Status(ctx context.Context, path string) (git.FileStatus, error)

	// Add stages paths for the next commit.
	Add(ctx context.Context, paths ...string) error

	// Unstage removes paths from the index without touching the worktree.
	Unstage(ctx context.Context, paths ...string) error

	// Commit records the staged changes and returns the commit id.
	Commit(ctx context.Context, msg string, who git.Signature, opts git.CommitOpts) (string, error)
}

var _ VCS = (*git.Repo)(nil)

// targetPerm is the mode of newly written target files.
const targetPerm = 0o644

// Result is the outcome of a run.
type Result struct {
	// Report holds one record per regenerated language.
	Report *SyncReport

	// Message is the rendered report. It is empty when nothing changed.
	Message string

	// Staged lists the source and target paths of every recorded unit in
	// processing order. Paths are listed even in dry-run mode, where they are
	// not actually staged.
	Staged []string

	// Commit is the id of the created commit, if any.
	Commit string

	// Committed reports whether a commit was created.
	Committed bool

	// DryRun reports whether staging and committing were skipped on purpose.
	DryRun bool

	// Skipped lists units whose sources were unchanged.
	Skipped []Unit

	// Errors collects the contained failures of individual units.
	Errors []error
}

// Syncer regenerates published translation documents from their sources.
type Syncer struct {
	fs      fs.Filesystem
	vcs     VCS
	cfg     config.Config
	pattern *Pattern
	logger  *slog.Logger
	clock   func() time.Time
}

// NewSyncer creates a Syncer over fsys and vcs.
// Empty fields of cfg are replaced by their defaults before validation.
func NewSyncer(fsys fs.Filesystem, vcs VCS, cfg config.Config, opts ...Option) (*Syncer, error) {
	if fsys == nil {
		return nil, errors.New(errors.CodeInvalidInput, "filesystem is nil")
	}
	if vcs == nil {
		return nil, errors.New(errors.CodeInvalidInput, "version control is nil")
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pattern, err := CompilePattern(cfg.SourcePattern)
	if err != nil {
		return nil, err
	}

	options := defaultOptions()
	applyOptions(options, opts)

	return &Syncer{
		fs:      fsys,
		vcs:     vcs,
		cfg:     cfg,
		pattern: pattern,
		logger:  options.logger,
		clock:   options.clock,
	}, nil
}

// Config returns the effective configuration.
func (s *Syncer) Config() config.Config {
	return s.cfg
}

// Run processes every discovered unit and commits the result.
//
// The returned Result is never nil. Unit errors whose code is unit scoped
// are collected in Result.Errors; any other error ends the run and is
// returned, as are staging and commit failures. In that case Result still
// describes the units processed so far.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Report: NewSyncReport(),
		DryRun: s.cfg.DryRun,
	}

	units, err := Discover(s.fs, s.pattern, s.cfg)
	if err != nil {
		s.log(ctx, slog.LevelError, "source discovery failed",
			"pattern", s.pattern.String(), "error", err)
		result.Errors = append(result.Errors, err)
		return result, nil
	}
	if len(units) == 0 {
		s.log(ctx, slog.LevelWarn, "no source translation files found",
			"pattern", s.pattern.String())
		return result, nil
	}

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec, skipped, err := s.processUnit(ctx, u)
		switch {
		case err != nil && !errors.GetCode(err).IsUnitScoped():
			s.log(ctx, slog.LevelError, "run aborted",
				"source", u.Source, "language", u.Language, "error", err)
			return result, err
		case err != nil:
			level := slog.LevelError
			if errors.HasCode(err, errors.CodeEmptySource) {
				level = slog.LevelWarn
			}
			s.log(ctx, level, "translation file was not processed",
				"source", u.Source, "language", u.Language, "error", err)
			result.Errors = append(result.Errors, err)
		case skipped:
			s.log(ctx, slog.LevelDebug, "source is unchanged, skipping",
				"source", u.Source, "target", u.Target)
			result.Skipped = append(result.Skipped, u)
		default:
			s.log(ctx, slog.LevelInfo, "translation file is created/updated",
				"target", rec.Target, "status", rec.TargetStatus.String(),
				"added", rec.Changes.Count(translation.Added),
				"modified", rec.Changes.Count(translation.Modified),
				"deleted", rec.Changes.Count(translation.Deleted))
			result.Report.Add(*rec)
			result.Staged = appendUnique(result.Staged, u.Source, u.Target)
		}
	}

	return result, s.finish(ctx, result)
}

// processUnit evaluates a unit and regenerates its target if needed.
// It returns skipped=true when the source is unchanged and the target exists.
func (s *Syncer) processUnit(ctx context.Context, u Unit) (*ChangeRecord, bool, error) {
	fields := map[string]interface{}{"source": u.Source, "language": u.Language}

	sourceStatus, err := s.vcs.Status(ctx, u.Source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		return nil, false, errors.WrapWithContext(err, errors.CodeStatusFailed, "failed to get source status", fields)
	}
	s.log(ctx, slog.LevelDebug, "source status", "source", u.Source, "status", sourceStatus.String())

	targetExists, err := s.fs.Exists(u.Target)
	if err != nil {
		return nil, false, errors.WrapWithContext(err, errors.CodeReadFailed, "failed to check target", fields)
	}
	if targetExists && !sourceStatus.IsChanged() {
		return nil, true, nil
	}

	data, err := s.fs.ReadFile(u.Source)
	if err != nil {
		return nil, false, errors.WrapWithContext(err, errors.CodeReadFailed, "failed to read source", fields)
	}
	tree, err := translation.ParseTree(data)
	if err != nil {
		return nil, false, errors.WrapWithContext(err, errors.CodeParseFailed, "failed to parse source", fields)
	}
	if len(tree) == 0 {
		return nil, false, &errors.PlatformError{Code: errors.CodeEmptySource, Message: "source has no data", Context: fields}
	}
	s.log(ctx, slog.LevelDebug, "source parsed", "source", u.Source, "keys", tree.LeafCount())

	normalized := translation.NormalizeNode(tree)
	out, err := translation.NewDocument(u.Language, normalized).Marshal()
	if err != nil {
		return nil, false, errors.WrapWithContext(err, errors.CodeInternal, "failed to encode document", fields)
	}

	var previous translation.Node
	targetStatus := git.StatusAdded
	if targetExists {
		targetStatus = git.StatusModified
		previous = s.readPrevious(ctx, u.Target)
	}

	if err := s.fs.WriteFile(u.Target, out, targetPerm); err != nil {
		fields["target"] = u.Target
		return nil, false, errors.WrapWithContext(err, errors.CodeWriteFailed, "failed to write target", fields)
	}

	changes := translation.KeyChanges{}
	if previous != nil {
		changes = translation.Diff(
			translation.Flatten(previous, ""),
			translation.Flatten(normalized, ""),
		)
	}

	return &ChangeRecord{
		Language:     u.Language,
		Source:       u.Source,
		SourceStatus: sourceStatus,
		Target:       u.Target,
		TargetStatus: targetStatus,
		Changes:      changes,
	}, false, nil
}

// readPrevious returns the translation of the existing target, or nil if it
// cannot be used as a previous version.
func (s *Syncer) readPrevious(ctx context.Context, target string) translation.Node {
	data, err := s.fs.ReadFile(target)
	if err != nil {
		s.log(ctx, slog.LevelError, "can't read previous target",
			"target", target, "error", errors.Wrap(err, errors.CodeReadFailed, "read previous target"))
		return nil
	}
	doc, err := translation.ParseDocument(data)
	if err != nil {
		s.log(ctx, slog.LevelError, "can't parse previous target",
			"target", target, "error", errors.Wrap(err, errors.CodeParseFailed, "parse previous target"))
		return nil
	}
	return doc.Translation
}

// finish stages and commits the recorded units. Nothing is staged in
// dry-run mode or when the report is empty.
func (s *Syncer) finish(ctx context.Context, result *Result) error {
	if result.Report.Len() == 0 {
		s.log(ctx, slog.LevelInfo, "no translation files were changed")
		return nil
	}

	result.Message = RenderReport(result.Report)

	if s.cfg.DryRun {
		s.log(ctx, slog.LevelInfo, "dry run, changes are not committed", "message", result.Message)
		return nil
	}

	if err := s.vcs.Add(ctx, result.Staged...); err != nil {
		s.rollback(ctx, result.Staged)
		return errors.WrapWithContext(err, errors.CodeStageFailed, "can't add files to commit",
			map[string]interface{}{"files": len(result.Staged)})
	}

	who := git.Signature{
		Name:  s.cfg.AuthorName,
		Email: s.cfg.AuthorEmail,
		When:  s.clock(),
	}
	sha, err := s.vcs.Commit(ctx, result.Message, who, git.CommitOpts{})
	if err != nil {
		s.rollback(ctx, result.Staged)
		return errors.Wrap(err, errors.CodeCommitFailed, "can't make commit")
	}

	result.Commit = sha
	result.Committed = true
	s.log(ctx, slog.LevelInfo, "commit is successfully made", "commit", sha, "languages", result.Report.Len())
	return nil
}

// rollback unstages paths after a failed commit so the index is left as it
// was found. Failures are logged only.
func (s *Syncer) rollback(ctx context.Context, paths []string) {
	if err := s.vcs.Unstage(context.WithoutCancel(ctx), paths...); err != nil {
		s.log(ctx, slog.LevelWarn, "failed to unstage files", "error", err)
	}
}

func (s *Syncer) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if s.logger != nil {
		s.logger.Log(ctx, level, msg, args...)
	}
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}
