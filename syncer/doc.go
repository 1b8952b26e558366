// Package syncer discovers source translation files, regenerates their
// published documents when the sources changed, and hands the resulting
// change summary to version control as a single commit.
//
// # Run lifecycle
//
// Every discovered source file becomes a Unit that moves through these states:
//
//	Discovered -> Evaluated -> Skipped
//	                        -> Written -> Diffed -> Recorded
//
// A unit is regenerated only when its target does not exist yet or when its
// source is added or modified in the worktree. Failures of a single unit are
// logged and collected in Result.Errors; the run continues with the next
// unit. Configuration, staging and commit failures abort the run.
//
// # Basic usage
//
//	fsys := billy.NewOSFS(".")
//	repo, err := git.Open(ctx, &git.Options{FS: fsys})
//	if err != nil {
//	    return err
//	}
//	s, err := syncer.NewSyncer(fsys, repo, config.Default(), syncer.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	result, err := s.Run(ctx)
//
// # Thread safety
//
// A Syncer performs one run at a time. Concurrent calls to Run on the same
// Syncer are not supported.
package syncer
