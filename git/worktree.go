package git

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/PeterVoronov/action-prepare-locales/git/internal/fsbridge"
)

// Add stages files in the worktree for the next commit.
// Glob patterns are expanded; files that don't exist are silently ignored
// (matching git add behavior).
//
// Context timeout/cancellation is honored between paths.
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	pathsToAdd, err := r.expandPaths(paths, true)
	if err != nil {
		return err
	}

	for _, p := range pathsToAdd {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.worktree.Add(p); err != nil {
			return WrapErrorf(err, "failed to add path %q", p)
		}
	}
	return nil
}

// Unstage resets the index entries of paths to HEAD without touching the
// worktree. Paths that aren't staged are silently ignored.
func (r *Repo) Unstage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	expanded, err := r.expandPaths(paths, false)
	if err != nil {
		return err
	}

	status, err := r.worktree.Status()
	if err != nil {
		return WrapError(err, "failed to get worktree status")
	}

	var staged []string
	for _, p := range expanded {
		if fs, ok := status[p]; ok && fs.Staging != git.Untracked && fs.Staging != git.Unmodified {
			staged = append(staged, p)
		}
	}
	if len(staged) == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return r.removeFromIndex(staged)
		}
		return WrapError(err, "failed to get HEAD reference")
	}

	err = r.worktree.Reset(&git.ResetOptions{
		Commit: head.Hash(),
		Mode:   git.MixedReset,
		Files:  staged,
	})
	return WrapError(err, "failed to unstage files")
}

// removeFromIndex drops entries from the index of a repository without
// commits, where there is no HEAD to reset to.
func (r *Repo) removeFromIndex(paths []string) error {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return WrapError(err, "failed to read index")
	}
	for _, p := range paths {
		if _, err := idx.Remove(p); err != nil {
			return WrapErrorf(err, "failed to unstage path %q", p)
		}
	}
	return WrapError(r.repo.Storer.SetIndex(idx), "failed to write index")
}

// Commit creates a new commit with the specified message and author/committer
// and returns its SHA.
func (r *Repo) Commit(ctx context.Context, msg string, who Signature, opts CommitOpts) (string, error) {
	if msg == "" {
		return "", WrapError(ErrInvalidRef, "commit message cannot be empty")
	}
	if who.Name == "" || who.Email == "" {
		return "", WrapError(ErrInvalidRef, "committer name and email are required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	status, err := r.worktree.Status()
	if err != nil {
		return "", WrapError(err, "failed to get worktree status")
	}

	stagedCount := 0
	for _, fileStatus := range status {
		if fileStatus.Staging != git.Untracked && fileStatus.Staging != git.Unmodified {
			stagedCount++
		}
	}
	if stagedCount == 0 && !opts.AllowEmpty {
		return "", WrapError(ErrEmptyCommit, "no changes staged for commit")
	}

	when := who.When
	if when.IsZero() {
		when = time.Now()
	}
	sig := &object.Signature{Name: who.Name, Email: who.Email, When: when}

	hash, err := r.worktree.Commit(msg, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: opts.AllowEmpty,
	})
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", ErrEmptyCommit
		}
		return "", WrapError(err, "failed to create commit")
	}

	return hash.String(), nil
}

// expandPaths normalizes paths relative to the workdir and expands glob
// patterns. With existingOnly, plain paths missing from the worktree are
// dropped.
func (r *Repo) expandPaths(paths []string, existingOnly bool) ([]string, error) {
	workdirFS, err := fsbridge.Scope(r.fs, r.options.Workdir)
	if err != nil {
		return nil, WrapErrorf(err, "failed to scope workdir %q", r.options.Workdir)
	}

	var out []string
	seen := make(map[string]bool, len(paths))
	push := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, raw := range paths {
		if raw == "" {
			continue
		}
		p := r.relative(raw)

		if strings.ContainsAny(p, "*?[") {
			matches, globErr := util.Glob(workdirFS, p)
			if globErr != nil {
				return nil, WrapErrorf(globErr, "invalid glob pattern %q", p)
			}
			for _, m := range matches {
				push(m)
			}
			continue
		}

		if existingOnly && p != "." {
			if _, statErr := workdirFS.Stat(p); statErr != nil {
				continue
			}
		}
		push(p)
	}

	return out, nil
}
