package git

import (
	"context"
	"errors"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
)

// CommitInfo summarizes a single commit.
type CommitInfo struct {
	Hash    string
	Message string
	Author  Signature

	// Files lists the paths changed by the commit relative to its first
	// parent, sorted.
	Files []string
}

// Head returns the commit HEAD points to.
// Returns ErrNoHead if the repository has no commits yet.
func (r *Repo) Head(ctx context.Context) (*CommitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoHead
		}
		return nil, WrapError(err, "failed to get HEAD reference")
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, WrapErrorf(err, "failed to load commit %s", ref.Hash())
	}

	stats, err := commit.Stats()
	if err != nil {
		return nil, WrapErrorf(err, "failed to compute changes of commit %s", ref.Hash())
	}
	files := make([]string, 0, len(stats))
	for _, s := range stats {
		files = append(files, s.Name)
	}
	sort.Strings(files)

	return &CommitInfo{
		Hash:    commit.Hash.String(),
		Message: commit.Message,
		Author: Signature{
			Name:  commit.Author.Name,
			Email: commit.Author.Email,
			When:  commit.Author.When,
		},
		Files: files,
	}, nil
}
