package git

import (
	"context"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
)

// FileStatus is the change state of a single path relative to HEAD,
// folding the index and worktree columns of `git status` into one value.
type FileStatus int

const (
	// StatusUnmodified means the path is tracked and clean, or unknown to git.
	StatusUnmodified FileStatus = iota
	// StatusAdded means the path is untracked or newly staged.
	StatusAdded
	// StatusModified means the path differs from HEAD in the index or worktree.
	StatusModified
	// StatusDeleted means the path was removed from the worktree or index.
	StatusDeleted
	// StatusConflicted means the path has unmerged changes.
	StatusConflicted
)

// String returns the lower-case name of the status.
func (s FileStatus) String() string {
	switch s {
	case StatusUnmodified:
		return "unmodified"
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusConflicted:
		return "conflicted"
	default:
		return "unknown"
	}
}

// IsChanged reports whether the path was added or modified.
func (s FileStatus) IsChanged() bool {
	return s == StatusAdded || s == StatusModified
}

// Status returns the status of a single path.
//
// Context timeout/cancellation is honored before the worktree is scanned.
func (r *Repo) Status(ctx context.Context, p string) (FileStatus, error) {
	if err := ctx.Err(); err != nil {
		return StatusUnmodified, err
	}

	p = r.relative(p)
	if p == "." {
		return StatusUnmodified, WrapError(ErrInvalidRef, "path cannot be empty")
	}

	status, err := r.worktree.Status()
	if err != nil {
		return StatusUnmodified, WrapError(err, "failed to get worktree status")
	}

	// status.File() would report unknown paths as untracked; clean tracked
	// files are simply absent from the map.
	fileStatus, ok := status[p]
	if !ok {
		return StatusUnmodified, nil
	}
	return foldStatus(fileStatus), nil
}

func foldStatus(fs *git.FileStatus) FileStatus {
	switch {
	case fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged:
		return StatusConflicted
	case fs.Worktree == git.Deleted:
		return StatusDeleted
	case fs.Worktree == git.Untracked,
		fs.Staging == git.Added,
		fs.Staging == git.Copied,
		fs.Staging == git.Renamed:
		return StatusAdded
	case fs.Staging == git.Deleted:
		return StatusDeleted
	case fs.Worktree == git.Modified, fs.Staging == git.Modified:
		return StatusModified
	default:
		return StatusUnmodified
	}
}

// relative converts a filesystem path into a worktree path. The worktree
// root itself, and the empty path, become ".".
func (r *Repo) relative(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if wd := path.Clean(r.options.Workdir); wd != "." && strings.HasPrefix(p, wd+"/") {
		p = strings.TrimPrefix(p, wd+"/")
	}
	return p
}
