package git

import (
	"context"
	"time"

	gobilly "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage"

	"github.com/PeterVoronov/action-prepare-locales/fs"
	"github.com/PeterVoronov/action-prepare-locales/git/internal/fsbridge"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache.
	DefaultStorerCacheSize = 1000

	// DefaultWorkdir is the default worktree directory name.
	DefaultWorkdir = "."
)

// Options configures repository discovery/creation and performance.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All repository state lives within this filesystem.
	FS fs.Filesystem

	// Workdir is the path within FS for the worktree root.
	// Defaults to "." (current directory in FS).
	Workdir string

	// StorerCacheSize sets the LRU objects cache entries.
	// Defaults to DefaultStorerCacheSize.
	StorerCacheSize int
}

// Validate checks that the Options are properly configured.
func (o *Options) Validate() error {
	if o == nil || o.FS == nil {
		return WrapError(ErrInvalidRef, "FS is required")
	}
	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidRef, "StorerCacheSize cannot be negative")
	}
	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.Workdir == "" {
		o.Workdir = DefaultWorkdir
	}
	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}
}

// Signature identifies the author and committer of a commit.
type Signature struct {
	Name  string
	Email string

	// When is the timestamp for the signature. Zero means now.
	When time.Time
}

// CommitOpts configures commit creation behavior.
type CommitOpts struct {
	// AllowEmpty allows creating commits with no staged changes.
	AllowEmpty bool
}

// Repo represents a non-bare git repository and its worktree.
type Repo struct {
	repo     *git.Repository
	worktree *git.Worktree
	fs       fs.Filesystem
	options  Options
}

// Init creates a new repository with a worktree at opts.Workdir.
func Init(ctx context.Context, opts *Options) (*Repo, error) {
	return setup(ctx, opts, "failed to initialize repository", git.Init)
}

// Open opens an existing repository at opts.Workdir. Both the .git
// directory and the worktree must be present.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	return setup(ctx, opts, "failed to open repository", git.Open)
}

type openFunc func(storage.Storer, gobilly.Filesystem) (*git.Repository, error)

func setup(ctx context.Context, opts *Options, failure string, open openFunc) (*Repo, error) {
	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts.applyDefaults()

	scopedFS, err := fsbridge.Scope(opts.FS, opts.Workdir)
	if err != nil {
		return nil, WrapErrorf(err, "failed to scope workdir %q", opts.Workdir)
	}

	dotGitFS, err := scopedFS.Chroot(git.GitDirName)
	if err != nil {
		return nil, WrapError(err, "failed to access .git directory")
	}
	storer := fsbridge.NewStorage(dotGitFS, opts.StorerCacheSize)

	repo, err := open(storer, scopedFS)
	if err != nil {
		return nil, WrapError(err, failure)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree")
	}

	return &Repo{
		repo:     repo,
		worktree: worktree,
		fs:       opts.FS,
		options:  *opts,
	}, nil
}
