package syncer

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PeterVoronov/action-prepare-locales/config"
	"github.com/PeterVoronov/action-prepare-locales/fs"
	fsb "github.com/PeterVoronov/action-prepare-locales/fs/billy"
	"github.com/PeterVoronov/action-prepare-locales/git"
	"github.com/PeterVoronov/action-prepare-locales/translation"
)

var fixedTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// fixture is an in-memory repository with a worktree at the filesystem root.
type fixture struct {
	fs   *fsb.FS
	repo *git.Repo
	ctx  context.Context
}

// newFixture creates a repository whose initial commit holds files.
// With no files, the repository has no commits.
func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()
	repo, err := git.Init(ctx, &git.Options{FS: memFS})
	require.NoError(t, err)

	f := &fixture{fs: memFS, repo: repo, ctx: ctx}
	if len(files) == 0 {
		return f
	}

	names := make([]string, 0, len(files))
	for name, content := range files {
		f.write(t, name, content)
		names = append(names, name)
	}
	sort.Strings(names)
	require.NoError(t, repo.Add(ctx, names...))
	_, err = repo.Commit(ctx, "Initial commit",
		git.Signature{Name: "tester", Email: "tester@example.com", When: fixedTime},
		git.CommitOpts{})
	require.NoError(t, err)
	return f
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, f.fs.WriteFile(name, []byte(content), 0o644))
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := f.fs.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) exists(t *testing.T, name string) bool {
	t.Helper()
	ok, err := f.fs.Exists(name)
	require.NoError(t, err)
	return ok
}

func (f *fixture) head(t *testing.T) *git.CommitInfo {
	t.Helper()
	head, err := f.repo.Head(f.ctx)
	require.NoError(t, err)
	return head
}

func (f *fixture) run(t *testing.T, cfg config.Config) (*Result, error) {
	t.Helper()
	return f.runOn(t, f.fs, cfg)
}

// runOn runs a Syncer that reads and writes files through fsys while the
// repository still sees the fixture filesystem.
func (f *fixture) runOn(t *testing.T, fsys fs.Filesystem, cfg config.Config) (*Result, error) {
	t.Helper()
	s, err := NewSyncer(fsys, f.repo, cfg, WithClock(func() time.Time { return fixedTime }))
	require.NoError(t, err)
	return s.Run(f.ctx)
}

// published returns the serialized document for a translation.
func published(t *testing.T, language string, tree translation.Node) string {
	t.Helper()
	data, err := translation.NewDocument(language, tree).Marshal()
	require.NoError(t, err)
	return string(data)
}

// fakeVCS is a scripted VCS used to exercise failure paths.
type fakeVCS struct {
	statuses  map[string]git.FileStatus
	statusErr error
	addErr    error
	commitErr error
	onStatus  func()

	statusCalls int

	added     []string
	unstaged  []string
	committed string
}

func (f *fakeVCS) Status(_ context.Context, path string) (git.FileStatus, error) {
	f.statusCalls++
	if f.onStatus != nil {
		f.onStatus()
	}
	if f.statusErr != nil {
		return git.StatusUnmodified, f.statusErr
	}
	return f.statuses[path], nil
}

func (f *fakeVCS) Add(_ context.Context, paths ...string) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, paths...)
	return nil
}

func (f *fakeVCS) Unstage(_ context.Context, paths ...string) error {
	f.unstaged = append(f.unstaged, paths...)
	return nil
}

func (f *fakeVCS) Commit(_ context.Context, msg string, _ git.Signature, _ git.CommitOpts) (string, error) {
	if f.commitErr != nil {
		return "", f.commitErr
	}
	f.committed = msg
	return "0123456789abcdef0123456789abcdef01234567", nil
}

// faultyFS fails reads and writes of selected paths.
type faultyFS struct {
	fs.Filesystem
	readErrs  map[string]error
	writeErrs map[string]error
}

func (f *faultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.readErrs[name]; err != nil {
		return nil, err
	}
	return f.Filesystem.ReadFile(name)
}

func (f *faultyFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := f.writeErrs[name]; err != nil {
		return err
	}
	return f.Filesystem.WriteFile(name, data, perm)
}
