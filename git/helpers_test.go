package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PeterVoronov/action-prepare-locales/fs"
	fsb "github.com/PeterVoronov/action-prepare-locales/fs/billy"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   fs.Filesystem
	ctx  context.Context
}

var testSignature = Signature{Name: "github-actions", Email: "github-actions@github.com"}

// setupTestRepo creates a new test repository with an in-memory filesystem
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()

	repo, err := Init(ctx, &Options{FS: memFS})
	require.NoError(t, err, "failed to initialize test repository")
	require.NotNil(t, repo, "repository should not be nil")

	return &testRepo{repo: repo, fs: memFS, ctx: ctx}
}

// setupTestRepoWithCommit creates a test repository whose initial commit
// contains the given files.
func setupTestRepoWithCommit(t *testing.T, files map[string]string) *testRepo {
	t.Helper()

	tr := setupTestRepo(t)
	for name, content := range files {
		tr.writeFile(t, name, content)
	}
	tr.commitAll(t, "Initial commit")
	return tr
}

func (tr *testRepo) writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, tr.fs.WriteFile(name, []byte(content), 0o644), "failed to write %s", name)
}

func (tr *testRepo) commitAll(t *testing.T, msg string) {
	t.Helper()
	require.NoError(t, tr.repo.Add(tr.ctx, "."), "failed to stage worktree")
	_, err := tr.repo.Commit(tr.ctx, msg, testSignature, CommitOpts{AllowEmpty: true})
	require.NoError(t, err, "failed to commit")
}

func (tr *testRepo) status(t *testing.T, p string) FileStatus {
	t.Helper()
	s, err := tr.repo.Status(tr.ctx, p)
	require.NoError(t, err)
	return s
}
