// Package git is the version-control collaborator of prepare-locales.
//
// It is a thin facade over go-git that exposes only what a translation
// synchronization run needs: the status of a single file, staging a set of
// files and creating one commit. Repositories are opened through the
// project's fs abstraction, so the same code runs against the working tree
// on disk and against an in-memory repository in tests.
//
// # Basic Usage
//
//	fs := billyfs.NewOSFS("/path/to/repo")
//
//	repo, err := git.Open(ctx, &git.Options{FS: fs})
//
//	status, err := repo.Status(ctx, "locales/source/core_en.json")
//	if status == git.StatusModified {
//	    // regenerate the published file
//	}
//
//	err = repo.Add(ctx, "locales/source/core_en.json", "locales/locale_en.json")
//	sha, err := repo.Commit(ctx, "Update of locale files", git.Signature{
//	    Name:  "github-actions",
//	    Email: "github-actions@github.com",
//	}, git.CommitOpts{})
//
// # Paths
//
// All paths are slash separated and relative to Options.Workdir.
//
// # Thread Safety
//
// A Repo instance is NOT safe for concurrent writes. Add, Unstage and Commit
// must be serialized.
package git
