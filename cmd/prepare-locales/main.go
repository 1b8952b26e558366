// Command prepare-locales regenerates published translation documents from
// their hand-edited sources and commits the result. It is meant to run as a
// GitHub Action step; every flag can also be set through the matching
// action input.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sethvargo/go-githubactions"
	"github.com/urfave/cli/v2"

	"github.com/PeterVoronov/action-prepare-locales/config"
	fsb "github.com/PeterVoronov/action-prepare-locales/fs/billy"
	"github.com/PeterVoronov/action-prepare-locales/git"
	"github.com/PeterVoronov/action-prepare-locales/internal/actions"
	"github.com/PeterVoronov/action-prepare-locales/syncer"
)

var version = "dev"

var cliFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "source-pattern",
		Usage:   "glob of source translation files, with one (group) capturing the language",
		Value:   config.DefaultSourcePattern,
		EnvVars: []string{"INPUT_SOURCE_TRANSLATIONS_PATTERN"},
	},
	&cli.StringFlag{
		Name:    "target-pattern",
		Usage:   "target file template relative to each source directory, $language is replaced",
		Value:   config.DefaultTargetPathAndPattern,
		EnvVars: []string{"INPUT_TRANSFORMED_TRANSLATIONS_RELATIVE_PATH_AND_PATTERN"},
	},
	&cli.StringFlag{
		Name:    "git-user-name",
		Usage:   "commit author name",
		Value:   config.DefaultAuthorName,
		EnvVars: []string{"INPUT_GIT_USER_NAME"},
	},
	&cli.StringFlag{
		Name:    "git-user-mail",
		Usage:   "commit author email",
		Value:   config.DefaultAuthorEmail,
		EnvVars: []string{"INPUT_GIT_USER_MAIL"},
	},
	&cli.BoolFlag{
		Name:    "dry-run",
		Usage:   "write target files but do not stage or commit them",
		EnvVars: []string{"INPUT_DRY_RUN"},
	},
	&cli.StringFlag{
		Name:    "workdir",
		Usage:   "repository root",
		Value:   ".",
		EnvVars: []string{"GITHUB_WORKSPACE"},
	},
}

func main() {
	action := githubactions.New()
	logger := slog.New(actions.NewHandler(action, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp(action, logger).RunContext(ctx, os.Args)
	stop()

	if err != nil {
		action.Errorf("%v", err)
		os.Exit(1)
	}
}

func newApp(action *githubactions.Action, logger *slog.Logger) *cli.App {
	return &cli.App{
		Name:    "prepare-locales",
		Usage:   "regenerate published locale files and commit the changes",
		Version: version,
		Flags:   cliFlags,
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("unexpected arguments: %v", c.Args().Slice())
			}
			return run(c.Context, action, logger, configFromFlags(c), c.String("workdir"))
		},
		// errors are reported by main as workflow annotations
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func configFromFlags(c *cli.Context) config.Config {
	return config.Config{
		SourcePattern:        c.String("source-pattern"),
		TargetPathAndPattern: c.String("target-pattern"),
		AuthorName:           c.String("git-user-name"),
		AuthorEmail:          c.String("git-user-mail"),
		DryRun:               c.Bool("dry-run"),
	}
}

func run(ctx context.Context, action *githubactions.Action, logger *slog.Logger, cfg config.Config, workdir string) error {
	fsys := fsb.NewOSFS(workdir)

	repo, err := git.Open(ctx, &git.Options{FS: fsys})
	if err != nil {
		return fmt.Errorf("can't open repository in %q: %w", workdir, err)
	}

	s, err := syncer.NewSyncer(fsys, repo, cfg, syncer.WithLogger(logger))
	if err != nil {
		return err
	}
	effective := s.Config()
	logger.Debug("configuration",
		"source_pattern", effective.SourcePattern,
		"target_pattern", effective.TargetPathAndPattern,
		"author", effective.AuthorName+" <"+effective.AuthorEmail+">",
		"dry_run", effective.DryRun)

	result, err := s.Run(ctx)
	actions.Publish(action, result)
	if err != nil {
		return err
	}

	if result.Committed {
		logCommit(ctx, logger, repo)
	}
	return nil
}

// logCommit reports the files of the commit that was just made.
func logCommit(ctx context.Context, logger *slog.Logger, repo *git.Repo) {
	head, err := repo.Head(ctx)
	if err != nil {
		logger.Warn("can't read the new commit", "error", err)
		return
	}
	logger.Info("committed files", "commit", head.Hash, "files", strings.Join(head.Files, ", "))
}
