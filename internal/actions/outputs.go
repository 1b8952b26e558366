package actions

import (
	"github.com/sethvargo/go-githubactions"

	"github.com/PeterVoronov/action-prepare-locales/syncer"
)

const (
	// OutputCommitAvailable is set to "true" when a commit was created.
	OutputCommitAvailable = "is_commit_available"

	// OutputDryRunSuccessful is set to "true" when a dry run completed.
	OutputDryRunSuccessful = "dry_run_is_successful"
)

// Publish reports a finished run to the workflow: notices for the commit or
// the dry-run summary, a warning for contained unit failures, and the step
// outputs.
func Publish(action *githubactions.Action, result *syncer.Result) {
	if result == nil {
		return
	}

	if n := len(result.Errors); n > 0 {
		action.Warningf("%d translation file(s) were not processed, see errors above", n)
	}

	switch {
	case result.Committed:
		action.Noticef("Commit is successfully made.")
		action.SetOutput(OutputCommitAvailable, "true")
	case result.DryRun:
		if result.Message != "" {
			action.Noticef("%s", result.Message)
		}
		action.SetOutput(OutputDryRunSuccessful, "true")
	}
}
