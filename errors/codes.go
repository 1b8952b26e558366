// Package errors provides the error handling foundation for prepare-locales.
// It extends Go's standard error handling with structured error codes and
// context preservation so that the orchestrator can tell contained per-unit
// failures apart from failures that abort a run.
package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and log readability.
type ErrorCode string

const (
	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Unit errors. These are contained to a single source/target pair.

	// CodeDiscoveryFailed indicates source files could not be listed.
	CodeDiscoveryFailed ErrorCode = "DISCOVERY_FAILED"

	// CodeStatusFailed indicates the VCS status of a source could not be queried.
	CodeStatusFailed ErrorCode = "STATUS_FAILED"

	// CodeReadFailed indicates a source or target file could not be read.
	CodeReadFailed ErrorCode = "READ_FAILED"

	// CodeParseFailed indicates a file is not a valid translation tree or document.
	CodeParseFailed ErrorCode = "PARSE_FAILED"

	// CodeEmptySource indicates a source file parsed to an empty object.
	CodeEmptySource ErrorCode = "EMPTY_SOURCE"

	// CodeWriteFailed indicates a target file could not be written.
	CodeWriteFailed ErrorCode = "WRITE_FAILED"

	// Run errors. These abort the run.

	// CodeStageFailed indicates a file could not be staged for commit.
	CodeStageFailed ErrorCode = "STAGE_FAILED"

	// CodeCommitFailed indicates the commit could not be created.
	CodeCommitFailed ErrorCode = "COMMIT_FAILED"

	// System errors.

	// CodeInternal indicates an internal error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// IsUnitScoped reports whether errors with this code are contained to a
// single unit and must not abort the run.
func (c ErrorCode) IsUnitScoped() bool {
	switch c {
	case CodeStatusFailed, CodeReadFailed, CodeParseFailed, CodeEmptySource, CodeWriteFailed:
		return true
	default:
		return false
	}
}
