package translation

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the version written into every published document.
const SchemaVersion = "1.0"

// IsCompatible checks whether a document version can be read as a previous
// version of a document written with SchemaVersion.
// Uses a caret constraint, so any 1.x version is compatible.
//
// An empty version is treated as compatible since early documents did not
// always carry one. Returns an error if the version string is invalid.
func IsCompatible(version string) (bool, error) {
	if version == "" {
		return true, nil
	}

	constraint, err := semver.NewConstraint("^" + SchemaVersion)
	if err != nil {
		return false, fmt.Errorf("invalid schema version: %w", err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid document version %q: %w", version, err)
	}

	return constraint.Check(v), nil
}
