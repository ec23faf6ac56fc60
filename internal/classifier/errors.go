package classifier

import "errors"

var (
	// ErrArtifactNotFound means no trained pipeline exists at the
	// configured path. Train one first.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrArtifactCorrupt means the artifact exists but could not be
	// deserialized into a consistent pipeline.
	ErrArtifactCorrupt = errors.New("model artifact corrupt")

	// ErrNoDecisionFunction is returned by DecisionFunction when the
	// classifier variant has no margin to report.
	ErrNoDecisionFunction = errors.New("classifier does not expose a decision function")
)
