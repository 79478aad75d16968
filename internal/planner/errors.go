package planner

import "errors"

// ErrEvidenceUnavailable is returned when an evidence file could not be read.
// The period keeps its previous evidence.
var ErrEvidenceUnavailable = errors.New("evidence unavailable")
