package canon

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSelection marks fatal timeline selection failures: no composition
	// mob, or a composition without a picture track.
	ErrSelection = errors.New("timeline selection failed")

	// ErrChainGap marks reference chains that could not be fully resolved.
	// Resolution gaps degrade the affected source fields to null and are
	// never fatal to a build; the sentinel exists for logging and tests.
	ErrChainGap = errors.New("reference chain gap")
)

// wrapStage tags err with the sentinel marker and stage detail, matching
// the error texture used across the repo.
func wrapStage(marker error, stage, message string, err error) error {
	detail := stage
	if m := strings.TrimSpace(message); m != "" {
		detail += ": " + m
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}
