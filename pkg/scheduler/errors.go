package scheduler

import "errors"

var (
	// ErrInvalidArgument reports a malformed scheduling request (non-positive term size, nil graph)
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInfeasible reports that no schedule reaching the requested course count could be built
	ErrInfeasible = errors.New("infeasible schedule")
	// ErrNotRoot reports a degree course that has incoming edges
	ErrNotRoot = errors.New("degree course is not a root")
	// ErrSearchSpaceTooLarge reports a section combination space above the configured ceiling
	ErrSearchSpaceTooLarge = errors.New("section combination space too large")
)
