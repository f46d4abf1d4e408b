package model

import "errors"

var (
	// ErrInvalidCourse is returned when a course violates its construction rules
	// (missing offerings, a degree carrying co-requisites or offerings, empty name).
	ErrInvalidCourse = errors.New("model: invalid course")

	// ErrInvalidTimeSlot is returned for weekend slots, slots outside the daily window or start >= end.
	ErrInvalidTimeSlot = errors.New("model: invalid time slot")

	// ErrCycle is returned by AddEdge when the new edge would close a dependency cycle.
	ErrCycle = errors.New("model: course graph cannot contain cycles")

	// ErrNotDegree is returned by UpdateVertex when the target is not a degree course.
	ErrNotDegree = errors.New("model: a degree is expected to be a degree course")

	// ErrVertexNotFound is returned when an operation needs a course that is not in the graph.
	ErrVertexNotFound = errors.New("model: course not found in graph")

	// ErrUnresolvedRequirement is returned by FromCourseData when a requirement names an absent course.
	ErrUnresolvedRequirement = errors.New("model: unresolved requirement")

	// ErrInconsistentGraph signals that a traversal met a vertex that is still being visited.
	// The graph is acyclic by construction, so this can only come from a broken invariant.
	ErrInconsistentGraph = errors.New("model: inconsistent course graph")
)
