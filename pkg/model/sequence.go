package model

import (
	"fmt"
)

// Visitation states of a depth-first traversal
const (
	white = iota // not visited yet
	gray         // on the recursion stack
	black        // vertex and all its dependencies emitted
)

// sequencer holds the scratch state of one traversal. It is created per call so that no state is
// shared between unrelated invocations.
type sequencer struct {
	state map[*vertex]int
	order []*vertex
}

func newSequencer(capacity int) *sequencer {
	return &sequencer{
		state: make(map[*vertex]int, capacity),
		order: make([]*vertex, 0, capacity),
	}
}

// visit emits v after every vertex it depends on (post-order)
func (s *sequencer) visit(v *vertex) error {
	switch s.state[v] {
	case black:
		return nil
	case gray:
		return fmt.Errorf("%w: %q was reached while still being visited", ErrInconsistentGraph, v.course.name)
	}
	s.state[v] = gray

	for _, e := range v.edges {
		if err := s.visit(e.to); err != nil {
			return err
		}
	}

	s.state[v] = black
	s.order = append(s.order, v)
	return nil
}

// TopologicalSequence returns root and every course reachable from it, each one after all of its
// pre- and co-requisites. root itself comes last.
func (graph *CourseGraph) TopologicalSequence(root *Course) ([]*Course, error) {
	order, err := graph.sequence(root)
	if err != nil {
		return nil, err
	}
	return coursesOf(order), nil
}

// TopologicalOrder returns every course of the graph, each one after all of its dependencies.
// Traversal restarts from each unvisited vertex in insertion order.
func (graph *CourseGraph) TopologicalOrder() ([]*Course, error) {
	s := newSequencer(len(graph.vertices))
	for _, v := range graph.vertices {
		if s.state[v] != white {
			continue
		}
		if err := s.visit(v); err != nil {
			return nil, err
		}
	}
	return coursesOf(s.order), nil
}

func (graph *CourseGraph) sequence(root *Course) ([]*vertex, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", ErrVertexNotFound)
	}
	rootVertex, ok := graph.lookup(root.name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, root.name)
	}

	s := newSequencer(len(graph.vertices))
	if err := s.visit(rootVertex); err != nil {
		return nil, err
	}
	return s.order, nil
}

func coursesOf(vertices []*vertex) []*Course {
	courses := make([]*Course, len(vertices))
	for i, v := range vertices {
		courses[i] = v.course
	}
	return courses
}
