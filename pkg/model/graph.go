package model

import (
	"fmt"
	"log"
	"slices"

	"github.com/samber/lo"
)

// Relation labels a dependency edge
type Relation int

const (
	// Prereq dependencies must be completed in a strictly earlier term
	Prereq Relation = iota
	// Coreq dependencies must be completed in the same term or earlier
	Coreq
)

func (relation Relation) String() string {
	switch relation {
	case Prereq:
		return "Prereq"
	case Coreq:
		return "Coreq"
	}
	return fmt.Sprintf("Relation(%d)", int(relation))
}

// Weight is the edge weight used by the cost heuristic
func (relation Relation) Weight() float64 {
	if relation == Coreq {
		return 0.05
	}
	return 1.0
}

// Requirement is an outgoing edge seen from its source: the required course and how it is required
type Requirement struct {
	Course   *Course
	Relation Relation
}

type edge struct {
	to       *vertex
	relation Relation
}

type vertex struct {
	course *Course
	edges  []edge
}

func (v *vertex) findEdge(name string) int {
	return slices.IndexFunc(v.edges, func(e edge) bool { return e.to.course.name == name })
}

// CourseGraph is a directed graph of courses where an edge A->B means B is a pre- or co-requisite of A.
// The union of all edges is kept acyclic: every insertion is checked before it happens.
// A CourseGraph is not safe for concurrent use.
type CourseGraph struct {
	vertices []*vertex      // insertion order
	index    map[string]int // course name -> position in vertices
}

func NewCourseGraph() *CourseGraph {
	return &CourseGraph{
		vertices: make([]*vertex, 0),
		index:    make(map[string]int),
	}
}

func (graph *CourseGraph) lookup(name string) (*vertex, bool) {
	i, ok := graph.index[name]
	if !ok {
		return nil, false
	}
	return graph.vertices[i], true
}

// AddVertex inserts course unless a course with the same name is already present.
// Requirement lists are not expanded into edges; relations are added with AddEdge.
func (graph *CourseGraph) AddVertex(course *Course) {
	if course == nil {
		return
	}
	if _, ok := graph.index[course.name]; ok {
		return
	}
	graph.index[course.name] = len(graph.vertices)
	graph.vertices = append(graph.vertices, &vertex{course: course, edges: make([]edge, 0)})
}

// RemoveVertex deletes course from the graph. Every course that required it adopts its requirements:
// if A required B and B required C and D, A now requires C and D with B's relations.
func (graph *CourseGraph) RemoveVertex(course *Course) {
	if course == nil {
		return
	}
	removed, ok := graph.lookup(course.name)
	if !ok {
		return
	}

	for _, v := range graph.vertices {
		if v == removed {
			continue
		}
		i := v.findEdge(removed.course.name)
		if i < 0 {
			continue
		}
		v.edges = slices.Delete(v.edges, i, i+1)

		// Patch the relations
		for _, inherited := range removed.edges {
			if err := graph.addEdge(v, inherited.to, inherited.relation); err != nil {
				// v -> removed -> inherited.to already existed, so a cycle here means the graph was already cyclic
				log.Panicf("flattening %q into %q: %v", removed.course.name, v.course.name, err)
			}
		}
	}

	position := graph.index[removed.course.name]
	graph.vertices = slices.Delete(graph.vertices, position, position+1)
	delete(graph.index, removed.course.name)
	for i := position; i < len(graph.vertices); i++ {
		graph.index[graph.vertices[i].course.name] = i
	}
}

// AddEdge adds from->to labelled with relation. It is a no-op when either course is absent or when any
// from->to edge already exists, whatever its relation. It fails with ErrCycle if to already reaches from.
func (graph *CourseGraph) AddEdge(from, to *Course, relation Relation) error {
	if from == nil || to == nil {
		return nil
	}
	fromVertex, ok1 := graph.lookup(from.name)
	toVertex, ok2 := graph.lookup(to.name)
	if !ok1 || !ok2 {
		return nil
	}
	return graph.addEdge(fromVertex, toVertex, relation)
}

func (graph *CourseGraph) addEdge(from, to *vertex, relation Relation) error {
	if from.findEdge(to.course.name) >= 0 {
		return nil
	}
	if graph.reaches(to, from) {
		return fmt.Errorf("%w: %q -> %q", ErrCycle, from.course.name, to.course.name)
	}
	from.edges = append(from.edges, edge{to: to, relation: relation})
	return nil
}

// reaches reports whether target is reachable from source (source reaches itself)
func (graph *CourseGraph) reaches(source, target *vertex) bool {
	visited := make(map[*vertex]bool, len(graph.vertices))
	stack := []*vertex{source}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == target {
			return true
		} else if visited[current] {
			continue
		}
		visited[current] = true

		for _, e := range current.edges {
			if !visited[e.to] {
				stack = append(stack, e.to)
			}
		}
	}
	return false
}

// RemoveEdge deletes the from->to edge if present
func (graph *CourseGraph) RemoveEdge(from, to *Course) {
	if from == nil || to == nil {
		return
	}
	fromVertex, ok := graph.lookup(from.name)
	if !ok {
		return
	}
	if i := fromVertex.findEdge(to.name); i >= 0 {
		fromVertex.edges = slices.Delete(fromVertex.edges, i, i+1)
	}
}

// UpdateVertex toggles whether course is required by degree. If degree already has an edge to course,
// the edge is removed and course is dropped from the degree's requirement lists; otherwise course is
// added to the degree's prerequisites together with a Prereq edge.
func (graph *CourseGraph) UpdateVertex(course, degree *Course) error {
	if degree == nil || !degree.degree {
		return fmt.Errorf("%w: %v", ErrNotDegree, degree)
	} else if course == nil {
		return fmt.Errorf("%w: nil course", ErrVertexNotFound)
	}

	degreeVertex, ok := graph.lookup(degree.name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, degree.name)
	}
	courseVertex, ok := graph.lookup(course.name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, course.name)
	}
	if !degreeVertex.course.degree {
		return fmt.Errorf("%w: %q", ErrNotDegree, degree.name)
	}

	// Toggle off
	if i := degreeVertex.findEdge(course.name); i >= 0 {
		degreeVertex.edges = slices.Delete(degreeVertex.edges, i, i+1)
		degreeVertex.course.removeRequirement(course.name)
		if degree != degreeVertex.course {
			degree.removeRequirement(course.name)
		}
		return nil
	}

	// Toggle on
	if err := graph.addEdge(degreeVertex, courseVertex, Prereq); err != nil {
		return err
	}
	degreeVertex.course.addPreRequisite(course.name)
	if degree != degreeVertex.course {
		degree.addPreRequisite(course.name)
	}
	return nil
}

// HasVertex reports whether a course with the given name is present
func (graph *CourseGraph) HasVertex(name string) bool {
	_, ok := graph.index[name]
	return ok
}

// Course returns the stored course with the given name
func (graph *CourseGraph) Course(name string) (*Course, bool) {
	v, ok := graph.lookup(name)
	if !ok {
		return nil, false
	}
	return v.course, true
}

// HasEdge reports whether an edge from->to exists, whatever its relation
func (graph *CourseGraph) HasEdge(from, to string) bool {
	_, ok := graph.Relation(from, to)
	return ok
}

// Relation returns the label of the from->to edge
func (graph *CourseGraph) Relation(from, to string) (Relation, bool) {
	v, ok := graph.lookup(from)
	if !ok {
		return 0, false
	}
	i := v.findEdge(to)
	if i < 0 {
		return 0, false
	}
	return v.edges[i].relation, true
}

// Courses returns every course in insertion order
func (graph *CourseGraph) Courses() []*Course {
	return lo.Map(graph.vertices, func(v *vertex, _ int) *Course { return v.course })
}

// Requirements returns the outgoing edges of the named course in insertion order, or nil if absent
func (graph *CourseGraph) Requirements(name string) []Requirement {
	v, ok := graph.lookup(name)
	if !ok {
		return nil
	}
	return lo.Map(v.edges, func(e edge, _ int) Requirement {
		return Requirement{Course: e.to.course, Relation: e.relation}
	})
}

// Roots returns the courses without incoming edges in insertion order
func (graph *CourseGraph) Roots() []*Course {
	required := make(map[*vertex]bool, len(graph.vertices))
	for _, v := range graph.vertices {
		for _, e := range v.edges {
			required[e.to] = true
		}
	}
	return lo.FilterMap(graph.vertices, func(v *vertex, _ int) (*Course, bool) {
		return v.course, !required[v]
	})
}

func (graph *CourseGraph) VertexCount() int { return len(graph.vertices) }

func (graph *CourseGraph) EdgeCount() int {
	return lo.SumBy(graph.vertices, func(v *vertex) int { return len(v.edges) })
}
