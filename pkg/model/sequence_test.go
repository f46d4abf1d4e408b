package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologicalSequence(t *testing.T) {
	t.Run("Linear chain", func(t *testing.T) {
		//** Arrange
		c1, c2, c3 := mustCourse(t, "C1", nil, nil), mustCourse(t, "C2", nil, nil), mustCourse(t, "C3", nil, nil)
		graph := graphOf(c1, c2, c3)
		require.NoError(t, graph.AddEdge(c3, c2, Prereq))
		require.NoError(t, graph.AddEdge(c2, c1, Prereq))

		//** Act
		sequence, err := graph.TopologicalSequence(c3)

		//** Assert
		assert.NoError(t, err)
		assert.Equal(t, []*Course{c1, c2, c3}, sequence)
	})

	t.Run("Only reachable courses", func(t *testing.T) {
		//** Arrange
		c1, c2, c3 := mustCourse(t, "C1", nil, nil), mustCourse(t, "C2", nil, nil), mustCourse(t, "C3", nil, nil)
		graph := graphOf(c1, c2, c3)
		require.NoError(t, graph.AddEdge(c2, c1, Coreq))

		//** Act
		sequence, err := graph.TopologicalSequence(c2)

		//** Assert
		assert.NoError(t, err)
		assert.Equal(t, []*Course{c1, c2}, sequence)
	})

	t.Run("Diamond visits shared dependency once", func(t *testing.T) {
		//** Arrange
		top, left, right, bottom := mustCourse(t, "Top", nil, nil), mustCourse(t, "Left", nil, nil), mustCourse(t, "Right", nil, nil), mustCourse(t, "Bottom", nil, nil)
		graph := graphOf(top, left, right, bottom)
		require.NoError(t, graph.AddEdge(top, left, Prereq))
		require.NoError(t, graph.AddEdge(top, right, Coreq))
		require.NoError(t, graph.AddEdge(left, bottom, Prereq))
		require.NoError(t, graph.AddEdge(right, bottom, Prereq))

		//** Act
		sequence, err := graph.TopologicalSequence(top)

		//** Assert
		assert.NoError(t, err)
		assert.Len(t, sequence, 4)
		assert.Equal(t, bottom, sequence[0])
		assert.Equal(t, top, sequence[3])
	})

	t.Run("Absent root", func(t *testing.T) {
		//** Arrange
		graph := NewCourseGraph()

		//** Act
		sequence, err := graph.TopologicalSequence(mustCourse(t, "C1", nil, nil))

		//** Assert
		assert.Nil(t, sequence)
		assert.ErrorIs(t, err, ErrVertexNotFound)
	})

	t.Run("Corrupted graph fails fast", func(t *testing.T) {
		//** Arrange
		c1, c2 := mustCourse(t, "C1", nil, nil), mustCourse(t, "C2", nil, nil)
		graph := graphOf(c1, c2)
		require.NoError(t, graph.AddEdge(c1, c2, Prereq))
		// Bypass the acyclicity check to simulate a broken invariant
		v2, _ := graph.lookup("C2")
		v1, _ := graph.lookup("C1")
		v2.edges = append(v2.edges, edge{to: v1, relation: Prereq})

		//** Act
		_, err := graph.TopologicalSequence(c1)

		//** Assert
		assert.ErrorIs(t, err, ErrInconsistentGraph)
	})
}

func TestTopologicalOrderRespectsDependencies(t *testing.T) {
	for range 10 {
		//** Arrange
		const Courses = 30
		courses := make([]*Course, Courses)
		for i := range Courses {
			courses[i] = mustCourse(t, "C"+string(rune('A'+i%26))+string(rune('a'+i/26)), nil, nil)
		}
		graph := graphOf(courses...)
		for range 60 {
			from, to := rand.Intn(Courses), rand.Intn(Courses)
			relation := Relation(rand.Intn(2))
			// Cycles are rejected, every other insertion must succeed
			if err := graph.AddEdge(courses[from], courses[to], relation); err != nil {
				assert.ErrorIs(t, err, ErrCycle)
			}
		}

		//** Act
		order, err := graph.TopologicalOrder()

		//** Assert
		require.NoError(t, err)
		assert.Len(t, order, Courses)
		for _, course := range order {
			for _, requirement := range graph.Requirements(course.Name()) {
				assert.Less(t, position(order, requirement.Course.Name()), position(order, course.Name()))
			}
		}
	}
}

func TestCosts(t *testing.T) {
	t.Run("Weighted longest path", func(t *testing.T) {
		//** Arrange
		degree := mustDegree(t, "Degree", nil)
		c1, c2, c3, c4 := mustCourse(t, "C1", nil, nil), mustCourse(t, "C2", nil, nil), mustCourse(t, "C3", nil, nil), mustCourse(t, "C4", nil, nil)
		unreachable := mustCourse(t, "Unreachable", nil, nil)
		graph := graphOf(degree, c1, c2, c3, c4, unreachable)
		require.NoError(t, graph.AddEdge(degree, c3, Prereq))
		require.NoError(t, graph.AddEdge(degree, c4, Prereq))
		require.NoError(t, graph.AddEdge(c3, c2, Prereq))
		require.NoError(t, graph.AddEdge(c2, c1, Prereq))
		require.NoError(t, graph.AddEdge(c4, c1, Coreq))
		require.NoError(t, graph.AddEdge(unreachable, c1, Prereq))

		//** Act
		costs, err := graph.Costs(degree)

		//** Assert
		assert.NoError(t, err)
		assert.InDelta(t, 0.0, costs["C1"], 1e-9)
		assert.InDelta(t, 1.0, costs["C2"], 1e-9)
		assert.InDelta(t, 2.0, costs["C3"], 1e-9)
		assert.InDelta(t, 0.05, costs["C4"], 1e-9)
		assert.InDelta(t, 3.0, costs["Degree"], 1e-9)
		assert.InDelta(t, 0.0, costs["Unreachable"], 1e-9)
	})

	t.Run("Coreq breaks ties", func(t *testing.T) {
		//** Arrange
		degree := mustDegree(t, "Degree", nil)
		plain, withCoreq := mustCourse(t, "Plain", nil, nil), mustCourse(t, "WithCoreq", nil, nil)
		base, lab := mustCourse(t, "Base", nil, nil), mustCourse(t, "Lab", nil, nil)
		graph := graphOf(degree, plain, withCoreq, base, lab)
		require.NoError(t, graph.AddEdge(degree, plain, Prereq))
		require.NoError(t, graph.AddEdge(degree, withCoreq, Prereq))
		require.NoError(t, graph.AddEdge(plain, base, Prereq))
		require.NoError(t, graph.AddEdge(withCoreq, base, Prereq))
		require.NoError(t, graph.AddEdge(withCoreq, lab, Coreq))
		require.NoError(t, graph.AddEdge(lab, base, Prereq))

		//** Act
		costs, err := graph.Costs(degree)

		//** Assert
		assert.NoError(t, err)
		assert.Greater(t, costs["WithCoreq"], costs["Plain"])
	})
}
