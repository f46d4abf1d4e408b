package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var defaultOfferings = []TimetableOffering{
	{
		Term:      Fall,
		TimeSlots: []TimeSlot{{Day: time.Monday, Start: NewTimeOfDay(9, 0), End: NewTimeOfDay(10, 0)}},
	},
}

func mustCourse(t *testing.T, name string, preRequisites, coRequisites []string) *Course {
	t.Helper()
	course, err := NewCourse(name, preRequisites, coRequisites, defaultOfferings)
	require.NoError(t, err)
	return course
}

func mustDegree(t *testing.T, name string, preRequisites []string) *Course {
	t.Helper()
	degree, err := NewDegree(name, preRequisites)
	require.NoError(t, err)
	return degree
}

// graphOf adds every course to a fresh graph
func graphOf(courses ...*Course) *CourseGraph {
	graph := NewCourseGraph()
	for _, course := range courses {
		graph.AddVertex(course)
	}
	return graph
}

func outgoing(graph *CourseGraph, course *Course) int {
	if !graph.HasVertex(course.Name()) {
		return -1
	}
	return len(graph.Requirements(course.Name()))
}

func position(courses []*Course, name string) int {
	for i, course := range courses {
		if course.Name() == name {
			return i
		}
	}
	return -1
}
