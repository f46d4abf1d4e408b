package scheduler

import (
	"slices"
	"testing"
	"time"

	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/stretchr/testify/require"
)

func slot(day time.Weekday, start, end int) model.TimeSlot {
	return model.TimeSlot{Day: day, Start: model.NewTimeOfDay(start, 0), End: model.NewTimeOfDay(end, 0)}
}

func offering(term model.Term, slots ...model.TimeSlot) model.TimetableOffering {
	return model.TimetableOffering{Term: term, TimeSlots: slots}
}

// mondayMorning is a single Monday 09:00-10:00 section in the given term
func mondayMorning(term model.Term) model.TimetableOffering {
	return offering(term, slot(time.Monday, 9, 10))
}

func newCourse(t *testing.T, name string, offerings ...model.TimetableOffering) *model.Course {
	t.Helper()
	course, err := model.NewCourse(name, nil, nil, offerings)
	require.NoError(t, err)
	return course
}

func newDegree(t *testing.T, name string) *model.Course {
	t.Helper()
	degree, err := model.NewDegree(name, nil)
	require.NoError(t, err)
	return degree
}

type link struct {
	from     *model.Course
	to       *model.Course
	relation model.Relation
}

func prereq(from, to *model.Course) link { return link{from, to, model.Prereq} }
func coreq(from, to *model.Course) link  { return link{from, to, model.Coreq} }

func graphOf(t *testing.T, courses []*model.Course, links ...link) *model.CourseGraph {
	t.Helper()
	graph := model.NewCourseGraph()
	for _, course := range courses {
		graph.AddVertex(course)
	}
	for _, link := range links {
		require.NoError(t, graph.AddEdge(link.from, link.to, link.relation))
	}
	return graph
}

// forcePlace writes an entry into a schedule without any check, so that broken schedules can be verified
func forcePlace(schedule *Schedule, course *model.Course, index int, offering model.TimetableOffering) {
	for len(schedule.terms) <= index {
		schedule.terms = append(schedule.terms, &term{
			slots:   make([]*slotChoice, schedule.slotsPerTerm),
			entries: make([]*Entry, schedule.slotsPerTerm),
		})
	}
	target := schedule.terms[index]
	i := slices.Index(target.slots, nil)
	if i < 0 {
		target.slots = append(target.slots, nil)
		target.entries = append(target.entries, nil)
		i = len(target.slots) - 1
	}
	target.slots[i] = &slotChoice{course: course, offerings: []model.TimetableOffering{offering}}
	target.entries[i] = &Entry{Course: course, Offering: offering}
	schedule.placed[course.Name()] = index
}
