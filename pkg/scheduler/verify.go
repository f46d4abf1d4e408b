package scheduler

import (
	"slices"

	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/samber/lo"
)

func (scheduler *greedyScheduler) Verify(schedule *Schedule, graph *model.CourseGraph) bool {
	return verify(schedule, graph)
}

func verify(schedule *Schedule, graph *model.CourseGraph) bool {
	if schedule == nil || graph == nil {
		return false
	}

	seen := make(map[string]int)
	for index := range schedule.TermCount() {
		entries := schedule.Term(index)
		termType := schedule.TermType(index)

		// Check that:
		// - The term does not exceed its capacity
		// - Every placed course exists, is not a degree and appears only once in the whole schedule
		// - Every resolved offering belongs to the course and runs in the term type
		// - No two offerings in the term overlap
		if len(entries) > schedule.SlotsPerTerm() {
			return false
		}
		for i, entry := range entries {
			course, ok := graph.Course(entry.Course.Name())
			if !ok || course.IsDegree() {
				return false
			} else if _, duplicated := seen[course.Name()]; duplicated {
				return false
			} else if entry.Offering.Term != termType || !offers(course, entry.Offering) {
				return false
			}
			seen[course.Name()] = index

			for _, other := range entries[i+1:] {
				if entry.Offering.Overlaps(other.Offering) {
					return false
				}
			}
		}
	}

	if len(seen) != schedule.Count() {
		return false
	}

	// Check every placed course against its requirements
	for name, index := range seen {
		if recorded, ok := schedule.CourseTerm(name); !ok || recorded != index {
			return false
		}

		for _, requirement := range graph.Requirements(name) {
			if requirement.Course.IsDegree() {
				continue
			}
			dependency, placed := seen[requirement.Course.Name()]
			if !placed {
				return false
			} else if requirement.Relation == model.Prereq && dependency >= index {
				return false
			} else if requirement.Relation == model.Coreq && dependency > index {
				return false
			}
		}
	}

	return true
}

func offers(course *model.Course, offering model.TimetableOffering) bool {
	return lo.ContainsBy(course.Offerings(), func(candidate model.TimetableOffering) bool {
		return candidate.Term == offering.Term && slices.Equal(candidate.TimeSlots, offering.TimeSlots)
	})
}
