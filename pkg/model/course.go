package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Course is a schedulable unit of study or a phantom degree aggregator.
// Everything but the requirement lists is fixed at construction; the lists are only
// changed by CourseGraph.UpdateVertex.
type Course struct {
	name          string
	degree        bool
	preRequisites []string
	coRequisites  []string
	offerings     []TimetableOffering
}

// NewCourse builds an ordinary course. At least one timetable offering is required.
func NewCourse(name string, preRequisites, coRequisites []string, offerings []TimetableOffering) (*Course, error) {
	return newCourse(name, false, preRequisites, coRequisites, offerings)
}

// NewDegree builds a degree course whose prerequisites are the degree's required courses
func NewDegree(name string, preRequisites []string) (*Course, error) {
	return newCourse(name, true, preRequisites, nil, nil)
}

func newCourse(name string, degree bool, preRequisites, coRequisites []string, offerings []TimetableOffering) (*Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: course name cannot be empty", ErrInvalidCourse)
	}

	if degree {
		if len(coRequisites) > 0 {
			return nil, fmt.Errorf("%w: degree %q cannot have co-requisites", ErrInvalidCourse, name)
		} else if len(offerings) > 0 {
			return nil, fmt.Errorf("%w: degree %q cannot have timetable offerings", ErrInvalidCourse, name)
		}
	} else if len(offerings) == 0 {
		return nil, fmt.Errorf("%w: course %q must have at least one timetable offering", ErrInvalidCourse, name)
	}

	for _, offering := range offerings {
		if err := offering.Validate(); err != nil {
			return nil, fmt.Errorf("course %q: %w", name, err)
		}
	}

	return &Course{
		name:          name,
		degree:        degree,
		preRequisites: lo.Uniq(slices.Clone(preRequisites)),
		coRequisites:  lo.Uniq(slices.Clone(coRequisites)),
		offerings:     cloneOfferings(offerings),
	}, nil
}

func (course *Course) Name() string   { return course.name }
func (course *Course) IsDegree() bool { return course.degree }

// PreRequisites returns a copy of the prerequisite name list
func (course *Course) PreRequisites() []string { return slices.Clone(course.preRequisites) }

// CoRequisites returns a copy of the co-requisite name list
func (course *Course) CoRequisites() []string { return slices.Clone(course.coRequisites) }

// Offerings returns a copy of every timetable offering of the course
func (course *Course) Offerings() []TimetableOffering { return cloneOfferings(course.offerings) }

// OfferingsFor returns the offerings that run in the given term type
func (course *Course) OfferingsFor(term Term) []TimetableOffering {
	return lo.Filter(course.offerings, func(offering TimetableOffering, _ int) bool {
		return offering.Term == term
	})
}

// OffersTerm reports whether the course runs in the given term type
func (course *Course) OffersTerm(term Term) bool {
	return lo.SomeBy(course.offerings, func(offering TimetableOffering) bool {
		return offering.Term == term
	})
}

// Equal compares courses by name, which is their identity inside a graph
func (course *Course) Equal(other *Course) bool {
	if course == nil || other == nil {
		return course == other
	}
	return course.name == other.name
}

func (course *Course) String() string {
	return course.name
}

func (course *Course) addPreRequisite(name string) {
	if !slices.Contains(course.preRequisites, name) {
		course.preRequisites = append(course.preRequisites, name)
	}
}

func (course *Course) removeRequirement(name string) {
	course.preRequisites = lo.Without(course.preRequisites, name)
	course.coRequisites = lo.Without(course.coRequisites, name)
}

func cloneOfferings(offerings []TimetableOffering) []TimetableOffering {
	return lo.Map(offerings, func(offering TimetableOffering, _ int) TimetableOffering {
		return TimetableOffering{
			Term:      offering.Term,
			TimeSlots: slices.Clone(offering.TimeSlots),
		}
	})
}
