package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type RawTimeSlot struct {
	Day   string
	Start string
	End   string
}

type RawTimetableOffering struct {
	OfferedTerm string
	TimeSlots   []RawTimeSlot
}

type RawCourse struct {
	Name           string
	IsDegree       bool
	PreRequisites  []string
	CoRequisites   []string
	TimeTableInfos []RawTimetableOffering
}

// CourseData is the flat bundle exchanged with the ingestion layer: degree courses and ordinary courses
// with string-keyed requirement lists
type CourseData struct {
	Degrees []RawCourse
	Courses []RawCourse
}

func InputFromJson(file string) (CourseData, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return CourseData{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return CourseData{}, err
	}
	return DecodeCourseData(inputJson)
}

// DecodeCourseData decodes a generic JSON object into a CourseData. Term types and weekdays may be given
// either by name or by ordinal.
func DecodeCourseData(input map[string]any) (CourseData, error) {
	var data CourseData
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &data,
	})
	if err != nil {
		return CourseData{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return CourseData{}, fmt.Errorf("cannot decode course data: %w", err)
	}
	return data, nil
}

func SaveToJson(file string, data CourseData) error {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0666)
}

// ProcessRawCourse validates a raw course and builds the Course it describes
func ProcessRawCourse(raw RawCourse) (*Course, error) {
	offerings := make([]TimetableOffering, 0, len(raw.TimeTableInfos))
	for _, rawOffering := range raw.TimeTableInfos {
		term, err := ParseTerm(rawOffering.OfferedTerm)
		if err != nil {
			return nil, fmt.Errorf("course %q: %w: %v", raw.Name, ErrInvalidCourse, err)
		}

		slots := make([]TimeSlot, 0, len(rawOffering.TimeSlots))
		for _, rawSlot := range rawOffering.TimeSlots {
			slot, err := processRawTimeSlot(rawSlot)
			if err != nil {
				return nil, fmt.Errorf("course %q: %w", raw.Name, err)
			}
			slots = append(slots, slot)
		}

		offerings = append(offerings, TimetableOffering{Term: term, TimeSlots: slots})
	}

	return newCourse(raw.Name, raw.IsDegree, raw.PreRequisites, raw.CoRequisites, offerings)
}

func processRawTimeSlot(raw RawTimeSlot) (TimeSlot, error) {
	day, err := ParseWeekday(raw.Day)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	start, err := ParseTimeOfDay(raw.Start)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	end, err := ParseTimeOfDay(raw.End)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	return NewTimeSlot(day, start, end)
}

// FromCourseData builds a graph from a bundle. Every course becomes a vertex and every requirement an
// edge (co-requisites first, so a name listed in both lists keeps the Coreq label). It fails if a course
// is malformed or named twice, if a requirement names an absent course or if the requirements are cyclic.
func FromCourseData(data CourseData) (*CourseGraph, error) {
	graph := NewCourseGraph()

	raws := append(lo.Map(data.Degrees, func(raw RawCourse, _ int) RawCourse {
		raw.IsDegree = true
		return raw
	}), data.Courses...)

	for _, raw := range raws {
		if graph.HasVertex(raw.Name) {
			return nil, fmt.Errorf("%w: duplicate course %q", ErrInvalidCourse, raw.Name)
		}
		course, err := ProcessRawCourse(raw)
		if err != nil {
			return nil, err
		}
		graph.AddVertex(course)
	}

	for _, raw := range raws {
		course, _ := graph.Course(raw.Name)
		link := func(names []string, relation Relation) error {
			for _, name := range names {
				requirement, ok := graph.Course(name)
				if !ok {
					return fmt.Errorf("%w: %q requires %q", ErrUnresolvedRequirement, raw.Name, name)
				}
				if err := graph.AddEdge(course, requirement, relation); err != nil {
					return err
				}
			}
			return nil
		}

		if err := link(course.coRequisites, Coreq); err != nil {
			return nil, err
		}
		if err := link(course.preRequisites, Prereq); err != nil {
			return nil, err
		}
	}

	return graph, nil
}

// GetCourseData extracts the bundle describing the graph. Requirement lists are derived from the edges,
// so the bundle reflects rewiring done by RemoveVertex and relations added with AddEdge.
func (graph *CourseGraph) GetCourseData() CourseData {
	data := CourseData{
		Degrees: make([]RawCourse, 0),
		Courses: make([]RawCourse, 0),
	}

	for _, v := range graph.vertices {
		raw := RawCourse{
			Name:           v.course.name,
			IsDegree:       v.course.degree,
			PreRequisites:  make([]string, 0),
			CoRequisites:   make([]string, 0),
			TimeTableInfos: lo.Map(v.course.offerings, rawOffering),
		}
		for _, e := range v.edges {
			if e.relation == Coreq {
				raw.CoRequisites = append(raw.CoRequisites, e.to.course.name)
			} else {
				raw.PreRequisites = append(raw.PreRequisites, e.to.course.name)
			}
		}

		if v.course.degree {
			data.Degrees = append(data.Degrees, raw)
		} else {
			data.Courses = append(data.Courses, raw)
		}
	}

	return data
}

func rawOffering(offering TimetableOffering, _ int) RawTimetableOffering {
	return RawTimetableOffering{
		OfferedTerm: offering.Term.String(),
		TimeSlots: lo.Map(offering.TimeSlots, func(slot TimeSlot, _ int) RawTimeSlot {
			return RawTimeSlot{
				Day:   slot.Day.String(),
				Start: slot.Start.String(),
				End:   slot.End.String(),
			}
		}),
	}
}
