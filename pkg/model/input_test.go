package model

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundleJson = `{
	"Degrees": [
		{ "Name": "Computer Science", "PreRequisites": ["COIS-2020H"] }
	],
	"Courses": [
		{
			"Name": "COIS-1020H",
			"TimeTableInfos": [
				{ "OfferedTerm": "Fall", "TimeSlots": [ { "Day": "Monday", "Start": "09:00", "End": "10:30" } ] },
				{ "OfferedTerm": 1, "TimeSlots": [ { "Day": 3, "Start": "13:00:00", "End": "14:00:00" } ] }
			]
		},
		{
			"Name": "COIS-2020H",
			"PreRequisites": ["COIS-1020H"],
			"CoRequisites": ["COIS-2020L"],
			"TimeTableInfos": [
				{ "OfferedTerm": "Winter", "TimeSlots": [ { "Day": "Tuesday", "Start": "10:00", "End": "11:00" } ] }
			]
		},
		{
			"Name": "COIS-2020L",
			"TimeTableInfos": [
				{ "OfferedTerm": "Winter", "TimeSlots": [ { "Day": "Thu", "Start": "15:00", "End": "17:00" } ] }
			]
		}
	]
}`

func decodeBundle(t *testing.T, raw string) CourseData {
	t.Helper()
	var input map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &input))
	data, err := DecodeCourseData(input)
	require.NoError(t, err)
	return data
}

func TestFromCourseData(t *testing.T) {
	t.Run("Correct flow", func(t *testing.T) {
		//** Arrange
		data := decodeBundle(t, bundleJson)

		//** Act
		graph, err := FromCourseData(data)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, 4, graph.VertexCount())
		assert.Equal(t, 3, graph.EdgeCount())

		degree, _ := graph.Course("Computer Science")
		assert.True(t, degree.IsDegree())

		relation, ok := graph.Relation("COIS-2020H", "COIS-2020L")
		assert.True(t, ok)
		assert.Equal(t, Coreq, relation)
		relation, ok = graph.Relation("COIS-2020H", "COIS-1020H")
		assert.True(t, ok)
		assert.Equal(t, Prereq, relation)

		course, _ := graph.Course("COIS-1020H")
		offerings := course.Offerings()
		require.Len(t, offerings, 2)
		assert.Equal(t, Winter, offerings[1].Term)
		assert.Equal(t, TimeSlot{Day: time.Wednesday, Start: NewTimeOfDay(13, 0), End: NewTimeOfDay(14, 0)}, offerings[1].TimeSlots[0])
		lab, _ := graph.Course("COIS-2020L")
		assert.Equal(t, time.Thursday, lab.Offerings()[0].TimeSlots[0].Day)
	})

	t.Run("Unresolved requirement", func(t *testing.T) {
		//** Arrange
		data := CourseData{
			Courses: []RawCourse{{
				Name:          "C1",
				PreRequisites: []string{"Missing"},
				TimeTableInfos: []RawTimetableOffering{{
					OfferedTerm: "Fall",
					TimeSlots:   []RawTimeSlot{{Day: "Monday", Start: "09:00", End: "10:00"}},
				}},
			}},
		}

		//** Act
		graph, err := FromCourseData(data)

		//** Assert
		assert.Nil(t, graph)
		assert.ErrorIs(t, err, ErrUnresolvedRequirement)
	})

	t.Run("Validation errors", func(t *testing.T) {
		offering := func(day, start, end string) []RawTimetableOffering {
			return []RawTimetableOffering{{OfferedTerm: "Fall", TimeSlots: []RawTimeSlot{{Day: day, Start: start, End: end}}}}
		}
		scenarios := map[string]struct {
			course RawCourse
			err    error
		}{
			"Missing offerings":      {RawCourse{Name: "C1"}, ErrInvalidCourse},
			"Degree with coreqs":     {RawCourse{Name: "D", IsDegree: true, CoRequisites: []string{"C1"}}, ErrInvalidCourse},
			"Degree with offerings":  {RawCourse{Name: "D", IsDegree: true, TimeTableInfos: offering("Monday", "09:00", "10:00")}, ErrInvalidCourse},
			"Weekend":                {RawCourse{Name: "C1", TimeTableInfos: offering("Saturday", "09:00", "10:00")}, ErrInvalidTimeSlot},
			"Start after end":        {RawCourse{Name: "C1", TimeTableInfos: offering("Monday", "11:00", "10:00")}, ErrInvalidTimeSlot},
			"Start equals end":       {RawCourse{Name: "C1", TimeTableInfos: offering("Monday", "10:00", "10:00")}, ErrInvalidTimeSlot},
			"Before window":          {RawCourse{Name: "C1", TimeTableInfos: offering("Monday", "07:00", "09:00")}, ErrInvalidTimeSlot},
			"After window":           {RawCourse{Name: "C1", TimeTableInfos: offering("Friday", "21:00", "23:00")}, ErrInvalidTimeSlot},
			"Unparseable time":       {RawCourse{Name: "C1", TimeTableInfos: offering("Monday", "nine", "10:00")}, ErrInvalidTimeSlot},
			"Unknown term":           {RawCourse{Name: "C1", TimeTableInfos: []RawTimetableOffering{{OfferedTerm: "Summer"}}}, ErrInvalidCourse},
			"Offering without slots": {RawCourse{Name: "C1", TimeTableInfos: []RawTimetableOffering{{OfferedTerm: "Fall"}}}, ErrInvalidTimeSlot},
			"Empty name":             {RawCourse{Name: " ", IsDegree: true}, ErrInvalidCourse},
		}

		for name, scenario := range scenarios {
			t.Run(name, func(t *testing.T) {
				//** Act
				_, err := FromCourseData(CourseData{Courses: []RawCourse{scenario.course}})

				//** Assert
				assert.ErrorIs(t, err, scenario.err)
			})
		}
	})

	t.Run("Cyclic requirements", func(t *testing.T) {
		//** Arrange
		offerings := []RawTimetableOffering{{OfferedTerm: "Fall", TimeSlots: []RawTimeSlot{{Day: "Monday", Start: "09:00", End: "10:00"}}}}
		data := CourseData{Courses: []RawCourse{
			{Name: "C1", PreRequisites: []string{"C2"}, TimeTableInfos: offerings},
			{Name: "C2", CoRequisites: []string{"C1"}, TimeTableInfos: offerings},
		}}

		//** Act
		_, err := FromCourseData(data)

		//** Assert
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		offerings := []RawTimetableOffering{{OfferedTerm: "Winter", TimeSlots: []RawTimeSlot{{Day: "Monday", Start: "09:00", End: "10:00"}}}}
		scenarios := map[string]CourseData{
			"Course listed twice": {Courses: []RawCourse{
				{Name: "C1", TimeTableInfos: offerings},
				{Name: "C2", TimeTableInfos: offerings},
				{Name: "C1", PreRequisites: []string{"C2"}, TimeTableInfos: offerings},
			}},
			"Course named like a degree": {
				Degrees: []RawCourse{{Name: "D"}},
				Courses: []RawCourse{{Name: "D", TimeTableInfos: offerings}},
			},
		}

		for name, data := range scenarios {
			t.Run(name, func(t *testing.T) {
				//** Act
				graph, err := FromCourseData(data)

				//** Assert
				assert.Nil(t, graph)
				assert.ErrorIs(t, err, ErrInvalidCourse)
			})
		}
	})
}

func TestGetCourseData(t *testing.T) {
	t.Run("Empty graph", func(t *testing.T) {
		//** Act
		data := NewCourseGraph().GetCourseData()

		//** Assert
		assert.Empty(t, data.Degrees)
		assert.Empty(t, data.Courses)
	})

	t.Run("Degrees are split from courses", func(t *testing.T) {
		//** Arrange
		graph := graphOf(mustDegree(t, "C1", nil))

		//** Act
		data := graph.GetCourseData()

		//** Assert
		assert.Empty(t, data.Courses)
		require.Len(t, data.Degrees, 1)
		assert.Equal(t, "C1", data.Degrees[0].Name)
	})

	t.Run("Round trip through json", func(t *testing.T) {
		//** Arrange
		graph, err := FromCourseData(decodeBundle(t, bundleJson))
		require.NoError(t, err)
		file := filepath.Join(t.TempDir(), "courses.json")

		//** Act
		require.NoError(t, SaveToJson(file, graph.GetCourseData()))
		loaded, err := InputFromJson(file)
		require.NoError(t, err)
		reloaded, err := FromCourseData(loaded)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, graph.GetCourseData(), reloaded.GetCourseData())
	})

	t.Run("Reflects rewiring", func(t *testing.T) {
		//** Arrange
		c1, c2, c3 := mustCourse(t, "C1", nil, nil), mustCourse(t, "C2", nil, nil), mustCourse(t, "C3", nil, nil)
		graph := graphOf(c1, c2, c3)
		require.NoError(t, graph.AddEdge(c1, c2, Prereq))
		require.NoError(t, graph.AddEdge(c2, c3, Coreq))

		//** Act
		graph.RemoveVertex(c2)
		data := graph.GetCourseData()

		//** Assert
		require.Len(t, data.Courses, 2)
		assert.Equal(t, []string{"C3"}, data.Courses[0].CoRequisites)
		assert.Empty(t, data.Courses[0].PreRequisites)
	})
}

func TestInputFromJsonMissingFile(t *testing.T) {
	_, err := InputFromJson(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
