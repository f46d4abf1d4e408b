package scheduler

import (
	"slices"

	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/samber/lo"
)

// Entry is a course placed in a term together with the offering it was resolved to
type Entry struct {
	Course   *model.Course
	Offering model.TimetableOffering
}

type term struct {
	// Candidate offerings per slot, nil for empty slots
	slots []*slotChoice
	// Resolved offerings aligned with slots
	entries []*Entry
}

// Schedule is the result of a scheduling run: a sequence of terms, each with a fixed number of slots.
// Terms are created on demand as courses are placed further ahead.
type Schedule struct {
	slotsPerTerm int
	startingTerm model.Term
	terms        []*term
	placed       map[string]int
	missed       []string
}

func newSchedule(slotsPerTerm int, startingTerm model.Term) *Schedule {
	return &Schedule{
		slotsPerTerm: slotsPerTerm,
		startingTerm: startingTerm,
		terms:        make([]*term, 0),
		placed:       make(map[string]int),
		missed:       make([]string, 0),
	}
}

func (schedule *Schedule) SlotsPerTerm() int             { return schedule.slotsPerTerm }
func (schedule *Schedule) StartingTerm() model.Term      { return schedule.startingTerm }
func (schedule *Schedule) TermCount() int                { return len(schedule.terms) }
func (schedule *Schedule) Count() int                    { return len(schedule.placed) }
func (schedule *Schedule) MissedOpportunities() []string { return slices.Clone(schedule.missed) }

// TermType maps a term index to its term type: index 0 is the starting term and types cycle from there
func (schedule *Schedule) TermType(index int) model.Term {
	return schedule.startingTerm.Next(index)
}

// Term returns the entries placed in the term at index, in slot order
func (schedule *Schedule) Term(index int) []Entry {
	if index < 0 || index >= len(schedule.terms) {
		return []Entry{}
	}
	return lo.FilterMap(schedule.terms[index].entries, func(entry *Entry, _ int) (Entry, bool) {
		if entry == nil {
			return Entry{}, false
		}
		return *entry, true
	})
}

// Terms returns the entries of every term, in term order
func (schedule *Schedule) Terms() [][]Entry {
	return lo.Times(len(schedule.terms), schedule.Term)
}

// CourseTerm returns the index of the term the named course was placed in
func (schedule *Schedule) CourseTerm(name string) (int, bool) {
	index, ok := schedule.placed[name]
	return index, ok
}

// IsTermFull reports whether every slot of the term at index is taken. Terms not created yet are empty.
func (schedule *Schedule) IsTermFull(index int) bool {
	if index >= len(schedule.terms) {
		return false
	}
	return !lo.Contains(schedule.terms[index].slots, nil)
}

// trial resolves the term at index with course added to its first empty slot. It reports ok=false when
// the term is full, when the course does not run in the term type or when no conflict-free combination
// of offerings exists.
func (schedule *Schedule) trial(course *model.Course, index int, ceiling uint64) (slots []*slotChoice, entries []*Entry, ok bool, err error) {
	if schedule.IsTermFull(index) {
		return nil, nil, false, nil
	}

	offerings := course.OfferingsFor(schedule.TermType(index))
	if len(offerings) == 0 {
		return nil, nil, false, nil
	}

	if index < len(schedule.terms) {
		slots = slices.Clone(schedule.terms[index].slots)
	} else {
		slots = make([]*slotChoice, schedule.slotsPerTerm)
	}
	slots[slices.Index(slots, nil)] = &slotChoice{course: course, offerings: offerings}

	entries, ok, err = resolve(slots, ceiling)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	return slots, entries, true, nil
}

// commit stores the outcome of a successful trial
func (schedule *Schedule) commit(course *model.Course, index int, slots []*slotChoice, entries []*Entry) {
	for len(schedule.terms) <= index {
		schedule.terms = append(schedule.terms, &term{
			slots:   make([]*slotChoice, schedule.slotsPerTerm),
			entries: make([]*Entry, schedule.slotsPerTerm),
		})
	}
	schedule.terms[index].slots = slots
	schedule.terms[index].entries = entries
	schedule.placed[course.Name()] = index
}

// slotOf returns the slot the named course occupies in the term at index
func (schedule *Schedule) slotOf(name string, index int) int {
	return slices.IndexFunc(schedule.terms[index].slots, func(slot *slotChoice) bool {
		return slot != nil && slot.course.Name() == name
	})
}
