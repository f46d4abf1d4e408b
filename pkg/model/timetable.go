package model

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Term is the type of a scheduling period. Term types cycle with period TermTypes.
type Term int

const (
	Fall Term = iota
	Winter
)

// TermTypes is the number of distinct term types
const TermTypes = 2

var termNames = map[Term]string{
	Fall:   "Fall",
	Winter: "Winter",
}

func (term Term) String() string {
	if name, ok := termNames[term]; ok {
		return name
	}
	return fmt.Sprintf("Term(%d)", int(term))
}

// Next returns the term type that follows term after offset periods
func (term Term) Next(offset int) Term {
	return Term(((int(term)+offset)%TermTypes + TermTypes) % TermTypes)
}

// ParseTerm accepts a term name ("Fall", "winter") or its ordinal ("0", "1")
func ParseTerm(value string) (Term, error) {
	value = strings.TrimSpace(value)
	if ordinal, err := strconv.Atoi(value); err == nil {
		if ordinal < 0 || ordinal >= TermTypes {
			return 0, fmt.Errorf("invalid term ordinal: %v", ordinal)
		}
		return Term(ordinal), nil
	}
	for term, name := range termNames {
		if strings.EqualFold(name, value) {
			return term, nil
		}
	}
	return 0, fmt.Errorf("invalid term: %q", value)
}

// TimeOfDay is a wall-clock time expressed in minutes since midnight
type TimeOfDay uint16

const (
	// EarliestTime is the first minute a time slot may start at
	EarliestTime TimeOfDay = 8 * 60
	// LatestTime is the last minute a time slot may end at
	LatestTime TimeOfDay = 22 * 60
)

// NewTimeOfDay panics if hour or minute is out of range
func NewTimeOfDay(hour, minute int) TimeOfDay {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		log.Panicf("invalid time of day: %d:%02d", hour, minute)
	}
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" (seconds are dropped)
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return NewTimeOfDay(parsed.Hour(), parsed.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day: %q", value)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ParseWeekday accepts an English weekday name ("Monday", "tue") or the time.Weekday ordinal ("1")
func ParseWeekday(value string) (time.Weekday, error) {
	value = strings.TrimSpace(value)
	if ordinal, err := strconv.Atoi(value); err == nil {
		if ordinal < int(time.Sunday) || ordinal > int(time.Saturday) {
			return 0, fmt.Errorf("invalid weekday ordinal: %v", ordinal)
		}
		return time.Weekday(ordinal), nil
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := day.String()
		// Full names and unambiguous prefixes of at least three letters ("Mon", "Thu")
		if len(value) >= 3 && len(value) <= len(name) && strings.EqualFold(name[:len(value)], value) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", value)
}

// TimeSlot is a weekly meeting of a course section
type TimeSlot struct {
	Day   time.Weekday
	Start TimeOfDay
	End   TimeOfDay
}

// NewTimeSlot builds a validated TimeSlot
func NewTimeSlot(day time.Weekday, start, end TimeOfDay) (TimeSlot, error) {
	slot := TimeSlot{Day: day, Start: start, End: end}
	if err := slot.Validate(); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

// Validate checks that the slot falls on a weekday, inside the daily window and that start < end
func (slot TimeSlot) Validate() error {
	if slot.Day == time.Saturday || slot.Day == time.Sunday || slot.Day < time.Sunday || slot.Day > time.Saturday {
		return fmt.Errorf("%w: %v is not a weekday", ErrInvalidTimeSlot, slot.Day)
	} else if slot.Start >= slot.End {
		return fmt.Errorf("%w: start %v must be before end %v", ErrInvalidTimeSlot, slot.Start, slot.End)
	} else if slot.Start < EarliestTime || slot.End > LatestTime {
		return fmt.Errorf("%w: %v-%v is outside of %v-%v", ErrInvalidTimeSlot, slot.Start, slot.End, EarliestTime, LatestTime)
	}
	return nil
}

// Overlaps reports whether both slots share a day and their time ranges intersect
func (slot TimeSlot) Overlaps(other TimeSlot) bool {
	return slot.Day == other.Day && slot.Start < other.End && other.Start < slot.End
}

func (slot TimeSlot) String() string {
	return fmt.Sprintf("%v %v-%v", slot.Day, slot.Start, slot.End)
}

// TimetableOffering is one section of a course: the term type it runs in and its weekly slots
type TimetableOffering struct {
	Term      Term
	TimeSlots []TimeSlot
}

// Validate checks the offering has at least one slot and that every slot is valid
func (offering TimetableOffering) Validate() error {
	if offering.Term < 0 || offering.Term >= TermTypes {
		return fmt.Errorf("%w: unknown term %v", ErrInvalidTimeSlot, offering.Term)
	} else if len(offering.TimeSlots) == 0 {
		return fmt.Errorf("%w: %v offering has no time slots", ErrInvalidTimeSlot, offering.Term)
	}
	for _, slot := range offering.TimeSlots {
		if err := slot.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Overlaps reports whether any slot of offering overlaps any slot of other
func (offering TimetableOffering) Overlaps(other TimetableOffering) bool {
	return lo.SomeBy(offering.TimeSlots, func(slot TimeSlot) bool {
		return lo.SomeBy(other.TimeSlots, slot.Overlaps)
	})
}
