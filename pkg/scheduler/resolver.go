package scheduler

import (
	"github.com/limaJavier/courseplan/pkg/model"
	"github.com/samber/lo"
)

// slotChoice holds a course placed in a term slot and the offerings it may still be resolved to
type slotChoice struct {
	course    *model.Course
	offerings []model.TimetableOffering
}

// resolve picks one offering per occupied slot so that no two picked offerings overlap. Empty (nil) slots
// contribute a single null choice and come back as nil entries. Combinations are enumerated in index order
// and the first valid one wins; ok is false when every combination conflicts.
func resolve(slots []*slotChoice, ceiling uint64) (entries []*Entry, ok bool, err error) {
	radices := lo.Map(slots, func(slot *slotChoice, _ int) uint64 {
		if slot == nil {
			return 1
		}
		return uint64(len(slot.offerings))
	})

	// A course without offerings for the term cannot be resolved at all
	if lo.Contains(radices, 0) {
		return nil, false, nil
	}

	indexer, err := newCombinationIndexer(radices, ceiling)
	if err != nil {
		return nil, false, err
	}

	for index := range indexer.Total() {
		candidate := make([]*Entry, len(slots))
		for i, choice := range indexer.Choices(index) {
			if slots[i] == nil {
				continue
			}
			candidate[i] = &Entry{
				Course:   slots[i].course,
				Offering: slots[i].offerings[choice],
			}
		}

		if !conflicting(candidate) {
			return candidate, true, nil
		}
	}

	return nil, false, nil
}

// conflicting reports whether two non-nil entries have overlapping offerings
func conflicting(entries []*Entry) bool {
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[i] == nil || entries[j] == nil {
				continue
			}
			if entries[i].Offering.Overlaps(entries[j].Offering) {
				return true
			}
		}
	}
	return false
}
