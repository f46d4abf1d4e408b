package scheduler

import (
	"fmt"
	"log"
)

// combinationIndexer maps every index in [0, Total()) to a distinct combination of per-slot choices
type combinationIndexer interface {
	// Returns the number of distinct combinations
	Total() uint64
	// Returns a combination of per-slot choices from a unique index
	Choices(index uint64) []uint64
}

type mixedRadixIndexer struct {
	radices []uint64
	total   uint64
}

// newCombinationIndexer builds an indexer over slots with the given number of choices each. It fails when
// the number of combinations exceeds ceiling.
func newCombinationIndexer(radices []uint64, ceiling uint64) (combinationIndexer, error) {
	total := uint64(1)
	for _, radix := range radices {
		if radix == 0 {
			log.Panicf("a slot must offer at least one choice: %v", radices)
		}
		if total > ceiling/radix {
			return nil, fmt.Errorf("%w: more than %v combinations", ErrSearchSpaceTooLarge, ceiling)
		}
		total *= radix
	}
	if total > ceiling {
		return nil, fmt.Errorf("%w: %v combinations exceed %v", ErrSearchSpaceTooLarge, total, ceiling)
	}

	return &mixedRadixIndexer{
		radices: radices,
		total:   total,
	}, nil
}

func (indexer *mixedRadixIndexer) Total() uint64 {
	return indexer.total
}

func (indexer *mixedRadixIndexer) Choices(index uint64) []uint64 {
	choices := make([]uint64, len(indexer.radices))
	for i, radix := range indexer.radices {
		choices[i] = index % radix
		index = index / radix
	}
	return choices
}
