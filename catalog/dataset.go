package catalog

import (
	"iter"
	"slices"

	"github.com/poiesic/shortlist/core"
)

// Dataset is an immutable, ordered collection of restaurant records.
type Dataset struct {
	records []core.Restaurant
}

// NewDataset copies records into a new Dataset. Later changes to the input
// slice are not visible through the Dataset.
func NewDataset(records []core.Restaurant) *Dataset {
	return &Dataset{records: slices.Clone(records)}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// All iterates over the records in dataset order. Each record is yielded by value.
func (d *Dataset) All() iter.Seq2[int, core.Restaurant] {
	return func(yield func(int, core.Restaurant) bool) {
		if d == nil {
			return
		}
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of the records in dataset order.
func (d *Dataset) Records() []core.Restaurant {
	if d == nil {
		return []core.Restaurant{}
	}
	return slices.Clone(d.records)
}
