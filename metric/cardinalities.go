//
// Copyright 2024 Privanon Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package metric

import (
	"fmt"
)

// Cardinalities maps, for every quasi-identifying column, each value
// identifier and generalization level to the aggregated frequency of the
// value's generalized image at that level. Level 0 holds the raw value
// frequencies. Built once per dataset and hierarchy set; read-only
// afterwards, so one instance may back concurrent metric evaluations.
type Cardinalities struct {
	counts [][][]int64
}

// NewCardinalities builds the cardinality table for the given dataset.
//
// data is row-major: data[row][column] is a dense value identifier into the
// column's hierarchy. hierarchies[column][value][level] is the identifier of
// the value's generalized image at the given level; level 0 must be the
// identity. subset, if non-nil, restricts counting to the contained rows.
func NewCardinalities(data [][]int, hierarchies [][][]int, subset *RowSet) (*Cardinalities, error) {
	if err := checkDimensions(data, hierarchies, subset); err != nil {
		return nil, fmt.Errorf("NewCardinalities: %w", err)
	}
	counts := make([][][]int64, len(hierarchies))
	for column, hierarchy := range hierarchies {
		counts[column] = make([][]int64, len(hierarchy))
		levels := len(hierarchy[0])
		for value := range counts[column] {
			counts[column][value] = make([]int64, levels)
		}
	}
	for row, record := range data {
		if subset != nil && !subset.Contains(row) {
			continue
		}
		for column, value := range record {
			hierarchy := hierarchies[column]
			for level, out := range hierarchy[value] {
				counts[column][out][level]++
			}
		}
	}
	return &Cardinalities{counts: counts}, nil
}

// Count returns the frequency of the given value's generalized image at the
// given level.
func (c *Cardinalities) Count(column, value, level int) int64 {
	return c.counts[column][value][level]
}

// Columns returns the number of quasi-identifying columns.
func (c *Cardinalities) Columns() int {
	return len(c.counts)
}

// Levels returns the number of generalization levels of the given column.
func (c *Cardinalities) Levels(column int) int {
	if len(c.counts[column]) == 0 {
		return 0
	}
	return len(c.counts[column][0])
}

// Values returns the number of distinct value identifiers of the given
// column.
func (c *Cardinalities) Values(column int) int {
	return len(c.counts[column])
}

func checkDimensions(data [][]int, hierarchies [][][]int, subset *RowSet) error {
	if len(data) == 0 {
		return fmt.Errorf("data must not be empty")
	}
	if len(hierarchies) == 0 {
		return fmt.Errorf("hierarchies must not be empty")
	}
	if subset != nil && subset.Length() != len(data) {
		return fmt.Errorf("subset covers %d rows, data has %d", subset.Length(), len(data))
	}
	for column, hierarchy := range hierarchies {
		if len(hierarchy) == 0 {
			return fmt.Errorf("hierarchy of column %d has no values", column)
		}
		levels := len(hierarchy[0])
		if levels == 0 {
			return fmt.Errorf("hierarchy of column %d has no levels", column)
		}
		for value, generalizations := range hierarchy {
			if len(generalizations) != levels {
				return fmt.Errorf("hierarchy of column %d has %d levels for value %d, want %d",
					column, len(generalizations), value, levels)
			}
			if generalizations[0] != value {
				return fmt.Errorf("hierarchy of column %d does not map value %d to itself at level 0", column, value)
			}
			for level, out := range generalizations {
				if out < 0 || out >= len(hierarchy) {
					return fmt.Errorf("hierarchy of column %d maps value %d to %d at level %d, out of range [0, %d)",
						column, value, out, level, len(hierarchy))
				}
			}
		}
	}
	for row, record := range data {
		if len(record) != len(hierarchies) {
			return fmt.Errorf("row %d has %d columns, want %d", row, len(record), len(hierarchies))
		}
		for column, value := range record {
			if value < 0 || value >= len(hierarchies[column]) {
				return fmt.Errorf("row %d holds value %d in column %d, out of range [0, %d)",
					row, value, column, len(hierarchies[column]))
			}
		}
	}
	return nil
}
