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
	log "github.com/golang/glog"
)

// RowSet is a dense bitset over row indices, used to restrict metric
// initialization to a subset of the records.
type RowSet struct {
	bits   []uint64
	length int
	size   int
}

// NewRowSet returns an empty row set over the given number of rows.
func NewRowSet(rows int) *RowSet {
	if rows < 0 {
		log.Fatalf("NewRowSet: rows is %d, must be nonnegative", rows)
	}
	return &RowSet{
		bits:   make([]uint64, (rows+63)/64),
		length: rows,
	}
}

// Add puts the given row into the set. Adding a row twice has no effect.
func (s *RowSet) Add(row int) {
	s.check(row)
	word, bit := row/64, uint64(1)<<(row%64)
	if s.bits[word]&bit == 0 {
		s.bits[word] |= bit
		s.size++
	}
}

// Contains reports whether the given row is in the set.
func (s *RowSet) Contains(row int) bool {
	s.check(row)
	return s.bits[row/64]&(uint64(1)<<(row%64)) != 0
}

// Size returns the number of rows in the set.
func (s *RowSet) Size() int {
	return s.size
}

// Length returns the number of rows the set was created for.
func (s *RowSet) Length() int {
	return s.length
}

func (s *RowSet) check(row int) {
	if row < 0 || row >= s.length {
		log.Fatalf("RowSet: row %d out of range [0, %d)", row, s.length)
	}
}
