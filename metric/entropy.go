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

// Package metric scores candidate generalizations of a tabular dataset by
// the information loss they induce. The non-uniform entropy metric operates
// on a precomputed cardinality table and caches per-(column, level) results,
// so that scoring thousands of transformations during a lattice search stays
// linear in column cardinality rather than in lattice size.
package metric

import (
	"fmt"
	"math"

	log "github.com/golang/glog"

	"github.com/privanon/reident/checks"
)

// Results are rounded to ten decimal digits so that floating-point noise
// cannot order transformations that are information-theoretically identical.
const roundingFactor = 1e10

func round(value float64) float64 {
	return math.Round(value*roundingFactor) / roundingFactor
}

var log2v = math.Log(2)

func log2(value float64) float64 {
	return math.Log(value) / log2v
}

type metricState int

const (
	uninitialized metricState = iota
	initialized
	evaluating
)

var metricStateName = map[metricState]string{
	uninitialized: "Uninitialized",
	initialized:   "Initialized",
	evaluating:    "Evaluating",
}

func (s metricState) String() string {
	return metricStateName[s]
}

// NonUniformEntropyOptions contains the options necessary to initialize a
// NonUniformEntropy.
type NonUniformEntropyOptions struct {
	// GSFactor balances generalization against suppression in [0, 1]: 0.5
	// weights both equally, values below favor suppression penalties, values
	// above favor generalization penalties.
	GSFactor float64
}

// NonUniformEntropy is the precomputed non-uniform entropy metric. A fresh
// instance is uninitialized; Initialize builds the cardinality table and the
// result cache for one dataset, after which Loss may be evaluated repeatedly
// for arbitrary transformations. Re-initializing against new input discards
// all cached state.
//
// Not thread-safe: the cache is mutated during evaluation. Confine one
// instance to one goroutine or synchronize externally.
type NonUniformEntropy struct {
	gFactor float64
	sFactor float64

	state         metricState
	cards         *Cardinalities
	hierarchies   [][][]int
	rows          float64
	cacheValue    [][]float64
	cacheComputed [][]bool
	min           []float64
	max           []float64
}

// NewNonUniformEntropy returns a new, uninitialized metric.
func NewNonUniformEntropy(opt *NonUniformEntropyOptions) (*NonUniformEntropy, error) {
	if opt == nil {
		opt = &NonUniformEntropyOptions{}
	}
	if err := checks.CheckFactor(opt.GSFactor); err != nil {
		return nil, fmt.Errorf("NewNonUniformEntropy: %w", err)
	}
	gFactor, sFactor := 1.0, 1.0
	if opt.GSFactor > 0.5 {
		gFactor = 1 - (opt.GSFactor-0.5)/0.5
	}
	if opt.GSFactor < 0.5 {
		sFactor = opt.GSFactor / 0.5
	}
	return &NonUniformEntropy{
		gFactor: gFactor,
		sFactor: sFactor,
		state:   uninitialized,
	}, nil
}

// Initialize consumes a dataset and its generalization hierarchies, builds
// the cardinality table and an empty result cache, and derives per-column
// score bounds. See NewCardinalities for the input layout. subset, if
// non-nil, restricts the cardinality counts to the contained rows; the score
// bounds still cover the full dataset.
func (m *NonUniformEntropy) Initialize(data [][]int, hierarchies [][][]int, subset *RowSet) error {
	cards, err := NewCardinalities(data, hierarchies, subset)
	if err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}

	m.cards = cards
	m.hierarchies = hierarchies
	m.rows = float64(len(data))
	m.cacheValue = make([][]float64, cards.Columns())
	m.cacheComputed = make([][]bool, cards.Columns())
	m.min = make([]float64, cards.Columns())
	m.max = make([]float64, cards.Columns())
	for column := range m.cacheValue {
		m.cacheValue[column] = make([]float64, cards.Levels(column))
		m.cacheComputed[column] = make([]bool, cards.Levels(column))
		m.max[column] = m.rows * log2(m.rows) * math.Max(m.gFactor, m.sFactor)
	}
	m.state = initialized
	return nil
}

// Loss scores the given transformation, one generalization level per column.
// Per column, the raw entropy sum for the (column, level) pair is served
// from the cache or computed once, weighted by the generalization factor,
// negated so that more generalization reads as strictly more loss, and
// rounded. Evaluating an uninitialized metric or a malformed transformation
// is a programming error.
func (m *NonUniformEntropy) Loss(transformation []int) Result {
	m.checkEvaluate("Loss", transformation)
	columns := make([]float64, m.cards.Columns())
	for column := range columns {
		level := transformation[column]
		if !m.cacheComputed[column][level] {
			var value float64
			hierarchy := m.hierarchies[column]
			for in := range hierarchy {
				a := float64(m.cards.Count(column, in, 0))
				if a == 0 {
					continue
				}
				out := hierarchy[in][level]
				b := float64(m.cards.Count(column, out, level))
				value += a * log2(a/b)
			}
			m.cacheValue[column][level] = value
			m.cacheComputed[column][level] = true
		}
		value := m.cacheValue[column][level] * m.gFactor
		if value != 0 {
			value = -value
		}
		columns[column] = round(value)
	}
	return Result{columns: columns}
}

// LossForGroup is the structural lower-bound overload used when no full
// grouped summary is available: every column is scored with the group's
// record count.
func (m *NonUniformEntropy) LossForGroup(transformation []int, groupSize int) Result {
	m.checkEvaluate("LossForGroup", transformation)
	columns := make([]float64, m.cards.Columns())
	for column := range columns {
		columns[column] = float64(groupSize)
	}
	return Result{columns: columns}
}

// LowerBound returns a lower bound for the loss of the given transformation.
// The metric is monotonic, so the bound is the loss itself.
func (m *NonUniformEntropy) LowerBound(transformation []int) Result {
	return m.Loss(transformation)
}

// UpperBounds returns per-column upper bounds derived from the actual value
// distribution: the entropy of generalizing every value into one class.
// Tighter than the conservative maximum reported by Bounds.
func (m *NonUniformEntropy) UpperBounds() []float64 {
	if m.state == uninitialized {
		log.Fatalf("UpperBounds: metric is %v, must be initialized first", m.state)
	}
	bounds := make([]float64, m.cards.Columns())
	for column := range bounds {
		var value float64
		for in := range m.hierarchies[column] {
			a := float64(m.cards.Count(column, in, 0))
			if a != 0 {
				value += a * log2(a/m.rows)
			}
		}
		value *= m.gFactor
		if value != 0 {
			value = -value
		}
		bounds[column] = round(value)
	}
	return bounds
}

// Bounds returns per-column minimum and maximum scores, used by the
// surrounding search to prune. The returned slices are copies.
func (m *NonUniformEntropy) Bounds() (min, max []float64) {
	if m.state == uninitialized {
		log.Fatalf("Bounds: metric is %v, must be initialized first", m.state)
	}
	min = make([]float64, len(m.min))
	max = make([]float64, len(m.max))
	copy(min, m.min)
	copy(max, m.max)
	return min, max
}

func (m *NonUniformEntropy) checkEvaluate(label string, transformation []int) {
	if m.state == uninitialized {
		log.Fatalf("%s: metric is %v, must be initialized first", label, m.state)
	}
	if len(transformation) != m.cards.Columns() {
		log.Fatalf("%s: transformation has %d levels, want %d", label, len(transformation), m.cards.Columns())
	}
	for column, level := range transformation {
		if level < 0 || level >= m.cards.Levels(column) {
			log.Fatalf("%s: level %d of column %d out of range [0, %d)", label, level, column, m.cards.Levels(column))
		}
	}
	m.state = evaluating
}

// Result holds the per-column loss scores of one evaluation.
type Result struct {
	columns []float64
}

// Column returns the score of the given column.
func (r Result) Column(column int) float64 {
	return r.columns[column]
}

// Columns returns the per-column scores. The returned slice is a copy.
func (r Result) Columns() []float64 {
	columns := make([]float64, len(r.columns))
	copy(columns, r.columns)
	return columns
}

// Total returns the aggregate score, the sum over all columns.
func (r Result) Total() float64 {
	var sum float64
	for _, value := range r.columns {
		sum += value
	}
	return sum
}
