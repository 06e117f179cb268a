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

package risk

import (
	"fmt"
	"sort"

	"github.com/privanon/reident/checks"
)

// Histogram describes the distribution of equivalence-class sizes in a
// sample: for every class size, the number of classes of that size. It is
// immutable once constructed; estimators only read it, so a single instance
// may be shared across concurrent estimator invocations.
type Histogram struct {
	sizes      []int
	counts     []int64
	numClasses int64
	sampleSize int64
}

// NewHistogram builds a histogram from a mapping of class size to class
// count. Sizes must be strictly positive and counts nonnegative; zero counts
// are dropped.
func NewHistogram(classes map[int]int64) (*Histogram, error) {
	h := &Histogram{}
	for size, count := range classes {
		if size < 1 {
			return nil, fmt.Errorf("NewHistogram: class size is %d, must be strictly positive", size)
		}
		if count < 0 {
			return nil, fmt.Errorf("NewHistogram: count for class size %d is %d, must be nonnegative", size, count)
		}
		if count == 0 {
			continue
		}
		h.sizes = append(h.sizes, size)
	}
	sort.Ints(h.sizes)
	h.counts = make([]int64, len(h.sizes))
	for i, size := range h.sizes {
		count := classes[size]
		h.counts[i] = count
		h.numClasses += count
		h.sampleSize += int64(size) * count
	}
	return h, nil
}

// Count returns the number of equivalence classes of the given size.
func (h *Histogram) Count(size int) int64 {
	i := sort.SearchInts(h.sizes, size)
	if i < len(h.sizes) && h.sizes[i] == size {
		return h.counts[i]
	}
	return 0
}

// NumClasses returns the total number of equivalence classes in the sample.
func (h *Histogram) NumClasses() int64 {
	return h.numClasses
}

// SampleSize returns the number of records in the sample, i.e. the sum of
// size times count over all classes.
func (h *Histogram) SampleSize() int64 {
	return h.sampleSize
}

// Sizes returns the distinct class sizes in ascending order. The returned
// slice is a copy and may be modified by the caller.
func (h *Histogram) Sizes() []int {
	sizes := make([]int, len(h.sizes))
	copy(sizes, h.sizes)
	return sizes
}

// PopulationModel relates a sample to the population it was drawn from via
// the sampling fraction.
type PopulationModel struct {
	fraction float64
}

// NewPopulationModel returns a population model for the given sampling
// fraction in (0, 1].
func NewPopulationModel(fraction float64) (*PopulationModel, error) {
	if err := checks.CheckSamplingFraction(fraction); err != nil {
		return nil, fmt.Errorf("NewPopulationModel: %w", err)
	}
	return &PopulationModel{fraction: fraction}, nil
}

// SamplingFraction returns the sampling fraction.
func (p *PopulationModel) SamplingFraction() float64 {
	return p.fraction
}

// PopulationSize returns the estimated population size for the given sample
// size.
func (p *PopulationModel) PopulationSize(sampleSize int64) float64 {
	return float64(sampleSize) / p.fraction
}
