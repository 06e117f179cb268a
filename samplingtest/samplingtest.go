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

// Package samplingtest provides synthetic populations and Bernoulli
// sampling for exercising the uniqueness estimators.
//
// This package is not optimized for performance or speed and is only
// intended to be used in tests.
package samplingtest

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/privanon/reident/rand"
)

// Population is a synthetic population described by its equivalence-class
// sizes.
type Population struct {
	sizes []int
}

// NewPoissonPopulation returns a population with the given number of
// equivalence classes, each of size 1 + Poisson(lambda). Small lambdas yield
// populations rich in unique records.
func NewPoissonPopulation(classes int, lambda float64) *Population {
	dist := distuv.Poisson{Lambda: lambda}
	sizes := make([]int, classes)
	for i := range sizes {
		sizes[i] = 1 + int(dist.Rand())
	}
	return &Population{sizes: sizes}
}

// Size returns the number of individuals in the population.
func (p *Population) Size() int {
	var size int
	for _, s := range p.sizes {
		size += s
	}
	return size
}

// Classes returns the number of equivalence classes in the population.
func (p *Population) Classes() int {
	return len(p.sizes)
}

// Uniques returns the number of population-unique records, i.e. the number
// of classes of size 1.
func (p *Population) Uniques() int {
	var uniques int
	for _, s := range p.sizes {
		if s == 1 {
			uniques++
		}
	}
	return uniques
}

// Sample draws a Bernoulli sample: every individual is included
// independently with the given probability. It returns the resulting
// equivalence-class histogram as a size-to-count mapping together with the
// sample size. Classes with no sampled individual are absent from the
// histogram.
func (p *Population) Sample(probability float64) (classes map[int]int64, sampleSize int) {
	classes = make(map[int]int64)
	for _, size := range p.sizes {
		var sampled int
		for i := 0; i < size; i++ {
			if rand.Uniform() <= probability {
				sampled++
			}
		}
		if sampled > 0 {
			classes[sampled]++
			sampleSize += sampled
		}
	}
	return classes, sampleSize
}
