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

package samplingtest

import (
	"testing"
)

func TestPoissonPopulationShape(t *testing.T) {
	p := NewPoissonPopulation(500, 0.5)
	if got, want := p.Classes(), 500; got != want {
		t.Errorf("Classes: got %d, want %d", got, want)
	}
	if p.Size() < p.Classes() {
		t.Errorf("Size: got %d, want at least the number of classes %d", p.Size(), p.Classes())
	}
	if p.Uniques() > p.Classes() {
		t.Errorf("Uniques: got %d, want at most the number of classes %d", p.Uniques(), p.Classes())
	}
}

func TestSampleIsConsistent(t *testing.T) {
	p := NewPoissonPopulation(200, 1)
	classes, sampleSize := p.Sample(0.3)
	var histogramSize int
	for size, count := range classes {
		if size < 1 {
			t.Errorf("Sample: histogram contains class size %d, want only positive sizes", size)
		}
		if count < 1 {
			t.Errorf("Sample: histogram contains count %d for size %d, want only positive counts", count, size)
		}
		histogramSize += size * int(count)
	}
	if histogramSize != sampleSize {
		t.Errorf("Sample: histogram sums to %d records, reported sample size is %d", histogramSize, sampleSize)
	}
	if sampleSize > p.Size() {
		t.Errorf("Sample: sample size %d exceeds population size %d", sampleSize, p.Size())
	}
}

func TestSampleFullFraction(t *testing.T) {
	p := NewPoissonPopulation(100, 0.2)
	classes, sampleSize := p.Sample(1)
	if sampleSize != p.Size() {
		t.Errorf("Sample: with probability 1 got sample size %d, want the population size %d", sampleSize, p.Size())
	}
	var classCount int
	for _, count := range classes {
		classCount += int(count)
	}
	if classCount != p.Classes() {
		t.Errorf("Sample: with probability 1 got %d classes, want %d", classCount, p.Classes())
	}
}
