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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// This file contains helpers used to test the risk models.

func mustHistogram(t *testing.T, classes map[int]int64) *Histogram {
	t.Helper()
	h, err := NewHistogram(classes)
	if err != nil {
		t.Fatalf("NewHistogram(%v): %v", classes, err)
	}
	return h
}

func mustPopulation(t *testing.T, fraction float64) *PopulationModel {
	t.Helper()
	p, err := NewPopulationModel(fraction)
	if err != nil {
		t.Fatalf("NewPopulationModel(%v): %v", fraction, err)
	}
	return p
}

func approxEqual(x, y float64) bool {
	return cmp.Equal(x, y, cmpopts.EquateApprox(0, 1e-9))
}
