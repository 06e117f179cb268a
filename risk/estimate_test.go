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
	"math"
	"testing"
)

func TestEstimateStates(t *testing.T) {
	for _, tc := range []struct {
		desc      string
		estimate  Estimate
		wantValid bool
		wantValue float64
	}{
		{"zero value is uncomputed",
			Estimate{},
			false,
			0},
		{"computed estimate",
			ComputedEstimate(42.5),
			true,
			42.5},
		{"computed zero",
			ComputedEstimate(0),
			true,
			0},
		{"invalid estimate",
			InvalidEstimate(),
			false,
			0},
		{"NaN collapses to invalid",
			ComputedEstimate(math.NaN()),
			false,
			0},
		{"negative collapses to invalid",
			ComputedEstimate(-1),
			false,
			0},
	} {
		if got := tc.estimate.Valid(); got != tc.wantValid {
			t.Errorf("Valid: when %s got %t, want %t", tc.desc, got, tc.wantValid)
		}
		if got := tc.estimate.Value(); got != tc.wantValue {
			t.Errorf("Value: when %s got %v, want %v", tc.desc, got, tc.wantValue)
		}
	}
}

func TestEstimateRaw(t *testing.T) {
	if got := ComputedEstimate(3).raw(); got != 3 {
		t.Errorf("raw: got %v, want 3", got)
	}
	if got := InvalidEstimate().raw(); !math.IsNaN(got) {
		t.Errorf("raw: got %v for an invalid estimate, want NaN", got)
	}
}

func TestModelString(t *testing.T) {
	for _, tc := range []struct {
		model Model
		want  string
	}{
		{Pitman, "Pitman"},
		{Zayatz, "Zayatz"},
		{SNB, "SNB"},
		{Dankar, "Dankar"},
		{Model(17), "Model(17)"},
	} {
		if got := tc.model.String(); got != tc.want {
			t.Errorf("String: got %q, want %q", got, tc.want)
		}
	}
}
