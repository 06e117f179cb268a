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
	"context"
	"math"
	"testing"
)

func TestEstimatorsDegenerateWithoutSampleUniques(t *testing.T) {
	// Without size-1 classes nothing in the sample is even sample-unique, so
	// every model must skip fitting and return exactly 0.
	hist := mustHistogram(t, map[int]int64{2: 10, 3: 4, 5: 1})
	pop := mustPopulation(t, 0.01)
	ctx := context.Background()

	pitman, err := EstimatePitman(ctx, hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimatePitman: %v", err)
	}
	zayatz, err := EstimateZayatz(ctx, hist, pop)
	if err != nil {
		t.Fatalf("EstimateZayatz: %v", err)
	}
	snb, err := EstimateSNB(ctx, hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimateSNB: %v", err)
	}
	for _, tc := range []struct {
		model    Model
		estimate Estimate
	}{
		{Pitman, pitman},
		{Zayatz, zayatz},
		{SNB, snb},
	} {
		if !tc.estimate.Valid() {
			t.Errorf("%v: got %v for a histogram without sample uniques, want a valid estimate", tc.model, tc.estimate)
		}
		if got := tc.estimate.Value(); got != 0 {
			t.Errorf("%v: got %v for a histogram without sample uniques, want exactly 0", tc.model, got)
		}
	}
}

func TestEstimatorsCancellation(t *testing.T) {
	hist := mustHistogram(t, map[int]int64{1: 5, 2: 3})
	pop := mustPopulation(t, 0.05)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pitman, err := EstimatePitman(ctx, hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimatePitman: %v", err)
	}
	if pitman.Valid() {
		t.Errorf("EstimatePitman: got %v after cancellation, want invalid", pitman)
	}
	zayatz, err := EstimateZayatz(ctx, hist, pop)
	if err != nil {
		t.Fatalf("EstimateZayatz: %v", err)
	}
	if zayatz.Valid() {
		t.Errorf("EstimateZayatz: got %v after cancellation, want invalid", zayatz)
	}
	snb, err := EstimateSNB(ctx, hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimateSNB: %v", err)
	}
	if snb.Valid() {
		t.Errorf("EstimateSNB: got %v after cancellation, want invalid", snb)
	}
}

func TestEstimatorInputValidation(t *testing.T) {
	hist := mustHistogram(t, map[int]int64{1: 5})
	pop := mustPopulation(t, 0.1)
	ctx := context.Background()

	if _, err := EstimatePitman(ctx, nil, pop, nil); err == nil {
		t.Errorf("EstimatePitman: expected an error for a nil histogram")
	}
	if _, err := EstimateZayatz(ctx, hist, nil); err == nil {
		t.Errorf("EstimateZayatz: expected an error for a nil population model")
	}
	if _, err := EstimateSNB(ctx, hist, pop, &EstimatorOptions{Accuracy: -1}); err == nil {
		t.Errorf("EstimateSNB: expected an error for a negative accuracy")
	}
	if _, err := EstimatePitman(ctx, hist, pop, &EstimatorOptions{MaxIterations: -5}); err == nil {
		t.Errorf("EstimatePitman: expected an error for a negative iteration bound")
	}
}

func TestEstimateZayatzAllUniques(t *testing.T) {
	// When every sample class is a singleton, the conditional probability
	// that a sample unique is a population unique is 1 regardless of the
	// sampling fraction, so the estimate equals the number of uniques.
	for _, fraction := range []float64{0.05, 0.5, 1} {
		hist := mustHistogram(t, map[int]int64{1: 3})
		e, err := EstimateZayatz(context.Background(), hist, mustPopulation(t, fraction))
		if err != nil {
			t.Fatalf("EstimateZayatz: %v", err)
		}
		if !e.Valid() || !approxEqual(e.Value(), 3) {
			t.Errorf("EstimateZayatz: at fraction %v got %v, want 3", fraction, e)
		}
	}
}

func TestEstimateZayatzMixedClasses(t *testing.T) {
	// Histogram {1: 1, 3: 1} at fraction 0.5: n = 4, N = 8, and the
	// conditional works out to C(7,3)/2 over C(7,3)/2 + 3·C(5,3)/2, i.e.
	// 7/13 of a single sample unique.
	hist := mustHistogram(t, map[int]int64{1: 1, 3: 1})
	e, err := EstimateZayatz(context.Background(), hist, mustPopulation(t, 0.5))
	if err != nil {
		t.Fatalf("EstimateZayatz: %v", err)
	}
	if !e.Valid() || !approxEqual(e.Value(), 7.0/13.0) {
		t.Errorf("EstimateZayatz: got %v, want 7/13", e)
	}
}

func TestEstimatePitmanHeavyTail(t *testing.T) {
	// A sample with a heavy-tailed class-size distribution admits an
	// interior maximum-likelihood point, so the fit must converge to a
	// strictly positive estimate.
	hist := mustHistogram(t, map[int]int64{1: 5, 2: 1, 10: 1})
	pop := mustPopulation(t, 0.05)
	e, err := EstimatePitman(context.Background(), hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimatePitman: %v", err)
	}
	if !e.Valid() {
		t.Fatalf("EstimatePitman: got %v, want a valid estimate", e)
	}
	if e.Value() <= 0 || math.IsInf(e.Value(), 0) {
		t.Errorf("EstimatePitman: got %v, want a strictly positive finite estimate", e.Value())
	}
}

func TestEstimatePitmanIsRepeatable(t *testing.T) {
	// Estimators are pure functions of their inputs: re-running must return
	// the bit-identical result and leave the histogram untouched.
	hist := mustHistogram(t, map[int]int64{1: 5, 2: 1, 10: 1})
	pop := mustPopulation(t, 0.05)
	first, err := EstimatePitman(context.Background(), hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimatePitman: %v", err)
	}
	second, err := EstimatePitman(context.Background(), hist, pop, nil)
	if err != nil {
		t.Fatalf("EstimatePitman: %v", err)
	}
	if first != second {
		t.Errorf("EstimatePitman: got %v then %v for identical inputs", first, second)
	}
	if got, want := hist.SampleSize(), int64(17); got != want {
		t.Errorf("EstimatePitman: histogram sample size changed to %d, want %d", got, want)
	}
}

func TestEstimateSNBWithoutDoubletons(t *testing.T) {
	// Without doubleton classes the second moment equation carries no
	// information and the model cannot be fitted.
	hist := mustHistogram(t, map[int]int64{1: 5, 3: 2})
	e, err := EstimateSNB(context.Background(), hist, mustPopulation(t, 0.5), nil)
	if err != nil {
		t.Fatalf("EstimateSNB: %v", err)
	}
	if e.Valid() {
		t.Errorf("EstimateSNB: got %v for a histogram without doubletons, want invalid", e)
	}
}

func TestEstimateSNBNonNegative(t *testing.T) {
	for _, classes := range []map[int]int64{
		{1: 4, 2: 3},
		{1: 10, 2: 5, 3: 2},
		{1: 1, 2: 1, 4: 2, 8: 1},
	} {
		hist := mustHistogram(t, classes)
		e, err := EstimateSNB(context.Background(), hist, mustPopulation(t, 0.5), nil)
		if err != nil {
			t.Fatalf("EstimateSNB: %v", err)
		}
		if e.Valid() && (e.Value() < 0 || math.IsInf(e.Value(), 0)) {
			t.Errorf("EstimateSNB: got %v for %v, want a nonnegative finite value", e.Value(), classes)
		}
	}
}
