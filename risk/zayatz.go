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
)

// EstimateZayatz estimates the number of population-unique records with
// Zayatz's conditional estimator (Zayatz, 1991): the number of sample
// uniques multiplied by the probability that a sample unique is also unique
// in the population,
//
//	c₁ · P(F=1 | f=1),
//
// where the prior over population class sizes is approximated by the
// observed sample class-size distribution and the sampling probabilities are
// hypergeometric, evaluated in log space. The estimator has no free
// parameters to fit, which makes it the structurally valid fallback of
// Dankar et al.'s decision rule; it is invalid only when cancelled
// mid-computation.
func EstimateZayatz(ctx context.Context, hist *Histogram, pop *PopulationModel) (Estimate, error) {
	if err := checkEstimatorInput("EstimateZayatz", hist, pop); err != nil {
		return Estimate{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c1 := hist.Count(1)
	if c1 == 0 {
		return ComputedEstimate(0), nil
	}

	n := float64(hist.SampleSize())
	k := float64(hist.NumClasses())
	populationSize := pop.PopulationSize(hist.SampleSize())

	logTotal := logChoose(populationSize, n)
	var numerator, denominator float64
	for i, size := range hist.sizes {
		if ctx.Err() != nil {
			return InvalidEstimate(), nil
		}
		// A class of this size cannot produce a sample unique if the
		// remaining population is too small to fill the rest of the sample.
		if populationSize-float64(size) < n-1 {
			continue
		}
		weight := float64(hist.counts[i]) / k * float64(size) *
			math.Exp(logChoose(populationSize-float64(size), n-1)-logTotal)
		denominator += weight
		if size == 1 {
			numerator = weight
		}
	}
	if denominator == 0 {
		return InvalidEstimate(), nil
	}
	return ComputedEstimate(float64(c1) * numerator / denominator), nil
}
