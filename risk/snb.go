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
	"fmt"
	"math"
)

const (
	snbDomainMargin = 1e-9
	snbMaxShape     = 1e12
)

// EstimateSNB estimates the number of population-unique records under the
// shifted negative binomial model (Chen and McNulty, 1998): population
// equivalence-class sizes are modeled as 1 + NB(r, p), and the parameters
// are fitted by a damped Newton iteration matching the expected fractions of
// singleton and doubleton classes in the sample, expressed through the
// model's probability generating function at z = 1−π. The estimated number
// of uniques is the estimated number of population classes times the fitted
// P(F=1).
//
// The estimate is invalid if the iteration does not converge within
// MaxIterations, if the fitted parameters leave the admissible region
// (r > 0, 0 < p < 1), or if the sample contains no doubleton classes, which
// leaves the second moment equation without information. The context is
// polled once per iteration.
func EstimateSNB(ctx context.Context, hist *Histogram, pop *PopulationModel, opt *EstimatorOptions) (Estimate, error) {
	if err := checkEstimatorInput("EstimateSNB", hist, pop); err != nil {
		return Estimate{}, err
	}
	norm, err := opt.normalize()
	if err != nil {
		return Estimate{}, fmt.Errorf("EstimateSNB: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if hist.Count(1) == 0 {
		return ComputedEstimate(0), nil
	}
	if hist.Count(2) == 0 {
		return InvalidEstimate(), nil
	}

	n := float64(hist.SampleSize())
	k := float64(hist.NumClasses())
	fraction := pop.SamplingFraction()
	solver := snbSolver{
		fraction: fraction,
		target1:  float64(hist.Count(1)) / k,
		target2:  float64(hist.Count(2)) / k,
	}

	// Starting point: a geometric tail (r = 1) with p matched to the mean
	// population class size implied by scaling the sample mean by 1/π.
	mean := n / k / fraction
	r := 1.0
	p := math.Min(math.Max(1/mean, 1e-6), 1-1e-6)
	for iter := 0; iter < norm.MaxIterations; iter++ {
		if ctx.Err() != nil {
			return InvalidEstimate(), nil
		}
		e1, e2 := solver.residual(r, p)
		j11, j12, j21, j22 := solver.jacobian(r, p)
		det := j11*j22 - j12*j21
		if det == 0 || math.IsNaN(det) {
			return InvalidEstimate(), nil
		}
		dr := -(j22*e1 - j12*e2) / det
		dp := -(j11*e2 - j21*e1) / det
		if math.IsNaN(dr) || math.IsNaN(dp) {
			return InvalidEstimate(), nil
		}
		step := 1.0
		nextR, nextP := r+dr, p+dp
		for !snbAdmissible(nextR, nextP) {
			step /= 2
			if step < 1e-16 {
				return InvalidEstimate(), nil
			}
			nextR = r + step*dr
			nextP = p + step*dp
		}
		r, p = nextR, nextP
		// As in the Pitman solver, convergence is judged on the undamped
		// step.
		if math.Abs(dr) < norm.Accuracy && math.Abs(dp) < norm.Accuracy {
			g, _, _ := snbGeneratingFunction(1-fraction, r, p)
			unobserved := 1 - g
			if unobserved <= 0 {
				return InvalidEstimate(), nil
			}
			uniques := k * math.Pow(p, r) / unobserved
			return ComputedEstimate(uniques), nil
		}
	}
	return InvalidEstimate(), nil
}

func snbAdmissible(r, p float64) bool {
	return r > snbDomainMargin && r < snbMaxShape &&
		p > snbDomainMargin && p < 1-snbDomainMargin
}

type snbSolver struct {
	fraction float64
	target1  float64
	target2  float64
}

// residual evaluates the two moment equations at (r, p): the expected
// fractions of observed classes that are singletons and doubletons in the
// sample, minus the observed fractions.
func (s snbSolver) residual(r, p float64) (e1, e2 float64) {
	z := 1 - s.fraction
	g, g1, g2 := snbGeneratingFunction(z, r, p)
	observed := 1 - g
	e1 = s.fraction*g1/observed - s.target1
	e2 = 0.5*s.fraction*s.fraction*g2/observed - s.target2
	return e1, e2
}

// jacobian approximates the partial derivatives of the residuals by central
// differences, with step sizes kept inside the parameter domain.
func (s snbSolver) jacobian(r, p float64) (j11, j12, j21, j22 float64) {
	hr := 1e-6 * math.Max(1, math.Abs(r))
	hp := math.Min(1e-6, math.Min(p, 1-p)/2)
	e1rPlus, e2rPlus := s.residual(r+hr, p)
	e1rMinus, e2rMinus := s.residual(r-hr, p)
	e1pPlus, e2pPlus := s.residual(r, p+hp)
	e1pMinus, e2pMinus := s.residual(r, p-hp)
	j11 = (e1rPlus - e1rMinus) / (2 * hr)
	j21 = (e2rPlus - e2rMinus) / (2 * hr)
	j12 = (e1pPlus - e1pMinus) / (2 * hp)
	j22 = (e2pPlus - e2pMinus) / (2 * hp)
	return j11, j12, j21, j22
}

// snbGeneratingFunction returns the probability generating function
// G(z) = z·(p/(1−(1−p)z))^r of the shifted negative binomial distribution
// together with its first two derivatives in z.
func snbGeneratingFunction(z, r, p float64) (g, g1, g2 float64) {
	u := p / (1 - (1-p)*z)
	ur := math.Pow(u, r)
	c := (1 - p) / p
	g = z * ur
	g1 = ur + z*r*ur*u*c
	g2 = c * r * (2*ur*u + z*(r+1)*ur*u*u*c)
	return g, g1, g2
}
