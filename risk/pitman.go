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

	"gonum.org/v1/gonum/mathext"
)

// The admissible parameter region of Pitman's sampling formula: 0 < α < 1
// and θ > −α. Iterates are kept strictly inside by a small margin.
const pitmanDomainMargin = 1e-12

// EstimatePitman estimates the number of population-unique records under the
// two-parameter Pitman sampling formula (Hoshino, 2001). The parameters
// (θ, α) are fitted to the observed equivalence-class histogram by a damped
// Newton-Raphson iteration on the likelihood equations; the estimated number
// of uniques is then
//
//	exp(ln Γ(θ+1) − ln Γ(θ+α) + α ln N)
//
// for population size N. The estimate is invalid if the iteration does not
// converge within MaxIterations, or if the fitted parameters leave the
// model's admissible region.
//
// The context is polled once per iteration; cancellation aborts the fit and
// yields an invalid estimate. A histogram without size-1 classes
// short-circuits to an estimate of exactly 0.
func EstimatePitman(ctx context.Context, hist *Histogram, pop *PopulationModel, opt *EstimatorOptions) (Estimate, error) {
	if err := checkEstimatorInput("EstimatePitman", hist, pop); err != nil {
		return Estimate{}, err
	}
	norm, err := opt.normalize()
	if err != nil {
		return Estimate{}, fmt.Errorf("EstimatePitman: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if hist.Count(1) == 0 {
		return ComputedEstimate(0), nil
	}

	solver := pitmanSolver{
		hist: hist,
		n:    float64(hist.SampleSize()),
		k:    float64(hist.NumClasses()),
	}
	populationSize := pop.PopulationSize(hist.SampleSize())

	// Starting point: θ from the one-parameter (α → 0) profile of the first
	// likelihood equation, α small.
	theta := solver.ewensTheta()
	alpha := 0.1
	for iter := 0; iter < norm.MaxIterations; iter++ {
		if ctx.Err() != nil {
			return InvalidEstimate(), nil
		}
		f1, f2, j11, j12, j22 := solver.system(theta, alpha)
		det := j11*j22 - j12*j12
		if det == 0 || math.IsNaN(det) {
			return InvalidEstimate(), nil
		}
		dTheta := -(j22*f1 - j12*f2) / det
		dAlpha := -(j11*f2 - j12*f1) / det
		if math.IsNaN(dTheta) || math.IsNaN(dAlpha) {
			return InvalidEstimate(), nil
		}
		// Damp the step until the iterate stays inside the admissible
		// region.
		step := 1.0
		nextTheta, nextAlpha := theta+dTheta, alpha+dAlpha
		for !pitmanAdmissible(nextTheta, nextAlpha) {
			step /= 2
			if step < 1e-16 {
				return InvalidEstimate(), nil
			}
			nextTheta = theta + step*dTheta
			nextAlpha = alpha + step*dAlpha
		}
		theta, alpha = nextTheta, nextAlpha
		// Convergence is judged on the undamped step so that an iterate
		// pinned against the domain boundary is not mistaken for a root.
		if math.Abs(dTheta) < norm.Accuracy && math.Abs(dAlpha) < norm.Accuracy {
			uniques := math.Exp(lgamma(theta+1) - lgamma(theta+alpha) + alpha*math.Log(populationSize))
			return ComputedEstimate(uniques), nil
		}
	}
	return InvalidEstimate(), nil
}

func pitmanAdmissible(theta, alpha float64) bool {
	return alpha > pitmanDomainMargin &&
		alpha < 1-pitmanDomainMargin &&
		theta+alpha > pitmanDomainMargin
}

type pitmanSolver struct {
	hist *Histogram
	n, k float64
}

// ewensTheta solves (K−1)/θ = ψ(θ+n) − ψ(θ+1), the α → 0 limit of the first
// likelihood equation, by bisection. Used only as a starting point, so a
// failed bracket falls back to θ = K.
func (s pitmanSolver) ewensTheta() float64 {
	g := func(theta float64) float64 {
		return (s.k-1)/theta - (mathext.Digamma(theta+s.n) - mathext.Digamma(theta+1))
	}
	lo, hi := 1e-9, 1.0
	for g(hi) > 0 {
		hi *= 2
		if hi > 1e30 {
			return s.k
		}
	}
	if g(lo) < 0 {
		return s.k
	}
	for hi-lo > 1e-12*(1+hi) {
		mid := (lo + hi) / 2
		if g(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// system evaluates the two likelihood equations of Pitman's sampling formula
// and their symmetric Jacobian at (θ, α). The sums over classes and sample
// indices are expressed as digamma and trigamma differences:
//
//	f1 = Σᵢ₌₁^{K−1} 1/(θ+iα) − Σᵢ₌₁^{n−1} 1/(θ+i)
//	f2 = Σᵢ₌₁^{K−1} i/(θ+iα) − Σ_s c_s Σₖ₌₁^{s−1} 1/(k−α)
func (s pitmanSolver) system(theta, alpha float64) (f1, f2, j11, j12, j22 float64) {
	r := theta / alpha
	s1 := (mathext.Digamma(r+s.k) - mathext.Digamma(r+1)) / alpha
	s2 := ((s.k - 1) - theta*s1) / alpha
	q1 := (trigamma(r+1) - trigamma(r+s.k)) / (alpha * alpha)
	q2 := (s1 - theta*q1) / alpha
	q3 := (s2 - theta*q2) / alpha
	h := mathext.Digamma(theta+s.n) - mathext.Digamma(theta+1)
	hp := trigamma(theta+1) - trigamma(theta+s.n)
	var t, tp float64
	for i, size := range s.hist.sizes {
		if size < 2 {
			continue
		}
		count := float64(s.hist.counts[i])
		t += count * (mathext.Digamma(float64(size)-alpha) - mathext.Digamma(1-alpha))
		tp += count * (trigamma(1-alpha) - trigamma(float64(size)-alpha))
	}
	f1 = s1 - h
	f2 = s2 - t
	j11 = hp - q1
	j12 = -q2
	j22 = -q3 - tp
	return f1, f2, j11, j12, j22
}
