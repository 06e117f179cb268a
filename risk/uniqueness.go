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

	log "github.com/golang/glog"
)

// UniquenessRiskOptions contains the options necessary to initialize a
// UniquenessRisk.
type UniquenessRiskOptions struct {
	Histogram  *Histogram       // Equivalence-class histogram of the sample. Required.
	Population *PopulationModel // Sampling fraction of the sample. Required.
	Accuracy   float64          // Solver convergence threshold ε. Defaults to DefaultAccuracy.
	// Iteration bound for the solvers. Defaults to DefaultMaxIterations.
	MaxIterations int
	// Progress, if set, receives coarse completion percentages (0-100)
	// during eager precomputation.
	Progress func(percent int)
	// Precompute runs all models and the decision rule eagerly at
	// construction, reporting checkpoints through Progress. Without it,
	// every model is computed lazily on first access.
	Precompute bool
}

// UniquenessRisk exposes population-uniqueness estimates per model and for
// Dankar et al.'s decision rule, as absolute counts and as fractions of the
// population size. Each model is computed at most once per instance and
// memoized.
//
// Not thread-safe. Distinct instances sharing the same histogram and
// population model may be used concurrently.
type UniquenessRisk struct {
	hist *Histogram
	pop  *PopulationModel
	opt  EstimatorOptions
	ctx  context.Context

	pitman Estimate
	zayatz Estimate
	snb    Estimate

	dankar      Estimate
	dankarModel Model
	dankarDone  bool
}

// NewUniquenessRisk returns a new UniquenessRisk. The context bounds the
// lifetime of all deferred model computations: cancelling it makes any model
// that has not finished fitting yield the invalid estimate.
func NewUniquenessRisk(ctx context.Context, opt *UniquenessRiskOptions) (*UniquenessRisk, error) {
	if opt == nil {
		opt = &UniquenessRiskOptions{}
	}
	if opt.Histogram == nil {
		return nil, fmt.Errorf("NewUniquenessRisk: Histogram must be set")
	}
	if opt.Population == nil {
		return nil, fmt.Errorf("NewUniquenessRisk: Population must be set")
	}
	solverOpt, err := (&EstimatorOptions{Accuracy: opt.Accuracy, MaxIterations: opt.MaxIterations}).normalize()
	if err != nil {
		return nil, fmt.Errorf("NewUniquenessRisk: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	progress := opt.Progress
	if progress == nil {
		progress = func(int) {}
	}

	r := &UniquenessRisk{
		hist: opt.Histogram,
		pop:  opt.Population,
		opt:  solverOpt,
		ctx:  ctx,
	}

	// Without sample uniques there is nothing to extrapolate: every model is
	// exactly zero and the decision rule has nothing to decide.
	if r.hist.Count(1) == 0 {
		r.pitman = ComputedEstimate(0)
		r.zayatz = ComputedEstimate(0)
		r.snb = ComputedEstimate(0)
		r.dankar = ComputedEstimate(0)
		r.dankarModel = Dankar
		r.dankarDone = true
		progress(100)
		return r, nil
	}

	if opt.Precompute {
		r.computeZayatz()
		progress(50)
		r.computePitman()
		progress(75)
		r.computeSNB()
		r.computeDankar()
		progress(100)
	}
	return r, nil
}

// UniquenessEstimate returns the estimate of the given model, computing and
// memoizing it on first access. Requesting the Dankar estimate computes
// whichever underlying models the decision rule consults. An unknown model
// is a programming error.
func (r *UniquenessRisk) UniquenessEstimate(model Model) Estimate {
	switch model {
	case Pitman:
		return r.computePitman()
	case Zayatz:
		return r.computeZayatz()
	case SNB:
		return r.computeSNB()
	case Dankar:
		return r.computeDankar()
	}
	log.Fatalf("UniquenessEstimate: unknown model %v", model)
	return Estimate{}
}

// NumUniques returns the estimated number of population-unique records
// according to the given model, or 0 if the model's estimate is invalid.
func (r *UniquenessRisk) NumUniques(model Model) float64 {
	return r.UniquenessEstimate(model).Value()
}

// FractionOfUniques returns the estimated number of population uniques
// divided by the population size. The result is not clamped: values
// fractionally above 1 are a modeling artifact of extreme extrapolation, not
// an error. An invalid estimate yields 0.
func (r *UniquenessRisk) FractionOfUniques(model Model) float64 {
	e := r.UniquenessEstimate(model)
	if !e.Valid() {
		return 0
	}
	return e.Value() / r.pop.PopulationSize(r.hist.SampleSize())
}

// DankarModel returns the model picked by the decision rule, computing it if
// necessary. For a sample without size-1 classes this is Dankar itself,
// meaning no underlying model was consulted.
func (r *UniquenessRisk) DankarModel() Model {
	r.computeDankar()
	return r.dankarModel
}

func (r *UniquenessRisk) computePitman() Estimate {
	if r.pitman.state == uncomputed {
		e, err := EstimatePitman(r.ctx, r.hist, r.pop, &r.opt)
		if err != nil {
			log.Fatalf("computePitman: inputs were validated at construction: %v", err)
		}
		r.pitman = e
	}
	return r.pitman
}

func (r *UniquenessRisk) computeZayatz() Estimate {
	if r.zayatz.state == uncomputed {
		e, err := EstimateZayatz(r.ctx, r.hist, r.pop)
		if err != nil {
			log.Fatalf("computeZayatz: inputs were validated at construction: %v", err)
		}
		r.zayatz = e
	}
	return r.zayatz
}

func (r *UniquenessRisk) computeSNB() Estimate {
	if r.snb.state == uncomputed {
		e, err := EstimateSNB(r.ctx, r.hist, r.pop, &r.opt)
		if err != nil {
			log.Fatalf("computeSNB: inputs were validated at construction: %v", err)
		}
		r.snb = e
	}
	return r.snb
}

func (r *UniquenessRisk) computeDankar() Estimate {
	if !r.dankarDone {
		r.dankar, r.dankarModel = selectDankar(r.pop.SamplingFraction(),
			r.computePitman, r.computeZayatz, r.computeSNB)
		r.dankarDone = true
	}
	return r.dankar
}
