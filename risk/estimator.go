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

	"github.com/privanon/reident/checks"
)

const (
	// DefaultAccuracy is the convergence threshold used by the iterative
	// solvers when no accuracy is configured.
	DefaultAccuracy = 1e-9
	// DefaultMaxIterations bounds the iterative solvers when no limit is
	// configured.
	DefaultMaxIterations = 1000
)

// EstimatorOptions contains the numeric tuning knobs shared by the iterative
// estimators.
type EstimatorOptions struct {
	// Accuracy is the convergence threshold ε: a solver is converged once
	// successive iterates differ by less than ε. Defaults to DefaultAccuracy.
	Accuracy float64
	// MaxIterations bounds the number of solver iterations. If the bound is
	// exhausted without convergence, the estimate is invalid. Defaults to
	// DefaultMaxIterations.
	MaxIterations int
}

// normalize applies defaults and validates the options. The receiver is not
// modified.
func (opt *EstimatorOptions) normalize() (EstimatorOptions, error) {
	if opt == nil {
		opt = &EstimatorOptions{}
	}
	norm := *opt
	if norm.Accuracy == 0 {
		norm.Accuracy = DefaultAccuracy
	}
	if norm.MaxIterations == 0 {
		norm.MaxIterations = DefaultMaxIterations
	}
	if err := checks.CheckAccuracy(norm.Accuracy); err != nil {
		return norm, err
	}
	if err := checks.CheckMaxIterations(norm.MaxIterations); err != nil {
		return norm, err
	}
	return norm, nil
}

func checkEstimatorInput(name string, hist *Histogram, pop *PopulationModel) error {
	if hist == nil {
		return fmt.Errorf("%s: Histogram must be set", name)
	}
	if pop == nil {
		return fmt.Errorf("%s: PopulationModel must be set", name)
	}
	return nil
}
