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

// Package checks contains checks for the numeric parameters of the risk
// estimators and the information-loss metrics.
package checks

import (
	"fmt"
	"math"
)

const (
	accuracyName      = "Accuracy"
	maxIterationsName = "MaxIterations"
	fractionName      = "SamplingFraction"
	factorName        = "GSFactor"
)

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("This should never happen. There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

// CheckAccuracy returns an error if the convergence accuracy ε is
// nonpositive, NaN or +∞.
func CheckAccuracy(accuracy float64, name ...string) error {
	accName, err := verifyName(accuracyName, name)
	if err != nil {
		return err
	}
	if accuracy <= 0 || math.IsInf(accuracy, 0) || math.IsNaN(accuracy) {
		return fmt.Errorf("%s is %f, must be strictly positive and finite", accName, accuracy)
	}
	return nil
}

// CheckMaxIterations returns an error if the iteration bound is not strictly
// positive.
func CheckMaxIterations(maxIterations int, name ...string) error {
	iterName, err := verifyName(maxIterationsName, name)
	if err != nil {
		return err
	}
	if maxIterations <= 0 {
		return fmt.Errorf("%s is %d, must be strictly positive", iterName, maxIterations)
	}
	return nil
}

// CheckSamplingFraction returns an error if the sampling fraction lies
// outside the interval (0, 1].
func CheckSamplingFraction(fraction float64, name ...string) error {
	fracName, err := verifyName(fractionName, name)
	if err != nil {
		return err
	}
	if fraction <= 0 || fraction > 1 || math.IsNaN(fraction) {
		return fmt.Errorf("%s is %f, must be in (0, 1]", fracName, fraction)
	}
	return nil
}

// CheckFactor returns an error if a weighting factor lies outside the
// interval [0, 1].
func CheckFactor(factor float64, name ...string) error {
	facName, err := verifyName(factorName, name)
	if err != nil {
		return err
	}
	if factor < 0 || factor > 1 || math.IsNaN(factor) {
		return fmt.Errorf("%s is %f, must be in [0, 1]", facName, factor)
	}
	return nil
}
