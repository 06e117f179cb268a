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
	"math"
)

type estimateState int

const (
	uncomputed estimateState = iota
	computed
	invalid
)

// Estimate is the result of fitting a uniqueness model. It is either a
// computed nonnegative number of population uniques, or invalid, meaning the
// model's assumptions were violated or its solver did not converge. The zero
// value represents an estimate that has not been computed yet.
type Estimate struct {
	state estimateState
	value float64
}

// ComputedEstimate returns a successfully computed estimate. A NaN or
// negative value indicates a failed fit and yields an invalid estimate
// instead.
func ComputedEstimate(value float64) Estimate {
	if math.IsNaN(value) || value < 0 {
		return InvalidEstimate()
	}
	return Estimate{state: computed, value: value}
}

// InvalidEstimate returns the estimate representing a failed model fit.
func InvalidEstimate() Estimate {
	return Estimate{state: invalid}
}

// Valid reports whether the estimate was successfully computed.
func (e Estimate) Valid() bool {
	return e.state == computed
}

// Value returns the estimated number of population uniques, or 0 if the
// estimate is invalid or has not been computed.
func (e Estimate) Value() float64 {
	if e.state != computed {
		return 0
	}
	return e.value
}

// raw returns the computed value, or NaN if the estimate is invalid or has
// not been computed. The decision rule compares raw values so that an
// invalid estimate never wins a minimum.
func (e Estimate) raw() float64 {
	if e.state != computed {
		return math.NaN()
	}
	return e.value
}

func (e Estimate) String() string {
	switch e.state {
	case computed:
		return fmt.Sprintf("Estimate(%g)", e.value)
	case invalid:
		return "Estimate(invalid)"
	}
	return "Estimate(uncomputed)"
}
