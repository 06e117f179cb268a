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

// Package risk provides statistical estimators for the number of
// population-unique records behind a sampled dataset, the decision rule by
// Dankar et al. for picking among them, and a memoizing facade exposing the
// results as absolute counts and population fractions.
//
// All estimators consume a precomputed equivalence-class histogram; grouping
// records into equivalence classes is the responsibility of the caller.
package risk

import "fmt"

// Model identifies one of the statistical models for population uniqueness,
// or the result of Dankar et al.'s decision rule.
type Model int

const (
	// Pitman is the two-parameter Pitman sampling formula.
	Pitman Model = iota
	// Zayatz is Zayatz's conditional estimator of population uniqueness.
	Zayatz
	// SNB is the shifted negative binomial model by Chen and McNulty.
	SNB
	// Dankar denotes the estimate picked by Dankar et al.'s decision rule,
	// not a fourth independent model.
	Dankar
)

var modelName = map[Model]string{
	Pitman: "Pitman",
	Zayatz: "Zayatz",
	SNB:    "SNB",
	Dankar: "Dankar",
}

func (m Model) String() string {
	if name, ok := modelName[m]; ok {
		return name
	}
	return fmt.Sprintf("Model(%d)", int(m))
}
