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

// dankarValid implements the decision rule's notion of a usable estimate:
// the invalid state is rejected, and so is an exact zero from a
// non-degenerate fit, which is treated as a mis-converged model rather than
// proof of zero risk.
func dankarValid(e Estimate) bool {
	return e.Valid() && e.Value() != 0
}

// selectDankar applies the decision rule by Dankar et al. for picking a
// uniqueness model. Estimates are supplied lazily so that only the models
// the rule consults are computed. Must only be called when the sample
// contains at least one size-1 class; the degenerate case is handled by the
// caller.
//
// For sampling fractions up to 0.1 the rule prefers Pitman and falls back to
// Zayatz. Above 0.1 it takes the smaller of Zayatz and SNB when SNB is
// usable, with ties resolved to SNB, and Zayatz otherwise.
func selectDankar(fraction float64, pitman, zayatz, snb func() Estimate) (Estimate, Model) {
	if fraction <= 0.1 {
		if e := pitman(); dankarValid(e) {
			return e, Pitman
		}
		return zayatz(), Zayatz
	}
	z := zayatz()
	s := snb()
	if dankarValid(s) {
		// An invalid Zayatz estimate compares as NaN and never wins here.
		if z.raw() < s.raw() {
			return z, Zayatz
		}
		return s, SNB
	}
	return z, Zayatz
}
