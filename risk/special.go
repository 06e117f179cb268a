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
	"math"
)

// logChoose returns ln C(a, b) for real arguments with a ≥ b ≥ 0, evaluated
// through the log-gamma function so that binomial coefficients over
// population-scale arguments do not overflow.
func logChoose(a, b float64) float64 {
	if b < 0 || a < b {
		return math.Inf(-1)
	}
	la, _ := math.Lgamma(a + 1)
	lb, _ := math.Lgamma(b + 1)
	lab, _ := math.Lgamma(a - b + 1)
	return la - lb - lab
}

// lgamma returns ln Γ(x), discarding the sign term. All arguments passed by
// the solvers are strictly positive, where Γ is positive.
func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// trigamma returns ψ₁(x), the first derivative of the digamma function, for
// x > 0. The argument is shifted into the asymptotic regime using the
// recurrence ψ₁(x) = ψ₁(x+1) + 1/x², then evaluated with the expansion
//
//	ψ₁(x) ≈ 1/x + 1/(2x²) + 1/(6x³) − 1/(30x⁵) + 1/(42x⁷) − 1/(30x⁹)
//
// which is accurate to double precision for x ≥ 6.
func trigamma(x float64) float64 {
	if math.IsNaN(x) || x <= 0 {
		return math.NaN()
	}
	var acc float64
	for x < 6 {
		acc += 1 / (x * x)
		x++
	}
	inv := 1 / x
	inv2 := inv * inv
	tail := 1.0/6.0 + inv2*(-1.0/30.0+inv2*(1.0/42.0-inv2/30.0))
	return acc + inv*(1+inv*(0.5+inv*tail))
}
