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

package metric

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// uniformData is an 8-row dataset over two columns. Column 0 takes each of
// its four values exactly twice, column 1 each of its two values exactly four
// times, so the entropy sums have closed forms.
var uniformData = [][]int{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
	{2, 0},
	{2, 1},
	{3, 0},
	{3, 1},
}

// uniformHierarchies generalizes column 0 pairwise at level 1 and into a
// single class at level 2, and column 1 into a single class at level 1.
var uniformHierarchies = [][][]int{
	{
		{0, 0, 0},
		{1, 0, 0},
		{2, 2, 0},
		{3, 2, 0},
	},
	{
		{0, 0},
		{1, 0},
	},
}

func approxEqual(a, b float64) bool {
	return cmp.Equal(a, b, cmpopts.EquateApprox(0, 1e-9))
}
