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
	"sort"
	"strconv"
	"strings"
)

// QuasiIdentifierRisk describes how well a subset of quasi-identifying
// attributes singles records out: distinction is the fraction of distinct
// attribute combinations among all records, separation the fraction of
// record pairs that differ on the subset.
type QuasiIdentifierRisk struct {
	Attributes  []string
	Distinction float64
	Separation  float64
}

// Identifier returns the subset's attributes joined in column order, e.g.
// "[age, sex]".
func (q QuasiIdentifierRisk) Identifier() string {
	return "[" + strings.Join(q.Attributes, ", ") + "]"
}

// AttributeRisks computes distinction and separation for every non-empty
// subset of the given quasi-identifying columns. data is row-major with one
// value identifier per column; names labels the columns. Results are sorted
// by ascending distinction, then separation, then subset size, then
// identifier, so the weakest quasi-identifiers come first.
//
// The context is polled between subsets; cancellation returns the context's
// error.
func AttributeRisks(ctx context.Context, names []string, data [][]int) ([]QuasiIdentifierRisk, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("AttributeRisks: names must not be empty")
	}
	if len(names) > 30 {
		return nil, fmt.Errorf("AttributeRisks: %d columns yield too many subsets, must be at most 30", len(names))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("AttributeRisks: data must not be empty")
	}
	for row, record := range data {
		if len(record) != len(names) {
			return nil, fmt.Errorf("AttributeRisks: row %d has %d columns, want %d", row, len(record), len(names))
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows := int64(len(data))
	totalPairs := rows * (rows - 1) / 2
	risks := make([]QuasiIdentifierRisk, 0, 1<<len(names)-1)
	for mask := 1; mask < 1<<len(names); mask++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var columns []int
		var attributes []string
		for column := range names {
			if mask&(1<<column) != 0 {
				columns = append(columns, column)
				attributes = append(attributes, names[column])
			}
		}
		groups := make(map[string]int64)
		var key []byte
		for _, record := range data {
			key = key[:0]
			for _, column := range columns {
				key = strconv.AppendInt(key, int64(record[column]), 36)
				key = append(key, ',')
			}
			groups[string(key)]++
		}
		var samePairs int64
		for _, size := range groups {
			samePairs += size * (size - 1) / 2
		}
		separation := 0.0
		if totalPairs > 0 {
			separation = float64(totalPairs-samePairs) / float64(totalPairs)
		}
		risks = append(risks, QuasiIdentifierRisk{
			Attributes:  attributes,
			Distinction: float64(len(groups)) / float64(rows),
			Separation:  separation,
		})
	}

	sort.Slice(risks, func(i, j int) bool {
		a, b := risks[i], risks[j]
		if a.Distinction != b.Distinction {
			return a.Distinction < b.Distinction
		}
		if a.Separation != b.Separation {
			return a.Separation < b.Separation
		}
		if len(a.Attributes) != len(b.Attributes) {
			return len(a.Attributes) < len(b.Attributes)
		}
		return a.Identifier() < b.Identifier()
	})
	return risks, nil
}
