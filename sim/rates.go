// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sim

import (
	"fmt"
	"time"
)

const (
	numWeekdays  = 7
	hoursPerDay  = 24
	numRateSlots = numWeekdays * hoursPerDay
)

// RateRule declares the expected hourly arrival rate for a block of
// (weekday, hour) slots. Weekdays follow the Go convention
// (0 = Sunday, ..., 6 = Saturday). A later rule overrides earlier
// ones for the slots they share, which allows a compact
// "base schedule plus exceptions" configuration.
type RateRule struct {
	Weekdays []int   `json:"weekdays"`
	Hours    []int   `json:"hours"`
	Rate     float64 `json:"rate"`
}

// ArrivalRateTable maps each of the 168 (weekday, hour) slots to the
// expected number of legitimate logins per hour. The table is
// immutable once constructed and the lookup has no side effects.
type ArrivalRateTable struct {
	rates [numWeekdays][hoursPerDay]float64
}

// RateAt returns the arrival rate for the slot the provided
// timestamp falls into.
func (art *ArrivalRateTable) RateAt(t time.Time) float64 {
	return art.rates[int(t.Weekday())][t.Hour()]
}

// NewArrivalRateTable builds a complete table out of the provided
// rules. The construction fails if any slot remains unset, if a rule
// addresses an invalid weekday/hour or if a rate is negative. A zero
// rate is valid (no legitimate traffic expected in that slot).
func NewArrivalRateTable(rules []RateRule) (*ArrivalRateTable, error) {
	var ans ArrivalRateTable
	var covered [numWeekdays][hoursPerDay]bool
	for i, rule := range rules {
		if rule.Rate < 0 {
			return nil, fmt.Errorf("arrival rate rule %d: rate must not be negative (value: %f)", i, rule.Rate)
		}
		if len(rule.Weekdays) == 0 || len(rule.Hours) == 0 {
			return nil, fmt.Errorf("arrival rate rule %d: weekdays and hours must not be empty", i)
		}
		for _, wd := range rule.Weekdays {
			if wd < 0 || wd >= numWeekdays {
				return nil, fmt.Errorf("arrival rate rule %d: invalid weekday %d", i, wd)
			}
			for _, h := range rule.Hours {
				if h < 0 || h >= hoursPerDay {
					return nil, fmt.Errorf("arrival rate rule %d: invalid hour %d", i, h)
				}
				ans.rates[wd][h] = rule.Rate
				covered[wd][h] = true
			}
		}
	}
	for wd := 0; wd < numWeekdays; wd++ {
		for h := 0; h < hoursPerDay; h++ {
			if !covered[wd][h] {
				return nil, fmt.Errorf("incomplete arrival rate table: no rate for weekday %d, hour %d", wd, h)
			}
		}
	}
	return &ans, nil
}

// NewArrivalRateTableFromFunc builds a table by evaluating the
// provided function for each of the 168 slots (this is how Lua rate
// profiles are imported). Negative values are rejected.
func NewArrivalRateTableFromFunc(fn func(weekday, hour int) (float64, error)) (*ArrivalRateTable, error) {
	var ans ArrivalRateTable
	for wd := 0; wd < numWeekdays; wd++ {
		for h := 0; h < hoursPerDay; h++ {
			rate, err := fn(wd, h)
			if err != nil {
				return nil, err
			}
			if rate < 0 {
				return nil, fmt.Errorf("arrival rate for weekday %d, hour %d must not be negative (value: %f)", wd, h, rate)
			}
			ans.rates[wd][h] = rate
		}
	}
	return &ans, nil
}
