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

// Package sink accumulates the records produced by a simulation run
// and exports them once the run completes. Nothing here is touched
// concurrently - one run owns one RunLog.
package sink

import (
	"sort"

	"loginsim/record"
)

// RunLog holds the two append-only record streams of a single run:
// the login attempt log and the attack episode log.
type RunLog struct {
	Attempts []*record.LoginAttempt
	Episodes []*record.AttackEpisode
}

// AddAttempt appends a login attempt record.
func (rl *RunLog) AddAttempt(rec *record.LoginAttempt) {
	rl.Attempts = append(rl.Attempts, rec)
}

// AddEpisode appends an attack episode record.
func (rl *RunLog) AddEpisode(ep *record.AttackEpisode) {
	rl.Episodes = append(rl.Episodes, ep)
}

// SortAttempts orders the attempt log by timestamp. Attack guesses
// are spaced one second apart from their trigger so they can overtake
// later legitimate arrivals; the sort is stable, keeping the emission
// order of records sharing a timestamp.
func (rl *RunLog) SortAttempts() {
	sort.SliceStable(rl.Attempts, func(i, j int) bool {
		return rl.Attempts[i].GetTime().Before(rl.Attempts[j].GetTime())
	})
}

// NumGuesses returns the total number of attacker-originated
// attempts across all episodes.
func (rl *RunLog) NumGuesses() int {
	var ans int
	for _, ep := range rl.Episodes {
		ans += len(ep.Targets)
	}
	return ans
}

// NewRunLog creates an empty run log.
func NewRunLog() *RunLog {
	return &RunLog{
		Attempts: make([]*record.LoginAttempt, 0, 1000),
		Episodes: make([]*record.AttackEpisode, 0, 50),
	}
}
