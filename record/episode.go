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

package record

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// TargetOutcome is a per-username result of a single attack episode.
type TargetOutcome struct {
	// Username is the targeted account as known in the userbase
	Username string `json:"username"`

	// ObservedUsername is the username the attacker actually typed
	// (possibly a typo'd variant of Username)
	ObservedUsername string `json:"observedUsername"`

	SourceIP string `json:"sourceIp"`
	Success  bool   `json:"success"`
}

// AttackEpisode groups all guesses one hacker made during a single
// attack trigger. The constituent LoginAttempt records carry the
// attacker flag and this is the only way an attacker-flagged attempt
// can come to existence.
type AttackEpisode struct {
	ID    string `json:"id"`
	Start string `json:"start"`
	start time.Time

	// SourceIPs contains a single address when the hacker kept one
	// IP for the whole episode and one address per guess otherwise.
	SourceIPs []string `json:"sourceIps"`

	// Targets keeps the attacked usernames in the order the guesses
	// were issued. The list never contains a username twice.
	Targets []TargetOutcome `json:"targets"`
}

// ToJSON converts self to JSON string
func (ep *AttackEpisode) ToJSON() ([]byte, error) {
	return json.Marshal(ep)
}

// GetTime returns the episode trigger time.
func (ep *AttackEpisode) GetTime() time.Time {
	return ep.start
}

// NewAttackEpisode creates an empty episode record starting at the
// provided (simulated) time. The episode ID is drawn from the passed
// rand source so a seeded run produces identical identifiers on
// replay.
func NewAttackEpisode(start time.Time, rnd *rand.Rand) *AttackEpisode {
	id, err := uuid.NewRandomFromReader(rnd)
	if err != nil {
		// the rand source never fails to produce bytes
		panic(err)
	}
	return &AttackEpisode{
		ID:    id.String(),
		Start: start.Format(DatetimeFormat),
		start: start,
	}
}
