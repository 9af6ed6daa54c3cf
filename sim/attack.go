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
	"math/rand"
	"time"

	"loginsim/ipgen"
	"loginsim/record"
	"loginsim/users"
)

// AttackModel produces attack episodes - complete sequences of
// guesses one hacker makes against a chosen subset of usernames.
// Hackers are stateless: nothing survives between two episodes and
// no episode influences another one.
type AttackModel struct {
	rnd             *rand.Rand
	users           *users.UserBase
	outcome         *OutcomeModel
	tryAllUsersProb float64
	varyIPs         bool
}

// pickTargets selects a non-repeating, non-empty subset of the known
// usernames in a random order. With tryAllUsersProb the subset is the
// whole userbase; otherwise its size is drawn uniformly from 1..N.
func (am *AttackModel) pickTargets() []string {
	names := am.users.Usernames()
	size := len(names)
	if am.rnd.Float64() >= am.tryAllUsersProb {
		size = 1 + am.rnd.Intn(len(names))
	}
	perm := am.rnd.Perm(len(names))
	targets := make([]string, size)
	for i := 0; i < size; i++ {
		targets[i] = names[perm[i]]
	}
	return targets
}

// RunEpisode generates one attack episode triggered at the provided
// simulated time. The guesses are scripted, not Poisson-spaced: guess
// i carries the timestamp start + i seconds (the simulated site
// applies no rate limiting). The produced attempt records are the
// only ones carrying the attacker flag.
func (am *AttackModel) RunEpisode(start time.Time) (*record.AttackEpisode, []*record.LoginAttempt, error) {
	episode := record.NewAttackEpisode(start, am.rnd)
	var episodeIP string
	if !am.varyIPs {
		episodeIP = ipgen.RandomIP(am.rnd)
		episode.SourceIPs = []string{episodeIP}
	}
	targets := am.pickTargets()
	attempts := make([]*record.LoginAttempt, 0, len(targets))
	for i, username := range targets {
		if !am.users.Contains(username) {
			return nil, nil, fmt.Errorf("attack episode targets unknown username: %s", username)
		}
		sourceIP := episodeIP
		if am.varyIPs {
			sourceIP = ipgen.RandomIP(am.rnd)
			episode.SourceIPs = append(episode.SourceIPs, sourceIP)
		}
		observed, success := am.outcome.AttemptOutcome(username, RoleAttacker)
		episode.Targets = append(episode.Targets, record.TargetOutcome{
			Username:         username,
			ObservedUsername: observed,
			SourceIP:         sourceIP,
			Success:          success,
		})
		when := start.Add(time.Duration(i) * time.Second)
		attempts = append(attempts, record.NewLoginAttempt(when, sourceIP, observed, success, true))
	}
	return episode, attempts, nil
}

// NewAttackModel creates an attack model sharing the simulation's
// random source and outcome model.
func NewAttackModel(
	rnd *rand.Rand,
	userBase *users.UserBase,
	outcome *OutcomeModel,
	tryAllUsersProb float64,
	varyIPs bool,
) *AttackModel {
	return &AttackModel{
		rnd:             rnd,
		users:           userBase,
		outcome:         outcome,
		tryAllUsersProb: tryAllUsersProb,
		varyIPs:         varyIPs,
	}
}
