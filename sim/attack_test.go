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
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loginsim/users"
)

func testUserBase() *users.UserBase {
	return users.FromMap(map[string]*users.User{
		"asmith": {Name: "asmith", Password: "pwd1", IPs: []string{"203.0.113.10"}},
		"bjones": {Name: "bjones", Password: "pwd2", IPs: []string{"203.0.113.11", "203.0.113.12"}},
		"ckim":   {Name: "ckim", Password: "pwd3", IPs: []string{"203.0.113.13"}},
		"dlopez": {Name: "dlopez", Password: "pwd4", IPs: []string{"203.0.113.14"}},
	})
}

func testAttackModel(seed int64, tryAllUsersProb float64, varyIPs bool) *AttackModel {
	rnd := rand.New(rand.NewSource(seed))
	outcome := NewOutcomeModel(
		rnd,
		RoleConf{SuccessProb: 1, TypoProb: 0},
		RoleConf{SuccessProb: 0.5, TypoProb: 0},
	)
	return NewAttackModel(rnd, testUserBase(), outcome, tryAllUsersProb, varyIPs)
}

func TestPickTargetsWholeUserbase(t *testing.T) {
	am := testAttackModel(1, 1, false)
	for i := 0; i < 20; i++ {
		targets := am.pickTargets()
		assert.Equal(t, 4, len(targets))
	}
}

func TestPickTargetsSubsetBoundsAndUniqueness(t *testing.T) {
	am := testAttackModel(1, 0, false)
	for i := 0; i < 100; i++ {
		targets := am.pickTargets()
		assert.True(t, len(targets) >= 1 && len(targets) <= 4)
		seen := make(map[string]bool)
		for _, name := range targets {
			assert.False(t, seen[name])
			seen[name] = true
		}
	}
}

func TestRunEpisodeFixedIP(t *testing.T) {
	am := testAttackModel(2, 1, false)
	start := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	episode, attempts, err := am.RunEpisode(start)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(episode.SourceIPs))
	for _, rec := range attempts {
		assert.Equal(t, episode.SourceIPs[0], rec.SourceIP)
	}
}

func TestRunEpisodeVariedIPs(t *testing.T) {
	am := testAttackModel(2, 1, true)
	start := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	episode, attempts, err := am.RunEpisode(start)
	assert.NoError(t, err)
	assert.Equal(t, len(episode.Targets), len(episode.SourceIPs))
	for i, rec := range attempts {
		assert.Equal(t, episode.SourceIPs[i], rec.SourceIP)
	}
}

func TestRunEpisodeAttemptsMatchTargets(t *testing.T) {
	am := testAttackModel(3, 1, false)
	start := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	episode, attempts, err := am.RunEpisode(start)
	assert.NoError(t, err)
	assert.Equal(t, len(episode.Targets), len(attempts))
	for i, target := range episode.Targets {
		assert.Equal(t, target.ObservedUsername, attempts[i].Username)
		assert.Equal(t, target.Success, attempts[i].Success)
		assert.True(t, attempts[i].Attacker)
		assert.Equal(t, start.Add(time.Duration(i)*time.Second), attempts[i].GetTime())
	}
}

func TestRunEpisodeGuessesSpacedOneSecond(t *testing.T) {
	am := testAttackModel(5, 1, false)
	start := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	_, attempts, err := am.RunEpisode(start)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(attempts))
	for i, rec := range attempts {
		assert.Equal(t, start.Add(time.Duration(i)*time.Second), rec.GetTime())
	}
}

func TestRunEpisodeAttemptIDsUnique(t *testing.T) {
	// "aab" with a deleted char and "ab" left untouched by
	// a lowercase mutation produce the same observed username from
	// one IP; the per-guess timestamps must still keep IDs apart
	ub := users.FromMap(map[string]*users.User{
		"aab": {Name: "aab", Password: "x", IPs: []string{"203.0.113.1"}},
		"ab":  {Name: "ab", Password: "x", IPs: []string{"203.0.113.2"}},
	})
	start := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	for seed := int64(0); seed < 50; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		outcome := NewOutcomeModel(
			rnd,
			RoleConf{SuccessProb: 1, TypoProb: 0},
			RoleConf{SuccessProb: 0, TypoProb: 1},
		)
		am := NewAttackModel(rnd, ub, outcome, 1, false)
		_, attempts, err := am.RunEpisode(start)
		assert.NoError(t, err)
		seen := make(map[string]bool)
		for _, rec := range attempts {
			assert.False(t, seen[rec.ID])
			seen[rec.ID] = true
		}
	}
}

func TestRunEpisodeHasUniqueID(t *testing.T) {
	am := testAttackModel(4, 1, false)
	start := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	ep1, _, err := am.RunEpisode(start)
	assert.NoError(t, err)
	ep2, _, err := am.RunEpisode(start)
	assert.NoError(t, err)
	assert.NotEmpty(t, ep1.ID)
	assert.NotEqual(t, ep1.ID, ep2.ID)
}
