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

package analysis

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loginsim/record"
	"loginsim/sink"
)

// addEpisode inserts numGuesses attacker attempts spaced one second
// from the trigger plus the matching episode record.
func addEpisode(runLog *sink.RunLog, rnd *rand.Rand, start time.Time, numGuesses int) {
	ep := record.NewAttackEpisode(start, rnd)
	ep.SourceIPs = []string{"203.0.113.66"}
	for i := 0; i < numGuesses; i++ {
		username := fmt.Sprintf("user%d", i)
		ep.Targets = append(ep.Targets, record.TargetOutcome{
			Username:         username,
			ObservedUsername: username,
			SourceIP:         ep.SourceIPs[0],
		})
		when := start.Add(time.Duration(i) * time.Second)
		runLog.AddAttempt(record.NewLoginAttempt(when, ep.SourceIPs[0], username, false, true))
	}
	runLog.AddEpisode(ep)
}

func TestRecoverEpisodesSeparatedAttacks(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	runLog := sink.NewRunLog()
	base := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	addEpisode(runLog, rnd, base, 5)
	addEpisode(runLog, rnd, base.Add(2*time.Hour), 4)
	addEpisode(runLog, rnd, base.Add(5*time.Hour), 3)
	// some legitimate noise which must not affect the report
	runLog.AddAttempt(record.NewLoginAttempt(base.Add(time.Hour), "203.0.113.1", "asmith", true, false))

	report := RecoverEpisodes(runLog, Conf{MinClusterSize: 2, ClusterWindowSecs: 60})
	assert.Equal(t, 3, report.GeneratedEpisodes)
	assert.Equal(t, 3, report.RecoveredClusters)
	assert.Equal(t, 12, report.AttackerAttempts)
	assert.Equal(t, 1, report.DistinctAttackerIPs)
}

func TestRecoverEpisodesBlendedAttacks(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	runLog := sink.NewRunLog()
	base := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	addEpisode(runLog, rnd, base, 4)
	addEpisode(runLog, rnd, base.Add(30*time.Second), 4)

	report := RecoverEpisodes(runLog, Conf{MinClusterSize: 2, ClusterWindowSecs: 60})
	assert.Equal(t, 2, report.GeneratedEpisodes)
	assert.Equal(t, 1, report.RecoveredClusters)
}

func TestRecoverEpisodesNoAttackers(t *testing.T) {
	runLog := sink.NewRunLog()
	base := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	runLog.AddAttempt(record.NewLoginAttempt(base, "203.0.113.1", "asmith", true, false))

	report := RecoverEpisodes(runLog, Conf{})
	assert.Equal(t, 0, report.GeneratedEpisodes)
	assert.Equal(t, 0, report.RecoveredClusters)
	assert.Equal(t, 0, report.AttackerAttempts)
	assert.Equal(t, 0, report.DistinctAttackerIPs)
}
