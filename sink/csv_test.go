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

package sink

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loginsim/record"
)

func readCSV(t *testing.T, path string) [][]string {
	fr, err := os.Open(path)
	assert.NoError(t, err)
	defer fr.Close()
	rows, err := csv.NewReader(fr).ReadAll()
	assert.NoError(t, err)
	return rows
}

func TestWriteAttemptsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attempts.csv")
	when := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	attempts := []*record.LoginAttempt{
		record.NewLoginAttempt(when, "203.0.113.1", "asmith", true, false),
		record.NewLoginAttempt(when.Add(time.Minute), "203.0.113.2", "admin", false, true),
	}
	assert.NoError(t, WriteAttemptsCSV(path, attempts))
	rows := readCSV(t, path)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t, []string{"datetime", "source_ip", "username", "success", "attacker"}, rows[0])
	assert.Equal(t, []string{"2024-03-06T10:00:00+00:00", "203.0.113.1", "asmith", "true", "false"}, rows[1])
	assert.Equal(t, []string{"2024-03-06T10:01:00+00:00", "203.0.113.2", "admin", "false", "true"}, rows[2])
}

func TestWriteAttemptsCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attempts.csv")
	assert.NoError(t, WriteAttemptsCSV(path, []*record.LoginAttempt{}))
	rows := readCSV(t, path)
	assert.Equal(t, 1, len(rows))
}

func TestWriteEpisodesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attacks.csv")
	when := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	rnd := rand.New(rand.NewSource(1))
	ep := record.NewAttackEpisode(when, rnd)
	ep.SourceIPs = []string{"203.0.113.9"}
	ep.Targets = []record.TargetOutcome{
		{Username: "asmith", ObservedUsername: "asmith", SourceIP: "203.0.113.9", Success: false},
		{Username: "admin", ObservedUsername: "admn", SourceIP: "203.0.113.9", Success: true},
	}
	assert.NoError(t, WriteEpisodesCSV(path, []*record.AttackEpisode{ep}))
	rows := readCSV(t, path)
	assert.Equal(t, 3, len(rows))
	assert.Equal(t,
		[]string{"episode_id", "start", "source_ip", "username", "observed_username", "success"},
		rows[0])
	assert.Equal(t,
		[]string{ep.ID, "2024-03-06T10:00:00+00:00", "203.0.113.9", "asmith", "asmith", "false"},
		rows[1])
	assert.Equal(t,
		[]string{ep.ID, "2024-03-06T10:00:00+00:00", "203.0.113.9", "admin", "admn", "true"},
		rows[2])
}

func TestSortAttemptsIsStable(t *testing.T) {
	runLog := NewRunLog()
	when := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	later := record.NewLoginAttempt(when.Add(5*time.Second), "203.0.113.3", "ckim", true, false)
	first := record.NewLoginAttempt(when, "203.0.113.1", "asmith", true, false)
	second := record.NewLoginAttempt(when, "203.0.113.2", "bjones", true, false)
	runLog.AddAttempt(later)
	runLog.AddAttempt(first)
	runLog.AddAttempt(second)
	runLog.SortAttempts()
	assert.Equal(t, first.ID, runLog.Attempts[0].ID)
	assert.Equal(t, second.ID, runLog.Attempts[1].ID)
	assert.Equal(t, later.ID, runLog.Attempts[2].ID)
}

func TestRunLogCounters(t *testing.T) {
	runLog := NewRunLog()
	when := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	runLog.AddAttempt(record.NewLoginAttempt(when, "203.0.113.1", "asmith", true, false))
	rnd := rand.New(rand.NewSource(1))
	ep := record.NewAttackEpisode(when, rnd)
	ep.Targets = []record.TargetOutcome{
		{Username: "asmith"}, {Username: "admin"},
	}
	runLog.AddEpisode(ep)
	assert.Equal(t, 1, len(runLog.Attempts))
	assert.Equal(t, 1, len(runLog.Episodes))
	assert.Equal(t, 2, runLog.NumGuesses())
}
