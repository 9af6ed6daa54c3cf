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
	"fmt"
	"os"
	"strconv"

	"loginsim/record"
)

var (
	attemptHeader = []string{"datetime", "source_ip", "username", "success", "attacker"}
	episodeHeader = []string{"episode_id", "start", "source_ip", "username", "observed_username", "success"}
)

// WriteAttemptsCSV exports the login attempt log, one row per
// attempt, in the order the records come in (a finished run hands
// them over time-sorted).
func WriteAttemptsCSV(path string, attempts []*record.LoginAttempt) error {
	fw, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create attempt log file: %w", err)
	}
	defer fw.Close()
	cw := csv.NewWriter(fw)
	if err := cw.Write(attemptHeader); err != nil {
		return err
	}
	for _, rec := range attempts {
		row := []string{
			rec.Datetime,
			rec.SourceIP,
			rec.Username,
			strconv.FormatBool(rec.Success),
			strconv.FormatBool(rec.Attacker),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEpisodesCSV exports the attack log, one row per targeted
// username, grouped by episode in emission order.
func WriteEpisodesCSV(path string, episodes []*record.AttackEpisode) error {
	fw, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create attack log file: %w", err)
	}
	defer fw.Close()
	cw := csv.NewWriter(fw)
	if err := cw.Write(episodeHeader); err != nil {
		return err
	}
	for _, ep := range episodes {
		for _, target := range ep.Targets {
			row := []string{
				ep.ID,
				ep.Start,
				target.SourceIP,
				target.Username,
				target.ObservedUsername,
				strconv.FormatBool(target.Success),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
