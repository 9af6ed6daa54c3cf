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

// Package sim implements the event-generation core: the time-varying
// arrival rate model, the credential outcome model, the hacker attack
// model and the simulation clock interleaving legitimate and attacker
// traffic over a configured time window.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"loginsim/record"
	"loginsim/sink"
	"loginsim/users"
)

// Simulator drives simulated time from the configured start to the
// configured end and dispatches to the attack and outcome models.
// Legitimate arrivals form a Poisson process with the rate
// re-evaluated at each step; the attack trigger is a Bernoulli trial
// coupled to the arrival ticks (not a second Poisson clock).
type Simulator struct {
	conf    *Conf
	rates   *ArrivalRateTable
	users   *users.UserBase
	rnd     *rand.Rand
	outcome *OutcomeModel
	attacks *AttackModel
}

// validUserAttempt emits a single legitimate login attempt at the
// provided simulated time: a random known user logs in from one of
// their assigned addresses.
func (s *Simulator) validUserAttempt(when time.Time, runLog *sink.RunLog) {
	names := s.users.Usernames()
	usr, _ := s.users.Get(names[s.rnd.Intn(len(names))])
	sourceIP := usr.IPs[s.rnd.Intn(len(usr.IPs))]
	observed, success := s.outcome.AttemptOutcome(usr.Name, RoleValidUser)
	runLog.AddAttempt(record.NewLoginAttempt(when, sourceIP, observed, success, false))
}

// attackTrial runs the per-tick attack Bernoulli and, when it fires,
// generates a full episode starting at the provided time.
func (s *Simulator) attackTrial(when time.Time, runLog *sink.RunLog) error {
	if s.rnd.Float64() >= s.conf.AttackProb {
		return nil
	}
	episode, attempts, err := s.attacks.RunEpisode(when)
	if err != nil {
		return err
	}
	for _, rec := range attempts {
		runLog.AddAttempt(rec)
	}
	runLog.AddEpisode(episode)
	return nil
}

// Run performs a complete synchronous simulation pass and returns
// the run log it owns. The attempt log is time-sorted before it is
// returned (episode guesses are spaced past their trigger and may
// interleave with later legitimate arrivals); on a shared timestamp
// the emission order survives.
func (s *Simulator) Run() (*sink.RunLog, error) {
	runLog := sink.NewRunLog()
	t := s.conf.StartTime()
	end := s.conf.EndTime()
	for {
		lambda := s.rates.RateAt(t)
		if lambda > 0 {
			gap := time.Duration(s.rnd.ExpFloat64() / lambda * float64(time.Hour))
			t = t.Add(gap)
			if !t.Before(end) {
				break
			}
			s.validUserAttempt(t, runLog)
			if err := s.attackTrial(t, runLog); err != nil {
				return nil, err
			}

		} else {
			// no legitimate traffic expected in this slot; the slot
			// itself still counts as one tick for the attack trigger
			if err := s.attackTrial(t, runLog); err != nil {
				return nil, err
			}
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
			if !t.Before(end) {
				break
			}
		}
	}
	runLog.SortAttempts()
	log.Info().
		Int("attempts", len(runLog.Attempts)).
		Int("episodes", len(runLog.Episodes)).
		Int("guesses", runLog.NumGuesses()).
		Msg("simulation finished")
	return runLog, nil
}

// NewSimulator creates a ready-to-run simulator instance. The conf
// must be validated by the caller; the userbase must be non-empty
// and each user must have at least one assigned address.
func NewSimulator(conf *Conf, rates *ArrivalRateTable, userBase *users.UserBase) (*Simulator, error) {
	if userBase.Size() == 0 {
		return nil, fmt.Errorf("cannot simulate over an empty userbase")
	}
	for _, name := range userBase.Usernames() {
		usr, _ := userBase.Get(name)
		if len(usr.IPs) == 0 {
			return nil, fmt.Errorf("user %s has no assigned IP address", name)
		}
	}
	var seed int64
	if conf.Seed != nil {
		seed = *conf.Seed

	} else {
		seed = time.Now().UnixNano()
		log.Warn().Msg("simulation.seed not specified, the run will not be reproducible")
	}
	rnd := rand.New(rand.NewSource(seed))
	outcome := NewOutcomeModel(rnd, *conf.ValidUser, *conf.Attacker)
	return &Simulator{
		conf:    conf,
		rates:   rates,
		users:   userBase,
		rnd:     rnd,
		outcome: outcome,
		attacks: NewAttackModel(rnd, userBase, outcome, conf.TryAllUsersProb, conf.VaryIPs),
	}, nil
}
