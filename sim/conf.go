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

	"github.com/rs/zerolog/log"

	"loginsim/record"
)

// default outcome calibration; any value can be overridden
// via the configuration file
const (
	dfltValidUserSuccessProb = 0.95
	dfltValidUserTypoProb    = 0.01
	dfltAttackerSuccessProb  = 0.25
	dfltAttackerTypoProb     = 0.2
)

// RoleConf configures the credential outcome model for one of the
// two simulated roles (valid user, attacker).
type RoleConf struct {

	// SuccessProb is the probability a single attempt succeeds.
	// There is no real credential check behind this - it is
	// a plain Bernoulli draw.
	SuccessProb float64 `json:"successProb"`

	// TypoProb is the probability the typed username gets corrupted
	// by a single-character mistake
	TypoProb float64 `json:"typoProb"`
}

func (rc *RoleConf) validateProbs(role string) error {
	if rc.SuccessProb < 0 || rc.SuccessProb > 1 {
		return fmt.Errorf("%s.successProb must be from interval [0, 1] (value: %f)", role, rc.SuccessProb)
	}
	if rc.TypoProb < 0 || rc.TypoProb > 1 {
		return fmt.Errorf("%s.typoProb must be from interval [0, 1] (value: %f)", role, rc.TypoProb)
	}
	return nil
}

// Conf wraps all the configuration of a single simulation run.
type Conf struct {

	// Start is the first simulated instant (inclusive),
	// e.g. 2024-03-04T00:00:00+01:00
	Start string `json:"start"`

	// End is the simulation boundary (exclusive); any event which
	// would fall at or behind it is discarded and the run stops
	End string `json:"end"`

	// Seed initializes the single random source of the run. With
	// a fixed seed, two runs produce byte-identical logs. When nil,
	// a time-based seed is used (and the run is not reproducible).
	Seed *int64 `json:"seed"`

	// AttackProb is a per-tick probability a hacker attack
	// episode triggers
	AttackProb float64 `json:"attackProb"`

	// TryAllUsersProb is the probability an episode goes after
	// every known username (as opposed to a random subset)
	TryAllUsersProb float64 `json:"tryAllUsersProb"`

	// VaryIPs makes the hacker generate a fresh source address for
	// each guess; otherwise one address serves the whole episode
	VaryIPs bool `json:"varyIps"`

	ValidUser *RoleConf `json:"validUser"`
	Attacker  *RoleConf `json:"attacker"`

	start time.Time
	end   time.Time
}

// StartTime returns the parsed simulation start. It is valid only
// after a successful Validate() call.
func (c *Conf) StartTime() time.Time {
	return c.start
}

// EndTime returns the parsed simulation end. It is valid only
// after a successful Validate() call.
func (c *Conf) EndTime() time.Time {
	return c.end
}

// Validate checks the time window and all the probabilities and
// fills in the default outcome calibration where no override is
// provided. Once the function returns nil, the time accessors can
// be used freely.
func (c *Conf) Validate() error {
	var err error
	c.start, err = time.Parse(record.DatetimeFormat, c.Start)
	if err != nil {
		return fmt.Errorf("failed to parse simulation.start: %w", err)
	}
	c.end, err = time.Parse(record.DatetimeFormat, c.End)
	if err != nil {
		return fmt.Errorf("failed to parse simulation.end: %w", err)
	}
	if !c.end.After(c.start) {
		return fmt.Errorf("simulation.end must follow simulation.start (start: %s, end: %s)", c.Start, c.End)
	}
	if c.AttackProb < 0 || c.AttackProb > 1 {
		return fmt.Errorf("simulation.attackProb must be from interval [0, 1] (value: %f)", c.AttackProb)
	}
	if c.TryAllUsersProb < 0 || c.TryAllUsersProb > 1 {
		return fmt.Errorf("simulation.tryAllUsersProb must be from interval [0, 1] (value: %f)", c.TryAllUsersProb)
	}
	if c.ValidUser == nil {
		c.ValidUser = &RoleConf{
			SuccessProb: dfltValidUserSuccessProb,
			TypoProb:    dfltValidUserTypoProb,
		}
		log.Warn().
			Float64("successProb", c.ValidUser.SuccessProb).
			Float64("typoProb", c.ValidUser.TypoProb).
			Msg("simulation.validUser not specified, using defaults")
	}
	if c.Attacker == nil {
		c.Attacker = &RoleConf{
			SuccessProb: dfltAttackerSuccessProb,
			TypoProb:    dfltAttackerTypoProb,
		}
		log.Warn().
			Float64("successProb", c.Attacker.SuccessProb).
			Float64("typoProb", c.Attacker.TypoProb).
			Msg("simulation.attacker not specified, using defaults")
	}
	if err := c.ValidUser.validateProbs("simulation.validUser"); err != nil {
		return err
	}
	if err := c.Attacker.validateProbs("simulation.attacker"); err != nil {
		return err
	}
	return nil
}
