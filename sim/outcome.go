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
	"unicode"
)

// Role distinguishes who is performing a login attempt. The outcome
// model uses a separate calibration for each role.
type Role int

const (
	RoleValidUser Role = iota
	RoleAttacker
)

func (r Role) String() string {
	if r == RoleAttacker {
		return "attacker"
	}
	return "validUser"
}

// ---- username mutation (typo injection)

type mutationKind int

const (
	noMutation mutationKind = iota
	deleteCharAt
	lowercaseCharAt
)

// usernameMutation is a single-character corruption of a typed
// username - either nothing, a dropped character or a character
// typed in lower case.
type usernameMutation struct {
	kind mutationKind
	pos  int
}

// apply performs the mutation as a pure string transform.
func (m usernameMutation) apply(username string) string {
	chars := []rune(username)
	if m.pos < 0 || m.pos >= len(chars) {
		return username
	}
	switch m.kind {
	case deleteCharAt:
		return string(append(chars[:m.pos], chars[m.pos+1:]...))
	case lowercaseCharAt:
		chars[m.pos] = unicode.ToLower(chars[m.pos])
		return string(chars)
	}
	return username
}

func drawMutation(rnd *rand.Rand, typoProb float64, usernameLen int) usernameMutation {
	if usernameLen == 0 || rnd.Float64() >= typoProb {
		return usernameMutation{kind: noMutation}
	}
	pos := rnd.Intn(usernameLen)
	if rnd.Float64() < 0.5 {
		return usernameMutation{kind: deleteCharAt, pos: pos}
	}
	return usernameMutation{kind: lowercaseCharAt, pos: pos}
}

// ---- outcome model

// OutcomeModel decides, per login attempt, what username was actually
// typed and whether the attempt succeeded. Success is a Bernoulli
// draw - there is no real credential verification in the simulation -
// and it is drawn independently of the typo decision.
type OutcomeModel struct {
	rnd       *rand.Rand
	validUser RoleConf
	attacker  RoleConf
}

func (om *OutcomeModel) roleConf(role Role) RoleConf {
	if role == RoleAttacker {
		return om.attacker
	}
	return om.validUser
}

// AttemptOutcome produces the observed username (possibly corrupted
// by a typo) and the success flag of a single attempt made by the
// provided role against the provided account name.
func (om *OutcomeModel) AttemptOutcome(username string, role Role) (string, bool) {
	conf := om.roleConf(role)
	mut := drawMutation(om.rnd, conf.TypoProb, len([]rune(username)))
	observed := mut.apply(username)
	success := om.rnd.Float64() < conf.SuccessProb
	return observed, success
}

// NewOutcomeModel creates an outcome model sharing the simulation's
// random source.
func NewOutcomeModel(rnd *rand.Rand, validUser, attacker RoleConf) *OutcomeModel {
	return &OutcomeModel{
		rnd:       rnd,
		validUser: validUser,
		attacker:  attacker,
	}
}
