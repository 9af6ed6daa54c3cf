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

	"github.com/stretchr/testify/assert"
)

func TestMutationDeleteChar(t *testing.T) {
	m := usernameMutation{kind: deleteCharAt, pos: 2}
	assert.Equal(t, "adin", m.apply("admin"))
}

func TestMutationDeleteFirstChar(t *testing.T) {
	m := usernameMutation{kind: deleteCharAt, pos: 0}
	assert.Equal(t, "dmin", m.apply("admin"))
}

func TestMutationDeleteLastChar(t *testing.T) {
	m := usernameMutation{kind: deleteCharAt, pos: 4}
	assert.Equal(t, "admi", m.apply("admin"))
}

func TestMutationLowercaseChar(t *testing.T) {
	m := usernameMutation{kind: lowercaseCharAt, pos: 0}
	assert.Equal(t, "aDMIN", m.apply("ADMIN"))
}

func TestMutationLowercaseAlreadyLower(t *testing.T) {
	m := usernameMutation{kind: lowercaseCharAt, pos: 1}
	assert.Equal(t, "admin", m.apply("admin"))
}

func TestMutationOutOfRangePosIsNoop(t *testing.T) {
	m := usernameMutation{kind: deleteCharAt, pos: 10}
	assert.Equal(t, "admin", m.apply("admin"))
}

func TestMutationNoMutation(t *testing.T) {
	m := usernameMutation{kind: noMutation, pos: 3}
	assert.Equal(t, "admin", m.apply("admin"))
}

func TestDrawMutationZeroProb(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		m := drawMutation(rnd, 0, 5)
		assert.Equal(t, noMutation, m.kind)
	}
}

func TestDrawMutationCertainProb(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		m := drawMutation(rnd, 1, 5)
		assert.NotEqual(t, noMutation, m.kind)
		assert.True(t, m.pos >= 0 && m.pos < 5)
	}
}

func TestDrawMutationEmptyUsername(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	m := drawMutation(rnd, 1, 0)
	assert.Equal(t, noMutation, m.kind)
}

func TestAttemptOutcomeCertainSuccessNoTypos(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	om := NewOutcomeModel(
		rnd,
		RoleConf{SuccessProb: 1, TypoProb: 0},
		RoleConf{SuccessProb: 0, TypoProb: 0},
	)
	for i := 0; i < 50; i++ {
		observed, success := om.AttemptOutcome("asmith", RoleValidUser)
		assert.Equal(t, "asmith", observed)
		assert.True(t, success)
	}
}

func TestAttemptOutcomeRoleCalibration(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	om := NewOutcomeModel(
		rnd,
		RoleConf{SuccessProb: 1, TypoProb: 0},
		RoleConf{SuccessProb: 0, TypoProb: 1},
	)
	for i := 0; i < 50; i++ {
		observed, success := om.AttemptOutcome("ADMIN", RoleAttacker)
		assert.NotEqual(t, "ADMIN", observed)
		assert.False(t, success)
	}
}
