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

package users

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"loginsim/common"
)

// User is a single known account of the simulated website. Instances
// are created during the setup phase and never mutated by a simulation
// run.
type User struct {
	Name     string   `json:"-"`
	Password string   `json:"password"`
	IPs      []string `json:"ips"`
}

// UserBase is an immutable username => account mapping loaded from
// a JSON file. Usernames are kept also as a sorted slice so any
// random selection driven by a seeded rand source stays reproducible
// (Go map iteration order is not).
type UserBase struct {
	users map[string]*User
	names []string
}

func (ub *UserBase) Size() int {
	return len(ub.names)
}

// Usernames returns all known usernames in a stable (sorted) order.
// The returned slice is shared - callers must not modify it.
func (ub *UserBase) Usernames() []string {
	return ub.names
}

// Get returns the account for a username. The second value follows
// the map access convention.
func (ub *UserBase) Get(username string) (*User, bool) {
	v, ok := ub.users[username]
	return v, ok
}

// Contains tests whether the username is a known account.
func (ub *UserBase) Contains(username string) bool {
	_, ok := ub.users[username]
	return ok
}

// ToJSON exports the userbase in the persisted format.
func (ub *UserBase) ToJSON() ([]byte, error) {
	return json.MarshalIndent(ub.users, "", "  ")
}

// Save stores the userbase to a JSON file.
func (ub *UserBase) Save(path string) error {
	data, err := ub.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize userbase: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// FromMap creates a UserBase out of an existing username => account
// mapping (used by the setup action and by tests).
func FromMap(data map[string]*User) *UserBase {
	names := make([]string, 0, len(data))
	for name, usr := range data {
		usr.Name = name
		names = append(names, name)
	}
	sort.Strings(names)
	return &UserBase{users: data, names: names}
}

// Load reads a JSON-encoded userbase. Both the full format
// ({"user": {"password": ..., "ips": [...]}}) and the legacy plain
// user => IP list format are accepted; in the latter case passwords
// are left empty (the outcome model does not read them anyway).
func Load(path string) (*UserBase, error) {
	rawData, err := common.LoadSupportedResource(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load userbase file: %w", err)
	}
	full := make(map[string]*User)
	if err := json.Unmarshal(rawData, &full); err == nil {
		return FromMap(full), nil
	}
	legacy := make(map[string][]string)
	if err := json.Unmarshal(rawData, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse userbase file: %w", err)
	}
	full = make(map[string]*User, len(legacy))
	for name, ips := range legacy {
		full[name] = &User{IPs: ips}
	}
	return FromMap(full), nil
}
