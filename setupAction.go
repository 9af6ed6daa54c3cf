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

package main

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"loginsim/config"
	"loginsim/ipgen"
	"loginsim/users"
)

// runSetup creates a fresh user base file with random passwords and
// assigned source addresses. With numUsers == 0, the whole built-in
// name corpus is used.
func runSetup(conf *config.Main, numUsers int) {
	var seed int64
	if conf.Simulation != nil && conf.Simulation.Seed != nil {
		seed = *conf.Simulation.Seed

	} else {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	usernames := users.MakeUsernameCorpus()
	if numUsers > 0 && numUsers < len(usernames) {
		usernames = usernames[:numUsers]
	}
	addresses := ipgen.AssignAddresses(usernames, rnd)
	accounts := make(map[string]*users.User, len(usernames))
	for _, name := range usernames {
		accounts[name] = &users.User{
			Name:     name,
			Password: users.RandomPassword(rnd),
			IPs:      addresses[name],
		}
	}
	userBase := users.FromMap(accounts)
	if err := userBase.Save(conf.UserBasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to save user base")
	}
	log.Info().
		Int("numUsers", userBase.Size()).
		Str("path", conf.UserBasePath).
		Msg("created user base")
}
