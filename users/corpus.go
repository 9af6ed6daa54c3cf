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
	"math/rand"
)

const (
	passwordLength  = 12
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	corpusSurnames = []string{"smith", "jones", "kim", "lopez", "brown"}

	// service accounts make the dataset contain the typical
	// high-value brute-force targets
	serviceAccounts = []string{"admin", "master", "dba"}
)

// MakeUsernameCorpus generates the fixed username corpus of the
// simulated website: a first-name initial combined with a small set
// of surnames, plus a few service accounts.
func MakeUsernameCorpus() []string {
	ans := make([]string, 0, 26*len(corpusSurnames)+len(serviceAccounts))
	for letter := 'a'; letter <= 'z'; letter++ {
		for _, surname := range corpusSurnames {
			ans = append(ans, string(letter)+surname)
		}
	}
	ans = append(ans, serviceAccounts...)
	return ans
}

// RandomPassword generates a ground-truth password for a synthetic
// account. The value is never verified during a simulation (the
// outcome model is a Bernoulli draw) but it makes the exported
// userbase a complete fixture for downstream experiments.
func RandomPassword(rnd *rand.Rand) string {
	ans := make([]byte, passwordLength)
	for i := range ans {
		ans[i] = passwordCharset[rnd.Intn(len(passwordCharset))]
	}
	return string(ans)
}
