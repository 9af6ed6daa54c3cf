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

// Package ipgen produces synthetic IPv4 addresses for generated
// log records. There is no uniqueness guarantee - the address space
// is large enough for the generated datasets and an occasional
// collision is a valid situation anyway (NAT, shared proxies).
package ipgen

import (
	"math/rand"
	"net"
)

const (
	maxUserAddresses = 3
)

// RandomIP generates a random globally routable dotted-quad address.
// Private, loopback, multicast and otherwise special ranges are
// rejected and redrawn so the produced traffic looks like it comes
// from the public internet.
func RandomIP(rnd *rand.Rand) string {
	for {
		ip := net.IPv4(
			byte(rnd.Intn(256)),
			byte(rnd.Intn(256)),
			byte(rnd.Intn(256)),
			byte(rnd.Intn(256)),
		)
		if isPublic(ip) {
			return ip.String()
		}
	}
}

// AssignAddresses gives each provided username 1-3 random addresses.
// The usernames are processed in the provided order so the result
// is reproducible for a seeded rand source.
func AssignAddresses(usernames []string, rnd *rand.Rand) map[string][]string {
	ans := make(map[string][]string, len(usernames))
	for _, name := range usernames {
		addrs := make([]string, 1+rnd.Intn(maxUserAddresses))
		for i := range addrs {
			addrs[i] = RandomIP(rnd)
		}
		ans[name] = addrs
	}
	return ans
}

func isPublic(ip net.IP) bool {
	return ip.IsGlobalUnicast() && !ip.IsPrivate()
}
