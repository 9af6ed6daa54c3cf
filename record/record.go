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

// Package record defines the two output record types produced by
// a simulation run - individual login attempts and the attack
// episodes grouping the attacker-originated ones.
package record

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"
)

// DatetimeFormat is the timestamp format used in all exported records.
const DatetimeFormat = "2006-01-02T15:04:05-07:00"

// GeoDataRecord represents a client geographical position
// as provided by a GeoIP database. For synthetic addresses
// most lookups miss and the record stays empty.
type GeoDataRecord struct {
	CountryName string     `json:"country_name"`
	IP          string     `json:"ip"`
	Latitude    float32    `json:"latitude"`
	Longitude   float32    `json:"longitude"`
	Location    [2]float32 `json:"location"`
	Timezone    string     `json:"timezone"`
}

// LoginAttempt is a single observed login attempt - one row of the
// exported attempt log. Username is the value as typed (i.e. possibly
// a typo'd variant of a real account name).
type LoginAttempt struct {
	ID       string `json:"-"`
	Datetime string `json:"datetime"`
	datetime time.Time
	SourceIP string        `json:"sourceIp"`
	Username string        `json:"username"`
	Success  bool          `json:"success"`
	Attacker bool          `json:"attacker"`
	GeoIP    GeoDataRecord `json:"geoip"`
}

// ToJSON converts self to JSON string
func (rec *LoginAttempt) ToJSON() ([]byte, error) {
	return json.Marshal(rec)
}

// GetTime returns the parsed record timestamp.
func (rec *LoginAttempt) GetTime() time.Time {
	return rec.datetime
}

// SetLocation sets the geographical position of the source IP.
func (rec *LoginAttempt) SetLocation(countryName string, latitude float32, longitude float32, timezone string) {
	rec.GeoIP.IP = rec.SourceIP
	rec.GeoIP.CountryName = countryName
	rec.GeoIP.Latitude = latitude
	rec.GeoIP.Longitude = longitude
	rec.GeoIP.Location[0] = longitude
	rec.GeoIP.Location[1] = latitude
	rec.GeoIP.Timezone = timezone
}

// NewLoginAttempt creates a properly initialized attempt record
// incl. its deterministic ID.
func NewLoginAttempt(when time.Time, sourceIP, username string, success, attacker bool) *LoginAttempt {
	rec := &LoginAttempt{
		Datetime: when.Format(DatetimeFormat),
		datetime: when,
		SourceIP: sourceIP,
		Username: username,
		Success:  success,
		Attacker: attacker,
	}
	rec.ID = createID(rec)
	return rec
}

func createID(rec *LoginAttempt) string {
	str := rec.Datetime + rec.SourceIP + rec.Username +
		strconv.FormatBool(rec.Success) + strconv.FormatBool(rec.Attacker)
	sum := sha1.Sum([]byte(str))
	return hex.EncodeToString(sum[:])
}
