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

var helpTexts = []string{
	`Generate a synthetic login attempt log over a configured time window.
Regular user traffic follows a Poisson process driven by a weekly arrival
rate profile; attack episodes are triggered with a configurable probability.
A proper JSON configuration file must be specified

{
    "userBasePath": "/path/to/userbase.json",
    "simulation": {
        "start": "2024-03-04T00:00:00+01:00",
        "end": "2024-03-11T00:00:00+01:00",
        "seed": 42,
        "attackProb": 0.1,
        "tryAllUsersProb": 0.65,
        "varyIps": false
    },
    "arrivalRates": [
        {"weekdays": [1, 2, 3, 4, 5], "hours": [9, 10, 11, 12, 13, 14, 15, 16], "rate": 50}
    ],
    "attemptLogPath": "/path/to/attempts.csv",
    "attackLogPath": "/path/to/attacks.csv",
    "geoIpDbPath": "/path/to/GeoLite2-City.mmdb",
    "timeZone": "Europe/Prague"
}
`,
	`Create a user base file with randomly generated accounts (passwords and
assigned IP addresses) and store it to the configured userBasePath. The
generated file is required by the ` + "`generate`" + ` action.`,
}
