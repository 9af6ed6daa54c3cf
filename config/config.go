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

package config

import (
	"encoding/json"
	"time"

	"github.com/czcorpus/cnc-gokit/mail"
	conomiClient "github.com/czcorpus/conomi/client"
	"github.com/rs/zerolog/log"

	"loginsim/analysis"
	"loginsim/common"
	"loginsim/fsop"
	"loginsim/sim"
	"loginsim/sink/elastic"
)

const (
	ActionGenerate = "generate"
	ActionSetup    = "setup"
	ActionHelp     = "help"
	ActionVersion  = "version"

	DefaultTimeZone = "Europe/Prague"
)

// Main describes loginsim's configuration
type Main struct {

	// UserBasePath points to the persisted username => account
	// mapping (created by the `setup` action)
	UserBasePath string `json:"userBasePath"`

	// Simulation wraps the time window, the random seed and all the
	// probabilities of the event generation core
	Simulation *sim.Conf `json:"simulation"`

	// ArrivalRates declares the weekly rate profile directly in the
	// configuration; mutually exclusive with RateScriptPath
	ArrivalRates []sim.RateRule `json:"arrivalRates"`

	// RateScriptPath points to a Lua script exporting
	// hourlyRate(weekday, hour); mutually exclusive with ArrivalRates
	RateScriptPath string `json:"rateScriptPath"`

	// AttemptLogPath is the CSV output for the login attempt log
	AttemptLogPath string `json:"attemptLogPath"`

	// AttackLogPath is the CSV output for the attack episode log
	AttackLogPath string `json:"attackLogPath"`

	// GeoIPDbPath enables the optional geographical enrichment of
	// the generated attempt records
	GeoIPDbPath string `json:"geoIpDbPath"`

	ElasticSearch      elastic.ConnectionConf         `json:"elasticSearch"`
	EpisodeRecovery    *analysis.Conf                 `json:"episodeRecovery"`
	EmailNotification  *mail.NotificationConf         `json:"emailNotification"`
	ConomiNotification *conomiClient.ConomiClientConf `json:"conomiNotification"`

	LogPath  string `json:"logPath"`
	LogLevel string `json:"logLevel"`
	TimeZone string `json:"timeZone"`
}

// HasElasticOut tests whether an ElasticSearch output is configured
func (c *Main) HasElasticOut() bool {
	return c.ElasticSearch.IsConfigured()
}

func (c *Main) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call Validate()
	// first (which also tries to load the location and report
	// possible error)
	loc, _ := time.LoadLocation(c.TimeZone)
	return loc
}

// Validate checks for essential config properties. Any problem is
// fatal - an invalid configuration is rejected before a simulation
// starts rather than recovered from mid-run.
func Validate(conf *Main, action string) {
	if conf.TimeZone == "" {
		conf.TimeZone = DefaultTimeZone
		log.Warn().Str("timezone", conf.TimeZone).
			Msg("timeZone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		log.Fatal().Err(err).Msg("invalid timeZone value")
	}
	if conf.UserBasePath == "" {
		log.Fatal().Msg("missing userBasePath")
	}
	if action != ActionGenerate {
		return
	}
	if !fsop.IsFile(conf.UserBasePath) {
		log.Fatal().Msgf("invalid userBasePath: '%s'", conf.UserBasePath)
	}
	if conf.Simulation == nil {
		log.Fatal().Msg("missing configuration data for the `generate` action (simulation)")
	}
	if err := conf.Simulation.Validate(); err != nil {
		log.Fatal().Err(err).Msg("failed to validate `generate` action configuration")
	}
	if len(conf.ArrivalRates) == 0 && conf.RateScriptPath == "" {
		log.Fatal().Msg("either arrivalRates or rateScriptPath must be configured")
	}
	if len(conf.ArrivalRates) > 0 && conf.RateScriptPath != "" {
		log.Fatal().Msg("arrivalRates and rateScriptPath are mutually exclusive")
	}
	if conf.RateScriptPath != "" && !fsop.IsFile(conf.RateScriptPath) {
		log.Fatal().Msgf("invalid rateScriptPath: '%s'", conf.RateScriptPath)
	}
	if conf.GeoIPDbPath != "" && !fsop.IsFile(conf.GeoIPDbPath) {
		log.Fatal().Msgf("invalid geoIpDbPath: '%s'", conf.GeoIPDbPath)
	}
	if conf.AttemptLogPath == "" {
		log.Fatal().Msg("missing attemptLogPath")
	}
	if conf.AttackLogPath == "" {
		log.Fatal().Msg("missing attackLogPath")
	}
	if conf.ElasticSearch.IsConfigured() {
		if err := conf.ElasticSearch.Validate(); err != nil {
			log.Fatal().Msgf("%s", err)
		}
	}
}

// Load loads the main configuration (either from a local fs
// or via http(s))
func Load(path string) *Main {
	rawData, err := common.LoadSupportedResource(path)
	if err != nil {
		log.Fatal().Msgf("%s", err)
	}
	var conf Main
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Msgf("%s", err)
	}
	return &conf
}
