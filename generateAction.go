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
	"fmt"
	"net"
	"time"

	"github.com/czcorpus/cnc-gokit/datetime"
	"github.com/oschwald/geoip2-golang"
	"github.com/rs/zerolog/log"

	"loginsim/analysis"
	"loginsim/config"
	"loginsim/notifications"
	"loginsim/record"
	"loginsim/scripting"
	"loginsim/sim"
	"loginsim/sink"
	"loginsim/sink/elastic"
	"loginsim/users"
)

func applyLocation(rec *record.LoginAttempt, db *geoip2.Reader) {
	ip := net.ParseIP(rec.SourceIP)
	if len(ip) > 0 {
		city, err := db.City(ip)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to fetch GeoIP data for IP %s.", ip.String())

		} else {
			rec.SetLocation(city.Country.Names["en"], float32(city.Location.Latitude),
				float32(city.Location.Longitude), city.Location.TimeZone)
		}
	}
}

func enrichGeoData(conf *config.Main, runLog *sink.RunLog) {
	db, err := geoip2.Open(conf.GeoIPDbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open GeoIP database")
	}
	defer db.Close()
	for _, rec := range runLog.Attempts {
		applyLocation(rec, db)
	}
	log.Info().Int("numRecords", len(runLog.Attempts)).Msg("applied GeoIP data")
}

func buildRateTable(conf *config.Main) *sim.ArrivalRateTable {
	var rates *sim.ArrivalRateTable
	var err error
	if conf.RateScriptPath != "" {
		rates, err = scripting.LoadRateTable(conf.RateScriptPath)

	} else {
		rates, err = sim.NewArrivalRateTable(conf.ArrivalRates)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build the arrival rate table")
	}
	return rates
}

func notifyRunDone(conf *config.Main, runLog *sink.RunLog) {
	notifier, err := notifications.NewNotifier(
		conf.EmailNotification, conf.ConomiNotification, conf.TimezoneLocation())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize notifier")
	}
	err = notifier.SendNotification(
		"loginsim generation finished",
		map[string]any{"app": "loginsim", "action": config.ActionGenerate},
		fmt.Sprintf("Generated %d login attempts and %d attack episodes.",
			len(runLog.Attempts), len(runLog.Episodes)),
		fmt.Sprintf("Finished at %s.", datetime.FormatDatetime(time.Now().In(conf.TimezoneLocation()))),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to send run report")
	}
}

func runGenerate(conf *config.Main) {
	userBase, err := users.Load(conf.UserBasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load user base")
	}
	rates := buildRateTable(conf)
	simulator, err := sim.NewSimulator(conf.Simulation, rates, userBase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize simulator")
	}
	runLog, err := simulator.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	if conf.GeoIPDbPath != "" {
		enrichGeoData(conf, runLog)
	}
	if err := sink.WriteAttemptsCSV(conf.AttemptLogPath, runLog.Attempts); err != nil {
		log.Fatal().Err(err).Msg("failed to write the attempt log")
	}
	if err := sink.WriteEpisodesCSV(conf.AttackLogPath, runLog.Episodes); err != nil {
		log.Fatal().Err(err).Msg("failed to write the attack log")
	}
	if conf.HasElasticOut() {
		if err := elastic.ExportRunLog(&conf.ElasticSearch, runLog); err != nil {
			log.Fatal().Err(err).Msg("failed to export data to ElasticSearch")
		}
	}
	if conf.EpisodeRecovery != nil {
		report := analysis.RecoverEpisodes(runLog, *conf.EpisodeRecovery)
		log.Info().
			Int("generatedEpisodes", report.GeneratedEpisodes).
			Int("recoveredClusters", report.RecoveredClusters).
			Int("attackerAttempts", report.AttackerAttempts).
			Int("distinctAttackerIPs", report.DistinctAttackerIPs).
			Msg("episode recovery analysis")
	}
	notifyRunDone(conf, runLog)
}
