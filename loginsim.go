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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"loginsim/config"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func setupLog(conf *config.Main) *os.File {
	lev := zerolog.InfoLevel
	if conf.LogLevel != "" {
		var err error
		lev, err = zerolog.ParseLevel(conf.LogLevel)
		if err != nil {
			log.Fatal().Msgf("invalid logLevel: '%s'", conf.LogLevel)
		}
	}
	zerolog.SetGlobalLevel(lev)
	if conf.LogPath != "" {
		logf, err := os.OpenFile(conf.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal().Msgf("failed to initialize log file %s", conf.LogPath)
		}
		log.Logger = log.Output(logf)
		return logf
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func setup(confPath, action string) (*config.Main, *os.File) {
	if confPath == "" {
		log.Fatal().Msg("config path not specified")
	}
	conf := config.Load(confPath)
	logf := setupLog(conf)
	config.Validate(conf, action)
	return conf, logf
}

func help(topic string) {
	if topic == "" {
		fmt.Println("missing action to help with. Select one of:\n\tgenerate, setup, version")
	}
	fmt.Printf("\n[%s]\n\n", topic)
	switch topic {
	case config.ActionGenerate:
		fmt.Println(helpTexts[0])
	case config.ActionSetup:
		fmt.Println(helpTexts[1])
	default:
		fmt.Println("- no information available -")
	}
	fmt.Println()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Loginsim - a synthetic login attempt log generator for intrusion detection experiments\n\nUsage:\n\t%s [options] [action] [config.json]\n\nAvailable actions:\n\t%s\n\nOptions:\n",
			filepath.Base(os.Args[0]),
			strings.Join([]string{
				config.ActionGenerate, config.ActionSetup,
				config.ActionVersion, config.ActionHelp,
			}, ", "))
		flag.PrintDefaults()
	}
	numUsers := flag.Int("num-users", 0, "number of user accounts to create (setup action; 0 = use the whole built-in name corpus)")
	flag.Parse()
	action := flag.Arg(0)

	var logf *os.File
	switch action {
	case config.ActionHelp:
		help(flag.Arg(1))
	case config.ActionVersion:
		fmt.Printf("loginsim %s\nbuild date: %s\nlast commit: %s\n", version, buildDate, gitCommit)
	case config.ActionGenerate:
		var conf *config.Main
		conf, logf = setup(flag.Arg(1), action)
		runGenerate(conf)
	case config.ActionSetup:
		var conf *config.Main
		conf, logf = setup(flag.Arg(1), action)
		runSetup(conf, *numUsers)
	default:
		fmt.Printf("Unknown action [%s]. Try -h for help\n", action)
		os.Exit(1)
	}

	if logf != nil {
		logf.Close()
	}
}
