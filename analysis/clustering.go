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

// Package analysis provides a post-run sanity check of a generated
// dataset: it clusters the attacker-flagged attempts by time and
// compares the number of recovered clusters with the number of
// generated attack episodes. A dataset whose attacks cannot be
// recovered by a trivial detector is usually misconfigured (e.g.
// attack probability so high the episodes blend together).
package analysis

import (
	"math"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/maths"
	"github.com/kelindar/dbscan"

	"loginsim/record"
	"loginsim/sink"
)

const (
	dfltMinClusterSize   = 2
	dfltClusterWindowSec = 60
)

// Conf configures the episode recovery check.
type Conf struct {

	// MinClusterSize is the minimum number of guesses forming
	// a recoverable attack cluster
	MinClusterSize int `json:"minClusterSize"`

	// ClusterWindowSecs is the max distance (in seconds) between two
	// guesses considered part of the same attack
	ClusterWindowSecs int `json:"clusterWindowSecs"`
}

// Report summarizes the check results.
type Report struct {
	GeneratedEpisodes   int
	RecoveredClusters   int
	AttackerAttempts    int
	DistinctAttackerIPs int
}

type clusterableAttempt struct {
	rec *record.LoginAttempt
}

func (ca clusterableAttempt) GetTime() time.Time {
	return ca.rec.GetTime()
}

func (ca clusterableAttempt) DistanceTo(other dbscan.Point) float64 {
	return math.Abs((other.(clusterableAttempt)).GetTime().Sub(ca.rec.GetTime()).Seconds())
}

func (ca clusterableAttempt) Name() string {
	return ca.rec.ID
}

// RecoverEpisodes runs DBSCAN over the attacker-flagged attempts of
// a finished run and reports how well the generated episodes separate
// in time.
func RecoverEpisodes(runLog *sink.RunLog, conf Conf) Report {
	minSize := maths.Max(dfltMinClusterSize, conf.MinClusterSize)
	window := conf.ClusterWindowSecs
	if window == 0 {
		window = dfltClusterWindowSec
	}
	attackerIPs := collections.Set[string]{}
	points := make([]dbscan.Point, 0, len(runLog.Attempts))
	for _, rec := range runLog.Attempts {
		if rec.Attacker {
			points = append(points, clusterableAttempt{rec: rec})
			attackerIPs.Add(rec.SourceIP)
		}
	}
	clusters := dbscan.Cluster(minSize, float64(window), points...)
	return Report{
		GeneratedEpisodes:   len(runLog.Episodes),
		RecoveredClusters:   len(clusters),
		AttackerAttempts:    len(points),
		DistinctAttackerIPs: attackerIPs.Size(),
	}
}
