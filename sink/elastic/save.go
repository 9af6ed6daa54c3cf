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

package elastic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"loginsim/sink"
)

// recordMeta describes an attempt record metadata
// used by the ES bulk API
type recordMeta struct {
	ID    string `json:"_id"`
	Index string `json:"_index"`
}

type bulkRecordMeta struct {
	Index recordMeta `json:"index"`
}

func bulkWriteRequest(data [][]byte, conf *ConnectionConf) error {
	esclient := NewClient(conf)
	q := bytes.Join(data, []byte("\n"))
	_, err := esclient.Do("POST", "/_bulk", q)
	if err != nil {
		return fmt.Errorf("failed to push log chunk: %w", err)
	}
	log.Info().Msgf("inserted chunk of %d attempt records to ElasticSearch", (len(data)-1)/2)
	return nil
}

// ExportRunLog pushes all login attempt records of a finished run to
// the configured index chunk by chunk. The export runs strictly after
// the simulation - no storage I/O happens inside the generation loop.
func ExportRunLog(conf *ConnectionConf, runLog *sink.RunLog) error {
	i := 0
	data := make([][]byte, conf.PushChunkSize*2+1)
	for _, rec := range runLog.Attempts {
		jsonData, err := rec.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to encode attempt record %s: %w", rec.ID, err)
		}
		jsonMeta, err := json.Marshal(&bulkRecordMeta{
			Index: recordMeta{ID: rec.ID, Index: conf.Index},
		})
		if err != nil {
			return fmt.Errorf("failed to encode attempt record meta %s: %w", rec.ID, err)
		}
		data[i] = jsonMeta
		data[i+1] = jsonData
		i += 2
		if i == conf.PushChunkSize*2 {
			data[i] = []byte("\n")
			if err := bulkWriteRequest(data[:i+1], conf); err != nil {
				return err
			}
			i = 0
		}
	}
	if i > 0 {
		data[i] = []byte("\n")
		if err := bulkWriteRequest(data[:i+1], conf); err != nil {
			return err
		}
	}
	return nil
}
