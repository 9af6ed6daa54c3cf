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

// Package elastic exports a finished simulation run to an
// ElasticSearch index so the generated dataset can be explored the
// same way real traffic logs are.
package elastic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultReqTimeoutSecs = 10
)

// ConnectionConf defines a configuration required to work
// with the ES client.
type ConnectionConf struct {
	Server         string `json:"server"`
	Index          string `json:"index"`
	PushChunkSize  int    `json:"pushChunkSize"`
	ReqTimeoutSecs int    `json:"reqTimeoutSecs"`
}

// IsConfigured tests whether the configuration is considered
// to be enabled (i.e. no error checking just enabled/disabled)
func (conf *ConnectionConf) IsConfigured() bool {
	return conf.Server != ""
}

// Validate tests whether the configuration is filled in
// correctly. Please note that if the function returns nil
// then IsConfigured() must return 'true'.
func (conf *ConnectionConf) Validate() error {
	if conf.Index == "" {
		return fmt.Errorf("missing 'index' information for ElasticSearch")
	}
	if conf.PushChunkSize == 0 {
		return fmt.Errorf("missing 'pushChunkSize' information for ElasticSearch")
	}
	if conf.ReqTimeoutSecs == 0 {
		conf.ReqTimeoutSecs = defaultReqTimeoutSecs
		log.Warn().Msgf("value elasticSearch.reqTimeoutSecs not specified, using default %d", defaultReqTimeoutSecs)
	}
	return nil
}

// -------

// ErrorResultObj describes an error response from ElasticSearch
type ErrorResultObj struct {
	Error  map[string]any `json:"error"`
	Status int            `json:"status"`
}

func (ero ErrorResultObj) String() string {
	var ans bytes.Buffer
	for k, v := range ero.Error {
		ans.WriteString(fmt.Sprintf("{%s -> %s}", k, v))
	}
	return ans.String()
}

// ESClientError is a general response error
type ESClientError struct {
	Message string
	Query   []byte
	ESError ErrorResultObj
}

func (esc *ESClientError) Error() string {
	return fmt.Sprintf("%s: %s", esc.Message, esc.ESError)
}

func newESClientError(message string, response []byte, query []byte) *ESClientError {
	var errResult ErrorResultObj
	json.Unmarshal(response, &errResult)
	return &ESClientError{message, query, errResult}
}

// ESClient is a simple ElasticSearch client
type ESClient struct {
	server         string
	index          string
	reqTimeoutSecs int
}

// NewClient returns an instance of ESClient
func NewClient(conf *ConnectionConf) *ESClient {
	return &ESClient{
		server:         conf.Server,
		index:          conf.Index,
		reqTimeoutSecs: conf.ReqTimeoutSecs,
	}
}

func (c ESClient) String() string {
	return fmt.Sprintf("ElasticSearchClient[server: %s, index: %s]", c.server, c.index)
}

// Do sends a general request to ElasticSearch server where
// 'query' is expected to be a JSON-encoded argument object
func (c *ESClient) Do(method string, path string, query []byte) ([]byte, error) {
	body := bytes.NewBuffer(query)
	client := http.Client{Timeout: time.Second * time.Duration(c.reqTimeoutSecs)}
	req, err := http.NewRequest(method, c.server+path, body)
	if err != nil {
		return make([]byte, 0), err
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return make([]byte, 0), err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(resp.Body)
		return errBody, newESClientError(fmt.Sprintf("Request %s failed with code %d", path, resp.StatusCode), errBody, query)
	}
	ans, err := io.ReadAll(resp.Body)
	if err != nil {
		return make([]byte, 0), err
	}
	return ans, nil
}
