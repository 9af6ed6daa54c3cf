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

package notifications

import (
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/mail"
	"github.com/czcorpus/conomi/client"
	"github.com/czcorpus/conomi/general"
	"github.com/rs/zerolog/log"
)

// defaultEmailNotifier provides basic e-mail delivery of run reports.
// It should be instantiated via NewNotifier.
type defaultEmailNotifier struct {
	conf *mail.NotificationConf
	loc  *time.Location
}

func (den *defaultEmailNotifier) SendNotification(subject string, metadata map[string]any, paragraphs ...string) error {
	return mail.SendNotification(den.conf, den.loc, mail.FormattedNotification{
		Subject: subject,
		Divs:    paragraphs,
	})
}

// ----

type conomiNotifier struct {
	conf   *client.ConomiClientConf
	client *client.ConomiClient
}

func (cn *conomiNotifier) SendNotification(subject string, metadata map[string]any, paragraphs ...string) error {
	return cn.client.SendReport(
		general.SeverityLevelInfo,
		subject,
		strings.Join(paragraphs, "\n\n"),
		client.WithArgs(metadata),
	)
}

// ----

// nullNotifier is a regular notifier replacement in case no report
// delivery is configured
type nullNotifier struct {
}

func (nn *nullNotifier) SendNotification(subject string, metadata map[string]any, paragraphs ...string) error {
	log.Debug().
		Str("subject", subject).
		Strs("body", paragraphs).
		Msg("not sending run report - notifications not configured")
	return nil
}
