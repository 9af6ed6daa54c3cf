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

package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeScript(t *testing.T, src string) string {
	path := filepath.Join(t.TempDir(), "rates.lua")
	assert.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestLoadRateTable(t *testing.T) {
	path := writeScript(t, `
function hourlyRate(weekday, hour)
    if weekday == 0 or weekday == 6 then
        return 2
    end
    if hour >= 9 and hour < 17 then
        return 50
    end
    return 5
end
`)
	table, err := LoadRateTable(path)
	assert.NoError(t, err)
	// 2024-03-06 is a Wednesday, 2024-03-09 a Saturday
	assert.Equal(t, 50.0, table.RateAt(time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5.0, table.RateAt(time.Date(2024, 3, 6, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2.0, table.RateAt(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)))
}

func TestLoadRateTableMissingFunction(t *testing.T) {
	path := writeScript(t, `rate = 10`)
	_, err := LoadRateTable(path)
	assert.Error(t, err)
}

func TestLoadRateTableNonNumericResult(t *testing.T) {
	path := writeScript(t, `
function hourlyRate(weekday, hour)
    return "a lot"
end
`)
	_, err := LoadRateTable(path)
	assert.Error(t, err)
}

func TestLoadRateTableNegativeRate(t *testing.T) {
	path := writeScript(t, `
function hourlyRate(weekday, hour)
    return -1
end
`)
	_, err := LoadRateTable(path)
	assert.Error(t, err)
}

func TestLoadRateTableBrokenScript(t *testing.T) {
	path := writeScript(t, `function hourlyRate(`)
	_, err := LoadRateTable(path)
	assert.Error(t, err)
}
