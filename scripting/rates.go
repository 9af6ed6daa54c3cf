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

// Package scripting allows defining the weekly arrival rate profile
// as a Lua function instead of enumerating all the 168 slots in the
// JSON configuration. The script must export a global function
//
//	function hourlyRate(weekday, hour)
//
// with weekday 0 (Sunday) through 6 (Saturday) and hour 0 through 23,
// returning a non-negative number of expected logins per hour.
package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"loginsim/common"
	"loginsim/sim"
)

const rateFunctionName = "hourlyRate"

// LoadRateTable evaluates a user-supplied Lua script and builds
// a complete arrival rate table out of it. The table is validated
// the same way a JSON-configured one is.
func LoadRateTable(scriptPath string) (*sim.ArrivalRateTable, error) {
	srcCode, err := common.LoadSupportedResource(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate script: %w", err)
	}
	L := lua.NewState()
	defer L.Close()
	if err := L.DoString(string(srcCode)); err != nil {
		return nil, fmt.Errorf("failed to evaluate rate script: %w", err)
	}
	fnObj := L.GetGlobal(rateFunctionName)
	if fnObj.Type() != lua.LTFunction {
		return nil, fmt.Errorf("rate script must define a global function %s(weekday, hour)", rateFunctionName)
	}
	return sim.NewArrivalRateTableFromFunc(func(weekday, hour int) (float64, error) {
		err := L.CallByParam(
			lua.P{
				Fn:      fnObj,
				NRet:    1,
				Protect: true,
			},
			lua.LNumber(weekday), lua.LNumber(hour),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to call %s(%d, %d): %w", rateFunctionName, weekday, hour, err)
		}
		ret := L.Get(-1)
		L.Pop(1)
		num, ok := ret.(lua.LNumber)
		if !ok {
			return 0, fmt.Errorf("%s(%d, %d) must return a number (got %s)", rateFunctionName, weekday, hour, ret.Type())
		}
		return float64(num), nil
	})
}
