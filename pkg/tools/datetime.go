// Copyright 2026 Voxkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/mitchellh/mapstructure"
)

// usStates maps state names to their primary timezone. States spanning
// two zones get the one covering most of the population.
var usStates = map[string]string{
	"alabama":        "America/Chicago",
	"alaska":         "America/Anchorage",
	"arizona":        "America/Phoenix",
	"arkansas":       "America/Chicago",
	"california":     "America/Los_Angeles",
	"colorado":       "America/Denver",
	"connecticut":    "America/New_York",
	"delaware":       "America/New_York",
	"florida":        "America/New_York",
	"georgia":        "America/New_York",
	"hawaii":         "Pacific/Honolulu",
	"idaho":          "America/Boise",
	"illinois":       "America/Chicago",
	"indiana":        "America/Indiana/Indianapolis",
	"iowa":           "America/Chicago",
	"kansas":         "America/Chicago",
	"kentucky":       "America/New_York",
	"louisiana":      "America/Chicago",
	"maine":          "America/New_York",
	"maryland":       "America/New_York",
	"massachusetts":  "America/New_York",
	"michigan":       "America/Detroit",
	"minnesota":      "America/Chicago",
	"mississippi":    "America/Chicago",
	"missouri":       "America/Chicago",
	"montana":        "America/Denver",
	"nebraska":       "America/Chicago",
	"nevada":         "America/Los_Angeles",
	"new hampshire":  "America/New_York",
	"new jersey":     "America/New_York",
	"new mexico":     "America/Denver",
	"new york":       "America/New_York",
	"north carolina": "America/New_York",
	"north dakota":   "America/Chicago",
	"ohio":           "America/New_York",
	"oklahoma":       "America/Chicago",
	"oregon":         "America/Los_Angeles",
	"pennsylvania":   "America/New_York",
	"rhode island":   "America/New_York",
	"south carolina": "America/New_York",
	"south dakota":   "America/Chicago",
	"tennessee":      "America/Chicago",
	"texas":          "America/Chicago",
	"utah":           "America/Denver",
	"vermont":        "America/New_York",
	"virginia":       "America/New_York",
	"washington":     "America/Los_Angeles",
	"west virginia":  "America/New_York",
	"wisconsin":      "America/Chicago",
	"wyoming":        "America/Denver",
}

var countries = map[string]string{
	"argentina":      "America/Argentina/Buenos_Aires",
	"australia":      "Australia/Sydney",
	"austria":        "Europe/Vienna",
	"belgium":        "Europe/Brussels",
	"brazil":         "America/Sao_Paulo",
	"canada":         "America/Toronto",
	"chile":          "America/Santiago",
	"china":          "Asia/Shanghai",
	"colombia":       "America/Bogota",
	"czech republic": "Europe/Prague",
	"denmark":        "Europe/Copenhagen",
	"egypt":          "Africa/Cairo",
	"england":        "Europe/London",
	"finland":        "Europe/Helsinki",
	"france":         "Europe/Paris",
	"germany":        "Europe/Berlin",
	"greece":         "Europe/Athens",
	"india":          "Asia/Kolkata",
	"indonesia":      "Asia/Jakarta",
	"ireland":        "Europe/Dublin",
	"israel":         "Asia/Jerusalem",
	"italy":          "Europe/Rome",
	"japan":          "Asia/Tokyo",
	"mexico":         "America/Mexico_City",
	"netherlands":    "Europe/Amsterdam",
	"new zealand":    "Pacific/Auckland",
	"norway":         "Europe/Oslo",
	"philippines":    "Asia/Manila",
	"poland":         "Europe/Warsaw",
	"portugal":       "Europe/Lisbon",
	"russia":         "Europe/Moscow",
	"saudi arabia":   "Asia/Riyadh",
	"south africa":   "Africa/Johannesburg",
	"south korea":    "Asia/Seoul",
	"spain":          "Europe/Madrid",
	"sweden":         "Europe/Stockholm",
	"switzerland":    "Europe/Zurich",
	"thailand":       "Asia/Bangkok",
	"turkey":         "Europe/Istanbul",
	"uae":            "Asia/Dubai",
	"uk":             "Europe/London",
	"ukraine":        "Europe/Kyiv",
	"united kingdom": "Europe/London",
	"united states":  "America/Chicago",
	"usa":            "America/Chicago",
	"vietnam":        "Asia/Ho_Chi_Minh",
}

// cityAliases covers nicknames and cities whose IANA leaf differs from
// the name people say.
var cityAliases = map[string]string{
	"atlanta":       "America/New_York",
	"austin":        "America/Chicago",
	"bay area":      "America/Los_Angeles",
	"boston":        "America/New_York",
	"dallas":        "America/Chicago",
	"dc":            "America/New_York",
	"houston":       "America/Chicago",
	"la":            "America/Los_Angeles",
	"las vegas":     "America/Los_Angeles",
	"miami":         "America/New_York",
	"milan":         "Europe/Rome",
	"minneapolis":   "America/Chicago",
	"mumbai":        "Asia/Kolkata",
	"munich":        "Europe/Berlin",
	"nyc":           "America/New_York",
	"philadelphia":  "America/New_York",
	"philly":        "America/New_York",
	"portland":      "America/Los_Angeles",
	"san diego":     "America/Los_Angeles",
	"san francisco": "America/Los_Angeles",
	"seattle":       "America/Los_Angeles",
	"sf":            "America/Los_Angeles",
	"vegas":         "America/Los_Angeles",
	"washington dc": "America/New_York",
}

// ResolveLocation maps a spoken place name to a timezone. Accepts IANA
// names directly, then tries city names, US states, countries, and
// nicknames. For "Austin, Texas" style input it retries with the part
// before the comma.
func ResolveLocation(name string) (*time.Location, string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", false
	}

	if loc, err := time.LoadLocation(name); err == nil && strings.Contains(name, "/") {
		return loc, name, true
	}

	key := strings.ToLower(name)
	for _, table := range []map[string]string{tzLeaves, usStates, countries, cityAliases} {
		if zone, ok := table[key]; ok {
			if loc, err := time.LoadLocation(zone); err == nil {
				return loc, zone, true
			}
		}
	}

	if city, _, found := strings.Cut(name, ","); found {
		return ResolveLocation(city)
	}
	return nil, "", false
}

// DateTimeTool answers "what time is it" style tool calls. The model
// passes whatever the user said as the timezone: an IANA name, a city,
// a state, or nothing at all.
type DateTimeTool struct {
	now func() time.Time
}

func NewDateTimeTool() *DateTimeTool {
	return &DateTimeTool{now: time.Now}
}

func (t *DateTimeTool) GetName() string { return "get_current_datetime" }

func (t *DateTimeTool) GetDescription() string {
	return "Get the current date and time. Optionally pass a timezone or " +
		"city name to get the local time there."
}

func (t *DateTimeTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"timezone": map[string]interface{}{
					"type":        "string",
					"description": "IANA timezone or city name, e.g. America/Chicago or Tokyo",
				},
			},
		},
	}
}

type dateTimeArgs struct {
	Timezone string `mapstructure:"timezone"`
}

func (t *DateTimeTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	var params dateTimeArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return ToolResult{Success: false, Error: "Error: invalid arguments.", ToolName: t.GetName()}, nil
	}

	now := t.now()
	label := "local"
	zoneName := "system"
	if params.Timezone != "" {
		loc, zone, ok := ResolveLocation(params.Timezone)
		if !ok {
			return ToolResult{
				Success:  false,
				Error:    fmt.Sprintf("Unknown timezone or location: '%s'.", params.Timezone),
				ToolName: t.GetName(),
			}, nil
		}
		now = now.In(loc)
		label = params.Timezone
		zoneName = zone
	}

	content := fmt.Sprintf(
		"Current date: %s\nCurrent time: %s\nDay of week: %s\nYear: %d\nTimezone: %s (%s)",
		now.Format("2006-01-02"),
		now.Format("03:04 PM"),
		now.Format("Monday"),
		now.Year(),
		label, zoneName,
	)
	return ToolResult{
		Success:       true,
		Content:       content,
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
	}, nil
}
