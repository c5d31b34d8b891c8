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
	"time"

	"github.com/mitchellh/mapstructure"
)

// CalendarTool returns canned calendar entries. It exists so the chat
// loop and voice pipeline can be exercised end to end before a real
// calendar backend lands.
type CalendarTool struct {
	now func() time.Time
}

func NewCalendarTool() *CalendarTool {
	return &CalendarTool{now: time.Now}
}

func (t *CalendarTool) GetName() string { return "check_calendar" }

func (t *CalendarTool) GetDescription() string {
	return "Check the user's calendar for a given date. Defaults to today."
}

func (t *CalendarTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        t.GetName(),
		Description: t.GetDescription(),
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Date to check, YYYY-MM-DD. Defaults to today.",
				},
			},
		},
	}
}

type calendarArgs struct {
	Date string `mapstructure:"date"`
}

func (t *CalendarTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	var params calendarArgs
	if err := mapstructure.Decode(args, &params); err != nil {
		return ToolResult{Success: false, Error: "Error: invalid arguments.", ToolName: t.GetName()}, nil
	}

	date := params.Date
	if date == "" {
		date = t.now().Format("2006-01-02")
	}

	content := fmt.Sprintf("[MOCK DATA] Calendar for %s:\n"+
		"- 9:00 AM: Team standup (Zoom)\n"+
		"- 11:30 AM: Lunch with Alex at Torchy's Tacos\n"+
		"- 2:00 PM: Dentist appointment\n"+
		"- 5:00 PM: Yoga class", date)

	return ToolResult{
		Success:       true,
		Content:       content,
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
	}, nil
}
