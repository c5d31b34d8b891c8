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

package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 3:04 PM UTC.
var fastNow = time.Date(2026, time.August, 24, 15, 4, 0, 0, time.UTC)

func TestFastPathLocalTime(t *testing.T) {
	inputs := []string{
		"what time is it?",
		"What's the time",
		"what is the current time right now",
		"tell me the time",
		"give me the current time.",
	}
	for _, input := range inputs {
		reply, ok := TryFastPath(input, "", fastNow)
		require.True(t, ok, input)
		assert.Equal(t, "It's 3:04 PM UTC — Monday, August 24, 2026.", reply, input)
	}
}

func TestFastPathTimeInCity(t *testing.T) {
	reply, ok := TryFastPath("what time is it in Tokyo?", "", fastNow)
	require.True(t, ok)
	// UTC 15:04 is 00:04 next day in Tokyo.
	assert.Equal(t, "It's 12:04 AM JST in Tokyo — Tuesday, August 25, 2026.", reply)
}

func TestFastPathTimeInCityWithSuffix(t *testing.T) {
	reply, ok := TryFastPath("what time is it in Austin, Texas right now?", "", fastNow)
	require.True(t, ok)
	assert.Contains(t, reply, "in Austin, Texas —")
	assert.Contains(t, reply, "10:04 AM CDT")
}

func TestFastPathUnknownCityFallsThrough(t *testing.T) {
	_, ok := TryFastPath("what time is it in Narnia?", "", fastNow)
	assert.False(t, ok)
}

func TestFastPathDate(t *testing.T) {
	inputs := []string{
		"what day is it?",
		"what day is it today",
		"what's today's date?",
		"what is the date",
		"what's today?",
	}
	for _, input := range inputs {
		reply, ok := TryFastPath(input, "", fastNow)
		require.True(t, ok, input)
		assert.Equal(t, "Today is Monday, August 24, 2026.", reply, input)
	}
}

func TestFastPathClientTimezone(t *testing.T) {
	reply, ok := TryFastPath("what time is it?", "America/Chicago", fastNow)
	require.True(t, ok)
	assert.Equal(t, "It's 10:04 AM CDT — Monday, August 24, 2026.", reply)

	// A bad client timezone is ignored, not fatal.
	_, ok = TryFastPath("what time is it?", "Not/AZone", fastNow)
	assert.True(t, ok)
}

func TestFastPathNoMatch(t *testing.T) {
	inputs := []string{
		"what's the weather today",
		"set a timer for ten minutes",
		"what time is the game", // time of an event, not the clock
		"",
	}
	for _, input := range inputs {
		_, ok := TryFastPath(input, "", fastNow)
		assert.False(t, ok, input)
	}
}

func TestCleanLocation(t *testing.T) {
	assert.Equal(t, "Austin", cleanLocation("Austin right now"))
	assert.Equal(t, "Mexico City", cleanLocation("  Mexico City? "))
	assert.Equal(t, "Paris", cleanLocation("Paris currently"))
}
