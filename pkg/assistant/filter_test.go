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

	"github.com/stretchr/testify/assert"
)

func TestClassifyValid(t *testing.T) {
	inputs := []string{
		"what's the weather in Austin?",
		"compare the top 5 S&P 500 companies",
		"hello",
		"thanks",
		"yes please do that", // real multi-word confirmation
	}
	for _, input := range inputs {
		assert.Equal(t, QualityValid, Classify(input, Signals{}), input)
	}
}

func TestClassifyEmpty(t *testing.T) {
	assert.Equal(t, QualityGarbage, Classify("", Signals{}))
	assert.Equal(t, QualityGarbage, Classify("   ", Signals{}))
}

func TestClassifyDurationBoundary(t *testing.T) {
	assert.Equal(t, QualityGarbage, Classify("hello there", Signals{AudioDuration: 0.59}))
	// Exactly 0.6s is long enough.
	assert.Equal(t, QualityValid, Classify("hello there", Signals{AudioDuration: 0.6}))
	// Zero means the signal wasn't provided.
	assert.Equal(t, QualityValid, Classify("hello there", Signals{}))
}

func TestClassifyNoSpeechBoundary(t *testing.T) {
	assert.Equal(t, QualityGarbage, Classify("hello there", Signals{NoSpeechProb: 0.61}))
	assert.Equal(t, QualityValid, Classify("hello there", Signals{NoSpeechProb: 0.60}))
}

func TestClassifyHallucinations(t *testing.T) {
	inputs := []string{
		". . . .",
		"---",
		"the the the",
		"Beep beep beep beep",
		"(upbeat music)",
		"♪ la la la",
	}
	for _, input := range inputs {
		assert.Equal(t, QualityGarbage, Classify(input, Signals{}), input)
	}
}

func TestClassifySingleGarbageWord(t *testing.T) {
	for _, input := range []string{"you", "Um.", "uh-huh", "Okay."} {
		assert.Equal(t, QualityGarbage, Classify(input, Signals{}), input)
	}
	// Greetings are deliberately not garbage.
	assert.Equal(t, QualityValid, Classify("hi", Signals{}))
}

func TestClassifyTwoGarbageWords(t *testing.T) {
	assert.Equal(t, QualityGarbage, Classify("um, yeah", Signals{}))
	assert.Equal(t, QualityGarbage, Classify("oh okay", Signals{}))
	assert.Equal(t, QualityValid, Classify("okay go", Signals{}))
	// A filler pair is garbage even when confidence is also low.
	assert.Equal(t, QualityGarbage, Classify("um yeah", Signals{AvgLogProb: -1.2}))
}

func TestClassifyLowConfidence(t *testing.T) {
	assert.Equal(t, QualityLow, Classify("was that thing", Signals{AvgLogProb: -1.2}))
	// Longer utterances survive low confidence.
	assert.Equal(t, QualityValid, Classify("was that thing over there", Signals{AvgLogProb: -1.2}))
	// -1.0 exactly is not below the threshold.
	assert.Equal(t, QualityValid, Classify("was that thing", Signals{AvgLogProb: -1.0}))
}
