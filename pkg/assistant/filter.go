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

// Package assistant is the voice-facing front door: it filters raw STT
// output, answers trivial time/date queries instantly, and routes
// everything else through the workflow engine or the chat loop.
package assistant

import (
	"log/slog"
	"regexp"
	"strings"
)

// InputQuality classifies one STT transcription.
type InputQuality string

const (
	// QualityValid goes on to the fast path and the LLM.
	QualityValid InputQuality = "valid"
	// QualityGarbage is dropped silently.
	QualityGarbage InputQuality = "garbage"
	// QualityLow is borderline but still not worth an LLM call.
	QualityLow InputQuality = "low"
)

// Signals are the free confidence metrics the STT engine computes
// alongside the transcription.
type Signals struct {
	// NoSpeechProb is the STT confidence that the segment is NOT speech.
	NoSpeechProb float64
	// AvgLogProb is the average token log-probability; closer to 0 is
	// better.
	AvgLogProb float64
	// AudioDuration is the recording length in seconds.
	AudioDuration float64
}

// Single words STT commonly produces from noise or short mic presses.
// Greetings and farewells are deliberately absent: those are real
// conversational signals that deserve a response.
var garbageWords = map[string]bool{
	"you": true, "the": true, "a": true, "i": true, "um": true,
	"uh": true, "hmm": true, "oh": true, "ah": true, "eh": true,
	"beep": true, "boop": true, "okay": true, "ok": true, "yeah": true,
	"yes": true, "no": true, "so": true, "well": true, "right": true,
	"like": true, "just": true, "but": true, "and": true, "or": true,
	"if": true, "it": true, "something": true, "nothing": true,
	"uh-huh": true, "mm-hmm": true, "mhm": true, "huh": true,
}

var (
	punctuationOnlyRe = regexp.MustCompile(`^[\s.,!?\-…]+$`)
	parentheticalRe   = regexp.MustCompile(`^\(.*\)$`)
	musicNoteRe       = regexp.MustCompile(`^♪`)
)

// isRepeatedPhrase catches stuck-transcription hallucinations like
// "the the the" or "papapapa": one unit repeated three or more times
// making up the whole string.
func isRepeatedPhrase(text string) bool {
	lower := strings.ToLower(text)

	words := strings.Fields(lower)
	if len(words) >= 3 {
		same := true
		for _, w := range words[1:] {
			if w != words[0] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}

	if strings.ContainsAny(lower, " \t") {
		return false
	}
	for unit := 1; unit <= len(lower)/3; unit++ {
		if len(lower)%unit != 0 {
			continue
		}
		repeated := true
		for i := unit; i < len(lower); i += unit {
			if lower[i:i+unit] != lower[:unit] {
				repeated = false
				break
			}
		}
		if repeated {
			return true
		}
	}
	return false
}

// Classify decides whether a transcription is worth sending on.
// Rejecting noise here saves a 10-30 second round trip per bogus
// activation.
func Classify(text string, sig Signals) InputQuality {
	clean := strings.TrimSpace(text)

	if clean == "" {
		return QualityGarbage
	}

	// Recordings under 0.6s are almost always an accidental tap.
	if sig.AudioDuration > 0 && sig.AudioDuration < 0.6 {
		slog.Info("input filter: too short", "duration", sig.AudioDuration, "text", clean)
		return QualityGarbage
	}

	if sig.NoSpeechProb > 0.6 {
		slog.Info("input filter: no speech", "no_speech_prob", sig.NoSpeechProb, "text", clean)
		return QualityGarbage
	}

	if punctuationOnlyRe.MatchString(clean) || parentheticalRe.MatchString(clean) ||
		musicNoteRe.MatchString(clean) || isRepeatedPhrase(clean) {
		slog.Info("input filter: hallucination pattern", "text", clean)
		return QualityGarbage
	}

	words := strings.Fields(strings.TrimRight(clean, "?.!,"))

	if len(words) == 1 && garbageWords[strings.Trim(strings.ToLower(words[0]), ".-")] {
		slog.Info("input filter: garbage word", "text", clean)
		return QualityGarbage
	}

	if len(words) == 2 {
		w1 := strings.Trim(strings.ToLower(words[0]), "?.!,-")
		w2 := strings.Trim(strings.ToLower(words[1]), "?.!,-")
		if garbageWords[w1] && garbageWords[w2] {
			slog.Info("input filter: two garbage words", "text", clean)
			return QualityGarbage
		}
	}

	if sig.AvgLogProb < -1.0 && len(words) <= 3 {
		slog.Info("input filter: low confidence", "avg_logprob", sig.AvgLogProb, "text", clean)
		return QualityLow
	}

	return QualityValid
}
