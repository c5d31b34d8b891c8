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

package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAnthropicHeaders(t *testing.T) {
	reset := time.Now().Add(30 * time.Second).UTC().Format(time.RFC3339)
	headers := http.Header{}
	headers.Set("Retry-After", "12")
	headers.Set("anthropic-ratelimit-requests-reset", reset)
	headers.Set("anthropic-ratelimit-requests-remaining", "42")
	headers.Set("anthropic-ratelimit-input-tokens-remaining", "9000")

	info := ParseAnthropicHeaders(headers)
	assert.Equal(t, 12*time.Second, info.RetryAfter)
	assert.NotZero(t, info.ResetTime)
	assert.Equal(t, 42, info.RequestsRemaining)
	assert.Equal(t, 9000, info.TokensRemaining)
}

func TestParseOpenAIHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Retry-After", "5")
	headers.Set("x-ratelimit-reset-requests", "1700000000")
	headers.Set("x-ratelimit-remaining-requests", "10")
	headers.Set("x-ratelimit-remaining-tokens", "5000")

	info := ParseOpenAIHeaders(headers)
	assert.Equal(t, 5*time.Second, info.RetryAfter)
	assert.Equal(t, int64(1700000000), info.ResetTime)
	assert.Equal(t, 10, info.RequestsRemaining)
	assert.Equal(t, 5000, info.TokensRemaining)
}

func TestParseBraveHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("x-ratelimit-remaining", "1834")

	info := ParseBraveHeaders(headers)
	assert.Equal(t, 1834, info.RequestsRemaining)
	assert.Zero(t, info.RetryAfter)
}

func TestParseEmptyHeaders(t *testing.T) {
	info := ParseAnthropicHeaders(http.Header{})
	assert.Zero(t, info.RetryAfter)
	assert.Zero(t, info.ResetTime)
	assert.Zero(t, info.RequestsRemaining)
}
