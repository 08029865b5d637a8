// Copyright © 2025 Kakarot Labs
//
// SPDX-License-Identifier: Apache-2.0
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

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
)

func fastRetries(t *testing.T) {
	initial, max, poll := retryInitialInterval, retryMaxInterval, pollInterval
	retryInitialInterval, retryMaxInterval, pollInterval = time.Millisecond, 2*time.Millisecond, time.Millisecond
	t.Cleanup(func() {
		retryInitialInterval, retryMaxInterval, pollInterval = initial, max, poll
	})
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	fastRetries(t)
	calls := 0
	attempts, err := Retry(context.Background(), "deploy", 5, func() error {
		calls++
		if calls < 3 {
			return errors.New("exit status 1")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryExhausted(t *testing.T) {
	fastRetries(t)
	attempts, err := Retry(context.Background(), "deploy", 3, func() error {
		return errors.New("exit status 1")
	})
	assert.Regexp(t, "exit status 1", err)
	assert.Equal(t, 3, attempts)
}

func TestRetryPermanent(t *testing.T) {
	fastRetries(t)
	attempts, err := Retry(context.Background(), "deploy", 5, func() error {
		return backoff.Permanent(errors.New("bad config"))
	})
	assert.Regexp(t, "bad config", err)
	assert.Equal(t, 1, attempts)
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	fastRetries(t)
	attempts, err := Retry(context.Background(), "pull", 0, func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWaitFor(t *testing.T) {
	fastRetries(t)
	calls := 0
	err := WaitFor(context.Background(), "sequencer", time.Second, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitForTimeout(t *testing.T) {
	fastRetries(t)
	err := WaitFor(context.Background(), "gateway", 20*time.Millisecond, func(ctx context.Context) error {
		return errors.New("connection refused")
	})
	assert.Regexp(t, "timed out after 20ms waiting for gateway: connection refused", err)
}

func TestWaitForProbeHonoursDeadline(t *testing.T) {
	fastRetries(t)
	start := time.Now()
	err := WaitFor(context.Background(), "sequencer", 50*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.Regexp(t, "timed out after 50ms waiting for sequencer", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
