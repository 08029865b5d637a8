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
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kkrt-labs/kstack/internal/log"
)

var (
	retryInitialInterval = 1 * time.Second
	retryMaxInterval     = 15 * time.Second
	pollInterval         = 1 * time.Second
)

// Retry runs op until it succeeds, at most attempts times, backing off
// exponentially between attempts. It returns the number of attempts made.
// Errors wrapped with backoff.Permanent stop the retries immediately.
func Retry(ctx context.Context, description string, attempts int, op func() error) (int, error) {
	if attempts < 1 {
		attempts = 1
	}
	l := log.LoggerFromContext(ctx)
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.MaxElapsedTime = 0

	made := 0
	err := backoff.RetryNotify(func() error {
		made++
		return op()
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx), func(err error, next time.Duration) {
		l.Info(fmt.Sprintf("%s failed (attempt %d of %d), retrying in %s: %s", description, made, attempts, next.Round(time.Millisecond), err))
	})
	return made, err
}

// WaitFor polls probe at a constant interval until it succeeds or timeout
// expires. The probe gets the deadline context, so a hung probe cannot outlive
// the timeout. The last probe error is returned on timeout.
func WaitFor(ctx context.Context, description string, timeout time.Duration, probe func(ctx context.Context) error) error {
	l := log.LoggerFromContext(ctx)
	l.Info(fmt.Sprintf("waiting for %s", description))
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	var lastErr error
	err := backoff.Retry(func() error {
		lastErr = probe(ctx)
		if lastErr != nil {
			l.Debug(fmt.Sprintf("%s not ready: %s", description, lastErr))
		}
		return lastErr
	}, backoff.WithContext(backoff.NewConstantBackOff(pollInterval), ctx))
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return fmt.Errorf("timed out after %s waiting for %s: %w", timeout, description, lastErr)
	}
	return nil
}
