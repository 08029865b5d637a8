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

package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestStdoutLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := &StdoutLogger{LogLevel: Warn, Out: buf}
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error(errors.New("boom"))
	assert.Equal(t, "shown\nboom\n", buf.String())
}

func TestLogLevelFromString(t *testing.T) {
	level, err := LogLevelFromString(" DEBUG ")
	assert.NoError(t, err)
	assert.Equal(t, Debug, level)
	assert.Equal(t, "debug", level.String())

	_, err = LogLevelFromString("chatty")
	assert.Regexp(t, "not a valid log level", err)
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.False(t, VerbosityFromContext(ctx))
	assert.IsType(t, &StdoutLogger{}, LoggerFromContext(ctx))

	logger := NewLogrusLogger(logrus.Fields{"stack": "test"})
	ctx = WithVerbosity(WithLogger(ctx, logger), true)
	assert.True(t, VerbosityFromContext(ctx))
	assert.Equal(t, logger, LoggerFromContext(ctx))
}

func TestLogrusLoggerWritesFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogrusLogger(logrus.Fields{"stack": "dev"})
	logger.Entry.Logger.SetOutput(buf)
	logger.SetLogLevel(Info)
	logger.Debug("not written")
	logger.Info("starting sequencer")
	assert.Contains(t, buf.String(), "starting sequencer")
	assert.Contains(t, buf.String(), "stack=dev")
	assert.NotContains(t, buf.String(), "not written")
}
