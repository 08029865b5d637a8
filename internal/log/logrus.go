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
	"github.com/sirupsen/logrus"
)

// LogrusLogger is used for --verbose runs, where every step is printed with
// a timestamp and level rather than collapsed into a spinner.
type LogrusLogger struct {
	Entry *logrus.Entry
}

func NewLogrusLogger(fields logrus.Fields) *LogrusLogger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	logger.SetLevel(logrus.TraceLevel)
	return &LogrusLogger{Entry: logrus.NewEntry(logger).WithFields(fields)}
}

func (l *LogrusLogger) SetLogLevel(level LogLevel) {
	switch level {
	case Trace:
		l.Entry.Logger.SetLevel(logrus.TraceLevel)
	case Debug:
		l.Entry.Logger.SetLevel(logrus.DebugLevel)
	case Info:
		l.Entry.Logger.SetLevel(logrus.InfoLevel)
	case Warn:
		l.Entry.Logger.SetLevel(logrus.WarnLevel)
	default:
		l.Entry.Logger.SetLevel(logrus.ErrorLevel)
	}
}

func (l *LogrusLogger) Trace(s string) {
	l.Entry.Trace(s)
}

func (l *LogrusLogger) Debug(s string) {
	l.Entry.Debug(s)
}

func (l *LogrusLogger) Info(s string) {
	l.Entry.Info(s)
}

func (l *LogrusLogger) Warn(s string) {
	l.Entry.Warn(s)
}

func (l *LogrusLogger) Error(e error) {
	l.Entry.Error(e.Error())
}
