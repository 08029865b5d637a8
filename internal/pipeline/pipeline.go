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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/pkg/types"
)

// Stage is one step of the startup pipeline. A one-shot stage is complete
// when Run returns without error. A long-running stage is complete once its
// service is started and its readiness probe succeeded, which Run must wait for.
type Stage interface {
	Name() string
	Kind() types.StageKind
	Run(ctx context.Context) error
}

// AttemptCounter is implemented by stages that retry internally
type AttemptCounter interface {
	Attempts() int
}

type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage '%s' failed: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Runner executes stages strictly in order. Once a stage fails, or the
// context is cancelled, no further stage is started.
type Runner struct {
	// OnResult is called after each stage with its result, including skipped stages
	OnResult func(result *types.StageResult)
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Run(ctx context.Context, stages ...Stage) ([]*types.StageResult, error) {
	l := log.LoggerFromContext(ctx)
	results := make([]*types.StageResult, 0, len(stages))
	var failure error
	for _, stage := range stages {
		result := &types.StageResult{
			Name: stage.Name(),
			Kind: stage.Kind(),
		}
		if failure == nil && ctx.Err() != nil {
			failure = &StageError{Stage: stage.Name(), Err: ctx.Err()}
			result.Outcome = types.StageFailed
			result.Error = ctx.Err().Error()
		} else if failure != nil {
			result.Outcome = types.StageSkipped
		} else {
			l.Info(fmt.Sprintf("running stage %s", stage.Name()))
			start := time.Now()
			err := stage.Run(ctx)
			result.Duration = time.Since(start)
			result.Attempts = 1
			if counter, ok := stage.(AttemptCounter); ok {
				result.Attempts = counter.Attempts()
			}
			if err != nil {
				failure = &StageError{Stage: stage.Name(), Err: err}
				result.Outcome = types.StageFailed
				result.Error = err.Error()
			} else {
				result.Outcome = types.StageSucceeded
			}
		}
		results = append(results, result)
		if r.OnResult != nil {
			r.OnResult(result)
		}
	}
	return results, failure
}

// FailedStage returns the name of the stage that failed, if err came from a Runner
func FailedStage(err error) string {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage
	}
	return ""
}

// FuncStage adapts a function to a Stage
type FuncStage struct {
	StageName string
	StageKind types.StageKind
	Fn        func(ctx context.Context) error
}

func (s *FuncStage) Name() string {
	return s.StageName
}

func (s *FuncStage) Kind() types.StageKind {
	return s.StageKind
}

func (s *FuncStage) Run(ctx context.Context) error {
	return s.Fn(ctx)
}
