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

package cmd

import (
	"context"
	"fmt"

	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/internal/stacks"
)

func newCommandContext(isLogCmd bool) (context.Context, error) {
	ctx := log.WithVerbosity(context.Background(), verbose)
	if isLogCmd {
		ctx = context.WithValue(ctx, docker.CtxIsLogCmdKey{}, true)
	}
	ctx = log.WithLogger(ctx, logger)

	version, err := docker.CheckDockerConfig()
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, docker.CtxComposeVersionKey{}, version), nil
}

// loadStack builds a stack manager for the stack named by the first argument
func loadStack(ctx context.Context, args []string) (*stacks.StackManager, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no stack specified")
	}
	stackManager := stacks.NewStackManager(ctx)
	if err := stackManager.LoadStack(args[0]); err != nil {
		return nil, err
	}
	return stackManager, nil
}
