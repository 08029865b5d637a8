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
	"fmt"

	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/spf13/cobra"
)

var follow bool

var logsCmd = &cobra.Command{
	Use:               "logs <stack_name> [service]...",
	Short:             "View log output from a stack",
	ValidArgsFunction: listStacks,
	Long: `View log output from a stack.

The most recent logs can be viewed, or you can follow the
output with the -f flag. Service names (starknet, kakarot-deployer,
kakarot-rpc) limit the output to those services.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(true)
		if err != nil {
			return err
		}
		stackManager, err := loadStack(ctx, args)
		if err != nil {
			return err
		}

		stackHasRunBefore, err := stackManager.Stack.HasRunBefore()
		if err != nil {
			return err
		}

		if stackHasRunBefore {
			fmt.Println("getting logs... ")
			commandLine := []string{}
			if fancyFeatures {
				commandLine = append(commandLine, "--ansi", "always")
			}
			commandLine = append(commandLine, "-p", stackManager.Stack.Name, "logs")
			if follow {
				commandLine = append(commandLine, "-f")
			}
			commandLine = append(commandLine, args[1:]...)
			if err := docker.RunDockerComposeCommand(ctx, stackManager.Stack.RuntimeDir, commandLine...); err != nil {
				return err
			}
		} else {
			fmt.Println("no logs found - stack has not been started")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().BoolVarP(&follow, "follow", "f", false, "follow log output")
}
