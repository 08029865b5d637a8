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
	"strings"

	"github.com/kkrt-labs/kstack/internal/stacks"
	"github.com/spf13/cobra"
)

var psCmd = &cobra.Command{
	Use:   "ps [a stack name]...",
	Short: "Returns information on running stacks",
	Long: `ps returns currently running stacks on your local machine.

	It also takes a continuous list of whitespace optional argument - stack name.`,
	Aliases: []string{"process"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		allStacks, err := filterStacks(args)
		if err != nil {
			return err
		}

		stackManager := stacks.NewStackManager(ctx)
		for _, stackName := range allStacks {
			if err := stackManager.LoadStack(stackName); err != nil {
				return err
			}
			running, err := stackManager.IsRunning()
			if err != nil {
				return err
			}
			if len(running) == 0 {
				fmt.Printf("%s: not running\n", stackName)
			} else {
				fmt.Printf("%s: %s\n", stackName, strings.Join(running, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(psCmd)
}
