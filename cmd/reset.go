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

	"github.com/spf13/cobra"
)

var forceReset bool

var resetCmd = &cobra.Command{
	Use:               "reset <stack_name>",
	Short:             "Clear all data in a stack",
	ValidArgsFunction: listStacks,
	Long: `Clear all data in a stack

This command clears all data in a stack, but leaves the stack itself.
The deployed contracts and their addresses are discarded, and the next
start deploys Kakarot again on a fresh sequencer.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		stackManager, err := loadStack(ctx, args)
		if err != nil {
			return err
		}
		stackName := stackManager.Stack.Name
		if !forceReset {
			if err := confirm(fmt.Sprintf("reset all data in stack '%s'?", stackName)); err != nil {
				return err
			}
		}
		fmt.Printf("resetting stack '%s'... ", stackName)
		if err := stackManager.ResetStack(); err != nil {
			return err
		}
		fmt.Print("done\n")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&forceReset, "force", "f", false, "Reset the stack without prompting for confirmation")

	rootCmd.AddCommand(resetCmd)
}
