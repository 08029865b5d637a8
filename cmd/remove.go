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

var forceRemove bool

var removeCmd = &cobra.Command{
	Use:               "remove <stack_name>",
	Aliases:           []string{"rm"},
	Short:             "Completely remove a stack",
	ValidArgsFunction: listStacks,
	Long: `Completely remove a stack

This command will completely delete a stack, including all of its data
and configuration.`,
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
		if !forceRemove {
			if err := confirm(fmt.Sprintf("remove stack '%s'?", stackName)); err != nil {
				return err
			}
		}
		fmt.Printf("deleting stack '%s'... ", stackName)
		if err := stackManager.RemoveStack(); err != nil {
			return err
		}
		fmt.Println("done")
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Remove the stack without prompting for confirmation")

	rootCmd.AddCommand(removeCmd)
}
