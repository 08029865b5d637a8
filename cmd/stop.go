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

var stopCmd = &cobra.Command{
	Use:               "stop <stack_name>",
	Short:             "Stop a stack",
	ValidArgsFunction: listStacks,
	Long:              `Stop a stack`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		stackManager, err := loadStack(ctx, args)
		if err != nil {
			return err
		}
		fmt.Printf("stopping stack '%s'... ", stackManager.Stack.Name)
		if err := stackManager.StopStack(); err != nil {
			return err
		}
		fmt.Print("done\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
