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
	"github.com/kkrt-labs/kstack/internal/stacks"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [a stack name]...",
	Short: "Get info about a stack",
	Long: `Get info about a stack such as each container name
	and image version. If none is given, it runs the "info" command for every stack on the local machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(true)
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
			if err := stackManager.PrintStacksInfo(); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
