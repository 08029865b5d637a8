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

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:               "call <stack_name> <function> [calldata]...",
	Short:             "Call a view function of the Kakarot contract",
	ValidArgsFunction: listStacks,
	Long: `Call a view function of the Kakarot contract

The call is made directly against the sequencer Starknet RPC. Calldata are
felts, either 0x prefixed hex or decimal.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		stackManager, err := loadStack(ctx, args)
		if err != nil {
			return err
		}
		result, err := stackManager.CallKakarot(args[1], args[2:])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(result, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
}
