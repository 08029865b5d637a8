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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var accountPassword string

var accountsCreateCmd = &cobra.Command{
	Use:               "create <stack_name>",
	Short:             "Create a new EVM account in the stack",
	ValidArgsFunction: listStacks,
	Long: `Create a new EVM account in the stack

With --password the private key is also written as a keystore v3 wallet file
in the stack directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		stackManager, err := loadStack(ctx, args)
		if err != nil {
			return err
		}
		account, err := stackManager.CreateAccount(accountPassword)
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(account, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	accountsCreateCmd.Flags().StringVar(&accountPassword, "password", "", "Password of the keystore wallet file")
	accountsCmd.AddCommand(accountsCreateCmd)
}
