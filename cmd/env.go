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

	"github.com/kkrt-labs/kstack/internal/outputs"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var envOutput string

var envCmd = &cobra.Command{
	Use:               "env <stack_name>",
	Short:             "Print the deployed Kakarot addresses",
	ValidArgsFunction: listStacks,
	Long: `Print the deployed Kakarot addresses

Prints the Kakarot contract address and the proxy account class hash the
gateway was started with. The default output is the .env file handed to the
gateway, which can be sourced by a shell.`,
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
		deploymentOutputs, err := stackManager.GetDeploymentOutputs()
		if err != nil {
			return err
		}
		b, err := formatDeploymentOutputs(deploymentOutputs, envOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func formatDeploymentOutputs(deploymentOutputs *types.DeploymentOutputs, format string) ([]byte, error) {
	switch format {
	case "env":
		return outputs.MarshalEnv(deploymentOutputs)
	case "json":
		b, err := json.MarshalIndent(deploymentOutputs, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "yaml":
		return yaml.Marshal(deploymentOutputs)
	default:
		return nil, fmt.Errorf("invalid output '%s'", format)
	}
}

func init() {
	envCmd.Flags().StringVarP(&envOutput, "output", "o", "env", "output format (\"env\"|\"json\"|\"yaml\")")
	rootCmd.AddCommand(envCmd)
}
