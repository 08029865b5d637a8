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
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/internal/stacks"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initOptions types.InitOptions

// Stack names become compose project names, which only allow these characters
var stackNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var initCmd = &cobra.Command{
	Use:   "init [stack_name]",
	Short: "Create a new Kakarot local dev stack",
	Long: `Create a new Kakarot local dev stack

The stack is made of a Starknet sequencer, the Kakarot deployer, the deployments
parser and the Kakarot RPC gateway. Defaults for the flags can be set in the
config file or with KSTACK_ prefixed environment variables.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		if err := initCommon(args); err != nil {
			return err
		}
		stackManager := stacks.NewStackManager(ctx)
		if err := stackManager.InitStack(&initOptions); err != nil {
			if stackManager.Stack != nil {
				if verr := stackManager.RemoveStack(); verr != nil {
					l := log.LoggerFromContext(ctx)
					l.Info(fmt.Sprintf("Error whilst removing the stack: %s", verr.Error()))
				}
			}
			// return the init error to not hide the issue
			return err
		}
		fmt.Printf("Stack '%s' created!\nTo start your new stack run:\n\n%s start %s\n", initOptions.StackName, ExecutableName, initOptions.StackName)
		fmt.Printf("\nYour docker compose file for this stack can be found at: %s\n\n", filepath.Join(stackManager.Stack.InitDir, "docker-compose.yml"))
		return nil
	},
}

func initCommon(args []string) error {
	if len(args) > 0 {
		initOptions.StackName = args[0]
		if err := validateName(initOptions.StackName); err != nil {
			return err
		}
	} else {
		stackName, err := prompt("stack name: ", validateName)
		if err != nil {
			return err
		}
		initOptions.StackName = stackName
		fmt.Println("You selected " + initOptions.StackName)
	}
	applyConfigDefaults(&initOptions)
	return validatePorts(&initOptions)
}

// applyConfigDefaults fills the options from the config file and environment,
// for every flag the user did not set on the command line
func applyConfigDefaults(options *types.InitOptions) {
	options.SequencerProvider = viper.GetString("sequencer")
	options.SequencerRPCPort = viper.GetInt("rpc-port")
	options.SequencerMetricsPort = viper.GetInt("metrics-port")
	options.SequencerPeerPort = viper.GetInt("peer-port")
	options.GatewayPort = viper.GetInt("gateway-port")
	options.GatewayLogLevel = viper.GetString("gateway-log-level")
	options.DeployRetries = viper.GetInt("deploy-retries")
	options.ReadyTimeoutSeconds = viper.GetInt("ready-timeout")
	options.SequencerImageOverride = viper.GetString("sequencer-image")
	options.DeployerImageOverride = viper.GetString("deployer-image")
	options.GatewayImageOverride = viper.GetString("gateway-image")
}

func validateName(stackName string) error {
	if strings.TrimSpace(stackName) == "" {
		return errors.New("stack name must not be empty")
	}
	if !stackNameRegex.MatchString(stackName) {
		return fmt.Errorf("stack name '%s' may only contain lowercase letters, digits, '-' and '_'", stackName)
	}
	if exists, err := stacks.CheckExists(stackName); exists {
		return fmt.Errorf("stack '%s' already exists", stackName)
	} else {
		return err
	}
}

func validatePorts(options *types.InitOptions) error {
	seen := map[int]string{}
	for name, port := range map[string]int{
		"rpc-port":     options.SequencerRPCPort,
		"metrics-port": options.SequencerMetricsPort,
		"peer-port":    options.SequencerPeerPort,
		"gateway-port": options.GatewayPort,
	} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %d", name, port)
		}
		if other, ok := seen[port]; ok {
			return fmt.Errorf("%s and %s both use port %d", other, name, port)
		}
		seen[port] = name
	}
	return nil
}

func init() {
	initCmd.Flags().StringP("sequencer", "s", types.SequencerProviderMadara.String(), fmt.Sprintf("Sequencer to use. Options are: %v", fftypes.FFEnumValues(types.SequencerProvider)))
	initCmd.Flags().Int("rpc-port", constants.DefaultSequencerRPCPort, "Host port of the sequencer Starknet RPC")
	initCmd.Flags().Int("metrics-port", constants.DefaultSequencerMetricsPort, "Host port of the sequencer metrics")
	initCmd.Flags().Int("peer-port", constants.DefaultSequencerPeerPort, "Host port of the sequencer p2p listener")
	initCmd.Flags().IntP("gateway-port", "p", constants.DefaultGatewayPort, "Host port of the Kakarot RPC gateway")
	initCmd.Flags().String("gateway-log-level", constants.DefaultGatewayLogLevel, "RUST_LOG filter of the Kakarot RPC gateway")
	initCmd.Flags().Int("deploy-retries", constants.DefaultDeployRetries, "Maximum attempts of the Kakarot deployment")
	initCmd.Flags().Int("ready-timeout", constants.DefaultReadyTimeoutSeconds, "Seconds to wait for the sequencer and the gateway to answer")
	initCmd.Flags().String("sequencer-image", "", "Sequencer image to use instead of the manifest one")
	initCmd.Flags().String("deployer-image", "", "Deployer image to use instead of the manifest one")
	initCmd.Flags().String("gateway-image", "", "Gateway image to use instead of the manifest one")
	for _, name := range []string{"sequencer", "rpc-port", "metrics-port", "peer-port", "gateway-port", "gateway-log-level",
		"deploy-retries", "ready-timeout", "sequencer-image", "deployer-image", "gateway-image"} {
		cobra.CheckErr(viper.BindPFlag(name, initCmd.Flags().Lookup(name)))
	}

	initCmd.Flags().StringVar(&initOptions.DeployerAccountAddress, "deployer-address", "", "Address of the pre-funded Starknet account deploying Kakarot. Defaults to the sequencer dev account")
	initCmd.Flags().StringVar(&initOptions.DeployerAccountKey, "deployer-key", "", "Private key of the deployer account")
	initCmd.Flags().StringVarP(&initOptions.ManifestPath, "manifest", "m", "", "Path to a manifest.json file containing the versions of each image to use in the stack")
	initCmd.Flags().StringVar(&initOptions.ComposeOverridePath, "compose-override", "", "Path to a compose file merged over the generated one")
	initCmd.Flags().StringToStringVarP(&initOptions.EnvironmentVars, "environment-var", "e", map[string]string{}, "Environment variable added to every service, as KEY=VALUE")

	rootCmd.AddCommand(initCmd)
}
