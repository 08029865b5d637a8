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
	"time"

	"github.com/briandowns/spinner"
	"github.com/kkrt-labs/kstack/internal/gateway"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/spf13/cobra"
)

var startOptions types.StartOptions

var startCmd = &cobra.Command{
	Use:               "start <stack_name>",
	Short:             "Start a stack",
	ValidArgsFunction: listStacks,
	Long: `Start a stack

This command will start a stack and run it in the background.

The first start runs each component in order: the sequencer, the Kakarot
deployment, the extraction of the deployed addresses, and the gateway. A
component only starts once the previous one completed. Later starts reuse
the deployed addresses.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var spin *spinner.Spinner
		if fancyFeatures && !verbose {
			spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
			logger = log.NewSpinnerLogger(spin)
		}
		ctx, err := newCommandContext(false)
		if err != nil {
			return err
		}
		stackManager, err := loadStack(ctx, args)
		if err != nil {
			return err
		}
		stackName := stackManager.Stack.Name

		if spin != nil {
			spin.Start()
		}
		err = stackManager.StartStack(&startOptions)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			return err
		}

		fmt.Print("\n\n")
		if deploymentOutputs := stackManager.Stack.State.DeploymentOutputs; deploymentOutputs != nil {
			fmt.Printf("%s=%s\n", types.EnvKakarotAddress, deploymentOutputs.KakarotAddress)
			fmt.Printf("%s=%s\n\n", types.EnvProxyAccountClassHash, deploymentOutputs.ProxyAccountClassHash)
		}
		fmt.Printf("Kakarot RPC: %s\n", gateway.RPCURL(stackManager.Stack))
		fmt.Printf("\nTo see logs for your stack run:\n\n%s logs %s\n\n", ExecutableName, stackName)
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVarP(&startOptions.NoRollback, "no-rollback", "b", false, "Do not automatically rollback changes if first time setup fails")

	rootCmd.AddCommand(startCmd)
}
