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
	"time"

	"github.com/briandowns/spinner"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/spf13/cobra"
)

var pullOptions types.PullOptions

var pullCmd = &cobra.Command{
	Use:               "pull <stack_name>",
	Short:             "Pull a stack",
	ValidArgsFunction: listStacks,
	Long: `Pull a stack

Pull the images for a stack. With --pin-digests the registry digest of each
image is resolved first and recorded in the stack, so every later start uses
exactly those images.
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
		if spin != nil {
			spin.Start()
		}
		err = stackManager.PullStack(&pullOptions)
		if spin != nil {
			spin.Stop()
		}
		return err
	},
}

func init() {
	pullCmd.Flags().IntVarP(&pullOptions.Retries, "retries", "r", 0, "Retry attempts to perform on image pull failure")
	pullCmd.Flags().BoolVar(&pullOptions.PinDigests, "pin-digests", false, "Resolve and record the registry digest of each image")

	rootCmd.AddCommand(pullCmd)
}
