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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kkrt-labs/kstack/internal/stacks"
	"github.com/spf13/cobra"
)

func prompt(promptText string, validate func(string) error) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(promptText)
		if str, err := reader.ReadString('\n'); err != nil {
			return "", err
		} else {
			str = strings.TrimSpace(str)
			if err := validate(str); err != nil {
				printError(err)
			} else {
				return str, nil
			}
		}
	}
}

func confirm(promptText string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N] ", promptText)
	str, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "y" || str == "yes" {
		return nil
	}
	return fmt.Errorf("confirmation declined with response: '%s'", str)
}

func printError(err error) {
	if fancyFeatures {
		fmt.Printf("\u001b[31mError: %s\u001b[0m\n", err.Error())
	} else {
		fmt.Printf("Error: %s\n", err.Error())
	}
}

// listStacks aids in completion, to provide completion to command for stack name.
func listStacks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	allStacks, err := stacks.ListStacks()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return allStacks, cobra.ShellCompDirectiveNoSpace
}

// filterStacks keeps the named stacks that exist, or returns every stack when
// no name was given
func filterStacks(args []string) ([]string, error) {
	allStacks, err := stacks.ListStacks()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return allStacks, nil
	}
	namedStacks := make([]string, 0, len(args))
	for _, stackName := range args {
		if contains(allStacks, strings.TrimSpace(stackName)) {
			namedStacks = append(namedStacks, stackName)
		} else {
			fmt.Printf("stack name - %s, is not present on your local machine. Run `%s ls` to see all available stacks.\n", stackName, ExecutableName)
		}
	}
	return namedStacks, nil
}

func contains(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}
	return false
}
