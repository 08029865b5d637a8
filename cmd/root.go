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
	"os"
	"strings"

	"github.com/kkrt-labs/kstack/internal/core"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/mattn/go-isatty"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var ansi string
var verbose bool
var fancyFeatures bool
var requestTimeout int

var logger log.Logger = &log.StdoutLogger{
	LogLevel: log.Info,
}

var ExecutableName = "kstack"

func GetKakarotAsciiArt() string {
	s := ""
	s += "\u001b[33m    __        __             \u001b[0m\n" // yellow
	s += "\u001b[33m   / /_______/ /_____ ______/ /__\u001b[0m\n"
	s += "\u001b[31m  / //_/ ___/ __/ __ `/ ___/ //_/\u001b[0m\n" // red
	s += "\u001b[31m / ,< (__  ) /_/ /_/ / /__/ ,<   \u001b[0m\n"
	s += "\u001b[35m/_/|_/____/\\__/\\__,_/\\___/_/|_|  \u001b[0m\n" // magenta
	return s
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   ExecutableName,
	Short: "kstack is a developer tool used to manage local Kakarot development stacks",
	Long: GetKakarotAsciiArt() + `
kstack is a developer tool used to manage local Kakarot development stacks

A stack is a Starknet sequencer, a one-shot deployer of the Kakarot contracts,
a parser extracting the deployed addresses, and the Kakarot RPC gateway serving
the Ethereum JSON-RPC API. Each component only starts once the component it
depends on completed.

To get started run: kstack init
	`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(ansi) {
		case "never":
			fancyFeatures = false
		case "always":
			fancyFeatures = true
		case "auto":
			fancyFeatures = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		default:
			return fmt.Errorf("invalid ansi option '%s'", ansi)
		}
		core.SetRequestTimeout(requestTimeout)
		if verbose {
			logger = log.NewLogrusLogger(logrus.Fields{"stack_cmd": cmd.Name()})
			logger.SetLogLevel(log.Debug)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kstack.yaml)")
	rootCmd.PersistentFlags().StringVar(&ansi, "ansi", "auto", "control when to print ANSI control characters (\"never\"|\"always\"|\"auto\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose log output")
	rootCmd.PersistentFlags().IntVar(&requestTimeout, "request-timeout", 0, "Timeout in seconds of each request to the sequencer and gateway RPC")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".kstack" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".kstack")
	}

	viper.SetEnvPrefix("KSTACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
