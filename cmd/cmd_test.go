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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOutputs = &types.DeploymentOutputs{
	KakarotAddress:        "0x7a4de9c1e1e4f8e79d1b6e1cbbb3b4d6d5e6f8a3b2c1d0e9f8a7b6c5d4e3f2a",
	ProxyAccountClassHash: "0x1b661756bf7d16210fc611626e1af4569baa1781ffc964bd018f4585ae241c1",
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateName(t *testing.T) {
	constants.StacksDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(constants.StacksDir, "existing"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(constants.StacksDir, "existing", "stack.json"), []byte("{}"), 0644))

	tests := []struct {
		Name       string
		StackName  string
		ErrorRegex string
	}{
		{Name: "Valid", StackName: "dev_stack-1"},
		{Name: "Empty", StackName: " ", ErrorRegex: "must not be empty"},
		{Name: "UpperCase", StackName: "Dev", ErrorRegex: "may only contain"},
		{Name: "Slash", StackName: "a/b", ErrorRegex: "may only contain"},
		{Name: "Exists", StackName: "existing", ErrorRegex: "stack 'existing' already exists"},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			err := validateName(tc.StackName)
			if tc.ErrorRegex == "" {
				assert.NoError(t, err)
			} else {
				assert.Regexp(t, tc.ErrorRegex, err)
			}
		})
	}
}

func TestValidatePorts(t *testing.T) {
	options := &types.InitOptions{
		SequencerRPCPort:     9944,
		SequencerMetricsPort: 9615,
		SequencerPeerPort:    30333,
		GatewayPort:          3030,
	}
	assert.NoError(t, validatePorts(options))

	options.GatewayPort = 9944
	assert.Regexp(t, "both use port 9944", validatePorts(options))

	options.GatewayPort = 70000
	assert.Regexp(t, "invalid gateway-port 70000", validatePorts(options))
}

func TestApplyConfigDefaults(t *testing.T) {
	viper.Set("deploy-retries", 9)
	viper.Set("gateway-image", "kakarot-rpc:dev")
	t.Cleanup(viper.Reset)

	options := &types.InitOptions{}
	applyConfigDefaults(options)
	assert.Equal(t, 9, options.DeployRetries)
	assert.Equal(t, "kakarot-rpc:dev", options.GatewayImageOverride)
}

func TestFormatDeploymentOutputs(t *testing.T) {
	b, err := formatDeploymentOutputs(testOutputs, "env")
	require.NoError(t, err)
	assert.Equal(t, `KAKAROT_ADDRESS="`+string(testOutputs.KakarotAddress)+`"`+"\n"+
		`PROXY_ACCOUNT_CLASS_HASH="`+string(testOutputs.ProxyAccountClassHash)+`"`+"\n", string(b))

	b, err = formatDeploymentOutputs(testOutputs, "json")
	require.NoError(t, err)
	var decoded *types.DeploymentOutputs
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, testOutputs, decoded)

	b, err = formatDeploymentOutputs(testOutputs, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), `kakarotAddress: "`+string(testOutputs.KakarotAddress)+`"`)

	_, err = formatDeploymentOutputs(testOutputs, "toml")
	assert.Regexp(t, "invalid output 'toml'", err)
}

func TestVersionCommand(t *testing.T) {
	BuildVersionOverride = "v1.2.3"
	t.Cleanup(func() {
		BuildVersionOverride = ""
		shortened = false
		output = "json"
	})

	out, err := executeRoot(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3\n", out)

	shortened = false
	out, err = executeRoot(t, "version", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: v1.2.3")
	assert.Contains(t, out, "License: Apache-2.0")
}

func TestListCommand(t *testing.T) {
	constants.StacksDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(constants.StacksDir, "dev"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(constants.StacksDir, "dev", "stack.json"), []byte("{}"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(constants.StacksDir, "not-a-stack"), 0755))

	out, err := executeRoot(t, "ls")
	require.NoError(t, err)
	assert.Equal(t, "Kakarot Stacks:\n\ndev\n\n", out)
}

func TestDocsCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := executeRoot(t, "docs", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "kstack.md"))
	assert.FileExists(t, filepath.Join(dir, "kstack_start.md"))
	assert.FileExists(t, filepath.Join(dir, "kstack_accounts_create.md"))
}

func TestInvalidAnsi(t *testing.T) {
	t.Cleanup(func() { ansi = "auto" })
	_, err := executeRoot(t, "ls", "--ansi", "sometimes")
	assert.Regexp(t, "invalid ansi option 'sometimes'", err)
}
