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

package deployer

import (
	"testing"

	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/sequencer/madara"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/stretchr/testify/assert"
)

func testStack() *types.Stack {
	return &types.Stack{
		Name:                    "dev",
		ExposedSequencerRPCPort: 9944,
		DeployerAccount:         &types.StarknetAccount{Address: "0x3", PrivateKey: "0x1234"},
		VersionManifest: &types.VersionManifest{
			Sequencer: &types.ManifestEntry{Image: "madara"},
			Deployer:  &types.ManifestEntry{Image: "ghcr.io/kkrt-labs/kakarot/deployer", Tag: "latest"},
			Parser:    &types.ManifestEntry{Image: "apteno/alpine-jq", Tag: "main"},
		},
	}
}

func TestGetDeployerServiceDefinition(t *testing.T) {
	s := testStack()
	def := GetDeployerServiceDefinition(s, madara.NewMadaraProvider(s))
	assert.Equal(t, "kakarot-deployer", def.ServiceName)
	assert.Equal(t, "ghcr.io/kkrt-labs/kakarot/deployer:latest", def.Service.Image)
	assert.Equal(t, map[string]string{
		"ACCOUNT_ADDRESS":  "0x3",
		"PRIVATE_KEY":      "0x1234",
		"RPC_URL":          "http://starknet:9944",
		"STARKNET_NETWORK": "madara",
	}, def.Service.Environment)
	assert.Equal(t, []string{"deployments:/app/kakarot/deployments"}, def.Service.Volumes)
	assert.Equal(t, docker.ServiceStarted, def.Service.DependsOn["starknet"]["condition"])
	assert.Equal(t, "on-failure", def.Service.Restart)
	assert.Equal(t, []string{"deployments"}, def.VolumeNames)
}

func TestGetParserServiceDefinition(t *testing.T) {
	s := testStack()
	def := GetParserServiceDefinition(s, madara.NewMadaraProvider(s))
	assert.Equal(t, "deployments-parser", def.ServiceName)
	assert.Equal(t, "apteno/alpine-jq:main", def.Service.Image)
	assert.Equal(t, []string{"deployments:/deployments"}, def.Service.Volumes)
	assert.Equal(t, docker.ServiceCompletedSuccessfully, def.Service.DependsOn["kakarot-deployer"]["condition"])
	assert.Empty(t, def.Service.Restart)
}

func TestParserScript(t *testing.T) {
	expected := `set -e
KAKAROT_ADDRESS=$$(jq -er '.kakarot.address' /deployments/madara/deployments.json)
PROXY_ACCOUNT_CLASS_HASH=$$(jq -er '.proxy' /deployments/madara/declarations.json)
printf 'KAKAROT_ADDRESS=%s\nPROXY_ACCOUNT_CLASS_HASH=%s\n' "$$KAKAROT_ADDRESS" "$$PROXY_ACCOUNT_CLASS_HASH" > /deployments/.env.tmp
mv /deployments/.env.tmp /deployments/.env
`
	assert.Equal(t, expected, ParserScript("madara"))
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, "katana/deployments.json", DeploymentsPath("katana"))
	assert.Equal(t, "katana/declarations.json", DeclarationsPath("katana"))
}
