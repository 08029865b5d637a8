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

package madara

import (
	"testing"

	"github.com/kkrt-labs/kstack/internal/sequencer"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/stretchr/testify/assert"
)

var _ sequencer.ISequencerProvider = &MadaraProvider{}

func testStack() *types.Stack {
	return &types.Stack{
		Name:                        "dev",
		ExposedSequencerRPCPort:     19944,
		ExposedSequencerMetricsPort: 19615,
		ExposedSequencerPeerPort:    40333,
		VersionManifest: &types.VersionManifest{
			Sequencer: &types.ManifestEntry{Image: "ghcr.io/keep-starknet-strange/madara", Tag: "v0.1.0"},
		},
	}
}

func TestGetDockerServiceDefinition(t *testing.T) {
	p := NewMadaraProvider(testStack())
	def := p.GetDockerServiceDefinition()
	assert.Equal(t, "starknet", def.ServiceName)
	assert.Equal(t, "ghcr.io/keep-starknet-strange/madara:v0.1.0", def.Service.Image)
	assert.Equal(t, []string{"19615:9615", "19944:9944", "40333:30333"}, def.Service.Ports)
	assert.Contains(t, def.Service.Command, "--rpc-external")
	assert.Contains(t, def.Service.Command, "--rpc-methods=unsafe")
	assert.Contains(t, def.Service.Command, "--rpc-cors=all")
	assert.Empty(t, def.Service.DependsOn)
}

func TestURLsAndAccount(t *testing.T) {
	p := NewMadaraProvider(testStack())
	assert.Equal(t, "http://127.0.0.1:19944", p.RPCURL())
	assert.Equal(t, "http://starknet:9944", p.InternalRPCURL())
	assert.Equal(t, "madara", p.Network())
	assert.Equal(t, DevAccountAddress, p.DefaultDeployerAccount().Address)
	assert.Equal(t, []int{19615, 19944, 40333}, p.Ports())
}
