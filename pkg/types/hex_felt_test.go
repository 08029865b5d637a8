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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestHexFeltMarshalYAML(t *testing.T) {
	tests := []struct {
		Name     string
		Outputs  *DeploymentOutputs
		Expected string
	}{
		{
			Name: "TestCase1",
			Outputs: &DeploymentOutputs{
				KakarotAddress:        "0x123abc",
				ProxyAccountClassHash: "0x0",
			},
			Expected: "kakarotAddress: \"0x123abc\"\nproxyAccountClassHash: \"0x0\"\n",
		},
		{
			Name: "TestCase2",
			Outputs: &DeploymentOutputs{
				KakarotAddress:        "0x52a419fd88f53f9a29d22c3d8db24dd9a9a01a41a483ac660d88622f83c40db",
				ProxyAccountClassHash: "0x1",
			},
			Expected: "kakarotAddress: \"0x52a419fd88f53f9a29d22c3d8db24dd9a9a01a41a483ac660d88622f83c40db\"\nproxyAccountClassHash: \"0x1\"\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			b, err := yaml.Marshal(tc.Outputs)
			assert.NoError(t, err)
			assert.Equal(t, tc.Expected, string(b))
		})
	}
}

func TestDeploymentOutputsEnvMap(t *testing.T) {
	outputs := &DeploymentOutputs{KakarotAddress: "0xabc", ProxyAccountClassHash: "0xdef"}
	assert.Equal(t, map[string]string{
		"KAKAROT_ADDRESS":          "0xabc",
		"PROXY_ACCOUNT_CLASS_HASH": "0xdef",
	}, outputs.EnvMap())
}

func TestManifestEntryImageStrings(t *testing.T) {
	entry := &ManifestEntry{Image: "ghcr.io/kkrt-labs/kakarot-rpc/node", Tag: "v0.1.0"}
	assert.Equal(t, "ghcr.io/kkrt-labs/kakarot-rpc/node:v0.1.0", entry.GetDockerImageString())
	entry.SHA = "abcd"
	assert.Equal(t, "ghcr.io/kkrt-labs/kakarot-rpc/node@sha256:abcd", entry.GetDockerImageString())
	assert.Equal(t, "ghcr.io/kkrt-labs/kakarot-rpc/node:v0.1.0", entry.GetDockerTagString())

	var nilManifest *VersionManifest
	assert.Empty(t, nilManifest.Entries())
	assert.Len(t, (&VersionManifest{Sequencer: entry, Gateway: entry}).Entries(), 2)
}
