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

package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kkrt-labs/kstack/internal/docker/mocks"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultManifest(t *testing.T) {
	madara := GetDefaultManifest(types.SequencerProviderMadara)
	assert.Equal(t, "ghcr.io/keep-starknet-strange/madara:v0.1.0-experimental.3", madara.Sequencer.GetDockerImageString())
	assert.Equal(t, "apteno/alpine-jq:main", madara.Parser.GetDockerImageString())
	assert.Len(t, madara.Entries(), 4)

	katana := GetDefaultManifest(types.SequencerProviderKatana)
	assert.Equal(t, "ghcr.io/dojoengine/dojo:v0.3.10", katana.Sequencer.GetDockerImageString())
}

func TestReadManifestFileFillsDefaults(t *testing.T) {
	ctx := log.WithLogger(context.Background(), &log.StdoutLogger{LogLevel: log.Error})
	p := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"gateway":{"image":"kakarot-rpc","local":true}}`), 0644))

	manifest, err := ReadManifestFile(ctx, p, types.SequencerProviderMadara)
	require.NoError(t, err)
	assert.Equal(t, "kakarot-rpc", manifest.Gateway.GetDockerImageString())
	assert.True(t, manifest.Gateway.Local)
	assert.NotNil(t, manifest.Sequencer)
	assert.NotNil(t, manifest.Deployer)
	assert.NotNil(t, manifest.Parser)
}

func TestReadManifestFileErrors(t *testing.T) {
	ctx := context.Background()
	_, err := ReadManifestFile(ctx, filepath.Join(t.TempDir(), "missing.json"), types.SequencerProviderMadara)
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(p, []byte(`{`), 0644))
	_, err = ReadManifestFile(ctx, p, types.SequencerProviderMadara)
	assert.Regexp(t, "invalid manifest file", err)
}

func TestParseImageReference(t *testing.T) {
	tests := []struct {
		ref   string
		image string
		tag   string
		local bool
	}{
		{ref: "ghcr.io/kkrt-labs/kakarot-rpc/node:v0.2.0", image: "ghcr.io/kkrt-labs/kakarot-rpc/node", tag: "v0.2.0"},
		{ref: "ghcr.io/kkrt-labs/kakarot/deployer", image: "ghcr.io/kkrt-labs/kakarot/deployer"},
		{ref: "localhost:5000/madara", image: "localhost:5000/madara", local: false},
		{ref: "madara:dev", image: "madara", tag: "dev", local: true},
	}
	for _, tc := range tests {
		t.Run(tc.ref, func(t *testing.T) {
			entry := ParseImageReference(tc.ref)
			assert.Equal(t, tc.image, entry.Image)
			assert.Equal(t, tc.tag, entry.Tag)
			assert.Equal(t, tc.local, entry.Local)
		})
	}
}

func TestPinDigests(t *testing.T) {
	manifest := GetDefaultManifest(types.SequencerProviderMadara)
	manifest.Parser.Local = true
	dockerMgr := mocks.NewDockerManager()
	dockerMgr.Digests[manifest.Gateway.GetDockerTagString()] = "sha256:abcd"

	require.NoError(t, PinDigests(dockerMgr, manifest))
	assert.Equal(t, "abcd", manifest.Gateway.SHA)
	assert.Equal(t, "ghcr.io/kkrt-labs/kakarot-rpc/node@sha256:abcd", manifest.Gateway.GetDockerImageString())
	assert.Empty(t, manifest.Parser.SHA)
	assert.Len(t, dockerMgr.CallsWithPrefix("digest "), 3)
}
