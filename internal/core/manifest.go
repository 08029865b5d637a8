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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/pkg/types"
)

func defaultSequencerEntry(provider fftypes.FFEnum) *types.ManifestEntry {
	if provider == types.SequencerProviderKatana {
		return &types.ManifestEntry{Image: constants.KatanaImageName, Tag: constants.KatanaImageTag}
	}
	return &types.ManifestEntry{Image: constants.MadaraImageName, Tag: constants.MadaraImageTag}
}

// GetDefaultManifest returns the images a stack uses when no manifest file
// is provided
func GetDefaultManifest(provider fftypes.FFEnum) *types.VersionManifest {
	return &types.VersionManifest{
		Sequencer: defaultSequencerEntry(provider),
		Deployer:  &types.ManifestEntry{Image: constants.DeployerImageName, Tag: constants.DeployerImageTag},
		Parser:    &types.ManifestEntry{Image: constants.ParserImageName, Tag: constants.ParserImageTag},
		Gateway:   &types.ManifestEntry{Image: constants.GatewayImageName, Tag: constants.GatewayImageTag},
	}
}

func ReadManifestFile(ctx context.Context, p string, provider fftypes.FFEnum) (*types.VersionManifest, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var manifest *types.VersionManifest
	if err := json.Unmarshal(d, &manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest file %s: %w", p, err)
	}
	if manifest == nil {
		manifest = &types.VersionManifest{}
	}

	log := log.LoggerFromContext(ctx)
	defaults := GetDefaultManifest(provider)
	if manifest.Sequencer == nil {
		log.Warn(fmt.Sprintf("No sequencer image present in manifest provided, using %s", defaults.Sequencer.GetDockerImageString()))
		manifest.Sequencer = defaults.Sequencer
	}
	if manifest.Deployer == nil {
		log.Warn(fmt.Sprintf("No deployer image present in manifest provided, using %s", defaults.Deployer.GetDockerImageString()))
		manifest.Deployer = defaults.Deployer
	}
	if manifest.Parser == nil {
		manifest.Parser = defaults.Parser
	}
	if manifest.Gateway == nil {
		log.Warn(fmt.Sprintf("No gateway image present in manifest provided, using %s", defaults.Gateway.GetDockerImageString()))
		manifest.Gateway = defaults.Gateway
	}
	return manifest, nil
}

// ParseImageReference turns "name[:tag]" into a manifest entry. Images with
// no repository path are treated as locally built.
func ParseImageReference(ref string) *types.ManifestEntry {
	entry := &types.ManifestEntry{Image: ref}
	if i := strings.LastIndex(ref, ":"); i > strings.LastIndex(ref, "/") {
		entry.Image = ref[:i]
		entry.Tag = ref[i+1:]
	}
	entry.Local = !strings.Contains(entry.Image, "/")
	return entry
}

// PinDigests resolves the registry digest of every non-local image in the
// manifest, so later pulls and starts use exactly those images.
func PinDigests(dockerMgr docker.IDockerManager, manifest *types.VersionManifest) error {
	for _, entry := range manifest.Entries() {
		if entry.Local {
			continue
		}
		digest, err := dockerMgr.GetImageDigest(entry.GetDockerTagString())
		if err != nil {
			return fmt.Errorf("failed to resolve digest for %s: %w", entry.GetDockerTagString(), err)
		}
		entry.SHA = strings.TrimPrefix(digest, "sha256:")
	}
	return nil
}
