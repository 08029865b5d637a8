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

import "fmt"

type VersionManifest struct {
	Sequencer *ManifestEntry `json:"sequencer,omitempty"`
	Deployer  *ManifestEntry `json:"deployer,omitempty"`
	Parser    *ManifestEntry `json:"parser,omitempty"`
	Gateway   *ManifestEntry `json:"gateway,omitempty"`
}

func (m *VersionManifest) Entries() []*ManifestEntry {
	if m == nil {
		return []*ManifestEntry{}
	}
	entries := []*ManifestEntry{}
	for _, entry := range []*ManifestEntry{m.Sequencer, m.Deployer, m.Parser, m.Gateway} {
		if entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

type ManifestEntry struct {
	Image string `json:"image,omitempty"`
	Tag   string `json:"tag,omitempty"`
	SHA   string `json:"sha,omitempty"`
	Local bool   `json:"local,omitempty"`
}

func (m *ManifestEntry) GetDockerImageString() string {
	if m.SHA != "" {
		return fmt.Sprintf("%s@sha256:%s", m.Image, m.SHA)
	} else if m.Tag != "" {
		return fmt.Sprintf("%s:%s", m.Image, m.Tag)
	}
	return m.Image
}

// GetDockerTagString ignores any pinned digest, for registry lookups.
func (m *ManifestEntry) GetDockerTagString() string {
	if m.Tag != "" {
		return fmt.Sprintf("%s:%s", m.Image, m.Tag)
	}
	return m.Image
}
