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
	"fmt"
	"path"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/outputs"
	"github.com/kkrt-labs/kstack/internal/sequencer"
	"github.com/kkrt-labs/kstack/pkg/types"
)

// DeploymentsPath is the location of the deployer output inside the volume
func DeploymentsPath(network string) string {
	return path.Join(network, constants.DeploymentsFile)
}

// DeclarationsPath is the location of the declared class hashes inside the volume
func DeclarationsPath(network string) string {
	return path.Join(network, constants.DeclarationsFile)
}

// GetDeployerServiceDefinition describes the one-shot service deploying the
// Kakarot contracts to the sequencer. It only needs the sequencer process to
// be started and relies on its restart policy when the RPC is not yet up.
func GetDeployerServiceDefinition(s *types.Stack, seq sequencer.ISequencerProvider) *docker.ServiceDefinition {
	return &docker.ServiceDefinition{
		ServiceName: constants.DeployerServiceName,
		Service: &docker.Service{
			Image: s.VersionManifest.Deployer.GetDockerImageString(),
			Environment: map[string]string{
				"ACCOUNT_ADDRESS":  s.DeployerAccount.Address,
				"PRIVATE_KEY":      s.DeployerAccount.PrivateKey,
				"RPC_URL":          seq.InternalRPCURL(),
				"STARKNET_NETWORK": seq.Network(),
			},
			Volumes: []string{docker.DeploymentsVolumeMount(constants.DeployerDeploymentsDir)},
			DependsOn: docker.DependsOn{
				constants.SequencerServiceName: {"condition": docker.ServiceStarted},
			},
			Restart: docker.RestartOnFailure,
		},
		VolumeNames: []string{constants.DeploymentsVolume},
	}
}

// ParserScript extracts the two handoff values from the deployer output and
// writes the .env file. jq -e makes a missing field fail the script instead
// of writing null.
func ParserScript(network string) string {
	dir := constants.ParserDeploymentsDir
	envFile := path.Join(dir, constants.EnvFile)
	return fmt.Sprintf(`set -e
%[1]s=$$(jq -er '.%[2]s' %[3]s)
%[4]s=$$(jq -er '.%[5]s' %[6]s)
printf '%[1]s=%%s\n%[4]s=%%s\n' "$$%[1]s" "$$%[4]s" > %[7]s.tmp
mv %[7]s.tmp %[7]s
`,
		types.EnvKakarotAddress, outputs.KakarotAddressPath, path.Join(dir, DeploymentsPath(network)),
		types.EnvProxyAccountClassHash, outputs.ProxyAccountClassHashPath, path.Join(dir, DeclarationsPath(network)),
		envFile,
	)
}

// GetParserServiceDefinition describes the one-shot service writing the .env
// handoff file once the deployer has exited successfully
func GetParserServiceDefinition(s *types.Stack, seq sequencer.ISequencerProvider) *docker.ServiceDefinition {
	return &docker.ServiceDefinition{
		ServiceName: constants.ParserServiceName,
		Service: &docker.Service{
			Image:      s.VersionManifest.Parser.GetDockerImageString(),
			EntryPoint: []string{"/bin/sh", "-c"},
			Command:    []string{ParserScript(seq.Network())},
			Volumes:    []string{docker.DeploymentsVolumeMount(constants.ParserDeploymentsDir)},
			DependsOn: docker.DependsOn{
				constants.DeployerServiceName: {"condition": docker.ServiceCompletedSuccessfully},
			},
		},
		VolumeNames: []string{constants.DeploymentsVolume},
	}
}
