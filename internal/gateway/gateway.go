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

package gateway

import (
	"fmt"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/sequencer"
	"github.com/kkrt-labs/kstack/pkg/types"
)

const rpcPort = 3030

// GetGatewayServiceDefinition describes the Kakarot RPC service. It reads the
// .env handoff file from its working directory, which is the root of the
// deployments volume, so it must only start after the parser completed.
func GetGatewayServiceDefinition(s *types.Stack, seq sequencer.ISequencerProvider) *docker.ServiceDefinition {
	return &docker.ServiceDefinition{
		ServiceName: constants.GatewayServiceName,
		Service: &docker.Service{
			Image: s.VersionManifest.Gateway.GetDockerImageString(),
			Environment: map[string]string{
				"KAKAROT_HTTP_RPC_ADDRESS":     fmt.Sprintf("0.0.0.0:%d", rpcPort),
				"STARKNET_NETWORK":             seq.InternalRPCURL(),
				"RUST_LOG":                     s.GatewayLogLevel,
				"DEPLOYER_ACCOUNT_ADDRESS":     s.DeployerAccount.Address,
				"DEPLOYER_ACCOUNT_PRIVATE_KEY": s.DeployerAccount.PrivateKey,
			},
			Volumes: []string{docker.DeploymentsVolumeMount(constants.GatewayAppDir)},
			Ports:   []string{fmt.Sprintf("%d:%d", s.ExposedGatewayPort, rpcPort)},
			DependsOn: docker.DependsOn{
				constants.SequencerServiceName: {"condition": docker.ServiceStarted},
				constants.ParserServiceName:    {"condition": docker.ServiceCompletedSuccessfully},
			},
			Restart: docker.RestartOnFailure,
		},
		VolumeNames: []string{constants.DeploymentsVolume},
	}
}

// DeploymentOutputsPatch is a compose fragment that hands the two values to
// the gateway as environment variables, in addition to the .env file.
func DeploymentOutputsPatch(outputs *types.DeploymentOutputs) *docker.DockerComposeConfig {
	return &docker.DockerComposeConfig{
		Services: map[string]*docker.Service{
			constants.GatewayServiceName: {
				Environment: outputs.EnvMap(),
			},
		},
	}
}

func RPCURL(s *types.Stack) string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.ExposedGatewayPort)
}
