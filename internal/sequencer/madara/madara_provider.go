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
	"fmt"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/pkg/types"
)

const (
	rpcPort     = 9944
	metricsPort = 9615
	peerPort    = 30333
)

// Pre-funded account of the madara dev chain
const (
	DevAccountAddress    = "0x3"
	DevAccountPrivateKey = "0x00c1cf1490de1352865301bb8705143f3ef938f97fdf892f1090dcb5ac7bcd1d"
)

type MadaraProvider struct {
	stack *types.Stack
}

func NewMadaraProvider(stack *types.Stack) *MadaraProvider {
	return &MadaraProvider{stack: stack}
}

func (p *MadaraProvider) GetDockerServiceDefinition() *docker.ServiceDefinition {
	return &docker.ServiceDefinition{
		ServiceName: constants.SequencerServiceName,
		Service: &docker.Service{
			Image: p.stack.VersionManifest.Sequencer.GetDockerImageString(),
			Command: []string{
				"--dev",
				"--tmp",
				"--rpc-external",
				"--rpc-methods=unsafe",
				"--rpc-cors=all",
				fmt.Sprintf("--rpc-port=%d", rpcPort),
				fmt.Sprintf("--prometheus-port=%d", metricsPort),
				"--prometheus-external",
				fmt.Sprintf("--port=%d", peerPort),
			},
			Ports: []string{
				fmt.Sprintf("%d:%d", p.stack.ExposedSequencerMetricsPort, metricsPort),
				fmt.Sprintf("%d:%d", p.stack.ExposedSequencerRPCPort, rpcPort),
				fmt.Sprintf("%d:%d", p.stack.ExposedSequencerPeerPort, peerPort),
			},
		},
	}
}

func (p *MadaraProvider) RPCURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", p.stack.ExposedSequencerRPCPort)
}

func (p *MadaraProvider) InternalRPCURL() string {
	return fmt.Sprintf("http://%s:%d", constants.SequencerServiceName, rpcPort)
}

func (p *MadaraProvider) Network() string {
	return "madara"
}

func (p *MadaraProvider) DefaultDeployerAccount() *types.StarknetAccount {
	return &types.StarknetAccount{
		Address:    DevAccountAddress,
		PrivateKey: DevAccountPrivateKey,
	}
}

func (p *MadaraProvider) Ports() []int {
	return []int{p.stack.ExposedSequencerMetricsPort, p.stack.ExposedSequencerRPCPort, p.stack.ExposedSequencerPeerPort}
}
