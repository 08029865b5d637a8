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

package katana

import (
	"fmt"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/pkg/types"
)

const rpcPort = 5050

// First pre-funded account katana generates with its default seed
const (
	DevAccountAddress    = "0x517ececd29116499f4a1b64b094da79ba08dfd54a3edaa316134c41f8160973"
	DevAccountPrivateKey = "0x1800000000300000180000000000030000000000003006001800006600"
)

type KatanaProvider struct {
	stack *types.Stack
}

func NewKatanaProvider(stack *types.Stack) *KatanaProvider {
	return &KatanaProvider{stack: stack}
}

func (p *KatanaProvider) GetDockerServiceDefinition() *docker.ServiceDefinition {
	return &docker.ServiceDefinition{
		ServiceName: constants.SequencerServiceName,
		Service: &docker.Service{
			Image:      p.stack.VersionManifest.Sequencer.GetDockerImageString(),
			EntryPoint: []string{"katana"},
			Command: []string{
				"--disable-fee",
				"--host", "0.0.0.0",
				"--port", fmt.Sprintf("%d", rpcPort),
			},
			Ports: []string{
				fmt.Sprintf("%d:%d", p.stack.ExposedSequencerRPCPort, rpcPort),
			},
		},
	}
}

func (p *KatanaProvider) RPCURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", p.stack.ExposedSequencerRPCPort)
}

func (p *KatanaProvider) InternalRPCURL() string {
	return fmt.Sprintf("http://%s:%d", constants.SequencerServiceName, rpcPort)
}

func (p *KatanaProvider) Network() string {
	return "katana"
}

func (p *KatanaProvider) DefaultDeployerAccount() *types.StarknetAccount {
	return &types.StarknetAccount{
		Address:    DevAccountAddress,
		PrivateKey: DevAccountPrivateKey,
	}
}

func (p *KatanaProvider) Ports() []int {
	return []int{p.stack.ExposedSequencerRPCPort}
}
