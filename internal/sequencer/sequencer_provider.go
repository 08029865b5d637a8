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

package sequencer

import (
	"fmt"

	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/pkg/types"
)

type ISequencerProvider interface {
	// GetDockerServiceDefinition describes the long-running sequencer service
	GetDockerServiceDefinition() *docker.ServiceDefinition
	// RPCURL is the Starknet RPC endpoint as seen from the host
	RPCURL() string
	// InternalRPCURL is the Starknet RPC endpoint as seen from other services
	InternalRPCURL() string
	// Network is the deployer network name, which is also the sub-directory the
	// deployer writes its output to
	Network() string
	// DefaultDeployerAccount is the pre-funded development account of the sequencer
	DefaultDeployerAccount() *types.StarknetAccount
	// Ports lists the host ports the sequencer publishes
	Ports() []int
}

// ErrUnknownProvider is returned for a provider name with no implementation
type ErrUnknownProvider struct {
	Provider string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown sequencer provider '%s'", e.Provider)
}
