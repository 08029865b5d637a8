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
	"os"
	"path/filepath"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
)

type Stack struct {
	Name                        string                 `json:"name,omitempty"`
	SequencerProvider           fftypes.FFEnum         `json:"sequencerProvider"`
	ExposedSequencerRPCPort     int                    `json:"exposedSequencerRPCPort,omitempty"`
	ExposedSequencerMetricsPort int                    `json:"exposedSequencerMetricsPort,omitempty"`
	ExposedSequencerPeerPort    int                    `json:"exposedSequencerPeerPort,omitempty"`
	ExposedGatewayPort          int                    `json:"exposedGatewayPort,omitempty"`
	DeployerAccount             *StarknetAccount       `json:"deployerAccount,omitempty"`
	GatewayLogLevel             string                 `json:"gatewayLogLevel,omitempty"`
	DeployRetries               int                    `json:"deployRetries,omitempty"`
	ReadyTimeoutSeconds         int                    `json:"readyTimeoutSeconds,omitempty"`
	VersionManifest             *VersionManifest       `json:"versionManifest,omitempty"`
	EnvironmentVars             map[string]interface{} `json:"environmentVars"`
	InitDir                     string                 `json:"-"`
	RuntimeDir                  string                 `json:"-"`
	StackDir                    string                 `json:"-"`
	State                       *StackState            `json:"-"`
}

// StarknetAccount is a pre-funded account on the sequencer used to pay for
// the Kakarot deployment and by the gateway to deploy EOAs.
type StarknetAccount struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

// VolumeName is the project-scoped name of the shared deployments volume.
func (s *Stack) VolumeName() string {
	return s.Name + "_deployments"
}

func (s *Stack) HasRunBefore() (bool, error) {
	_, err := os.Stat(filepath.Join(s.StackDir, "runtime"))
	switch {
	case os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

func (s *Stack) ConcatenateWithProvidedEnvironmentVars(input map[string]string) map[string]string {
	result := make(map[string]string)
	for k, v := range input {
		result[k] = v
	}
	for k, v := range s.EnvironmentVars {
		if str, ok := v.(string); ok {
			result[k] = str // Overwrites existing keys from previous map
		}
	}
	return result
}
