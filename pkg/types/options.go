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

import "github.com/hyperledger/firefly-common/pkg/fftypes"

type PullOptions struct {
	Retries    int
	PinDigests bool
}

type StartOptions struct {
	NoRollback bool
}

type InitOptions struct {
	StackName              string
	SequencerProvider      string
	SequencerRPCPort       int
	SequencerMetricsPort   int
	SequencerPeerPort      int
	GatewayPort            int
	DeployerAccountAddress string
	DeployerAccountKey     string
	GatewayLogLevel        string
	DeployRetries          int
	ReadyTimeoutSeconds    int
	ManifestPath           string
	ComposeOverridePath    string
	EnvironmentVars        map[string]string
	SequencerImageOverride string
	DeployerImageOverride  string
	GatewayImageOverride   string
}

const SequencerProvider = "sequencerprovider"

var (
	SequencerProviderMadara = fftypes.FFEnumValue(SequencerProvider, "madara")
	SequencerProviderKatana = fftypes.FFEnumValue(SequencerProvider, "katana")
)
