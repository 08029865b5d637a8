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

const (
	EnvKakarotAddress        = "KAKAROT_ADDRESS"
	EnvProxyAccountClassHash = "PROXY_ACCOUNT_CLASS_HASH"
)

// DeploymentOutputs is the handoff between the deployer and the gateway: the
// address of the deployed Kakarot contract and the class hash of the proxy
// account contract.
type DeploymentOutputs struct {
	KakarotAddress        HexFelt `json:"kakarotAddress" yaml:"kakarotAddress"`
	ProxyAccountClassHash HexFelt `json:"proxyAccountClassHash" yaml:"proxyAccountClassHash"`
}

func (o *DeploymentOutputs) EnvMap() map[string]string {
	return map[string]string{
		EnvKakarotAddress:        string(o.KakarotAddress),
		EnvProxyAccountClassHash: string(o.ProxyAccountClassHash),
	}
}
