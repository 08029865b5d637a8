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

package starknet

import (
	"github.com/NethermindEth/juno/core/felt"
	"golang.org/x/crypto/sha3"
)

// Entry points that map to the zero selector
var defaultEntryPoints = map[string]bool{
	"__default__":    true,
	"__l1_default__": true,
}

// StarknetKeccak is keccak256 truncated to 250 bits
func StarknetKeccak(data []byte) *felt.Felt {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	b := hash.Sum(nil)
	b[0] &= 0x03
	return new(felt.Felt).SetBytes(b)
}

func GetSelectorFromName(name string) string {
	if defaultEntryPoints[name] {
		return new(felt.Felt).String()
	}
	return StarknetKeccak([]byte(name)).String()
}
