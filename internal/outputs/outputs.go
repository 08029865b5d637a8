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

package outputs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/tidwall/gjson"
)

// Query paths of the two handoff values in the deployer output
const (
	KakarotAddressPath        = "kakarot.address"
	ProxyAccountClassHashPath = "proxy"
)

var hexFeltRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{1,64}$`)

// Values an extraction tool writes in place of a missing field
var extractionErrorTokens = map[string]bool{
	"null":      true,
	"undefined": true,
}

type MissingFieldError struct {
	File string
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field '%s' is missing from %s", e.Path, e.File)
}

type InvalidFieldError struct {
	File   string
	Path   string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field '%s' in %s has invalid value '%s': %s", e.Path, e.File, e.Value, e.Reason)
}

// ExtractDeploymentOutputs reads the Kakarot contract address from the
// deployments document and the proxy account class hash from the
// declarations document.
func ExtractDeploymentOutputs(deploymentsJSON, declarationsJSON []byte) (*types.DeploymentOutputs, error) {
	kakarotAddress, err := extractFelt(constants.DeploymentsFile, deploymentsJSON, KakarotAddressPath)
	if err != nil {
		return nil, err
	}
	proxyClassHash, err := extractFelt(constants.DeclarationsFile, declarationsJSON, ProxyAccountClassHashPath)
	if err != nil {
		return nil, err
	}
	return &types.DeploymentOutputs{
		KakarotAddress:        kakarotAddress,
		ProxyAccountClassHash: proxyClassHash,
	}, nil
}

func extractFelt(file string, doc []byte, path string) (types.HexFelt, error) {
	if !gjson.ValidBytes(doc) {
		return "", &InvalidFieldError{File: file, Path: path, Reason: "document is not valid JSON"}
	}
	result := gjson.GetBytes(doc, path)
	switch {
	case !result.Exists(), result.Type == gjson.Null:
		return "", &MissingFieldError{File: file, Path: path}
	case result.Type != gjson.String:
		return "", &InvalidFieldError{File: file, Path: path, Value: result.Raw, Reason: "expected a string"}
	}
	return ValidateFelt(file, path, result.String())
}

// ValidateFelt checks value is a non-zero, 0x prefixed Starknet field element
func ValidateFelt(file, path, value string) (types.HexFelt, error) {
	value = strings.TrimSpace(value)
	switch {
	case value == "" || extractionErrorTokens[value]:
		return "", &MissingFieldError{File: file, Path: path}
	case !strings.HasPrefix(value, "0x"):
		return "", &InvalidFieldError{File: file, Path: path, Value: value, Reason: "expected a 0x prefixed hex string"}
	case !hexFeltRegex.MatchString(value):
		return "", &InvalidFieldError{File: file, Path: path, Value: value, Reason: "expected at most 64 hex digits after 0x"}
	}
	f, err := new(felt.Felt).SetString(value)
	if err != nil {
		return "", &InvalidFieldError{File: file, Path: path, Value: value, Reason: err.Error()}
	}
	if f.IsZero() {
		return "", &InvalidFieldError{File: file, Path: path, Value: value, Reason: "must not be zero"}
	}
	return types.HexFelt(value), nil
}
