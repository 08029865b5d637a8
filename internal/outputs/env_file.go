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
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/pkg/types"
)

var envKeys = []string{types.EnvKakarotAddress, types.EnvProxyAccountClassHash}

// MarshalEnv renders the two handoff values as a dotenv document
func MarshalEnv(outputs *types.DeploymentOutputs) ([]byte, error) {
	content, err := godotenv.Marshal(outputs.EnvMap())
	if err != nil {
		return nil, err
	}
	return []byte(content + "\n"), nil
}

// WriteEnvFile writes the handoff file through a temp file and rename, so a
// reader sees either the previous file or the complete new one.
func WriteEnvFile(path string, outputs *types.DeploymentOutputs) error {
	content, err := MarshalEnv(outputs)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func ReadEnvFile(path string) (*types.DeploymentOutputs, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseEnv(content)
}

// ParseEnv validates a handoff document: exactly the two expected keys, each
// holding a valid field element
func ParseEnv(content []byte) (*types.DeploymentOutputs, error) {
	env, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid %s file: %w", constants.EnvFile, err)
	}
	for key := range env {
		if key != types.EnvKakarotAddress && key != types.EnvProxyAccountClassHash {
			return nil, fmt.Errorf("unexpected key '%s' in %s file", key, constants.EnvFile)
		}
	}
	values := make([]types.HexFelt, len(envKeys))
	for i, key := range envKeys {
		value, ok := env[key]
		if !ok {
			return nil, &MissingFieldError{File: constants.EnvFile, Path: key}
		}
		if values[i], err = ValidateFelt(constants.EnvFile, key, value); err != nil {
			return nil, err
		}
	}
	return &types.DeploymentOutputs{
		KakarotAddress:        values[0],
		ProxyAccountClassHash: values[1],
	}, nil
}
