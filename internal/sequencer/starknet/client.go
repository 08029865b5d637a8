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
	"context"
	"fmt"
	"time"

	"github.com/kkrt-labs/kstack/internal/core"
)

const latestBlock = "latest"

type StarknetClient struct {
	rpc *core.RPCClient
}

type FunctionCall struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

func NewStarknetClient(rpcURL string) *StarknetClient {
	return &StarknetClient{
		rpc: core.NewRPCClient(rpcURL),
	}
}

func (c *StarknetClient) ChainID(ctx context.Context) (string, error) {
	var chainID string
	if err := c.rpc.Invoke(ctx, "starknet_chainId", &chainID); err != nil {
		return "", err
	}
	return chainID, nil
}

func (c *StarknetClient) BlockNumber(ctx context.Context) (uint64, error) {
	var blockNumber uint64
	if err := c.rpc.Invoke(ctx, "starknet_blockNumber", &blockNumber); err != nil {
		return 0, err
	}
	return blockNumber, nil
}

// GetClassHashAt returns the class hash of the contract deployed at address
func (c *StarknetClient) GetClassHashAt(ctx context.Context, address string) (string, error) {
	var classHash string
	if err := c.rpc.Invoke(ctx, "starknet_getClassHashAt", &classHash, latestBlock, address); err != nil {
		return "", fmt.Errorf("failed to get class hash at %s: %w", address, err)
	}
	return classHash, nil
}

// Call invokes a view function by name against the latest block
func (c *StarknetClient) Call(ctx context.Context, contractAddress, function string, calldata ...string) ([]string, error) {
	if calldata == nil {
		calldata = []string{}
	}
	request := &FunctionCall{
		ContractAddress:    contractAddress,
		EntryPointSelector: GetSelectorFromName(function),
		Calldata:           calldata,
	}
	var result []string
	if err := c.rpc.Invoke(ctx, "starknet_call", &result, request, latestBlock); err != nil {
		return nil, fmt.Errorf("call to %s on %s failed: %w", function, contractAddress, err)
	}
	return result, nil
}

// WaitForReady polls the chain id until the sequencer answers
func (c *StarknetClient) WaitForReady(ctx context.Context, timeout time.Duration) (string, error) {
	var chainID string
	err := core.WaitFor(ctx, fmt.Sprintf("sequencer RPC at %s", c.rpc.URL()), timeout, func(ctx context.Context) (err error) {
		chainID, err = c.ChainID(ctx)
		return err
	})
	return chainID, err
}
