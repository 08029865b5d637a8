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

package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/kkrt-labs/kstack/internal/core"
)

// EthClient talks to the Ethereum JSON-RPC interface the gateway serves
type EthClient struct {
	rpc *core.RPCClient
}

func NewEthClient(rpcURL string) *EthClient {
	return &EthClient{
		rpc: core.NewRPCClient(rpcURL),
	}
}

func (c *EthClient) ChainID(ctx context.Context) (int64, error) {
	var chainID ethtypes.HexInteger
	if err := c.rpc.Invoke(ctx, "eth_chainId", &chainID); err != nil {
		return 0, err
	}
	return chainID.BigInt().Int64(), nil
}

func (c *EthClient) BlockNumber(ctx context.Context) (int64, error) {
	var blockNumber ethtypes.HexInteger
	if err := c.rpc.Invoke(ctx, "eth_blockNumber", &blockNumber); err != nil {
		return 0, err
	}
	return blockNumber.BigInt().Int64(), nil
}

func (c *EthClient) WaitForReady(ctx context.Context, timeout time.Duration) (int64, error) {
	var chainID int64
	err := core.WaitFor(ctx, fmt.Sprintf("gateway RPC at %s", c.rpc.URL()), timeout, func(ctx context.Context) (err error) {
		chainID, err = c.ChainID(ctx)
		return err
	})
	return chainID, err
}
