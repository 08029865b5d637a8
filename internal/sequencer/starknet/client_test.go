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
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/kkrt-labs/kstack/internal/core"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rpcURL = "http://127.0.0.1:9944"

func TestGetSelectorFromName(t *testing.T) {
	assert.Equal(t, "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e", GetSelectorFromName("transfer"))
	assert.Equal(t, "0x2e4263afad30923c891518314c3c95dbe830a16874e8abc5777a9a20b54c76e", GetSelectorFromName("balanceOf"))
	assert.Equal(t, "0x0", GetSelectorFromName("__default__"))
}

func TestChainID(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	httpmock.RegisterResponder("POST", rpcURL,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"0x4b4b5254"}`))

	chainID, err := NewStarknetClient(rpcURL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x4b4b5254", chainID)
}

func TestBlockNumber(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	httpmock.RegisterResponder("POST", rpcURL,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":42}`))

	blockNumber, err := NewStarknetClient(rpcURL).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), blockNumber)
}

func TestGetClassHashAt(t *testing.T) {
	tests := []struct {
		Name       string
		Response   string
		Expected   string
		ErrorRegex string
	}{
		{
			Name:     "Deployed",
			Response: `{"jsonrpc":"2.0","id":1,"result":"0x1b661756bf7d16210fc611626e1af4569baa1781ffc964bd018f4585ae241c1"}`,
			Expected: "0x1b661756bf7d16210fc611626e1af4569baa1781ffc964bd018f4585ae241c1",
		},
		{
			Name:       "NotFound",
			Response:   `{"jsonrpc":"2.0","id":1,"error":{"code":20,"message":"Contract not found"}}`,
			ErrorRegex: "failed to get class hash at 0x1234: Contract not found",
		},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			utils.StartMockServer(t)
			defer utils.StopMockServer(t)
			httpmock.RegisterResponder("POST", rpcURL, httpmock.NewStringResponder(200, tc.Response))

			classHash, err := NewStarknetClient(rpcURL).GetClassHashAt(context.Background(), "0x1234")
			if tc.ErrorRegex != "" {
				assert.Regexp(t, tc.ErrorRegex, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.Expected, classHash)
			}
		})
	}
}

func TestCall(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	var received core.JSONRPCRequest
	httpmock.RegisterResponder("POST", rpcURL, func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
			return nil, err
		}
		return httpmock.NewStringResponse(200, `{"jsonrpc":"2.0","id":1,"result":["0x1","0x2"]}`), nil
	})

	result, err := NewStarknetClient(rpcURL).Call(context.Background(), "0x1234", "transfer", "0x5")
	require.NoError(t, err)
	assert.Equal(t, []string{"0x1", "0x2"}, result)
	assert.Equal(t, "starknet_call", received.Method)
	require.Len(t, received.Params, 2)
	call := received.Params[0].(map[string]interface{})
	assert.Equal(t, "0x1234", call["contract_address"])
	assert.Equal(t, GetSelectorFromName("transfer"), call["entry_point_selector"])
	assert.Equal(t, []interface{}{"0x5"}, call["calldata"])
	assert.Equal(t, "latest", received.Params[1])
}

func TestWaitForReady(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	ctx := log.WithLogger(context.Background(), &log.StdoutLogger{LogLevel: log.Error})
	httpmock.RegisterResponder("POST", rpcURL,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"0x4b4b5254"}`))

	chainID, err := NewStarknetClient(rpcURL).WaitForReady(ctx, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "0x4b4b5254", chainID)
}

func TestWaitForReadyTimeout(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	ctx := log.WithLogger(context.Background(), &log.StdoutLogger{LogLevel: log.Error})
	httpmock.RegisterResponder("POST", rpcURL, httpmock.NewStringResponder(503, `starting`))

	_, err := NewStarknetClient(rpcURL).WaitForReady(ctx, 50*time.Millisecond)
	assert.Regexp(t, "timed out", err)
}
