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
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/keystorev3"
	"github.com/jarcoal/httpmock"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/internal/sequencer/katana"
	"github.com/kkrt-labs/kstack/internal/utils"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gatewayURL = "http://127.0.0.1:3030"

func testStack() *types.Stack {
	return &types.Stack{
		Name:                    "dev",
		ExposedSequencerRPCPort: 9944,
		ExposedGatewayPort:      3030,
		GatewayLogLevel:         "kakarot_rpc=debug",
		DeployerAccount:         &types.StarknetAccount{Address: "0xabc", PrivateKey: "0xdef"},
		VersionManifest: &types.VersionManifest{
			Sequencer: &types.ManifestEntry{Image: "dojo"},
			Gateway:   &types.ManifestEntry{Image: "ghcr.io/kkrt-labs/kakarot-rpc/node", SHA: "1234"},
		},
	}
}

func TestGetGatewayServiceDefinition(t *testing.T) {
	s := testStack()
	def := GetGatewayServiceDefinition(s, katana.NewKatanaProvider(s))
	assert.Equal(t, "kakarot-rpc", def.ServiceName)
	assert.Equal(t, "ghcr.io/kkrt-labs/kakarot-rpc/node@sha256:1234", def.Service.Image)
	assert.Equal(t, map[string]string{
		"KAKAROT_HTTP_RPC_ADDRESS":     "0.0.0.0:3030",
		"STARKNET_NETWORK":             "http://starknet:5050",
		"RUST_LOG":                     "kakarot_rpc=debug",
		"DEPLOYER_ACCOUNT_ADDRESS":     "0xabc",
		"DEPLOYER_ACCOUNT_PRIVATE_KEY": "0xdef",
	}, def.Service.Environment)
	assert.Equal(t, []string{"deployments:/usr/src/app"}, def.Service.Volumes)
	assert.Equal(t, []string{"3030:3030"}, def.Service.Ports)
	assert.Equal(t, docker.ServiceCompletedSuccessfully, def.Service.DependsOn["deployments-parser"]["condition"])
	assert.Equal(t, docker.ServiceStarted, def.Service.DependsOn["starknet"]["condition"])
	assert.Equal(t, docker.RestartOnFailure, def.Service.Restart)
	assert.Equal(t, gatewayURL, RPCURL(s))
}

func TestDeploymentOutputsPatch(t *testing.T) {
	patch := DeploymentOutputsPatch(&types.DeploymentOutputs{KakarotAddress: "0x1", ProxyAccountClassHash: "0x2"})
	assert.Equal(t, map[string]string{
		"KAKAROT_ADDRESS":          "0x1",
		"PROXY_ACCOUNT_CLASS_HASH": "0x2",
	}, patch.Services["kakarot-rpc"].Environment)
	assert.Empty(t, patch.Services["kakarot-rpc"].Image)
}

func TestChainID(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	httpmock.RegisterResponder("POST", gatewayURL,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"0x4b4b5254"}`))

	chainID, err := NewEthClient(gatewayURL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0x4b4b5254), chainID)
}

func TestBlockNumber(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	httpmock.RegisterResponder("POST", gatewayURL,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"0x10"}`))

	blockNumber, err := NewEthClient(gatewayURL).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(16), blockNumber)
}

func TestWaitForReady(t *testing.T) {
	utils.StartMockServer(t)
	defer utils.StopMockServer(t)
	ctx := log.WithLogger(context.Background(), &log.StdoutLogger{LogLevel: log.Error})
	httpmock.RegisterResponder("POST", gatewayURL,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"0x1"}`))

	chainID, err := NewEthClient(gatewayURL).WaitForReady(ctx, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), chainID)
}

func TestGenerateAddressAndPrivateKey(t *testing.T) {
	address, privateKey, err := GenerateAddressAndPrivateKey()
	require.NoError(t, err)
	assert.Len(t, address, 42)
	assert.Len(t, privateKey, 66)
	assert.True(t, strings.HasPrefix(address, "0x"))
}

func TestCreateAccount(t *testing.T) {
	account, err := CreateAccount(t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, account.WalletFile)

	dir := t.TempDir()
	account, err = CreateAccount(dir, "correcthorsebatterystaple")
	require.NoError(t, err)
	require.NotEmpty(t, account.WalletFile)

	walletJSON, err := os.ReadFile(account.WalletFile)
	require.NoError(t, err)
	wallet, err := keystorev3.ReadWalletFile(walletJSON, []byte("correcthorsebatterystaple"))
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(account.Address), strings.ToLower(wallet.KeyPair().Address.String()))
}
