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

package constants

import (
	"os"
	"path/filepath"
)

var homeDir, _ = os.UserHomeDir()
var StacksDir = filepath.Join(homeDir, ".kstack", "stacks")

var MadaraImageName = "ghcr.io/keep-starknet-strange/madara"
var MadaraImageTag = "v0.1.0-experimental.3"
var KatanaImageName = "ghcr.io/dojoengine/dojo"
var KatanaImageTag = "v0.3.10"
var DeployerImageName = "ghcr.io/kkrt-labs/kakarot/deployer"
var DeployerImageTag = "latest"
var ParserImageName = "apteno/alpine-jq"
var ParserImageTag = "main"
var GatewayImageName = "ghcr.io/kkrt-labs/kakarot-rpc/node"
var GatewayImageTag = "latest"
var HelperImageName = "alpine:3.18"

const (
	SequencerServiceName = "starknet"
	DeployerServiceName  = "kakarot-deployer"
	ParserServiceName    = "deployments-parser"
	GatewayServiceName   = "kakarot-rpc"
	DeploymentsVolume    = "deployments"
)

// Mount points of the shared deployments volume in each service
const (
	DeployerDeploymentsDir = "/app/kakarot/deployments"
	ParserDeploymentsDir   = "/deployments"
	GatewayAppDir          = "/usr/src/app"
)

const (
	DeploymentsFile  = "deployments.json"
	DeclarationsFile = "declarations.json"
	EnvFile          = ".env"
)

const (
	DefaultSequencerRPCPort     = 9944
	DefaultSequencerMetricsPort = 9615
	DefaultSequencerPeerPort    = 30333
	DefaultGatewayPort          = 3030
	DefaultDeployRetries        = 5
	DefaultReadyTimeoutSeconds  = 120
	DefaultGatewayLogLevel      = "kakarot_rpc=info"
)
