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

package stacks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/core"
	"github.com/kkrt-labs/kstack/internal/deployer"
	"github.com/kkrt-labs/kstack/internal/gateway"
	"github.com/kkrt-labs/kstack/internal/outputs"
	"github.com/kkrt-labs/kstack/internal/pipeline"
	"github.com/kkrt-labs/kstack/internal/sequencer/starknet"
	"github.com/kkrt-labs/kstack/pkg/types"
)

const (
	StageSequencer = "sequencer"
	StageDeployer  = "deployer"
	StageParser    = "parser"
	StageGateway   = "gateway"
	StageHandoff   = "handoff"
	StageContract  = "contract"
)

func (s *StackManager) newRunner() *pipeline.Runner {
	runner := pipeline.NewRunner()
	runner.OnResult = func(result *types.StageResult) {
		switch result.Outcome {
		case types.StageSucceeded:
			s.Log.Info(fmt.Sprintf("stage %s completed in %s", result.Name, result.Duration.Round(time.Millisecond)))
		case types.StageFailed:
			s.Log.Error(fmt.Errorf("stage %s failed: %s", result.Name, result.Error))
		case types.StageSkipped:
			s.Log.Warn(fmt.Sprintf("stage %s skipped", result.Name))
		}
	}
	return runner
}

func (s *StackManager) readyTimeout() time.Duration {
	seconds := s.Stack.ReadyTimeoutSeconds
	if seconds <= 0 {
		seconds = constants.DefaultReadyTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// sequencerStage starts the sequencer and waits until its RPC answers
func (s *StackManager) sequencerStage() pipeline.Stage {
	return &pipeline.FuncStage{
		StageName: StageSequencer,
		StageKind: types.StageKindLongRunning,
		Fn: func(ctx context.Context) error {
			if err := s.composeCommand(s.Stack.RuntimeDir, "up", "-d", constants.SequencerServiceName); err != nil {
				return err
			}
			chainID, err := starknet.NewStarknetClient(s.sequencerProvider.RPCURL()).WaitForReady(ctx, s.readyTimeout())
			if err != nil {
				return err
			}
			s.Log.Info(fmt.Sprintf("sequencer ready on %s with chain id %s", s.sequencerProvider.RPCURL(), chainID))
			return nil
		},
	}
}

// deployStage runs the deployer to completion, retrying a failed deployment
type deployStage struct {
	s        *StackManager
	attempts int
}

func (s *StackManager) deployerStage() pipeline.Stage {
	return &deployStage{s: s}
}

func (d *deployStage) Name() string {
	return StageDeployer
}

func (d *deployStage) Kind() types.StageKind {
	return types.StageKindOneShot
}

func (d *deployStage) Attempts() int {
	return d.attempts
}

func (d *deployStage) Run(ctx context.Context) (err error) {
	retries := d.s.Stack.DeployRetries
	if retries <= 0 {
		retries = constants.DefaultDeployRetries
	}
	d.attempts, err = core.Retry(ctx, "kakarot deployment", retries, func() error {
		return d.s.composeCommand(d.s.Stack.RuntimeDir, "run", "--rm", constants.DeployerServiceName)
	})
	return err
}

// parserStage reads the deployer output from the shared volume, extracts the
// handoff values and writes them as .env to the runtime directory and the
// volume
func (s *StackManager) parserStage() pipeline.Stage {
	return &pipeline.FuncStage{
		StageName: StageParser,
		StageKind: types.StageKindOneShot,
		Fn: func(ctx context.Context) error {
			network := s.sequencerProvider.Network()
			deploymentsDir := filepath.Join(s.Stack.RuntimeDir, "deployments")
			deploymentsPath := filepath.Join(deploymentsDir, constants.DeploymentsFile)
			declarationsPath := filepath.Join(deploymentsDir, constants.DeclarationsFile)
			if err := s.copyFromVolume(deployer.DeploymentsPath(network), deploymentsPath); err != nil {
				return err
			}
			if err := s.copyFromVolume(deployer.DeclarationsPath(network), declarationsPath); err != nil {
				return err
			}
			deploymentsJSON, err := os.ReadFile(deploymentsPath)
			if err != nil {
				return err
			}
			declarationsJSON, err := os.ReadFile(declarationsPath)
			if err != nil {
				return err
			}
			deploymentOutputs, err := outputs.ExtractDeploymentOutputs(deploymentsJSON, declarationsJSON)
			if err != nil {
				return err
			}

			// The Kakarot address must hold a deployed contract on the sequencer
			classHash, err := starknet.NewStarknetClient(s.sequencerProvider.RPCURL()).GetClassHashAt(ctx, string(deploymentOutputs.KakarotAddress))
			if err != nil {
				return fmt.Errorf("no contract found at kakarot address %s: %w", deploymentOutputs.KakarotAddress, err)
			}
			s.Log.Debug(fmt.Sprintf("kakarot contract %s has class hash %s", deploymentOutputs.KakarotAddress, classHash))

			envPath := filepath.Join(s.Stack.RuntimeDir, constants.EnvFile)
			if err := outputs.WriteEnvFile(envPath, deploymentOutputs); err != nil {
				return err
			}
			if err := s.dockerMgr.CopyFileToVolume(ctx, s.Stack.VolumeName(), envPath, constants.EnvFile); err != nil {
				return err
			}
			s.Stack.State.DeploymentOutputs = deploymentOutputs
			s.Log.Info(fmt.Sprintf("%s=%s", types.EnvKakarotAddress, deploymentOutputs.KakarotAddress))
			s.Log.Info(fmt.Sprintf("%s=%s", types.EnvProxyAccountClassHash, deploymentOutputs.ProxyAccountClassHash))
			return nil
		},
	}
}

func (s *StackManager) copyFromVolume(sourcePath, destPath string) error {
	if err := s.dockerMgr.CopyFromVolume(s.ctx, s.Stack.VolumeName(), sourcePath, destPath); err != nil {
		return fmt.Errorf("failed to read %s from volume %s: %w", sourcePath, s.Stack.VolumeName(), err)
	}
	return nil
}

// handoffStage validates the persisted .env before a restart, so the gateway
// is never started with a broken handoff
func (s *StackManager) handoffStage() pipeline.Stage {
	return &pipeline.FuncStage{
		StageName: StageHandoff,
		StageKind: types.StageKindOneShot,
		Fn: func(ctx context.Context) error {
			deploymentOutputs, err := outputs.ReadEnvFile(filepath.Join(s.Stack.RuntimeDir, constants.EnvFile))
			if err != nil {
				return err
			}
			s.Stack.State.DeploymentOutputs = deploymentOutputs
			return nil
		},
	}
}

// contractStage checks on restart that the persisted Kakarot address still
// holds a contract. Neither sequencer keeps its chain across restarts, so a
// contract not found answer marks the chain as reset rather than failing.
type contractStage struct {
	s        *StackManager
	deployed bool
}

func (s *StackManager) contractCheckStage() *contractStage {
	return &contractStage{s: s}
}

func (c *contractStage) Name() string {
	return StageContract
}

func (c *contractStage) Kind() types.StageKind {
	return types.StageKindOneShot
}

func (c *contractStage) Run(ctx context.Context) error {
	kakarotAddress := string(c.s.Stack.State.DeploymentOutputs.KakarotAddress)
	classHash, err := starknet.NewStarknetClient(c.s.sequencerProvider.RPCURL()).GetClassHashAt(ctx, kakarotAddress)
	var rpcErr *core.JSONRPCError
	switch {
	case err == nil:
		c.deployed = true
		c.s.Log.Debug(fmt.Sprintf("kakarot contract %s has class hash %s", kakarotAddress, classHash))
		return nil
	case errors.As(err, &rpcErr):
		c.deployed = false
		c.s.Log.Warn(fmt.Sprintf("sequencer chain was reset, kakarot will be deployed again: %s", err))
		return nil
	default:
		return err
	}
}

// gatewayStage hands the deployment outputs to the gateway and waits until
// its Ethereum RPC answers
func (s *StackManager) gatewayStage() pipeline.Stage {
	return &pipeline.FuncStage{
		StageName: StageGateway,
		StageKind: types.StageKindLongRunning,
		Fn: func(ctx context.Context) error {
			if s.Stack.State.DeploymentOutputs == nil {
				return fmt.Errorf("no deployment outputs to hand to the gateway")
			}
			if err := s.patchGatewayEnvironment(s.Stack.RuntimeDir, s.Stack.State.DeploymentOutputs); err != nil {
				return err
			}
			if err := s.composeCommand(s.Stack.RuntimeDir, "up", "-d", "--no-deps", constants.GatewayServiceName); err != nil {
				return err
			}
			chainID, err := gateway.NewEthClient(gateway.RPCURL(s.Stack)).WaitForReady(ctx, s.readyTimeout())
			if err != nil {
				return err
			}
			s.Log.Info(fmt.Sprintf("kakarot rpc ready on %s with chain id %d", gateway.RPCURL(s.Stack), chainID))
			return nil
		},
	}
}
