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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/core"
	"github.com/kkrt-labs/kstack/internal/deployer"
	"github.com/kkrt-labs/kstack/internal/docker"
	"github.com/kkrt-labs/kstack/internal/gateway"
	"github.com/kkrt-labs/kstack/internal/log"
	"github.com/kkrt-labs/kstack/internal/outputs"
	"github.com/kkrt-labs/kstack/internal/pipeline"
	"github.com/kkrt-labs/kstack/internal/sequencer"
	"github.com/kkrt-labs/kstack/internal/sequencer/katana"
	"github.com/kkrt-labs/kstack/internal/sequencer/madara"
	"github.com/kkrt-labs/kstack/internal/sequencer/starknet"
	"github.com/kkrt-labs/kstack/pkg/types"
	"github.com/miracl/conflate"
	"github.com/otiai10/copy"
	"gopkg.in/yaml.v2"
)

const (
	composeFileName         = "docker-compose.yml"
	composeOverrideFileName = "compose-override.yml"
	stackStateFileName      = "stackState.json"
)

type StackManager struct {
	ctx               context.Context
	Log               log.Logger
	Stack             *types.Stack
	sequencerProvider sequencer.ISequencerProvider
	dockerMgr         docker.IDockerManager
}

func ListStacks() ([]string, error) {
	files, err := os.ReadDir(constants.StacksDir)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, err
	}

	stacks := make([]string, 0)
	for _, f := range files {
		if f.IsDir() {
			if exists, err := CheckExists(f.Name()); err == nil && exists {
				stacks = append(stacks, f.Name())
			}
		}
	}
	return stacks, nil
}

func NewStackManager(ctx context.Context) *StackManager {
	return &StackManager{
		ctx:       ctx,
		Log:       log.LoggerFromContext(ctx),
		dockerMgr: docker.NewDockerManager(),
	}
}

func CheckExists(stackName string) (bool, error) {
	_, err := os.Stat(filepath.Join(constants.StacksDir, stackName, "stack.json"))
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	} else {
		return true, nil
	}
}

func (s *StackManager) InitStack(options *types.InitOptions) (err error) {
	provider, err := fftypes.FFEnumParseString(s.ctx, types.SequencerProvider, options.SequencerProvider)
	if err != nil {
		return err
	}
	stackDir := filepath.Join(constants.StacksDir, options.StackName)
	s.Stack = &types.Stack{
		Name:                        options.StackName,
		SequencerProvider:           provider,
		ExposedSequencerRPCPort:     options.SequencerRPCPort,
		ExposedSequencerMetricsPort: options.SequencerMetricsPort,
		ExposedSequencerPeerPort:    options.SequencerPeerPort,
		ExposedGatewayPort:          options.GatewayPort,
		GatewayLogLevel:             options.GatewayLogLevel,
		DeployRetries:               options.DeployRetries,
		ReadyTimeoutSeconds:         options.ReadyTimeoutSeconds,
		StackDir:                    stackDir,
		InitDir:                     filepath.Join(stackDir, "init"),
		RuntimeDir:                  filepath.Join(stackDir, "runtime"),
		State: &types.StackState{
			Accounts:     make([]*types.EVMAccount, 0),
			StageResults: make([]*types.StageResult, 0),
		},
	}
	if s.Stack.GatewayLogLevel == "" {
		s.Stack.GatewayLogLevel = constants.DefaultGatewayLogLevel
	}
	if len(options.EnvironmentVars) > 0 {
		s.Stack.EnvironmentVars = make(map[string]interface{}, len(options.EnvironmentVars))
		for k, v := range options.EnvironmentVars {
			s.Stack.EnvironmentVars[k] = v
		}
	}

	var manifest *types.VersionManifest
	if options.ManifestPath != "" {
		// If a path to a manifest file is set, read the existing file
		manifest, err = core.ReadManifestFile(s.ctx, options.ManifestPath, provider)
		if err != nil {
			return err
		}
	} else {
		manifest = core.GetDefaultManifest(provider)
	}
	if options.SequencerImageOverride != "" {
		manifest.Sequencer = core.ParseImageReference(options.SequencerImageOverride)
	}
	if options.DeployerImageOverride != "" {
		manifest.Deployer = core.ParseImageReference(options.DeployerImageOverride)
	}
	if options.GatewayImageOverride != "" {
		manifest.Gateway = core.ParseImageReference(options.GatewayImageOverride)
	}
	s.Stack.VersionManifest = manifest

	if s.sequencerProvider, err = s.getSequencerProvider(); err != nil {
		return err
	}
	s.Stack.DeployerAccount = s.sequencerProvider.DefaultDeployerAccount()
	if options.DeployerAccountAddress != "" || options.DeployerAccountKey != "" {
		if options.DeployerAccountAddress == "" || options.DeployerAccountKey == "" {
			return fmt.Errorf("both the deployer account address and private key must be set")
		}
		s.Stack.DeployerAccount = &types.StarknetAccount{
			Address:    options.DeployerAccountAddress,
			PrivateKey: options.DeployerAccountKey,
		}
	}

	if err := os.MkdirAll(s.Stack.InitDir, 0755); err != nil {
		return err
	}
	if options.ComposeOverridePath != "" {
		if err := copy.Copy(options.ComposeOverridePath, filepath.Join(s.Stack.InitDir, composeOverrideFileName)); err != nil {
			return fmt.Errorf("failed to read compose override file: %w", err)
		}
	}
	if err := s.writeDockerCompose(s.Stack.InitDir); err != nil {
		return fmt.Errorf("failed to write %s: %w", composeFileName, err)
	}
	return s.writeStackConfig()
}

func (s *StackManager) LoadStack(stackName string) error {
	stackDir := filepath.Join(constants.StacksDir, stackName)
	exists, err := CheckExists(stackName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("stack '%s' does not exist", stackName)
	}
	d, err := os.ReadFile(filepath.Join(stackDir, "stack.json"))
	if err != nil {
		return err
	}
	var stack *types.Stack
	if err := json.Unmarshal(d, &stack); err != nil {
		return err
	}
	s.Stack = stack
	s.Stack.StackDir = stackDir
	s.Stack.InitDir = filepath.Join(stackDir, "init")
	s.Stack.RuntimeDir = filepath.Join(stackDir, "runtime")

	if s.Stack.VersionManifest == nil {
		s.Stack.VersionManifest = core.GetDefaultManifest(s.Stack.SequencerProvider)
	}
	if s.sequencerProvider, err = s.getSequencerProvider(); err != nil {
		return err
	}
	if s.Stack.DeployerAccount == nil {
		s.Stack.DeployerAccount = s.sequencerProvider.DefaultDeployerAccount()
	}
	return s.loadStackStateJSON()
}

func (s *StackManager) getSequencerProvider() (sequencer.ISequencerProvider, error) {
	switch s.Stack.SequencerProvider {
	case types.SequencerProviderMadara:
		return madara.NewMadaraProvider(s.Stack), nil
	case types.SequencerProviderKatana:
		return katana.NewKatanaProvider(s.Stack), nil
	default:
		return nil, &sequencer.ErrUnknownProvider{Provider: s.Stack.SequencerProvider.String()}
	}
}

// workingDir is where compose commands run: the runtime copy once the stack
// has been started, the init directory before that
func (s *StackManager) workingDir() string {
	if hasRun, err := s.Stack.HasRunBefore(); err == nil && hasRun {
		return s.Stack.RuntimeDir
	}
	return s.Stack.InitDir
}

func (s *StackManager) loadStackStateJSON() error {
	stackStatePath := filepath.Join(s.workingDir(), stackStateFileName)
	b, err := os.ReadFile(stackStatePath)
	if os.IsNotExist(err) {
		s.Stack.State = &types.StackState{
			Accounts:     make([]*types.EVMAccount, 0),
			StageResults: make([]*types.StageResult, 0),
		}
		return nil
	} else if err != nil {
		return err
	}
	var stackState *types.StackState
	if err := json.Unmarshal(b, &stackState); err != nil {
		return err
	}
	s.Stack.State = stackState
	return nil
}

func (s *StackManager) writeStackStateJSON(directory string) error {
	stackStateBytes, err := json.MarshalIndent(s.Stack.State, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(directory, stackStateFileName), stackStateBytes, 0755)
}

func (s *StackManager) writeStackConfig() error {
	stackConfigBytes, err := json.MarshalIndent(s.Stack, "", " ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.Stack.StackDir, "stack.json"), stackConfigBytes, 0755); err != nil {
		return err
	}
	return s.writeStackStateJSON(s.Stack.InitDir)
}

// buildDockerCompose lays out the four services with the startup order of the
// stack: the deployer waits for the sequencer to start, the parser for the
// deployer to complete, and the gateway for the parser to complete.
func (s *StackManager) buildDockerCompose() *docker.DockerComposeConfig {
	return docker.CreateDockerCompose(s.Stack,
		s.sequencerProvider.GetDockerServiceDefinition(),
		deployer.GetDeployerServiceDefinition(s.Stack, s.sequencerProvider),
		deployer.GetParserServiceDefinition(s.Stack, s.sequencerProvider),
		gateway.GetGatewayServiceDefinition(s.Stack, s.sequencerProvider),
	)
}

func (s *StackManager) writeDockerCompose(workingDir string) error {
	bytes, err := yaml.Marshal(s.buildDockerCompose())
	if err != nil {
		return err
	}
	composePath := filepath.Join(workingDir, composeFileName)
	if err := os.WriteFile(composePath, bytes, 0755); err != nil {
		return err
	}
	overridePath := filepath.Join(s.Stack.InitDir, composeOverrideFileName)
	if _, err := os.Stat(overridePath); err == nil {
		s.Log.Debug(fmt.Sprintf("merging compose override %s", overridePath))
		c, err := conflate.FromFiles(composePath, overridePath)
		if err != nil {
			return err
		}
		bytes, err := c.MarshalYAML()
		if err != nil {
			return err
		}
		return os.WriteFile(composePath, bytes, 0755)
	}
	return nil
}

// patchGatewayEnvironment merges the handoff values into the gateway service
// of the compose file in workingDir
func (s *StackManager) patchGatewayEnvironment(workingDir string, deploymentOutputs *types.DeploymentOutputs) error {
	patchBytes, err := yaml.Marshal(gateway.DeploymentOutputsPatch(deploymentOutputs))
	if err != nil {
		return err
	}
	composePath := filepath.Join(workingDir, composeFileName)
	merger := conflate.New()
	if err := merger.AddFiles(composePath); err != nil {
		return fmt.Errorf("failed merging config %s", composePath)
	}
	if err := merger.AddData(patchBytes); err != nil {
		return fmt.Errorf("failed merging gateway environment into %s: %s", composePath, err)
	}
	s.Log.Info("updating gateway environment with deployment outputs")
	composeBytes, err := merger.MarshalYAML()
	if err != nil {
		return err
	}
	return os.WriteFile(composePath, composeBytes, 0755)
}

func (s *StackManager) composeCommand(workingDir string, command ...string) error {
	return s.dockerMgr.RunDockerComposeCommand(s.ctx, workingDir, append([]string{"-p", s.Stack.Name}, command...)...)
}

func (s *StackManager) StartStack(options *types.StartOptions) (err error) {
	s.Log.Info(fmt.Sprintf("starting Kakarot stack '%s'", s.Stack.Name))
	if err := s.checkPortsAvailable(); err != nil {
		return err
	}
	hasBeenRun, err := s.Stack.HasRunBefore()
	if err != nil {
		return err
	}
	if hasBeenRun {
		return s.runStartupSequence()
	}
	if err := s.runFirstTimeSetup(); err != nil {
		// Something bad happened during setup
		if options.NoRollback {
			return err
		}
		s.Log.Error(fmt.Errorf("an error occurred - rolling back changes"))
		if resetErr := s.ResetStack(); resetErr != nil {
			return fmt.Errorf("%s - error resetting stack: %s", err.Error(), resetErr.Error())
		}
		return fmt.Errorf("%s - all changes rolled back", err.Error())
	}
	return nil
}

func (s *StackManager) StopStack() error {
	return s.composeCommand(s.workingDir(), "stop")
}

func (s *StackManager) ResetStack() error {
	if err := s.composeCommand(s.workingDir(), "down", "--volumes"); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Stack.RuntimeDir); err != nil {
		return err
	}
	s.removeVolumes()
	return s.loadStackStateJSON()
}

func (s *StackManager) RemoveStack() error {
	if _, err := os.Stat(filepath.Join(s.Stack.InitDir, composeFileName)); err == nil {
		if err := s.composeCommand(s.workingDir(), "down", "--volumes"); err != nil {
			return err
		}
	}
	s.removeVolumes()
	return os.RemoveAll(s.Stack.StackDir)
}

// removeVolumes cleans up the deployments volume in case compose did not own it
func (s *StackManager) removeVolumes() {
	if err := s.dockerMgr.RemoveVolume(s.ctx, s.Stack.VolumeName()); err != nil {
		s.Log.Debug(fmt.Sprintf("volume %s not removed: %s", s.Stack.VolumeName(), err))
	}
}

func (s *StackManager) PullStack(options *types.PullOptions) error {
	if options.PinDigests {
		s.Log.Info("resolving image digests")
		if err := core.PinDigests(s.dockerMgr, s.Stack.VersionManifest); err != nil {
			return err
		}
		if err := s.writeStackConfig(); err != nil {
			return err
		}
		if err := s.writeDockerCompose(s.Stack.InitDir); err != nil {
			return err
		}
	}

	images := []string{}
	for _, entry := range s.Stack.VersionManifest.Entries() {
		fullImage := entry.GetDockerImageString()
		s.Log.Info(fmt.Sprintf("Manifest entry image='%s' local=%t", fullImage, entry.Local))
		if entry.Local {
			continue
		}
		images = append(images, fullImage)
	}
	images = append(images, constants.HelperImageName)

	// Use docker to pull every image - retry on failure
	for _, image := range images {
		s.Log.Info(fmt.Sprintf("pulling '%s'", image))
		if _, err := core.Retry(s.ctx, fmt.Sprintf("pull of %s", image), options.Retries+1, func() error {
			return s.dockerMgr.RunDockerCommand(s.ctx, s.Stack.InitDir, "pull", image)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *StackManager) PrintStacksInfo() error {
	fmt.Print("\n")
	if err := s.composeCommand(s.Stack.InitDir, "images"); err != nil {
		return err
	}
	fmt.Print("\n")
	if err := s.composeCommand(s.workingDir(), "ps"); err != nil {
		return err
	}
	if deploymentOutputs := s.Stack.State.DeploymentOutputs; deploymentOutputs != nil {
		fmt.Printf("\nKakarot contract address:       %s\n", deploymentOutputs.KakarotAddress)
		fmt.Printf("Proxy account class hash:       %s\n", deploymentOutputs.ProxyAccountClassHash)
	}
	fmt.Printf("Sequencer RPC:                  %s\n", s.sequencerProvider.RPCURL())
	fmt.Printf("Kakarot RPC:                    %s\n", gateway.RPCURL(s.Stack))
	fmt.Printf("\nYour docker compose file for this stack can be found at: %s\n\n", filepath.Join(s.workingDir(), composeFileName))
	return nil
}

// IsRunning returns the services of the stack that are currently running
func (s *StackManager) IsRunning() ([]string, error) {
	output, err := s.dockerMgr.RunDockerComposeCommandBuffered(s.ctx, s.workingDir(), "-p", s.Stack.Name, "ps", "--services", "--filter", "status=running")
	if err != nil {
		return nil, err
	}
	running := []string{}
	for _, line := range strings.Split(output, "\n") {
		if service := strings.TrimSpace(line); service != "" {
			running = append(running, service)
		}
	}
	return running, nil
}

// GetDeploymentOutputs returns the handoff values of a stack that completed
// its first time setup
func (s *StackManager) GetDeploymentOutputs() (*types.DeploymentOutputs, error) {
	if s.Stack.State != nil && s.Stack.State.DeploymentOutputs != nil {
		return s.Stack.State.DeploymentOutputs, nil
	}
	deploymentOutputs, err := outputs.ReadEnvFile(filepath.Join(s.Stack.RuntimeDir, constants.EnvFile))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("stack '%s' has no deployment outputs - it has not been started", s.Stack.Name)
	}
	return deploymentOutputs, err
}

// CallKakarot calls a view function of the Kakarot contract on the sequencer
func (s *StackManager) CallKakarot(function string, calldata []string) ([]string, error) {
	deploymentOutputs, err := s.GetDeploymentOutputs()
	if err != nil {
		return nil, err
	}
	felts := make([]string, len(calldata))
	for i, value := range calldata {
		f, err := new(felt.Felt).SetString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid calldata '%s': %w", value, err)
		}
		felts[i] = f.String()
	}
	client := starknet.NewStarknetClient(s.sequencerProvider.RPCURL())
	return client.Call(s.ctx, string(deploymentOutputs.KakarotAddress), function, felts...)
}

// CreateAccount generates an EVM account to use against the gateway and
// records it in the stack state
func (s *StackManager) CreateAccount(password string) (*types.EVMAccount, error) {
	directory := s.workingDir()
	account, err := gateway.CreateAccount(filepath.Join(directory, "accounts"), password)
	if err != nil {
		return nil, err
	}
	s.Stack.State.Accounts = append(s.Stack.State.Accounts, account)
	if err := s.writeStackStateJSON(directory); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *StackManager) runFirstTimeSetup() error {
	if err := copy.Copy(s.Stack.InitDir, s.Stack.RuntimeDir); err != nil {
		return err
	}
	results, err := s.newRunner().Run(s.ctx,
		s.sequencerStage(),
		s.deployerStage(),
		s.parserStage(),
		s.gatewayStage(),
	)
	return s.recordResults(results, err)
}

// runStartupSequence restarts a stack that completed its first time setup.
// The gateway is started with the handoff values persisted in the runtime
// directory while the Kakarot contract is still on the chain. When the
// sequencer comes back with an empty chain the deployer and parser run again
// and the gateway gets the new values.
func (s *StackManager) runStartupSequence() error {
	runner := s.newRunner()
	contract := s.contractCheckStage()
	results, err := runner.Run(s.ctx,
		s.handoffStage(),
		s.sequencerStage(),
		contract,
	)
	if err != nil {
		return s.recordResults(results, err)
	}
	stages := []pipeline.Stage{}
	if !contract.deployed {
		stages = append(stages, s.deployerStage(), s.parserStage())
	}
	stages = append(stages, s.gatewayStage())
	more, err := runner.Run(s.ctx, stages...)
	return s.recordResults(append(results, more...), err)
}

func (s *StackManager) recordResults(results []*types.StageResult, runErr error) error {
	s.Stack.State.StageResults = results
	if err := s.writeStackStateJSON(s.Stack.RuntimeDir); err != nil && runErr == nil {
		return err
	}
	return runErr
}
