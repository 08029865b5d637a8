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

package types

import "time"

type StageKind string

const (
	StageKindLongRunning StageKind = "long-running"
	StageKindOneShot     StageKind = "one-shot"
)

type StageOutcome string

const (
	StageSucceeded StageOutcome = "succeeded"
	StageFailed    StageOutcome = "failed"
	StageSkipped   StageOutcome = "skipped"
)

type StageResult struct {
	Name     string        `json:"name"`
	Kind     StageKind     `json:"kind"`
	Outcome  StageOutcome  `json:"outcome"`
	Attempts int           `json:"attempts,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type StackState struct {
	DeploymentOutputs *DeploymentOutputs `json:"deploymentOutputs,omitempty"`
	Accounts          []*EVMAccount      `json:"accounts"`
	StageResults      []*StageResult     `json:"stageResults"`
}

// EVMAccount is an Ethereum style account used against the gateway.
type EVMAccount struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	WalletFile string `json:"walletFile,omitempty"`
}
