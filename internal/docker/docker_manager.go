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

package docker

import (
	"context"
)

// IDockerManager combines all Docker-related operations into a single interface.
type IDockerManager interface {
	// Command Execution
	RunDockerCommand(ctx context.Context, workingDir string, command ...string) error
	RunDockerComposeCommand(ctx context.Context, workingDir string, command ...string) error
	RunDockerCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error)
	RunDockerComposeCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error)

	// Image Inspection
	GetImageDigest(image string) (string, error)

	// Volume Management
	CopyFileToVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error
	CopyFromVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error
	RemoveVolume(ctx context.Context, volumeName string) error
}

// DockerManager implements IDockerManager
type DockerManager struct{}

func NewDockerManager() *DockerManager {
	return &DockerManager{}
}

func (mgr *DockerManager) RunDockerCommand(ctx context.Context, workingDir string, command ...string) error {
	return RunDockerCommand(ctx, workingDir, command...)
}

func (mgr *DockerManager) RunDockerComposeCommand(ctx context.Context, workingDir string, command ...string) error {
	return RunDockerComposeCommand(ctx, workingDir, command...)
}

func (mgr *DockerManager) RunDockerCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error) {
	return RunDockerCommandBuffered(ctx, workingDir, command...)
}

func (mgr *DockerManager) RunDockerComposeCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error) {
	return RunDockerComposeCommandBuffered(ctx, workingDir, command...)
}

func (mgr *DockerManager) GetImageDigest(image string) (string, error) {
	return GetImageDigest(image)
}

func (mgr *DockerManager) CopyFileToVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error {
	return CopyFileToVolume(ctx, volumeName, sourcePath, destPath)
}

func (mgr *DockerManager) CopyFromVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error {
	return CopyFromVolume(ctx, volumeName, sourcePath, destPath)
}

func (mgr *DockerManager) RemoveVolume(ctx context.Context, volumeName string) error {
	return RemoveVolume(ctx, volumeName)
}
