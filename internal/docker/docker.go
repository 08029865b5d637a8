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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/go-containerregistry/pkg/crane"
	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/internal/log"
)

type (
	CtxIsLogCmdKey       struct{}
	CtxComposeVersionKey struct{}
)

type DockerComposeVersion int

const (
	None DockerComposeVersion = iota
	ComposeV1
	ComposeV2
)

// CommandError is returned when a docker command exits non-zero. The exit code
// is the exit code of the container for "compose run" and "wait".
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// ExitCode returns the process exit code carried by err, or -1 when err did
// not come from a process that ran to completion.
func ExitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

func CheckDockerConfig() (DockerComposeVersion, error) {
	dockerCmd := exec.Command("docker", "-v")
	if _, err := dockerCmd.Output(); err != nil {
		return None, fmt.Errorf("an error occurred while running docker. Is docker installed on your computer?")
	}

	composeVersion := ComposeV2
	if _, err := exec.Command("docker", "compose", "version").Output(); err != nil {
		if _, err := exec.Command("docker-compose", "-v").Output(); err != nil {
			return None, fmt.Errorf("an error occurred while running docker compose. Is docker compose installed on your computer?")
		}
		composeVersion = ComposeV1
	}

	dockerDeamonCheck := exec.Command("docker", "ps")
	if _, err := dockerDeamonCheck.Output(); err != nil {
		return None, fmt.Errorf("an error occurred while running docker. Is docker running on your computer?")
	}
	return composeVersion, nil
}

func composeCommand(ctx context.Context, command ...string) (string, []string) {
	if version, ok := ctx.Value(CtxComposeVersionKey{}).(DockerComposeVersion); ok && version == ComposeV1 {
		return "docker-compose", command
	}
	return "docker", append([]string{"compose"}, command...)
}

func RunDockerCommand(ctx context.Context, workingDir string, command ...string) error {
	dockerCmd := exec.CommandContext(ctx, "docker", command...)
	dockerCmd.Dir = workingDir
	_, err := runCommand(ctx, dockerCmd)
	return err
}

func RunDockerComposeCommand(ctx context.Context, workingDir string, command ...string) error {
	name, args := composeCommand(ctx, command...)
	dockerCmd := exec.CommandContext(ctx, name, args...)
	dockerCmd.Dir = workingDir
	_, err := runCommand(ctx, dockerCmd)
	return err
}

func RunDockerCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error) {
	dockerCmd := exec.CommandContext(ctx, "docker", command...)
	dockerCmd.Dir = workingDir
	return runBufferedCommand(ctx, dockerCmd)
}

func RunDockerComposeCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error) {
	name, args := composeCommand(ctx, command...)
	dockerCmd := exec.CommandContext(ctx, name, args...)
	dockerCmd.Dir = workingDir
	return runBufferedCommand(ctx, dockerCmd)
}

func RemoveVolume(ctx context.Context, volumeName string) error {
	return RunDockerCommand(ctx, ".", "volume", "remove", volumeName)
}

// CopyFileToVolume copies a single host file to destPath inside the volume
func CopyFileToVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error {
	fileName := filepath.Base(sourcePath)
	sourceDir, err := filepath.Abs(filepath.Dir(sourcePath))
	if err != nil {
		return err
	}
	return RunDockerCommand(ctx, ".", "run", "--rm",
		"-v", fmt.Sprintf("%s:/source", sourceDir),
		"-v", fmt.Sprintf("%s:/dest", volumeName),
		constants.HelperImageName, "cp", filepath.Join("/source", fileName), filepath.Join("/dest", destPath))
}

// CopyFromVolume copies sourcePath inside the volume to the host file destPath
func CopyFromVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error {
	destDir, err := filepath.Abs(filepath.Dir(destPath))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}
	return RunDockerCommand(ctx, ".", "run", "--rm",
		"-v", fmt.Sprintf("%s:/source:ro", volumeName),
		"-v", fmt.Sprintf("%s:/dest", destDir),
		constants.HelperImageName, "cp", filepath.Join("/source", sourcePath), filepath.Join("/dest", filepath.Base(destPath)))
}

// GetImageDigest resolves the registry digest of an image reference
func GetImageDigest(image string) (string, error) {
	return crane.Digest(image)
}

func runCommand(ctx context.Context, cmd *exec.Cmd) (string, error) {
	verbose := log.VerbosityFromContext(ctx)
	isLogCmd, _ := ctx.Value(CtxIsLogCmdKey{}).(bool)
	if verbose {
		fmt.Println(cmd.String())
	}
	outputBuff := &bytes.Buffer{}
	if isLogCmd || verbose {
		cmd.Stdout = os.Stdout
	} else {
		cmd.Stdout = outputBuff
	}
	cmd.Stderr = outputBuff
	if isLogCmd {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	return outputBuff.String(), wrapCommandError(cmd, err, outputBuff.String())
}

func runBufferedCommand(ctx context.Context, cmd *exec.Cmd) (string, error) {
	if log.VerbosityFromContext(ctx) {
		fmt.Println(cmd.String())
	}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()
	return stdout.String(), wrapCommandError(cmd, err, stderr.String())
}

func wrapCommandError(cmd *exec.Cmd, err error, output string) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Command:  strings.Join(cmd.Args, " "),
			ExitCode: exitErr.ExitCode(),
			Output:   output,
		}
	}
	return fmt.Errorf("failed to run '%s': %w", strings.Join(cmd.Args, " "), err)
}
