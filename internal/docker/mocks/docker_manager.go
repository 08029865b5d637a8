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

// Package mocks holds a recording IDockerManager for tests
package mocks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DockerManager records every call it receives. Compose commands can be failed
// by setting ComposeErrors keyed on the first compose argument plus service
// name (e.g. "run kakarot-deployer"), ComposeHooks with the same keys run
// after a successful command, and CopyFromVolume serves its content from
// Volumes.
type DockerManager struct {
	mux           sync.Mutex
	Calls         []string
	ComposeErrors map[string][]error
	ComposeHooks  map[string]func()
	Buffered      map[string]string
	Volumes       map[string]map[string][]byte
	Digests       map[string]string
}

func NewDockerManager() *DockerManager {
	return &DockerManager{
		ComposeErrors: make(map[string][]error),
		ComposeHooks:  make(map[string]func()),
		Buffered:      make(map[string]string),
		Volumes:       make(map[string]map[string][]byte),
		Digests:       make(map[string]string),
	}
}

func (mgr *DockerManager) record(call string) {
	mgr.mux.Lock()
	defer mgr.mux.Unlock()
	mgr.Calls = append(mgr.Calls, call)
}

// CallsWithPrefix returns the recorded calls starting with prefix
func (mgr *DockerManager) CallsWithPrefix(prefix string) []string {
	mgr.mux.Lock()
	defer mgr.mux.Unlock()
	calls := []string{}
	for _, c := range mgr.Calls {
		if strings.HasPrefix(c, prefix) {
			calls = append(calls, c)
		}
	}
	return calls
}

func composeKey(command []string) string {
	parts := []string{}
	for i := 0; i < len(command); i++ {
		switch {
		case command[i] == "-p" || command[i] == "-f":
			i++
		case strings.HasPrefix(command[i], "-"):
		default:
			parts = append(parts, command[i])
		}
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}

func (mgr *DockerManager) RunDockerCommand(ctx context.Context, workingDir string, command ...string) error {
	mgr.record("docker " + strings.Join(command, " "))
	return nil
}

func (mgr *DockerManager) RunDockerComposeCommand(ctx context.Context, workingDir string, command ...string) error {
	mgr.record("compose " + strings.Join(command, " "))
	mgr.mux.Lock()
	key := composeKey(command)
	if errs := mgr.ComposeErrors[key]; len(errs) > 0 {
		err := errs[0]
		mgr.ComposeErrors[key] = errs[1:]
		mgr.mux.Unlock()
		return err
	}
	hook := mgr.ComposeHooks[key]
	mgr.mux.Unlock()
	if hook != nil {
		hook()
	}
	return nil
}

func (mgr *DockerManager) RunDockerCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error) {
	mgr.record("docker " + strings.Join(command, " "))
	return mgr.Buffered[strings.Join(command, " ")], nil
}

func (mgr *DockerManager) RunDockerComposeCommandBuffered(ctx context.Context, workingDir string, command ...string) (string, error) {
	mgr.record("compose " + strings.Join(command, " "))
	return mgr.Buffered[strings.Join(command, " ")], nil
}

func (mgr *DockerManager) GetImageDigest(image string) (string, error) {
	mgr.record("digest " + image)
	return mgr.Digests[image], nil
}

func (mgr *DockerManager) CopyFileToVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error {
	mgr.record("volume copy-to " + volumeName + " " + destPath)
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	mgr.mux.Lock()
	defer mgr.mux.Unlock()
	if mgr.Volumes[volumeName] == nil {
		mgr.Volumes[volumeName] = make(map[string][]byte)
	}
	mgr.Volumes[volumeName][destPath] = content
	return nil
}

func (mgr *DockerManager) CopyFromVolume(ctx context.Context, volumeName string, sourcePath string, destPath string) error {
	mgr.record("volume copy-from " + volumeName + " " + sourcePath)
	mgr.mux.Lock()
	content, ok := mgr.Volumes[volumeName][sourcePath]
	mgr.mux.Unlock()
	if !ok {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(destPath, content, 0644)
}

func (mgr *DockerManager) RemoveVolume(ctx context.Context, volumeName string) error {
	mgr.record("volume remove " + volumeName)
	mgr.mux.Lock()
	defer mgr.mux.Unlock()
	delete(mgr.Volumes, volumeName)
	return nil
}
