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
	"fmt"

	"github.com/kkrt-labs/kstack/internal/constants"
	"github.com/kkrt-labs/kstack/pkg/types"
)

type DependsOn map[string]map[string]string

// Dependency conditions understood by compose
const (
	ServiceStarted               = "service_started"
	ServiceCompletedSuccessfully = "service_completed_successfully"
)

const RestartOnFailure = "on-failure"

type LoggingConfig struct {
	Driver  string            `yaml:"driver,omitempty"`
	Options map[string]string `yaml:"options,omitempty"`
}

type ServiceDefinition struct {
	ServiceName string
	Service     *Service
	VolumeNames []string
}

type Service struct {
	ContainerName string                       `yaml:"container_name,omitempty"`
	Image         string                       `yaml:"image,omitempty"`
	Build         string                       `yaml:"build,omitempty"`
	EntryPoint    []string                     `yaml:"entrypoint,omitempty"`
	Command       []string                     `yaml:"command,omitempty"`
	WorkingDir    string                       `yaml:"working_dir,omitempty"`
	Environment   map[string]string            `yaml:"environment,omitempty"`
	Volumes       []string                     `yaml:"volumes,omitempty"`
	Ports         []string                     `yaml:"ports,omitempty"`
	DependsOn     map[string]map[string]string `yaml:"depends_on,omitempty"`
	Restart       string                       `yaml:"restart,omitempty"`
	Logging       *LoggingConfig               `yaml:"logging,omitempty"`
}

type DockerComposeConfig struct {
	Version  string              `yaml:"version,omitempty"`
	Services map[string]*Service `yaml:"services,omitempty"`
	Volumes  map[string]struct{} `yaml:"volumes,omitempty"`
}

var StandardLogOptions = &LoggingConfig{
	Driver: "json-file",
	Options: map[string]string{
		"max-size": "10m",
		"max-file": "1",
	},
}

// DeploymentsVolumeMount mounts the shared deployments volume at path
func DeploymentsVolumeMount(path string) string {
	return fmt.Sprintf("%s:%s", constants.DeploymentsVolume, path)
}

// CreateDockerCompose assembles the compose file for a stack from the service
// definitions of each component. Stack level environment variables are added
// to every service, overriding the component defaults.
func CreateDockerCompose(s *types.Stack, definitions ...*ServiceDefinition) *DockerComposeConfig {
	compose := &DockerComposeConfig{
		Services: make(map[string]*Service),
		Volumes:  make(map[string]struct{}),
	}
	for _, def := range definitions {
		if def == nil || def.Service == nil {
			continue
		}
		if def.Service.ContainerName == "" {
			def.Service.ContainerName = fmt.Sprintf("%s_%s", s.Name, def.ServiceName)
		}
		if def.Service.Logging == nil {
			def.Service.Logging = StandardLogOptions
		}
		if len(s.EnvironmentVars) > 0 {
			def.Service.Environment = s.ConcatenateWithProvidedEnvironmentVars(def.Service.Environment)
		}
		compose.Services[def.ServiceName] = def.Service
		for _, volumeName := range def.VolumeNames {
			compose.Volumes[volumeName] = struct{}{}
		}
	}
	return compose
}

// Dependencies lists the services a service waits on, grouped by condition
func (c *DockerComposeConfig) Dependencies(serviceName string) map[string]string {
	deps := make(map[string]string)
	if service, ok := c.Services[serviceName]; ok {
		for dep, opts := range service.DependsOn {
			deps[dep] = opts["condition"]
		}
	}
	return deps
}
