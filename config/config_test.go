// Copyright 2025 book-recommender Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmarshal(t *testing.T) {
	data, err := os.ReadFile("config.toml.template")
	assert.NoError(t, err)
	text := strings.Replace(string(data), "api_key = \"\"", "api_key = \"19260817\"", -1)
	config, err := ReadConfig(strings.NewReader(text))
	assert.NoError(t, err)

	// [server]
	assert.Equal(t, "127.0.0.1", config.Server.HttpHost)
	assert.Equal(t, 8087, config.Server.HttpPort)
	assert.Equal(t, "19260817", config.Server.APIKey)
	assert.Equal(t, 50, config.Server.DefaultN)
	// [model]
	assert.Equal(t, "recommendation_system.json", config.Model.Path)
}

func TestDefault(t *testing.T) {
	// missing keys fall back to defaults
	config, err := ReadConfig(strings.NewReader("[server]\nhttp_port = 9000\n"))
	assert.NoError(t, err)
	assert.Equal(t, 9000, config.Server.HttpPort)
	assert.Equal(t, "127.0.0.1", config.Server.HttpHost)
	assert.Equal(t, 50, config.Server.DefaultN)
	assert.Equal(t, "recommendation_system.json", config.Model.Path)
}

func TestValidate(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = ReadConfig(strings.NewReader("[server]\nhttp_port = -1\n"))
	})
	assert.Panics(t, func() {
		_, _ = ReadConfig(strings.NewReader("[model]\npath = \"\"\n"))
	})
}
