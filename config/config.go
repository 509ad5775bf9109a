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
	"io"

	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the recommender service.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
}

// ServerConfig is the configuration for the HTTP server.
type ServerConfig struct {
	HttpHost string `mapstructure:"http_host"`
	HttpPort int    `mapstructure:"http_port"`
	APIKey   string `mapstructure:"api_key"`
	DefaultN int    `mapstructure:"default_n"`
}

// ModelConfig is the configuration for the model bundle.
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HttpHost: "127.0.0.1",
			HttpPort: 8087,
			DefaultN: 50,
		},
		Model: ModelConfig{
			Path: "recommendation_system.json",
		},
	}
}

// LoadConfig loads the configuration from a TOML file. Keys absent
// from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	return unmarshal(v)
}

// ReadConfig reads the configuration from a TOML stream.
func ReadConfig(r io.Reader) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Trace(err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	config := GetDefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Trace(err)
	}
	config.validate()
	return config, nil
}

func (config *Config) validate() {
	validateNotEmpty("server.http_host", config.Server.HttpHost)
	validatePositive("server.http_port", config.Server.HttpPort)
	validatePositive("server.default_n", config.Server.DefaultN)
	validateNotEmpty("model.path", config.Model.Path)
}
