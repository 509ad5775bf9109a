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

package main

import (
	"fmt"
	_ "net/http/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/base/log"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/cmd/version"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/config"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/server"
)

var bookrecCommand = &cobra.Command{
	Use:   "bookrec",
	Short: "The book recommender server.",
	Run: func(cmd *cobra.Command, args []string) {
		// show version
		showVersion, _ := cmd.PersistentFlags().GetBool("version")
		if showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		// setup logger
		debugMode, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debugMode)
		// load config
		var cfg *config.Config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		if cmd.PersistentFlags().Changed("config") {
			var err error
			if cfg, err = config.LoadConfig(configPath); err != nil {
				log.Logger().Fatal("failed to load config", zap.String("path", configPath), zap.Error(err))
			}
		} else {
			cfg = config.GetDefaultConfig()
		}
		// load model and start server
		s := server.NewRestServer(cfg)
		if err := s.Store.Load(); err != nil {
			log.Logger().Warn("using mock data for demonstration", zap.Error(err))
		}
		s.StartHttpServer()
	},
}

func init() {
	bookrecCommand.PersistentFlags().BoolP("version", "v", false, "bookrec version")
	bookrecCommand.PersistentFlags().StringP("config", "c", "config.toml", "configuration file path")
	bookrecCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(bookrecCommand.PersistentFlags())
}

func main() {
	if err := bookrecCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
