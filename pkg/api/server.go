// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package api

import (
	"log/slog"
	"os"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/config"
	"github.com/Princeton-CDH/cdhweb-components/pkg/logging"
	"github.com/Princeton-CDH/cdhweb-components/pkg/server"

	// Register site components.
	_ "github.com/Princeton-CDH/cdhweb-components/pkg/component/widgets"
)

const (
	name           = "cdhwebd"
	versionDefault = "dev"

	// EnvConfig names the site configuration file.
	EnvConfig = "CDH_CONFIG"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/Princeton-CDH/cdhweb-components/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the page server and blocks until shutdown.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"components", component.GlobalNames(),
	)

	cfg, err := serverConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	if err := server.RunWithConfig(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// serverConfig builds the server configuration from the file named by
// CDH_CONFIG, or from the defaults, with environment overrides applied.
func serverConfig() (*server.Config, error) {
	site, err := config.Load(os.Getenv(EnvConfig))
	if err != nil {
		return nil, err
	}
	if site.LogLevel != "" {
		logging.SetDefaultStructuredLoggerWithLevel(name, version, site.LogLevel)
	}

	cfg := server.ConfigFromSite(site)
	cfg.Name = name
	cfg.Version = version
	return cfg, nil
}
