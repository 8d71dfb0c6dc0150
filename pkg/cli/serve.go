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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Princeton-CDH/cdhweb-components/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Serve pages with their components mounted",
		Description: `Serve the HTML pages under a document root. Every page is mounted
per request with the visitor's storage cookie; a failing component is
logged and skipped rather than failing the page.

Also serves /health, /ready, /metrics, /v1/components and
POST /v1/alerts/dismiss?id=ALERT.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "doc-root",
				Usage: "Directory holding the page sources (default: doc_root from config)",
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "Address to listen on",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (default: 8080)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := serverConfig(cmd)
			if err != nil {
				return err
			}
			return server.RunWithConfig(cfg)
		},
	}
}

func serverConfig(cmd *cli.Command) (*server.Config, error) {
	site, err := loadSite(cmd)
	if err != nil {
		return nil, err
	}

	cfg := server.ConfigFromSite(site)
	cfg.Version = version
	if v := cmd.String("doc-root"); v != "" {
		cfg.DocRoot = v
	}
	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	return cfg, nil
}
