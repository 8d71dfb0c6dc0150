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

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/server"
)

func componentsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "components",
		EnableShellCompletion: true,
		Usage:                 "List registered components",
		Description: `List every component name the registry resolves, with its strategy:

  eager     initialized as soon as its container is found
  deferred  its implementation is loaded on first use`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeOutput(ctx, cmd, server.NewComponentsResponse(component.NewFromGlobal(), version))
		},
	}
}
