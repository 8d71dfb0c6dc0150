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
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
	"github.com/Princeton-CDH/cdhweb-components/pkg/page"
	"github.com/Princeton-CDH/cdhweb-components/pkg/storage"
)

func mountCmd() *cli.Command {
	return &cli.Command{
		Name:                  "mount",
		EnableShellCompletion: true,
		Usage:                 "Mount the components declared in an HTML page",
		ArgsUsage:             "<page.html|->",
		Description: `Parse an HTML page, mount every top-level component container and
report which containers mounted and which failed.

Containers nested inside another container are left to the component
that owns them. A failing container fails the run unless --isolate is
given, in which case the failure is reported next to the containers that
did mount.

# Examples

Report the components of a page as a table:
  cdhweb mount page.html --format table

Write the hydrated page and keep alert dismissals between runs:
  cdhweb mount page.html --html out.html --storage ~/.cdhweb-storage.yaml

Read the page from stdin:
  cat page.html | cdhweb mount - --isolate`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "html",
				Usage: "Write the hydrated page to this path (- for stdout)",
			},
			&cli.StringFlag{
				Name:  "storage",
				Usage: "YAML file backing the page's key-value storage (default: in-memory, or storage_file from config)",
			},
			&cli.StringFlag{
				Name:  "location",
				Value: "/",
				Usage: "URL path the page is mounted at",
			},
			&cli.BoolFlag{
				Name:  "isolate",
				Usage: "Report failing containers instead of failing the run",
			},
			&cli.BoolFlag{
				Name:  "dispose",
				Usage: "Dispose every mounted component before exiting",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Bound on the whole mount pass (default: 2m)",
			},
			outputFlag,
			formatFlag,
		},
		Action: runMount,
	}
}

func runMount(ctx context.Context, cmd *cli.Command) error {
	source := cmd.Args().First()
	if source == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "page path is required (use - for stdin)")
	}

	// Fail on a bad format before doing any work.
	if _, err := parseOutputFormat(cmd); err != nil {
		return err
	}

	site, err := loadSite(cmd)
	if err != nil {
		return err
	}

	opts := page.Options{
		Isolate:       cmd.Bool("isolate") || site.Isolate,
		Location:      cmd.String("location"),
		Timeout:       cmd.Duration("timeout"),
		LoaderTimeout: site.LoaderTimeout(),
	}

	storePath := cmd.String("storage")
	if storePath == "" {
		storePath = site.StorageFile
	}
	if storePath != "" {
		store, err := storage.NewFile(storePath)
		if err != nil {
			return err
		}
		opts.Storage = store
	}

	in, closeIn, err := openSource(source)
	if err != nil {
		return err
	}
	defer closeIn()

	res, mountErr := page.Hydrate(ctx, in, opts)
	if res == nil {
		return mountErr
	}

	if path := cmd.String("html"); path != "" {
		if err := writeHTML(res, path); err != nil {
			return err
		}
	}

	report := res.Report(source, version)
	slog.Info("page mounted", "source", source, "summary", report.Summary())

	if err := writeOutput(ctx, cmd, report); err != nil {
		return err
	}

	if cmd.Bool("dispose") {
		start := time.Now()
		n := res.Ledger.DisposeAll()
		slog.Info("components disposed", "count", n, "duration", time.Since(start).Round(time.Microsecond))
	}

	return mountErr
}

func openSource(source string) (io.Reader, func(), error) {
	if source == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to open page", err,
			map[string]any{"path": source})
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close page", "path", source, "error", err)
		}
	}, nil
}

func writeHTML(res *page.Result, path string) error {
	if path == "-" {
		return res.Render(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to create html output", err,
			map[string]any{"path": path})
	}
	if err := res.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write html output", err)
	}
	return nil
}
