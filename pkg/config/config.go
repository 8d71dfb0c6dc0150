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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Princeton-CDH/cdhweb-components/pkg/defaults"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
	"github.com/Princeton-CDH/cdhweb-components/pkg/logging"
	"github.com/Princeton-CDH/cdhweb-components/pkg/serializer"
)

const (
	EnvPort            = "PORT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT_SECONDS"
	EnvDocRoot         = "CDH_DOC_ROOT"
)

// Site is the site configuration.
type Site struct {
	Name                 string `json:"name" yaml:"name" toml:"name"`
	DocRoot              string `json:"doc_root" yaml:"doc_root" toml:"doc_root"`
	StorageFile          string `json:"storage_file,omitempty" yaml:"storage_file,omitempty" toml:"storage_file"`
	Isolate              bool   `json:"isolate" yaml:"isolate" toml:"isolate"`
	LoaderTimeoutSeconds int    `json:"loader_timeout_seconds,omitempty" yaml:"loader_timeout_seconds,omitempty" toml:"loader_timeout_seconds"`
	LogLevel             string `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level"`
	Server               Server `json:"server" yaml:"server" toml:"server"`
}

// Server holds the HTTP server settings.
type Server struct {
	Address                string  `json:"address,omitempty" yaml:"address,omitempty" toml:"address"`
	Port                   int     `json:"port" yaml:"port" toml:"port"`
	RateLimit              float64 `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	RateLimitBurst         int     `json:"rate_limit_burst" yaml:"rate_limit_burst" toml:"rate_limit_burst"`
	ShutdownTimeoutSeconds int     `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`
	CacheEntries           int     `json:"cache_entries,omitempty" yaml:"cache_entries,omitempty" toml:"cache_entries"`
}

// Default returns the built-in configuration.
func Default() *Site {
	return &Site{
		Name:                 "cdhweb",
		DocRoot:              ".",
		LoaderTimeoutSeconds: int(defaults.LoaderTimeout / time.Second),
		LogLevel:             "info",
		Server: Server{
			Port:                   8080,
			RateLimit:              100,
			RateLimitBurst:         200,
			ShutdownTimeoutSeconds: int(defaults.ServerShutdownTimeout / time.Second),
			CacheEntries:           defaults.PageCacheMaxEntries,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults plus environment.
func Load(path string) (*Site, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		format := serializer.FormatFromPath(path)
		if format != serializer.FormatTOML && format != serializer.FormatYAML && format != serializer.FormatJSON {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"unsupported configuration file type", map[string]any{"path": path})
		}
		r, err := serializer.NewFileReader(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		if err := r.Deserialize(cfg); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"failed to load configuration", err, map[string]any{"path": path})
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (s *Site) ApplyEnv() {
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Server.Port = port
		}
	}
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			s.Server.ShutdownTimeoutSeconds = seconds
		}
	}
	if v := os.Getenv(logging.EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvDocRoot); v != "" {
		s.DocRoot = v
	}
}

// Validate checks the configuration for values that cannot work.
func (s *Site) Validate() error {
	var problems []string
	if s.DocRoot == "" {
		problems = append(problems, "doc_root must be set")
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", s.Server.Port))
	}
	if s.Server.RateLimit <= 0 {
		problems = append(problems, "server.rate_limit must be positive")
	}
	if s.Server.RateLimitBurst <= 0 {
		problems = append(problems, "server.rate_limit_burst must be positive")
	}
	if s.LoaderTimeoutSeconds < 0 {
		problems = append(problems, "loader_timeout_seconds cannot be negative")
	}
	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"invalid configuration: "+strings.Join(problems, "; "),
			map[string]any{"problems": problems})
	}
	return nil
}

// LoaderTimeout returns the deferred loader bound.
func (s *Site) LoaderTimeout() time.Duration {
	return time.Duration(s.LoaderTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown bound.
func (s *Site) ShutdownTimeout() time.Duration {
	return time.Duration(s.Server.ShutdownTimeoutSeconds) * time.Second
}
