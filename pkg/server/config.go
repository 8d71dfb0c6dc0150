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

package server

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/config"
	"github.com/Princeton-CDH/cdhweb-components/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Server configuration
	Address string
	Port    int

	// DocRoot holds the HTML page sources.
	DocRoot string

	// Registry resolves component names. Nil means the global registry.
	Registry *component.Registry

	// Isolate keeps a failing component from failing its page.
	Isolate bool

	// LoaderTimeout bounds deferred component loaders.
	LoaderTimeout time.Duration

	// CacheEntries caps the page source cache.
	CacheEntries int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	PageTimeout       time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	cfg := &Config{
		Name:              "cdhwebd",
		Version:           "undefined",
		Port:              8080,
		DocRoot:           ".",
		Isolate:           true,
		LoaderTimeout:     defaults.LoaderTimeout,
		CacheEntries:      defaults.PageCacheMaxEntries,
		RateLimit:         100, // 100 req/s
		RateLimitBurst:    200, // burst of 200
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
		PageTimeout:       defaults.PageHandlerTimeout,
	}

	// Override with environment variables if set
	if portStr := os.Getenv(config.EnvPort); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	// Allow customization of shutdown timeout to match K8s eviction grace period
	if shutdownStr := os.Getenv(config.EnvShutdownTimeout); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}

// ConfigFromSite builds a server configuration from the site configuration.
// The site configuration has already had its environment overrides applied.
func ConfigFromSite(site *config.Site) *Config {
	cfg := NewConfig()
	cfg.Name = site.Name
	cfg.DocRoot = site.DocRoot
	cfg.Isolate = true
	cfg.Address = site.Server.Address
	cfg.Port = site.Server.Port
	cfg.RateLimit = rate.Limit(site.Server.RateLimit)
	cfg.RateLimitBurst = site.Server.RateLimitBurst
	if site.LoaderTimeoutSeconds > 0 {
		cfg.LoaderTimeout = site.LoaderTimeout()
	}
	if site.Server.ShutdownTimeoutSeconds > 0 {
		cfg.ShutdownTimeout = site.ShutdownTimeout()
	}
	if site.Server.CacheEntries > 0 {
		cfg.CacheEntries = site.Server.CacheEntries
	}
	return cfg
}
