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
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Princeton-CDH/cdhweb-components/pkg/component"
	"github.com/Princeton-CDH/cdhweb-components/pkg/errors"
	"github.com/Princeton-CDH/cdhweb-components/pkg/logging"
)

// Server represents the HTTP server
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	registry    *component.Registry
	pages       *pageSources
	mu          sync.RWMutex
	ready       bool
}

// NewServer creates a new server instance
func NewServer(config *Config) *Server {
	if config == nil {
		config = NewConfig()
	}

	reg := config.Registry
	if reg == nil {
		reg = component.NewFromGlobal()
	}

	s := &Server{
		config:      config,
		rateLimiter: rate.NewLimiter(config.RateLimit, config.RateLimitBurst),
		registry:    reg,
		pages:       newPageSources(config.DocRoot, config.CacheEntries),
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Address, config.Port),
		Handler:           s.setupRoutes(),
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Start starts the HTTP server and the page watcher. It returns once ctx is
// cancelled and the server has shut down, or when either fails.
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.pages.watch(gctx)
	})

	g.Go(func() error {
		errChan := make(chan error, 1)
		go func() {
			if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				errChan <- err
			}
			close(errChan)
		}()

		s.SetReady(true)
		slog.Info("server listening", "address", s.httpServer.Addr, "docRoot", s.config.DocRoot)

		select {
		case <-gctx.Done():
			return s.Shutdown(context.Background())
		case err, ok := <-errChan:
			if !ok {
				return nil
			}
			return errors.Wrap(errors.ErrCodeUnavailable, "server failed", err)
		}
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to shut down server", err)
	}
	return nil
}

// Run starts the server with default configuration and graceful shutdown
// handling.
func Run() error {
	return RunWithConfig(NewConfig())
}

// RunWithConfig starts the server with custom configuration
func RunWithConfig(config *Config) error {
	server := NewServer(config)

	slog.Info("server config",
		slog.String("name", config.Name),
		slog.String("version", config.Version),
		slog.String("address", server.httpServer.Addr),
		slog.String("docRoot", config.DocRoot),
		slog.Int("components", server.registry.Count()),
		slog.Bool("isolate", config.Isolate),
		slog.Any("rateLimit", config.RateLimit),
		slog.Int("rateLimitBurst", config.RateLimitBurst),
		slog.Int("cacheEntries", config.CacheEntries),
		slog.Duration("loaderTimeout", config.LoaderTimeout),
		slog.Duration("pageTimeout", config.PageTimeout),
		slog.Duration("shutdownTimeout", config.ShutdownTimeout),
	)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		slog.Error("error running server", slog.String("error", err.Error()))
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}
