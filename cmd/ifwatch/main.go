/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/ifwatch/pkg/config"
	"github.com/carverauto/ifwatch/pkg/ifwatch"
	"github.com/carverauto/ifwatch/pkg/lifecycle"
	"github.com/carverauto/ifwatch/pkg/logger"
	"github.com/carverauto/ifwatch/pkg/version"
	"github.com/spf13/pflag"
)

var errFailedToLoadConfig = errors.New("failed to load config")

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("Fatal error")
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", "/etc/ifwatch/ifwatch.json", "Path to config file")
	listenAddr := pflag.String("listen", "", "HTTP API listen address (overrides listen_addr)")
	debug := pflag.Bool("debug", false, "Enable debug logging")
	showVersion := pflag.BoolP("version", "v", false, "Print the version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println("ifwatch", version.GetFullVersion())

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := lifecycle.InitializeLogger(nil); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var cfg ifwatch.Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}

	if *debug {
		cfg.Logging.Debug = true
	}

	log, err := lifecycle.CreateComponentLogger("ifwatch", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	svc, err := ifwatch.New(ctx, &cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create ifwatch service: %w", err)
	}

	return svc.Run(ctx)
}
