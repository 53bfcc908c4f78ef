/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tochemey/contacts/config"
	"github.com/tochemey/contacts/log"
)

var (
	port         int
	singleTenant bool
	configFile   string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the contacts HTTP server",
	Long: `Start the actor system and serve the contacts API until SIGINT or SIGTERM.
Settings come from the config file, the environment and the flags, in increasing precedence.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var options []config.Option
		if cmd.Flags().Changed("port") {
			options = append(options, config.WithPort(port))
		}
		if cmd.Flags().Changed("single-tenant") {
			options = append(options, config.WithSingleTenant(singleTenant))
		}

		cfg, err := config.Load(configFile, options...)
		if err != nil {
			return err
		}

		logger := log.NewZap(cfg.Level(), os.Stdout)
		defer func() { _ = logger.Flush() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg, logger)
	},
}

// run starts the server and stops it once ctx is done
func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	srv := newServer(cfg, logger)
	if err := srv.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start the contacts server")
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-srv.Errors():
		logger.Errorf("contacts server failed: %v", serveErr)
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(stopCtx); err != nil {
		return errors.Wrap(err, "failed to stop the contacts server")
	}
	return serveErr
}

func init() {
	runCmd.Flags().IntVar(&port, "port", config.DefaultPort, "HTTP listen port")
	runCmd.Flags().BoolVar(&singleTenant, "single-tenant", false, "serve one contacts store for every request")
	runCmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.AddCommand(runCmd)
}
