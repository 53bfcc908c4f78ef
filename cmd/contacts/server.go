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
	"errors"
	"net"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/multierr"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tochemey/contacts/actor"
	"github.com/tochemey/contacts/config"
	"github.com/tochemey/contacts/contacts"
	"github.com/tochemey/contacts/internal/httpapi"
	"github.com/tochemey/contacts/log"
)

const serviceName = "contacts"

// server wires the actor system, the contacts service and the HTTP listeners
type server struct {
	config *config.Config
	logger log.Logger

	system        actor.ActorSystem
	service       *contacts.Service
	meterProvider *sdkmetric.MeterProvider

	httpServer    *http.Server
	listener      net.Listener
	metricsServer *http.Server
	metricsLn     net.Listener

	errs chan error
}

func newServer(cfg *config.Config, logger log.Logger) *server {
	return &server{
		config: cfg,
		logger: logger,
		errs:   make(chan error, 2),
	}
}

// Start starts the actor system and the HTTP listeners.
// On failure everything already started is stopped.
func (s *server) Start(ctx context.Context) error {
	if err := s.start(ctx); err != nil {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
		defer cancel()
		return multierr.Append(err, s.Stop(stopCtx))
	}
	return nil
}

func (s *server) start(ctx context.Context) error {
	if s.config.MetricsAddr() != "" {
		if err := s.startMetrics(); err != nil {
			return err
		}
	}

	options := []actor.Option{
		actor.WithLogger(s.logger),
		actor.WithMailboxCapacity(s.config.MailboxCapacity),
		actor.WithShutdownTimeout(s.config.ShutdownTimeout),
	}
	serviceOptions := []contacts.Option{
		contacts.WithLogger(s.logger),
		contacts.WithQueryTimeout(s.config.QueryTimeout),
		contacts.WithSingleTenant(s.config.SingleTenant),
	}
	if s.meterProvider != nil {
		options = append(options, actor.WithMeterProvider(s.meterProvider))
		serviceOptions = append(serviceOptions, contacts.WithMeterProvider(s.meterProvider))
	}

	system, err := actor.NewActorSystem(s.config.SystemName, options...)
	if err != nil {
		return err
	}
	if err := system.Start(ctx); err != nil {
		return err
	}
	s.system = system

	service, err := contacts.Spawn(ctx, system, serviceOptions...)
	if err != nil {
		return err
	}
	s.service = service

	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return err
	}
	s.listener = listener
	s.httpServer = &http.Server{
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      s.config.QueryTimeout + 3*time.Second,
		IdleTimeout:       1200 * time.Second,
		Handler: h2c.NewHandler(httpapi.NewHandler(service, s.logger), &http2.Server{
			IdleTimeout: 1200 * time.Second,
		}),
	}

	go s.serve(s.httpServer, listener)
	s.logger.Infof("contacts server listening on %s (single tenant=%t)", listener.Addr(), s.config.SingleTenant)
	return nil
}

// startMetrics exposes the OpenTelemetry metrics in the Prometheus format
func (s *server) startMetrics() error {
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return err
	}

	s.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)

	listener, err := net.Listen("tcp", s.config.MetricsAddr())
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	s.metricsLn = listener
	s.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}

	go s.serve(s.metricsServer, listener)
	s.logger.Infof("metrics listening on %s", listener.Addr())
	return nil
}

func (s *server) serve(srv *http.Server, listener net.Listener) {
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errs <- err
	}
}

// Errors reports the listeners failures
func (s *server) Errors() <-chan error {
	return s.errs
}

// Addr returns the address of the contacts API listener
func (s *server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// MetricsAddr returns the address of the metrics listener, nil when disabled
func (s *server) MetricsAddr() net.Addr {
	if s.metricsLn == nil {
		return nil
	}
	return s.metricsLn.Addr()
}

// Stop stops accepting requests, drains the actors and flushes the metrics
func (s *server) Stop(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
	}
	if s.service != nil {
		err = multierr.Append(err, s.service.Close())
	}
	if s.system != nil && s.system.Running() {
		err = multierr.Append(err, s.system.Stop(ctx))
	}
	if s.metricsServer != nil {
		err = multierr.Append(err, s.metricsServer.Shutdown(ctx))
	}
	if s.meterProvider != nil {
		err = multierr.Append(err, s.meterProvider.Shutdown(ctx))
	}

	s.logger.Info("contacts server stopped")
	return err
}
