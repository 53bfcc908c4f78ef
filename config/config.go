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

// Package config loads the contacts server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables, then the options given by the caller (command
// line flags). The result is validated as a whole.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/tochemey/contacts/actor"
	"github.com/tochemey/contacts/internal/validation"
	"github.com/tochemey/contacts/log"
)

var (
	// ErrInvalidPort is returned when a port is outside the [0, 65535] range
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidTimeout is returned when a timeout is not positive
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidMailboxCapacity is returned when the mailbox capacity is negative or 1
	ErrInvalidMailboxCapacity = errors.New("invalid mailbox capacity")
	// ErrInvalidLogLevel is returned when the log level is unknown
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrSystemNameRequired is returned when the actor system name is empty
	ErrSystemNameRequired = errors.New("actor system name is required")
)

// defaults
const (
	DefaultPort            = 3000
	DefaultQueryTimeout    = 500 * time.Millisecond
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "info"
	DefaultSystemName      = "ContactsSystem"

	maxPort = 65535
)

// Config represents the contacts server configuration
type Config struct {
	// Specifies the HTTP listen port. The default value is 3000
	Port int `env:"PORT" yaml:"port"`
	// Specifies how long a request waits for the contacts actors to reply.
	// The default value is 500ms
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" yaml:"queryTimeout"`
	// Specifies whether one store serves every request, the user id
	// being dropped from the routes
	SingleTenant bool `env:"SINGLE_TENANT" yaml:"singleTenant"`
	// Specifies the capacity of the actors mailbox. Zero means unbounded,
	// otherwise at least 2
	MailboxCapacity int `env:"MAILBOX_CAPACITY" yaml:"mailboxCapacity"`
	// Specifies the log level: debug, info, warn or error
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`
	// Specifies the port serving the Prometheus metrics. Zero disables it
	MetricsPort int `env:"METRICS_PORT" yaml:"metricsPort"`
	// Specifies the time budget of a graceful shutdown. The default value is 5s
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdownTimeout"`
	// Specifies the actor system name
	SystemName string `env:"SYSTEM_NAME" yaml:"systemName"`
}

// Default returns the configuration with its default values
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		QueryTimeout:    DefaultQueryTimeout,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		SystemName:      DefaultSystemName,
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// when path is not empty, the environment and finally the given options.
func Load(path string, options ...Option) (*Config, error) {
	config := Default()

	if path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", path, err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	for _, opt := range options {
		opt.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Validate checks the configuration and reports every violation
func (c *Config) Validate() error {
	return validation.New().
		AddValidator(validation.NewRangeValidator("port", c.Port, 0, maxPort, ErrInvalidPort)).
		AddValidator(validation.NewRangeValidator("metrics port", c.MetricsPort, 0, maxPort, ErrInvalidPort)).
		AddAssertion(c.MetricsPort == 0 || c.MetricsPort != c.Port,
			fmt.Errorf("%w: metrics port must differ from port %d", ErrInvalidPort, c.Port)).
		AddValidator(validation.NewPositiveDurationValidator("query timeout", c.QueryTimeout, ErrInvalidTimeout)).
		AddValidator(validation.NewPositiveDurationValidator("shutdown timeout", c.ShutdownTimeout, ErrInvalidTimeout)).
		AddValidator(validation.NewRangeValidator("mailbox capacity", c.MailboxCapacity, 0, math.MaxInt, ErrInvalidMailboxCapacity)).
		AddAssertion(c.MailboxCapacity != 1,
			fmt.Errorf("%w: a bounded mailbox needs at least %d slots", ErrInvalidMailboxCapacity, actor.MinMailboxCapacity)).
		AddValidator(validation.ValidatorFunc(func() error {
			if _, err := log.ParseLevel(c.LogLevel); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
			}
			return nil
		})).
		AddAssertion(strings.TrimSpace(c.SystemName) != "", ErrSystemNameRequired).
		Validate()
}

// Level returns the parsed log level, log.InfoLevel when it is invalid
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// MetricsAddr returns the metrics listen address, empty when metrics are disabled
func (c *Config) MetricsAddr() string {
	if c.MetricsPort == 0 {
		return ""
	}
	return ":" + strconv.Itoa(c.MetricsPort)
}

// loadFile reads the YAML file at path into the configuration.
// Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
