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

package config

import "time"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Config)

// Apply applies the configuration option
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithPort sets the HTTP listen port
func WithPort(port int) Option {
	return OptionFunc(func(config *Config) {
		config.Port = port
	})
}

// WithSingleTenant sets the single-tenant mode
func WithSingleTenant(enabled bool) Option {
	return OptionFunc(func(config *Config) {
		config.SingleTenant = enabled
	})
}

// WithQueryTimeout sets the query timeout
func WithQueryTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.QueryTimeout = timeout
	})
}

// WithMailboxCapacity sets the actors mailbox capacity
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(config *Config) {
		config.MailboxCapacity = capacity
	})
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return OptionFunc(func(config *Config) {
		config.LogLevel = level
	})
}

// WithMetricsPort sets the Prometheus metrics port
func WithMetricsPort(port int) Option {
	return OptionFunc(func(config *Config) {
		config.MetricsPort = port
	})
}

// WithShutdownTimeout sets the graceful shutdown budget
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.ShutdownTimeout = timeout
	})
}

// WithSystemName sets the actor system name
func WithSystemName(name string) Option {
	return OptionFunc(func(config *Config) {
		config.SystemName = name
	})
}
