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

package actor

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/contacts/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(sys *actorSystem)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*actorSystem)

// Apply applies the actor system's option
func (f OptionFunc) Apply(c *actorSystem) {
	f(c)
}

// WithLogger sets the actor system custom log
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(a *actorSystem) {
		if logger != nil {
			a.logger = logger
		}
	})
}

// WithMailboxCapacity sets the capacity of the actors mailbox.
// Zero means unbounded mailboxes, any positive value bounded ones.
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(a *actorSystem) {
		if capacity >= 0 {
			a.mailboxCapacity = capacity
		}
	})
}

// WithMeterProvider sets the OpenTelemetry MeterProvider used to
// report the actor system metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(a *actorSystem) {
		a.meterProvider = provider
	})
}

// WithShutdownTimeout sets the time budget given to Stop to drain
// and stop every actor
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		if timeout > 0 {
			a.shutdownTimeout = timeout
		}
	})
}

// WithActorInitMaxRetries sets the number of times PreStart is attempted
// before an actor is considered failed to start
func WithActorInitMaxRetries(max int) Option {
	return OptionFunc(func(a *actorSystem) {
		if max > 0 {
			a.initMaxRetries = max
		}
	})
}

// WithActorInitTimeout sets the time budget given to an actor to start
func WithActorInitTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		if timeout > 0 {
			a.initTimeout = timeout
		}
	})
}
