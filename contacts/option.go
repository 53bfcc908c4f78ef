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

package contacts

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/contacts/log"
)

// DefaultQueryTimeout is the time a query waits for its reply by default
const DefaultQueryTimeout = 500 * time.Millisecond

// options holds the settings of the contacts Service
type options struct {
	queryTimeout  time.Duration
	singleTenant  bool
	ids           IDGenerator
	logger        log.Logger
	meterProvider metric.MeterProvider
}

func newOptions(opts ...Option) *options {
	o := &options{
		queryTimeout: DefaultQueryTimeout,
		ids:          NewUUIDGenerator(),
		logger:       log.DefaultLogger,
	}
	for _, opt := range opts {
		opt.Apply(o)
	}
	return o
}

// Option configures the contacts Service
type Option interface {
	// Apply sets the Option value of a config.
	Apply(o *options)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(o *options)

// Apply applies the option
func (f OptionFunc) Apply(o *options) {
	f(o)
}

// WithQueryTimeout sets the time a query waits for its reply
func WithQueryTimeout(timeout time.Duration) Option {
	return OptionFunc(func(o *options) {
		if timeout > 0 {
			o.queryTimeout = timeout
		}
	})
}

// WithSingleTenant serves every request from one Entity instead of one per user
func WithSingleTenant(enabled bool) Option {
	return OptionFunc(func(o *options) {
		o.singleTenant = enabled
	})
}

// WithIDGenerator sets the supplier of the contact ids
func WithIDGenerator(ids IDGenerator) Option {
	return OptionFunc(func(o *options) {
		if ids != nil {
			o.ids = ids
		}
	})
}

// WithLogger sets the Service logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithMeterProvider sets the MeterProvider used to report the query metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(o *options) {
		o.meterProvider = provider
	})
}
