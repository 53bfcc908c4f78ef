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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/contacts/errors"
	"github.com/tochemey/contacts/log"
)

func TestOption(t *testing.T) {
	provider := noop.NewMeterProvider()
	testCases := []struct {
		name     string
		option   Option
		expected actorSystem
	}{
		{
			name:     "WithLogger",
			option:   WithLogger(log.DiscardLogger),
			expected: actorSystem{logger: log.DiscardLogger},
		},
		{
			name:     "WithMailboxCapacity",
			option:   WithMailboxCapacity(10),
			expected: actorSystem{mailboxCapacity: 10},
		},
		{
			name:     "WithShutdownTimeout",
			option:   WithShutdownTimeout(time.Second),
			expected: actorSystem{shutdownTimeout: time.Second},
		},
		{
			name:     "WithActorInitMaxRetries",
			option:   WithActorInitMaxRetries(2),
			expected: actorSystem{initMaxRetries: 2},
		},
		{
			name:     "WithActorInitTimeout",
			option:   WithActorInitTimeout(time.Minute),
			expected: actorSystem{initTimeout: time.Minute},
		},
		{
			name:     "WithMeterProvider",
			option:   WithMeterProvider(provider),
			expected: actorSystem{meterProvider: provider},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var system actorSystem
			tc.option.Apply(&system)
			assert.Equal(t, tc.expected, system)
		})
	}
}

func TestOptionIgnoresInvalidValues(t *testing.T) {
	system, err := NewActorSystem("testSys",
		WithLogger(nil),
		WithMailboxCapacity(-1),
		WithShutdownTimeout(0),
		WithActorInitMaxRetries(0),
		WithActorInitTimeout(-time.Second))
	require.NoError(t, err)

	impl := system.(*actorSystem)
	assert.Same(t, log.DefaultLogger, impl.logger)
	assert.Zero(t, impl.mailboxCapacity)
	assert.Equal(t, DefaultShutdownTimeout, impl.shutdownTimeout)
	assert.Equal(t, DefaultInitMaxRetries, impl.initMaxRetries)
	assert.Equal(t, DefaultInitTimeout, impl.initTimeout)
}

// flakyActor fails to start a given number of times
type flakyActor struct {
	failures atomic.Int32
}

func (x *flakyActor) PreStart(*Context) error {
	if x.failures.Dec() >= 0 {
		return errors.New("not ready")
	}
	return nil
}
func (x *flakyActor) Receive(*ReceiveContext) {}
func (x *flakyActor) PostStop(*Context) error { return nil }

func TestActorInitRetries(t *testing.T) {
	ctx := context.Background()
	t.Run("With PreStart succeeding after retries", func(t *testing.T) {
		system := newTestSystem(t, WithActorInitMaxRetries(3))
		actor := new(flakyActor)
		actor.failures.Store(2)

		pid, err := system.Spawn(ctx, "flaky", actor)
		require.NoError(t, err)
		assert.True(t, pid.IsRunning())
		require.NoError(t, system.Stop(ctx))
	})
	t.Run("With retries exhausted", func(t *testing.T) {
		system := newTestSystem(t, WithActorInitMaxRetries(2))
		actor := new(flakyActor)
		actor.failures.Store(2)

		_, err := system.Spawn(ctx, "flaky", actor)
		require.ErrorIs(t, err, gerrors.ErrInitFailure)
		require.NoError(t, system.Stop(ctx))
	})
}
