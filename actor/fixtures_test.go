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

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/tochemey/contacts/log"
)

type testPing struct{}
type testPong struct{}
type testPanic struct{}
type testCount struct{}

// testActor replies to pings, counts every message and panics on demand
type testActor struct {
	received atomic.Int64
}

var _ Actor = (*testActor)(nil)

func (x *testActor) PreStart(*Context) error { return nil }
func (x *testActor) Receive(ctx *ReceiveContext) {
	switch ctx.Message().(type) {
	case *testPing:
		x.received.Inc()
		ctx.Response(new(testPong))
	case *testCount:
		x.received.Inc()
		ctx.Response(x.received.Load())
	case *testPanic:
		panic("boom")
	default:
		ctx.Unhandled()
	}
}
func (x *testActor) PostStop(*Context) error { return nil }

type preStartActor struct{}

func (x *preStartActor) PreStart(*Context) error { return errors.New("failed") }
func (x *preStartActor) Receive(*ReceiveContext) {}
func (x *preStartActor) PostStop(*Context) error { return nil }

type postStopActor struct{}

func (x *postStopActor) PreStart(*Context) error { return nil }
func (x *postStopActor) Receive(*ReceiveContext) {}
func (x *postStopActor) PostStop(*Context) error { return errors.New("failed") }

// gatedActor blocks on every message until the gate is opened
type gatedActor struct {
	entered chan struct{}
	gate    chan struct{}
	handled atomic.Int64
}

func newGatedActor() *gatedActor {
	return &gatedActor{
		entered: make(chan struct{}, 16),
		gate:    make(chan struct{}),
	}
}

func (x *gatedActor) PreStart(*Context) error { return nil }
func (x *gatedActor) Receive(ctx *ReceiveContext) {
	x.entered <- struct{}{}
	<-x.gate
	x.handled.Inc()
	if ctx.envelope.HasReplyAddress() {
		ctx.Response(new(testPong))
	}
}
func (x *gatedActor) PostStop(*Context) error { return nil }

func newTestSystem(t *testing.T, opts ...Option) ActorSystem {
	t.Helper()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	system, err := NewActorSystem("testSys", opts...)
	require.NoError(t, err)
	require.NoError(t, system.Start(context.Background()))
	return system
}
