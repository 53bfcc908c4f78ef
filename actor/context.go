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

	"github.com/tochemey/contacts/log"
)

// Context is handed to the PreStart and PostStop lifecycle hooks
type Context struct {
	ctx         context.Context
	actorName   string
	actorSystem ActorSystem
	logger      log.Logger
}

func newContext(ctx context.Context, pid *PID) *Context {
	return &Context{
		ctx:         ctx,
		actorName:   pid.Name(),
		actorSystem: pid.system,
		logger:      pid.logger,
	}
}

// Context returns the underlying context
func (x *Context) Context() context.Context {
	return x.ctx
}

// ActorName returns the name of the actor being started or stopped
func (x *Context) ActorName() string {
	return x.actorName
}

// ActorSystem returns the actor system the actor belongs to
func (x *Context) ActorSystem() ActorSystem {
	return x.actorSystem
}

// Logger returns the actor logger
func (x *Context) Logger() log.Logger {
	return x.logger
}
