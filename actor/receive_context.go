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
	"fmt"

	gerrors "github.com/tochemey/contacts/errors"
	"github.com/tochemey/contacts/log"
)

// ReceiveContext is the context handed to an actor for every message it processes.
// It is only valid for the duration of the Receive call.
type ReceiveContext struct {
	envelope *Envelope
	self     *PID
	err      error
}

func newReceiveContext(envelope *Envelope, self *PID) *ReceiveContext {
	return &ReceiveContext{
		envelope: envelope,
		self:     self,
	}
}

// Context returns the context the message was sent with
func (rctx *ReceiveContext) Context() context.Context {
	if ctx := rctx.envelope.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Message is the actual message sent
func (rctx *ReceiveContext) Message() any {
	return rctx.envelope.Message()
}

// Sender of the message. It is nil when the message was sent from outside the actor system
func (rctx *ReceiveContext) Sender() *PID {
	return rctx.envelope.Sender()
}

// Self returns the receiver PID of the message
func (rctx *ReceiveContext) Self() *PID {
	return rctx.self
}

// Logger returns the logger of the receiving actor
func (rctx *ReceiveContext) Logger() log.Logger {
	return rctx.self.logger
}

// ActorSystem returns the actor system
func (rctx *ReceiveContext) ActorSystem() ActorSystem {
	return rctx.self.system
}

// Response sends a reply to the message.
//
// The reply goes to the envelope reply address when there is one, otherwise
// to the sender. A reply to an address that has already been used or that
// the asker abandoned ends up in dead letters.
func (rctx *ReceiveContext) Response(resp any) {
	self := rctx.self
	reply := newEnvelope(rctx.Context(), resp, self, nil)

	if replyTo := rctx.envelope.replyTo; replyTo != nil {
		if !replyTo.deliver(resp) {
			self.system.deadletter(reply, nil, gerrors.ErrReplyAddressClosed)
		}
		return
	}

	if sender := rctx.envelope.Sender(); sender != nil {
		if err := sender.doReceive(reply); err != nil {
			self.system.deadletter(reply, sender, err)
		}
		return
	}

	self.system.deadletter(reply, nil, gerrors.ErrNoReplyAddress)
}

// Tell sends an asynchronous message to another actor with the receiver as sender
func (rctx *ReceiveContext) Tell(to *PID, message any) {
	envelope := newEnvelope(rctx.Context(), message, rctx.self, nil)
	if to == nil {
		rctx.self.system.deadletter(envelope, nil, gerrors.ErrActorNotFound)
		return
	}
	if err := to.doReceive(envelope); err != nil {
		rctx.self.system.deadletter(envelope, to, err)
	}
}

// Forward passes the current message to another actor.
// The original sender and reply address are kept, so the receiver
// replies straight to whoever is waiting on the message. When the
// message can not be passed on, a waiting asker gets the error.
func (rctx *ReceiveContext) Forward(to *PID) {
	envelope := newEnvelope(rctx.Context(), rctx.Message(), rctx.envelope.sender, rctx.envelope.replyTo)
	if to == nil {
		rctx.self.system.deadletter(envelope, nil, gerrors.ErrActorNotFound)
		return
	}
	if err := to.doReceive(envelope); err != nil {
		rctx.Logger().Warnf("actor=(%s) failed to forward %T to actor=(%s): %v", rctx.self.Name(), rctx.Message(), to.Name(), err)
		rctx.self.system.deadletter(envelope, to, err)
		rctx.fail(fmt.Errorf("failed to forward to actor=(%s): %w", to.Name(), err))
	}
}

// fail ends the pending ask of the current message, if any, with err
func (rctx *ReceiveContext) fail(err error) {
	if replyTo := rctx.envelope.replyTo; replyTo != nil {
		replyTo.fail(err)
	}
}

// Spawn creates a child actor of the receiver.
// On failure the error is recorded on the context and nil is returned.
func (rctx *ReceiveContext) Spawn(name string, actor Actor, opts ...SpawnOption) *PID {
	child, err := rctx.self.SpawnChild(rctx.Context(), name, actor, opts...)
	if err != nil {
		rctx.Err(err)
		return nil
	}
	return child
}

// Child returns the named child of the receiver, nil when it does not exist
func (rctx *ReceiveContext) Child(name string) *PID {
	child, err := rctx.self.Child(name)
	if err != nil {
		return nil
	}
	return child
}

// Children returns the running children of the receiver
func (rctx *ReceiveContext) Children() []*PID {
	return rctx.self.Children()
}

// Unhandled marks the message as not handled by the actor.
// The message is sent to dead letters once Receive returns.
func (rctx *ReceiveContext) Unhandled() {
	rctx.Err(gerrors.ErrUnhandled)
}

// Err records an error that occurred while handling the message.
// The message is sent to dead letters once Receive returns and a
// waiting asker gets the error, unless the message is unhandled.
func (rctx *ReceiveContext) Err(err error) {
	if err != nil {
		rctx.err = err
	}
}

func (rctx *ReceiveContext) getError() error {
	return rctx.err
}
