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
)

// Envelope is a mailbox item: a message plus where it came from and where
// its reply must go. The reply address is explicit and travels with the
// message when it is forwarded.
type Envelope struct {
	ctx     context.Context
	message any
	sender  *PID
	replyTo *replyAddress
}

func newEnvelope(ctx context.Context, message any, sender *PID, replyTo *replyAddress) *Envelope {
	return &Envelope{
		ctx:     ctx,
		message: message,
		sender:  sender,
		replyTo: replyTo,
	}
}

// Context returns the context the message was sent with
func (e *Envelope) Context() context.Context {
	return e.ctx
}

// Message returns the carried message
func (e *Envelope) Message() any {
	return e.message
}

// Sender returns the sending actor, nil when sent from outside the system
func (e *Envelope) Sender() *PID {
	return e.sender
}

// HasReplyAddress reports whether a caller is waiting on a reply
func (e *Envelope) HasReplyAddress() bool {
	return e.replyTo != nil
}
