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

	"go.uber.org/atomic"

	"github.com/tochemey/contacts/log"
)

// deadlettersActorName is the name of the system actor collecting dead letters
const deadlettersActorName = "$deadletters"

// Deadletter describes a message that could not be delivered or handled
type Deadletter struct {
	// Sender is the address of the sending actor, empty when sent from outside the system
	Sender string
	// Receiver is the address of the target actor, empty when unknown
	Receiver string
	// Message is the undelivered message
	Message any
	// Reason explains why the message ended up in dead letters
	Reason error
	// SentAt is the time the message was dead-lettered
	SentAt time.Time
}

// deadLetter is the system actor that records every dead letter of the actor system
type deadLetter struct {
	counter atomic.Int64
}

var _ Actor = (*deadLetter)(nil)

func newDeadLetter() *deadLetter {
	return &deadLetter{}
}

// PreStart implements Actor
func (x *deadLetter) PreStart(*Context) error {
	return nil
}

// Receive implements Actor
func (x *deadLetter) Receive(ctx *ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *Deadletter:
		x.record(ctx.Logger(), msg)
	default:
		// ignore
	}
}

// PostStop implements Actor
func (x *deadLetter) PostStop(*Context) error {
	return nil
}

func (x *deadLetter) record(logger log.Logger, letter *Deadletter) {
	x.counter.Inc()
	logger.Debugf("deadletter sender=(%s) receiver=(%s) message=(%T) reason=(%v)",
		letter.Sender, letter.Receiver, letter.Message, letter.Reason)
}

func (x *deadLetter) count() int64 {
	return x.counter.Load()
}
