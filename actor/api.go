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
	"time"

	gerrors "github.com/tochemey/contacts/errors"
	"github.com/tochemey/contacts/internal/timer"
)

// timers recycles the timers bounding Ask calls
var timers = timer.NewPool()

// Ask sends a synchronous message to an actor and waits for its reply
// for at most the given timeout.
//
// The reply address attached to the message is used once. A reply that
// arrives after the caller stopped waiting is recorded in dead letters.
// A timeout does not cancel the processing of the message by the target.
// When the target fails the message, or can not pass it on, Ask returns an
// InternalError wrapping the failure. An unhandled message gets no reply.
func Ask(ctx context.Context, to *PID, message any, timeout time.Duration) (response any, err error) {
	if timeout <= 0 {
		return nil, gerrors.ErrInvalidTimeout
	}

	if err := checkTarget(to); err != nil {
		return nil, err
	}

	replyTo := newReplyAddress()
	if err := to.doReceive(newEnvelope(ctx, message, nil, replyTo)); err != nil {
		return nil, err
	}

	t := timers.Get(timeout)
	defer timers.Put(t)

	select {
	case response = <-replyTo.ch:
		return readReply(response)
	case <-t.C:
		if replyTo.abandon() {
			return nil, gerrors.ErrRequestTimeout
		}
		return readReply(<-replyTo.ch)
	case <-ctx.Done():
		if replyTo.abandon() {
			return nil, errors.Join(ctx.Err(), gerrors.ErrRequestTimeout)
		}
		return readReply(<-replyTo.ch)
	}
}

// Tell sends an asynchronous message to an actor.
// The message has no sender: a reply from the actor goes to dead letters.
func Tell(ctx context.Context, to *PID, message any) error {
	if err := checkTarget(to); err != nil {
		return err
	}
	return to.doReceive(newEnvelope(ctx, message, nil, nil))
}

// checkTarget makes sure messages from outside the actor system
// can be sent to the given actor
func checkTarget(to *PID) error {
	if to == nil {
		return gerrors.ErrActorNotFound
	}

	if to.system.stopping.Load() {
		return gerrors.ErrSystemShuttingDown
	}

	if !to.IsRunning() {
		return gerrors.ErrDead
	}
	return nil
}
