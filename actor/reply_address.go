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
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/contacts/errors"
)

// replyAddress is the single-use destination of an Ask.
//
// The first deliver wins. Once a reply has been delivered, or the asker has
// abandoned the address after a timeout, every further deliver returns false
// and the message is left for the caller to dead-letter. The channel is
// buffered and never closed so a late deliver can not block nor panic.
type replyAddress struct {
	ch     chan any
	closed atomic.Bool
}

// replyFailure ends an Ask with an error instead of a reply
type replyFailure struct {
	err error
}

func newReplyAddress() *replyAddress {
	return &replyAddress{ch: make(chan any, 1)}
}

// deliver hands msg to the asker. It returns false when the address is
// already used or abandoned.
func (r *replyAddress) deliver(msg any) bool {
	if !r.closed.CompareAndSwap(false, true) {
		return false
	}
	r.ch <- msg
	return true
}

// abandon closes the address on the asker side. It returns false when a
// reply won the race and is waiting in the channel.
func (r *replyAddress) abandon() bool {
	return r.closed.CompareAndSwap(false, true)
}

// fail ends the ask with err. It returns false when the address is
// already used or abandoned.
func (r *replyAddress) fail(err error) bool {
	return r.deliver(&replyFailure{err: err})
}

// readReply turns a value read from the address into the Ask result
func readReply(reply any) (any, error) {
	if failure, ok := reply.(*replyFailure); ok {
		return nil, gerrors.NewInternalError(failure.err)
	}
	return reply, nil
}
