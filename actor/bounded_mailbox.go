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
	"errors"

	gods "github.com/Workiva/go-datastructures/queue"

	gerrors "github.com/tochemey/contacts/errors"
)

// BoundedMailbox is a fixed-capacity MPSC mailbox backed by a ring buffer.
//
// Unlike a blocking queue, Enqueue fails fast with ErrMailboxFull when the
// buffer is full, so a slow actor pushes back on its senders instead of
// stalling them. The ring buffer rounds the capacity up to a power of two.
type BoundedMailbox struct {
	underlying *gods.RingBuffer
}

// MinMailboxCapacity is the smallest capacity of a BoundedMailbox.
// A single slot ring buffer can not tell full from empty.
const MinMailboxCapacity = 2

// enforce compilation error
var _ Mailbox = (*BoundedMailbox)(nil)

// NewBoundedMailbox creates a new bounded mailbox with the given
// capacity. Capacities below MinMailboxCapacity are raised to it.
func NewBoundedMailbox(capacity int) *BoundedMailbox {
	return &BoundedMailbox{
		underlying: gods.NewRingBuffer(uint64(max(capacity, MinMailboxCapacity))),
	}
}

// Enqueue inserts the envelope into the mailbox without blocking.
func (mailbox *BoundedMailbox) Enqueue(envelope *Envelope) error {
	ok, err := mailbox.underlying.Offer(envelope)
	if err != nil {
		if errors.Is(err, gods.ErrDisposed) {
			return gerrors.ErrMailboxDisposed
		}
		return err
	}
	if !ok {
		return gerrors.ErrMailboxFull
	}
	return nil
}

// Dequeue removes and returns the next envelope from the mailbox, nil when
// empty. The length check keeps the single consumer from blocking in Get.
func (mailbox *BoundedMailbox) Dequeue() *Envelope {
	if mailbox.underlying.Len() > 0 {
		item, _ := mailbox.underlying.Get()
		if v, ok := item.(*Envelope); ok {
			return v
		}
	}
	return nil
}

// IsEmpty reports whether the mailbox currently has no messages.
func (mailbox *BoundedMailbox) IsEmpty() bool {
	return mailbox.underlying.Len() == 0
}

// Len returns the current number of messages in the mailbox.
func (mailbox *BoundedMailbox) Len() int64 {
	return int64(mailbox.underlying.Len())
}

// Capacity returns the effective capacity of the mailbox
func (mailbox *BoundedMailbox) Capacity() int64 {
	return int64(mailbox.underlying.Cap())
}

// Dispose releases the underlying ring buffer. Do not use the mailbox after
// calling Dispose.
func (mailbox *BoundedMailbox) Dispose() {
	mailbox.underlying.Dispose()
}
