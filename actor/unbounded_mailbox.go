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
	"sync"
	"sync/atomic"
	"unsafe"

	gerrors "github.com/tochemey/contacts/errors"
)

// node is a link of the mailbox queue
type node struct {
	value atomic.Pointer[Envelope]
	next  unsafe.Pointer
}

var nodePool = sync.Pool{New: func() any { return new(node) }}

// UnboundedMailbox is a lock-free multi-producer, single-consumer (MPSC)
// FIFO queue used as the default actor mailbox.
//
// Producers swap the tail pointer atomically and link the previous tail to
// the new node; the single consumer walks from the head. Memory grows without
// limit when producers outpace the consumer.
//
// Reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
type UnboundedMailbox struct {
	head     unsafe.Pointer // *node, consumer side
	_        [64]byte
	tail     unsafe.Pointer // *node, producer side
	_        [64]byte
	length   atomic.Int64
	disposed atomic.Bool
}

// enforces compilation error
var _ Mailbox = (*UnboundedMailbox)(nil)

// NewUnboundedMailbox returns a new, initialized UnboundedMailbox.
// The zero value is not usable.
func NewUnboundedMailbox() *UnboundedMailbox {
	item := new(node)
	return &UnboundedMailbox{
		head: unsafe.Pointer(item),
		tail: unsafe.Pointer(item),
	}
}

// Enqueue appends the envelope to the tail of the mailbox.
// It only fails once the mailbox has been disposed.
func (m *UnboundedMailbox) Enqueue(envelope *Envelope) error {
	if m.disposed.Load() {
		return gerrors.ErrMailboxDisposed
	}

	tnode := nodePool.Get().(*node)
	tnode.value.Store(envelope)
	atomic.StorePointer(&tnode.next, nil)

	prev := (*node)(atomic.SwapPointer(&m.tail, unsafe.Pointer(tnode)))
	m.length.Add(1)
	atomic.StorePointer(&prev.next, unsafe.Pointer(tnode))
	return nil
}

// Dequeue removes and returns the envelope at the head of the mailbox, nil
// when empty. It must be called by exactly one consumer goroutine.
func (m *UnboundedMailbox) Dequeue() *Envelope {
	head := (*node)(atomic.LoadPointer(&m.head))
	next := (*node)(atomic.LoadPointer(&head.next))
	if next == nil {
		return nil
	}

	atomic.StorePointer(&m.head, unsafe.Pointer(next))
	value := next.value.Load()
	next.value.Store(nil)
	m.length.Add(-1)

	nodePool.Put(head)
	return value
}

// Len returns the number of envelopes waiting in the mailbox.
// The counter is updated before the link is published, so a producer
// in the middle of Enqueue is already counted.
func (m *UnboundedMailbox) Len() int64 {
	return m.length.Load()
}

// IsEmpty reports whether no envelope is waiting. It is O(1) and looks at
// the linked list, not at the counter.
func (m *UnboundedMailbox) IsEmpty() bool {
	head := (*node)(atomic.LoadPointer(&m.head))
	return atomic.LoadPointer(&head.next) == nil
}

// Dispose rejects any further Enqueue. Envelopes already queued can still
// be dequeued.
func (m *UnboundedMailbox) Dispose() {
	m.disposed.Store(true)
}
