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
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/contacts/errors"
)

type sequenced struct {
	producer int
	seq      int
}

func TestUnboundedMailbox(t *testing.T) {
	t.Run("With FIFO order", func(t *testing.T) {
		mailbox := NewUnboundedMailbox()
		assert.True(t, mailbox.IsEmpty())
		assert.Nil(t, mailbox.Dequeue())

		in1 := newEnvelope(context.TODO(), 1, nil, nil)
		in2 := newEnvelope(context.TODO(), 2, nil, nil)
		require.NoError(t, mailbox.Enqueue(in1))
		require.NoError(t, mailbox.Enqueue(in2))
		assert.EqualValues(t, 2, mailbox.Len())
		assert.False(t, mailbox.IsEmpty())

		assert.Same(t, in1, mailbox.Dequeue())
		assert.Same(t, in2, mailbox.Dequeue())
		assert.Nil(t, mailbox.Dequeue())
		assert.True(t, mailbox.IsEmpty())
		assert.Zero(t, mailbox.Len())
	})
	t.Run("With dispose", func(t *testing.T) {
		mailbox := NewUnboundedMailbox()
		require.NoError(t, mailbox.Enqueue(newEnvelope(context.TODO(), 1, nil, nil)))
		mailbox.Dispose()
		assert.ErrorIs(t, mailbox.Enqueue(newEnvelope(context.TODO(), 2, nil, nil)), gerrors.ErrMailboxDisposed)
		// what was queued before is still delivered
		require.NotNil(t, mailbox.Dequeue())
		assert.Nil(t, mailbox.Dequeue())
	})
	t.Run("With multiple producers", func(t *testing.T) {
		testMultipleProducers(t, NewUnboundedMailbox(), 8, 500)
	})
}

func TestBoundedMailbox(t *testing.T) {
	t.Run("With capacity reached", func(t *testing.T) {
		mailbox := NewBoundedMailbox(2)
		assert.EqualValues(t, 2, mailbox.Capacity())

		in1 := newEnvelope(context.TODO(), 1, nil, nil)
		in2 := newEnvelope(context.TODO(), 2, nil, nil)
		require.NoError(t, mailbox.Enqueue(in1))
		require.NoError(t, mailbox.Enqueue(in2))
		assert.ErrorIs(t, mailbox.Enqueue(newEnvelope(context.TODO(), 3, nil, nil)), gerrors.ErrMailboxFull)
		assert.EqualValues(t, 2, mailbox.Len())

		assert.Same(t, in1, mailbox.Dequeue())
		require.NoError(t, mailbox.Enqueue(newEnvelope(context.TODO(), 3, nil, nil)))
		assert.Same(t, in2, mailbox.Dequeue())
		require.NotNil(t, mailbox.Dequeue())
		assert.Nil(t, mailbox.Dequeue())
		assert.True(t, mailbox.IsEmpty())
		mailbox.Dispose()
	})
	t.Run("With capacity below the minimum", func(t *testing.T) {
		for _, capacity := range []int{0, 1} {
			mailbox := NewBoundedMailbox(capacity)
			assert.EqualValues(t, MinMailboxCapacity, mailbox.Capacity())

			in1 := newEnvelope(context.TODO(), 1, nil, nil)
			in2 := newEnvelope(context.TODO(), 2, nil, nil)
			require.NoError(t, mailbox.Enqueue(in1))
			require.NoError(t, mailbox.Enqueue(in2))
			assert.ErrorIs(t, mailbox.Enqueue(newEnvelope(context.TODO(), 3, nil, nil)), gerrors.ErrMailboxFull)

			assert.Same(t, in1, mailbox.Dequeue())
			assert.Same(t, in2, mailbox.Dequeue())
			assert.Nil(t, mailbox.Dequeue())
			assert.True(t, mailbox.IsEmpty())
			mailbox.Dispose()
		}
	})
	t.Run("With dispose", func(t *testing.T) {
		mailbox := NewBoundedMailbox(4)
		mailbox.Dispose()
		assert.ErrorIs(t, mailbox.Enqueue(newEnvelope(context.TODO(), 1, nil, nil)), gerrors.ErrMailboxDisposed)
		assert.Nil(t, mailbox.Dequeue())
	})
	t.Run("With multiple producers", func(t *testing.T) {
		mailbox := NewBoundedMailbox(4096)
		testMultipleProducers(t, mailbox, 4, 500)
		mailbox.Dispose()
	})
}

// testMultipleProducers checks that every message is delivered once and that
// messages from the same producer keep their order
func testMultipleProducers(t *testing.T, mailbox Mailbox, producers, perProducer int) {
	t.Helper()
	total := producers * perProducer

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(producer int) {
			defer wg.Done()
			for seq := range perProducer {
				if err := mailbox.Enqueue(newEnvelope(context.TODO(), &sequenced{producer, seq}, nil, nil)); err != nil {
					panic(fmt.Sprintf("enqueue failed: %v", err))
				}
			}
		}(p)
	}

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}

	received := 0
	for received < total {
		envelope := mailbox.Dequeue()
		if envelope == nil {
			runtime.Gosched()
			continue
		}
		msg := envelope.Message().(*sequenced)
		require.Greater(t, msg.seq, last[msg.producer])
		last[msg.producer] = msg.seq
		received++
	}

	wg.Wait()
	assert.True(t, mailbox.IsEmpty())
	for _, seq := range last {
		assert.Equal(t, perProducer-1, seq)
	}
}
