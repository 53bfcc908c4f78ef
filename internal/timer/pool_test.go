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

package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	t.Run("Get returns a firing timer", func(t *testing.T) {
		pool := NewPool()
		timer := pool.Get(10 * time.Millisecond)
		select {
		case <-timer.C:
		case <-time.After(time.Second):
			require.Fail(t, "timer did not fire")
		}
		pool.Put(timer)
	})
	t.Run("Put drains a fired timer", func(t *testing.T) {
		pool := NewPool()
		timer := pool.Get(time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		pool.Put(timer)

		timer = pool.Get(time.Hour)
		select {
		case <-timer.C:
			assert.Fail(t, "stale value left in recycled timer")
		case <-time.After(20 * time.Millisecond):
		}
		pool.Put(timer)
	})
}
