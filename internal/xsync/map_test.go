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

package xsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With basic operations", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)

		v, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, m.Len())
		assert.ElementsMatch(t, []int{1, 2}, m.Values())

		seen := 0
		m.Range(func(string, int) { seen++ })
		assert.Equal(t, 2, seen)

		m.Delete("a")
		_, ok = m.Get("a")
		assert.False(t, ok)

		m.Reset()
		assert.Zero(t, m.Len())
	})
	t.Run("With SetIfAbsent under contention", func(t *testing.T) {
		m := NewMap[string, int]()
		const workers = 32

		var wg sync.WaitGroup
		winners := make(chan int, workers)
		for i := range workers {
			wg.Add(1)
			go func(value int) {
				defer wg.Done()
				if _, loaded := m.SetIfAbsent("key", value); !loaded {
					winners <- value
				}
			}(i)
		}
		wg.Wait()
		close(winners)

		require.Len(t, winners, 1)
		winner := <-winners
		actual, loaded := m.SetIfAbsent("key", -1)
		assert.True(t, loaded)
		assert.Equal(t, winner, actual)
	})
}
