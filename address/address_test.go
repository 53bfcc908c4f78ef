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

package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	t.Run("With top-level actor", func(t *testing.T) {
		addr := New("contacts", "ContactsSystem")
		assert.Equal(t, "contacts", addr.Name())
		assert.Equal(t, "ContactsSystem", addr.System())
		assert.Nil(t, addr.Parent())
		assert.Equal(t, "contacts://ContactsSystem/contacts", addr.String())
		assert.NoError(t, addr.Validate())
	})
	t.Run("With child actor", func(t *testing.T) {
		parent := New("contacts", "ContactsSystem")
		child := NewWithParent("contacts-u1", "ContactsSystem", parent)
		assert.Same(t, parent, child.Parent())
		assert.Equal(t, "contacts/contacts-u1", child.Path())
		assert.Equal(t, "contacts://ContactsSystem/contacts/contacts-u1", child.String())
		assert.NoError(t, child.Validate())
	})
	t.Run("With equality", func(t *testing.T) {
		a := New("a", "sys")
		assert.True(t, a.Equals(New("a", "sys")))
		assert.False(t, a.Equals(New("b", "sys")))
		assert.False(t, a.Equals(nil))
		var nilAddr *Address
		assert.True(t, nilAddr.Equals(nil))
		assert.Empty(t, nilAddr.String())
	})
	t.Run("With invalid addresses", func(t *testing.T) {
		assert.ErrorIs(t, New("a", "-sys").Validate(), ErrInvalidSystemName)
		assert.ErrorIs(t, New("", "sys").Validate(), ErrInvalidName)
		assert.ErrorIs(t, New("a/b", "sys").Validate(), ErrInvalidName)
		assert.ErrorIs(t, New(strings.Repeat("a", 256), "sys").Validate(), ErrInvalidName)
		assert.ErrorIs(t, NewWithParent("a", "sys", New("p", "other")).Validate(), ErrInvalidActorSystem)
		assert.ErrorIs(t, NewWithParent("a", "sys", New("a", "sys")).Validate(), ErrInvalidParent)
	})
}
