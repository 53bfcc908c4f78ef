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

package contacts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/contacts/actor"
	"github.com/tochemey/contacts/address"
	gerrors "github.com/tochemey/contacts/errors"
)

func TestEntityName(t *testing.T) {
	assert.Equal(t, "contacts-alice", EntityName("alice"))
	assert.Equal(t, "contacts-a%2Fb", EntityName("a/b"))
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	t.Run("With lazy entities", func(t *testing.T) {
		system := newActorSystem(t)
		router := NewRouter(sequenceGenerator())
		pid, err := system.Spawn(ctx, RouterName, router)
		require.NoError(t, err)

		reply, err := actor.Ask(ctx, pid, new(EntityCount), time.Second)
		require.NoError(t, err)
		assert.Equal(t, 0, reply)

		created := ask(t, pid, NewCreateContact("alice", Fields{"name": "Ada"}))
		require.Equal(t, Success, created.Type)

		// the same entity serves the next requests of the user
		fetched := ask(t, pid, NewGetContact("alice", created.Contact.ID))
		assert.Equal(t, created.Contact, fetched.Contact)

		reply, err = actor.Ask(ctx, pid, new(EntityCount), time.Second)
		require.NoError(t, err)
		assert.Equal(t, 1, reply)
		assert.EqualValues(t, 1, router.Entities())

		children := pid.Children()
		require.Len(t, children, 1)
		assert.Equal(t, "contacts-alice", children[0].Name())
		assert.EqualValues(t, 2, system.NumActors())
	})
	t.Run("With users isolated", func(t *testing.T) {
		system := newActorSystem(t)
		pid, err := system.Spawn(ctx, RouterName, NewRouter(nil))
		require.NoError(t, err)

		created := ask(t, pid, NewCreateContact("alice", Fields{"name": "Ada"}))
		require.Equal(t, Success, created.Type)

		assert.Equal(t, NotFound, ask(t, pid, NewGetContact("bob", created.Contact.ID)).Type)
		assert.Empty(t, ask(t, pid, NewGetContacts("bob")).Contacts)
		assert.Equal(t, NotFound, ask(t, pid, NewRemoveContact("bob", created.Contact.ID)).Type)
		assert.Len(t, ask(t, pid, NewGetContacts("alice")).Contacts, 1)

		reply, err := actor.Ask(ctx, pid, new(EntityCount), time.Second)
		require.NoError(t, err)
		assert.Equal(t, 2, reply)
	})
	t.Run("With request without user", func(t *testing.T) {
		system := newActorSystem(t)
		pid, err := system.Spawn(ctx, RouterName, NewRouter(nil))
		require.NoError(t, err)

		_, err = actor.Ask(ctx, pid, NewGetContacts(""), 50*time.Millisecond)
		require.Error(t, err)
		require.Eventually(t, func() bool { return system.DeadlettersCount() == 1 }, time.Second, time.Millisecond)

		reply, err := actor.Ask(ctx, pid, new(EntityCount), time.Second)
		require.NoError(t, err)
		assert.Equal(t, 0, reply)
	})
	t.Run("With entity spawn failure", func(t *testing.T) {
		system := newActorSystem(t)
		pid, err := system.Spawn(ctx, RouterName, NewRouter(nil))
		require.NoError(t, err)

		userID := strings.Repeat("u", 300)
		_, err = actor.Ask(ctx, pid, NewGetContacts(userID), 5*time.Second)
		var internal *gerrors.InternalError
		require.ErrorAs(t, err, &internal)
		require.ErrorIs(t, err, address.ErrInvalidName)

		reply, err := actor.Ask(ctx, pid, new(EntityCount), time.Second)
		require.NoError(t, err)
		assert.Equal(t, 0, reply)
	})
	t.Run("With entities stopped before the router", func(t *testing.T) {
		system := newActorSystem(t)
		pid, err := system.Spawn(ctx, RouterName, NewRouter(nil))
		require.NoError(t, err)

		for _, user := range []string{"alice", "bob", "carol"} {
			require.Equal(t, Success, ask(t, pid, NewCreateContact(user, nil)).Type)
		}
		entities := pid.Children()
		require.Len(t, entities, 3)

		require.NoError(t, system.Stop(ctx))
		for _, entity := range entities {
			assert.False(t, entity.IsRunning())
		}
		assert.False(t, pid.IsRunning())
	})
}
