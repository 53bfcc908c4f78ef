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
	"slices"
	"strings"

	"github.com/tochemey/contacts/actor"
)

// Entity is the actor holding the contacts of a single user.
//
// It answers every request with exactly one Success or NotFound reply to
// the request reply address. Replies carry copies of the stored contacts.
type Entity struct {
	userID string
	ids    IDGenerator
	store  map[string]*Contact
}

// enforce compilation error
var _ actor.Actor = (*Entity)(nil)

// NewEntity creates the contacts actor of the given user
func NewEntity(userID string, ids IDGenerator) *Entity {
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	return &Entity{
		userID: userID,
		ids:    ids,
	}
}

// PreStart implements actor.Actor
func (x *Entity) PreStart(ctx *actor.Context) error {
	x.store = make(map[string]*Contact)
	ctx.Logger().Debugf("contacts entity for user=(%s) started", x.userID)
	return nil
}

// Receive implements actor.Actor
func (x *Entity) Receive(ctx *actor.ReceiveContext) {
	msg, ok := ctx.Message().(*Message)
	if !ok {
		ctx.Unhandled()
		return
	}

	switch msg.Type {
	case GetContacts:
		ctx.Response(successList(x.list()))
	case CreateContact:
		contact := NewContact(x.ids.NextID(), msg.Payload)
		x.store[contact.ID] = contact
		ctx.Response(success(contact.Clone()))
	case GetContact, UpdateContact, RemoveContact:
		contact, found := x.store[msg.ContactID]
		if !found {
			ctx.Response(notFound(msg.ContactID))
			return
		}
		x.handleExisting(ctx, msg, contact)
	default:
		ctx.Unhandled()
	}
}

// PostStop implements actor.Actor
func (x *Entity) PostStop(ctx *actor.Context) error {
	ctx.Logger().Debugf("contacts entity for user=(%s) stopped with %d contacts", x.userID, len(x.store))
	return nil
}

func (x *Entity) handleExisting(ctx *actor.ReceiveContext, msg *Message, contact *Contact) {
	switch msg.Type {
	case GetContact:
		ctx.Response(success(contact.Clone()))
	case UpdateContact:
		updated := contact.Clone()
		updated.Merge(msg.Payload)
		x.store[contact.ID] = updated
		ctx.Response(success(updated.Clone()))
	case RemoveContact:
		delete(x.store, contact.ID)
		ctx.Response(success(contact))
	}
}

// list returns copies of all the contacts ordered by id
func (x *Entity) list() []*Contact {
	contacts := make([]*Contact, 0, len(x.store))
	for _, contact := range x.store {
		contacts = append(contacts, contact.Clone())
	}
	slices.SortFunc(contacts, func(a, b *Contact) int {
		return strings.Compare(a.ID, b.ID)
	})
	return contacts
}
