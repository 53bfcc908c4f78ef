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
	"fmt"
	"slices"
	"strings"
)

// MessageType is the closed set of messages understood by the contacts actors
type MessageType int

const (
	// InvalidMessage is the zero value
	InvalidMessage MessageType = iota
	// GetContacts lists the contacts of a user
	GetContacts
	// GetContact fetches one contact
	GetContact
	// CreateContact adds a contact with a fresh id
	CreateContact
	// UpdateContact merges fields into an existing contact
	UpdateContact
	// RemoveContact deletes a contact
	RemoveContact
	// Success is the reply to a request that succeeded
	Success
	// NotFound is the reply to a request on an unknown contact
	NotFound
)

var messageTypes = [...]string{
	InvalidMessage: "INVALID",
	GetContacts:    "GET_CONTACTS",
	GetContact:     "GET_CONTACT",
	CreateContact:  "CREATE_CONTACT",
	UpdateContact:  "UPDATE_CONTACT",
	RemoveContact:  "REMOVE_CONTACT",
	Success:        "SUCCESS",
	NotFound:       "NOT_FOUND",
}

// String returns the protocol name of the message type
func (t MessageType) String() string {
	if t < 0 || int(t) >= len(messageTypes) {
		return fmt.Sprintf("MessageType(%d)", int(t))
	}
	return messageTypes[t]
}

// ParseMessageType returns the message type with the given protocol name
func ParseMessageType(name string) (MessageType, error) {
	if i := slices.Index(messageTypes[:], strings.ToUpper(name)); i > 0 {
		return MessageType(i), nil
	}
	return InvalidMessage, fmt.Errorf("unknown message type %q", name)
}

// IsRequest reports whether the type is a request handled by an Entity
func (t MessageType) IsRequest() bool {
	return t >= GetContacts && t <= RemoveContact
}

// IsReply reports whether the type is one of the replies callers can observe
func (t MessageType) IsReply() bool {
	return t == Success || t == NotFound
}

// Message is the protocol exchanged with the contacts actors.
//
// Requests carry the user id, and the contact id and payload the type needs.
// A Success reply carries either Contact or Contacts, a NotFound reply
// carries the ContactID that was looked up.
type Message struct {
	Type      MessageType
	UserID    string
	ContactID string
	Payload   Fields

	Contact  *Contact
	Contacts []*Contact
}

// NewGetContacts creates a GET_CONTACTS request
func NewGetContacts(userID string) *Message {
	return &Message{Type: GetContacts, UserID: userID}
}

// NewGetContact creates a GET_CONTACT request
func NewGetContact(userID, contactID string) *Message {
	return &Message{Type: GetContact, UserID: userID, ContactID: contactID}
}

// NewCreateContact creates a CREATE_CONTACT request
func NewCreateContact(userID string, payload Fields) *Message {
	return &Message{Type: CreateContact, UserID: userID, Payload: payload}
}

// NewUpdateContact creates an UPDATE_CONTACT request
func NewUpdateContact(userID, contactID string, payload Fields) *Message {
	return &Message{Type: UpdateContact, UserID: userID, ContactID: contactID, Payload: payload}
}

// NewRemoveContact creates a REMOVE_CONTACT request
func NewRemoveContact(userID, contactID string) *Message {
	return &Message{Type: RemoveContact, UserID: userID, ContactID: contactID}
}

func success(contact *Contact) *Message {
	return &Message{Type: Success, Contact: contact}
}

func successList(contacts []*Contact) *Message {
	return &Message{Type: Success, Contacts: contacts}
}

func notFound(contactID string) *Message {
	return &Message{Type: NotFound, ContactID: contactID}
}

// Body returns the JSON payload of a Success reply: the contact list for
// GET_CONTACTS, the single contact otherwise
func (m *Message) Body() any {
	if m.Contacts != nil {
		return m.Contacts
	}
	if m.Contact != nil {
		return m.Contact
	}
	return []*Contact{}
}

// EntityCount asks the Router for the number of entities it spawned.
// The reply is an int.
type EntityCount struct{}
