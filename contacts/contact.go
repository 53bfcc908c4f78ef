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

// Package contacts implements a per-user in-memory contact store on top of
// the actor runtime.
//
// Every user owns an Entity actor holding its contacts. A Router actor
// lazily spawns one Entity per user and forwards the requests to it, while
// the Service turns the asynchronous protocol into bounded-timeout calls.
package contacts

import (
	"encoding/json"
	"maps"
)

// idKey is the JSON key carrying the contact identifier
const idKey = "id"

// Fields is the open set of attributes of a contact.
// Values are never validated nor interpreted.
type Fields map[string]any

// Clone returns a deep copy of the fields
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

// Contact is an entry of a user's address book
type Contact struct {
	// ID is the server assigned identifier. It never changes.
	ID string
	// Fields are the caller supplied attributes
	Fields Fields
}

// NewContact creates a contact from the given fields.
// An id key in the fields is ignored.
func NewContact(id string, fields Fields) *Contact {
	contact := &Contact{ID: id, Fields: Fields{}}
	contact.Merge(fields)
	return contact
}

// Clone returns a deep copy of the contact
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	return &Contact{ID: c.ID, Fields: c.Fields.Clone()}
}

// Merge overwrites the contact fields with the given ones.
// Fields absent from the update are kept and the id is never changed.
func (c *Contact) Merge(fields Fields) {
	if c.Fields == nil {
		c.Fields = Fields{}
	}
	for k, v := range fields {
		if k == idKey {
			continue
		}
		c.Fields[k] = cloneValue(v)
	}
}

// MarshalJSON renders the contact as a flat JSON object
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Fields)+1)
	maps.Copy(out, c.Fields)
	out[idKey] = c.ID
	return json.Marshal(out)
}

// UnmarshalJSON reads a flat JSON object into the contact
func (c *Contact) UnmarshalJSON(data []byte) error {
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	id, _ := fields[idKey].(string)
	*c = *NewContact(id, fields)
	return nil
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return map[string]any(Fields(value).Clone())
	case Fields:
		return value.Clone()
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
