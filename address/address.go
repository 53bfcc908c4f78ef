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

// Package address identifies actors inside a contacts actor system.
//
// An address is made of the actor system name, the actor name and, for
// child actors, the parent's address. Its canonical textual form is:
//
//	contacts://<system>/<name>
//
// and, when a parent is defined:
//
//	contacts://<system>/<parent>/<name>
//
// Addresses are immutable once created and safe for concurrent use.
package address

import (
	"regexp"
	"strings"

	"github.com/tochemey/contacts/internal/validation"
)

// scheme defines the addressing scheme
const scheme = "contacts"

// maxNameLength bounds the size of an actor name
const maxNameLength = 255

var systemNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_]*$`)

var _ validation.Validator = (*Address)(nil)

// Address represents the address of an actor in an actor system.
type Address struct {
	name   string
	system string
	parent *Address
}

// New creates a top-level Address. New does not validate its inputs; call
// Validate to verify the resulting address.
func New(name, system string) *Address {
	return &Address{
		name:   name,
		system: system,
	}
}

// NewWithParent creates the Address of a child actor.
// When parent is nil the result is a top-level address.
func NewWithParent(name, system string, parent *Address) *Address {
	return &Address{
		name:   name,
		system: system,
		parent: parent,
	}
}

// Parent returns the parent address, nil for top-level actors
func (x *Address) Parent() *Address {
	return x.parent
}

// Name returns the actor name
func (x *Address) Name() string {
	return x.name
}

// System returns the actor system name
func (x *Address) System() string {
	return x.system
}

// Path returns the slash separated chain of actor names from the root down
// to this address.
func (x *Address) Path() string {
	names := make([]string, 0, 4)
	for current := x; current != nil; current = current.parent {
		names = append(names, current.name)
	}

	var builder strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		builder.WriteString(names[i])
		if i > 0 {
			builder.WriteByte('/')
		}
	}
	return builder.String()
}

// String returns the canonical string representation of the address
func (x *Address) String() string {
	if x == nil {
		return ""
	}
	return scheme + "://" + x.system + "/" + x.Path()
}

// Equals reports whether both addresses point at the same actor
func (x *Address) Equals(y *Address) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.String() == y.String()
}

// Validate checks the address invariants:
//   - the system name is non-empty and made of word characters
//   - the name is non-empty, at most 255 characters and has no '/'
//   - a parent belongs to the same system and has a different name
func (x *Address) Validate() error {
	validName := x.name != "" && len(x.name) <= maxNameLength && !strings.ContainsRune(x.name, '/')
	chain := validation.New(validation.FailFast()).
		AddValidator(validation.NewPatternValidator(systemNamePattern, x.system, ErrInvalidSystemName)).
		AddAssertion(validName, ErrInvalidName)

	if x.parent != nil {
		chain.
			AddAssertion(strings.EqualFold(x.parent.system, x.system), ErrInvalidActorSystem).
			AddAssertion(x.parent.name != x.name, ErrInvalidParent)
	}
	return chain.Validate()
}
