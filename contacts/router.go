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
	"net/url"

	"go.uber.org/atomic"

	"github.com/tochemey/contacts/actor"
	gerrors "github.com/tochemey/contacts/errors"
)

const (
	// RouterName is the name of the router actor
	RouterName = "contacts-router"
	// SingleTenantName is the name of the entity serving every request in single-tenant mode
	SingleTenantName = "contacts"

	entityNamePrefix = "contacts-"
)

// EntityName returns the name of the Entity actor owning the contacts of a user
func EntityName(userID string) string {
	return entityNamePrefix + url.PathEscape(userID)
}

// Router dispatches every request to the Entity of the request user.
//
// The Entity is spawned as a child of the router the first time the user is
// seen and is kept for the lifetime of the process. Forwarding keeps the
// request sender and reply address so the Entity answers the caller directly.
type Router struct {
	ids      IDGenerator
	registry map[string]*actor.PID
	entities atomic.Int64
}

// enforce compilation error
var _ actor.Actor = (*Router)(nil)

// NewRouter creates a Router. The given generator is shared by every Entity.
func NewRouter(ids IDGenerator) *Router {
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	return &Router{ids: ids}
}

// PreStart implements actor.Actor
func (x *Router) PreStart(ctx *actor.Context) error {
	x.registry = make(map[string]*actor.PID)
	ctx.Logger().Infof("contacts router=(%s) started", ctx.ActorName())
	return nil
}

// Receive implements actor.Actor
func (x *Router) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *Message:
		x.route(ctx, msg)
	case *EntityCount:
		ctx.Response(len(x.registry))
	default:
		ctx.Unhandled()
	}
}

// PostStop implements actor.Actor
func (x *Router) PostStop(ctx *actor.Context) error {
	ctx.Logger().Infof("contacts router=(%s) stopped with %d entities", ctx.ActorName(), len(x.registry))
	return nil
}

// Entities returns the number of entities spawned so far
func (x *Router) Entities() int64 {
	return x.entities.Load()
}

func (x *Router) route(ctx *actor.ReceiveContext, msg *Message) {
	if msg.UserID == "" {
		ctx.Err(fmt.Errorf("%w: %w", gerrors.ErrUnhandled, ErrUserIDRequired))
		return
	}

	entity, ok := x.registry[msg.UserID]
	if !ok {
		if entity = ctx.Spawn(EntityName(msg.UserID), NewEntity(msg.UserID, x.ids)); entity == nil {
			return
		}
		x.registry[msg.UserID] = entity
		x.entities.Inc()
		ctx.Logger().Debugf("contacts entity=(%s) spawned", entity.Name())
	}

	ctx.Forward(entity)
}
