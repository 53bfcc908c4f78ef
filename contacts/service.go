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
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/contacts/actor"
	gerrors "github.com/tochemey/contacts/errors"
	imetric "github.com/tochemey/contacts/internal/metric"
	"github.com/tochemey/contacts/log"
)

// query outcomes reported by the metrics
const (
	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeTimeout  = "timeout"
	outcomeError    = "error"
)

// Service is the synchronous gateway to the contacts actors.
//
// Every call sends one message to the target actor and waits for its reply
// for at most the query timeout. Nothing is retried: a timed out query
// returns ErrRequestTimeout even though the target may still process it.
type Service struct {
	target       *actor.PID
	router       *Router
	timeout      time.Duration
	singleTenant bool
	logger       log.Logger

	metrics      *imetric.QueryMetric
	registration metric.Registration
}

// Spawn starts the contacts actors on the given actor system and returns the
// Service querying them. By default a Router spawns one Entity per user; in
// single-tenant mode one Entity serves every request.
func Spawn(ctx context.Context, system actor.ActorSystem, opts ...Option) (*Service, error) {
	o := newOptions(opts...)

	var (
		target *actor.PID
		router *Router
		err    error
	)

	if o.singleTenant {
		target, err = system.Spawn(ctx, SingleTenantName, NewEntity("", o.ids))
	} else {
		router = NewRouter(o.ids)
		target, err = system.Spawn(ctx, RouterName, router)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to spawn the contacts actors: %w", err)
	}

	service, err := newService(target, router, o)
	if err != nil {
		return nil, errors.Join(err, target.Shutdown(ctx))
	}
	return service, nil
}

// NewService creates a Service sending its queries to the given actor
func NewService(target *actor.PID, opts ...Option) (*Service, error) {
	if target == nil {
		return nil, gerrors.ErrActorNotFound
	}
	return newService(target, nil, newOptions(opts...))
}

func newService(target *actor.PID, router *Router, o *options) (*Service, error) {
	service := &Service{
		target:       target,
		router:       router,
		timeout:      o.queryTimeout,
		singleTenant: o.singleTenant,
		logger:       o.logger,
	}

	if err := service.registerMetrics(o.meterProvider); err != nil {
		return nil, err
	}
	return service, nil
}

// Target returns the actor receiving the queries
func (s *Service) Target() *actor.PID {
	return s.target
}

// SingleTenant reports whether one Entity serves every user
func (s *Service) SingleTenant() bool {
	return s.singleTenant
}

// Timeout returns the query timeout
func (s *Service) Timeout() time.Duration {
	return s.timeout
}

// Close releases the metrics registration of the Service.
// The actors are stopped with the actor system.
func (s *Service) Close() error {
	if s.registration != nil {
		return s.registration.Unregister()
	}
	return nil
}

// Query sends a request to the contacts actors and waits for the reply.
//
// It returns ErrRequestTimeout when no reply arrives within the query timeout
// and ErrProtocolViolation when the reply is neither Success nor NotFound.
func (s *Service) Query(ctx context.Context, msg *Message) (*Message, error) {
	start := time.Now()

	reply, err := actor.Ask(ctx, s.target, msg, s.timeout)
	if err != nil {
		outcome := outcomeError
		if errors.Is(err, gerrors.ErrRequestTimeout) {
			outcome = outcomeTimeout
		}
		s.record(ctx, msg, outcome, start)
		return nil, err
	}

	resp, ok := reply.(*Message)
	if !ok || !resp.Type.IsReply() {
		s.record(ctx, msg, outcomeError, start)
		s.logger.Errorf("unexpected reply %#v to %s query", reply, msg.Type)
		return nil, fmt.Errorf("%w: unexpected reply %T to %s", ErrProtocolViolation, reply, msg.Type)
	}

	outcome := outcomeSuccess
	if resp.Type == NotFound {
		outcome = outcomeNotFound
	}
	s.record(ctx, msg, outcome, start)
	return resp, nil
}

// Contacts returns the contacts of a user ordered by id
func (s *Service) Contacts(ctx context.Context, userID string) ([]*Contact, error) {
	resp, err := s.Query(ctx, NewGetContacts(userID))
	if err != nil {
		return nil, err
	}
	if resp.Type != Success {
		return nil, fmt.Errorf("%w: %s reply to %s", ErrProtocolViolation, resp.Type, GetContacts)
	}
	return resp.Contacts, nil
}

// Contact returns a contact of a user
func (s *Service) Contact(ctx context.Context, userID, contactID string) (*Contact, error) {
	return s.single(ctx, NewGetContact(userID, contactID))
}

// Create adds a contact with the given fields and returns it with its new id
func (s *Service) Create(ctx context.Context, userID string, fields Fields) (*Contact, error) {
	return s.single(ctx, NewCreateContact(userID, fields))
}

// Update merges the given fields into a contact and returns the result
func (s *Service) Update(ctx context.Context, userID, contactID string, fields Fields) (*Contact, error) {
	return s.single(ctx, NewUpdateContact(userID, contactID, fields))
}

// Remove deletes a contact and returns its last value
func (s *Service) Remove(ctx context.Context, userID, contactID string) (*Contact, error) {
	return s.single(ctx, NewRemoveContact(userID, contactID))
}

// EntitiesCount returns the number of per-user entities alive
func (s *Service) EntitiesCount(ctx context.Context) (int, error) {
	if s.singleTenant {
		return 1, nil
	}

	reply, err := actor.Ask(ctx, s.target, new(EntityCount), s.timeout)
	if err != nil {
		return 0, err
	}

	count, ok := reply.(int)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected reply %T to entity count", ErrProtocolViolation, reply)
	}
	return count, nil
}

func (s *Service) single(ctx context.Context, msg *Message) (*Contact, error) {
	resp, err := s.Query(ctx, msg)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.Type == NotFound:
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, resp.ContactID)
	case resp.Contact == nil:
		return nil, fmt.Errorf("%w: %s reply to %s carries no contact", ErrProtocolViolation, resp.Type, msg.Type)
	default:
		return resp.Contact, nil
	}
}

func (s *Service) record(ctx context.Context, msg *Message, outcome string, start time.Time) {
	attributes := metric.WithAttributes(
		attribute.String("message.type", msg.Type.String()),
		attribute.String("outcome", outcome),
	)
	s.metrics.Count().Add(ctx, 1, attributes)
	s.metrics.Duration().Record(ctx, float64(time.Since(start).Microseconds())/1e3, attributes)
}

// registerMetrics creates the query instruments and observes the number of entities
func (s *Service) registerMetrics(provider metric.MeterProvider) error {
	meter := imetric.NewProvider(provider).Meter()

	metrics, err := imetric.NewQueryMetric(meter)
	if err != nil {
		return err
	}
	s.metrics = metrics

	s.registration, err = meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(metrics.EntitiesCount(), s.entities())
		return nil
	}, metrics.EntitiesCount())
	return err
}

func (s *Service) entities() int64 {
	switch {
	case s.router != nil:
		return s.router.Entities()
	case s.singleTenant:
		return 1
	default:
		return 0
	}
}
