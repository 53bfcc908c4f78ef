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

package actor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/contacts/address"
	gerrors "github.com/tochemey/contacts/errors"
	"github.com/tochemey/contacts/internal/xsync"
	"github.com/tochemey/contacts/log"
)

// processing states of the mailbox loop
const (
	idle int32 = iota
	busy
)

// drainInterval is the polling period used while waiting for a mailbox to drain
const drainInterval = 5 * time.Millisecond

// PID defines the handle of a running actor.
//
// A PID owns the actor mailbox. Sending to a PID enqueues an envelope and,
// when no processing loop is active, starts exactly one goroutine that drains
// the mailbox and hands every envelope to the actor's Receive, one at a time.
type PID struct {
	actor   Actor
	address *address.Address
	mailbox Mailbox
	system  *actorSystem
	parent  *PID
	logger  log.Logger

	children *xsync.Map[string, *PID]

	// system actors are not accounted as user actors
	systemActor bool

	running    atomic.Bool
	stopping   atomic.Bool
	processing atomic.Int32

	processedCount atomic.Int64
	startedAt      atomic.Time

	// guards the shutdown sequence
	stopLocker sync.Mutex
}

func newPID(system *actorSystem, addr *address.Address, actor Actor, mailbox Mailbox, parent *PID) *PID {
	return &PID{
		actor:    actor,
		address:  addr,
		mailbox:  mailbox,
		system:   system,
		parent:   parent,
		logger:   system.logger.With("actor", addr.Name()),
		children: xsync.NewMap[string, *PID](),
	}
}

// ID is the unique identifier of the actor in the actor system
func (pid *PID) ID() string {
	return pid.address.String()
}

// Name returns the actor name
func (pid *PID) Name() string {
	return pid.address.Name()
}

// Address returns the actor address
func (pid *PID) Address() *address.Address {
	return pid.address
}

// Actor returns the underlying actor
func (pid *PID) Actor() Actor {
	return pid.actor
}

// ActorSystem returns the actor system the actor belongs to
func (pid *PID) ActorSystem() ActorSystem {
	return pid.system
}

// Parent returns the parent of the actor, nil for top-level actors
func (pid *PID) Parent() *PID {
	return pid.parent
}

// IsRunning returns true when the actor is alive and accepts messages
func (pid *PID) IsRunning() bool {
	return pid != nil && pid.running.Load() && !pid.stopping.Load()
}

// Equals is a convenient method to compare two PIDs
func (pid *PID) Equals(to *PID) bool {
	if pid == nil || to == nil {
		return pid == to
	}
	return pid.address.Equals(to.address)
}

// Children returns the running children of the actor
func (pid *PID) Children() []*PID {
	children := make([]*PID, 0, pid.children.Len())
	for _, child := range pid.children.Values() {
		if child.IsRunning() {
			children = append(children, child)
		}
	}
	return children
}

// Child returns the named running child of the actor
func (pid *PID) Child(name string) (*PID, error) {
	if !pid.IsRunning() {
		return nil, gerrors.ErrDead
	}
	if child, ok := pid.children.Get(name); ok && child.IsRunning() {
		return child, nil
	}
	return nil, gerrors.ErrActorNotFound
}

// ProcessedCount returns the total number of messages processed by the actor
func (pid *PID) ProcessedCount() int64 {
	return pid.processedCount.Load()
}

// MailboxSize returns the number of messages waiting in the actor mailbox
func (pid *PID) MailboxSize() int64 {
	return pid.mailbox.Len()
}

// Uptime returns the number of seconds since the actor started
func (pid *PID) Uptime() int64 {
	if pid.IsRunning() {
		return int64(time.Since(pid.startedAt.Load()).Seconds())
	}
	return 0
}

// Tell sends an asynchronous message to another actor, with the given actor as sender
func (pid *PID) Tell(ctx context.Context, to *PID, message any) error {
	if !pid.IsRunning() {
		return gerrors.ErrDead
	}
	if to == nil {
		return gerrors.ErrActorNotFound
	}
	return to.doReceive(newEnvelope(ctx, message, pid, nil))
}

// SpawnChild creates a child actor and starts it.
// The child is stopped together with its parent.
func (pid *PID) SpawnChild(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error) {
	if !pid.IsRunning() {
		return nil, gerrors.ErrDead
	}

	if actor == nil {
		return nil, errors.New("actor is required")
	}

	addr := address.NewWithParent(name, pid.system.Name(), pid.address)
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	child := newPID(pid.system, addr, actor, pid.system.newMailbox(opts...), pid)
	if _, loaded := pid.children.SetIfAbsent(name, child); loaded {
		return nil, gerrors.ErrActorAlreadyExists
	}

	if err := child.init(ctx); err != nil {
		pid.children.Delete(name)
		return nil, err
	}
	return child, nil
}

// Shutdown gracefully stops the actor.
//
// New messages are rejected with ErrDead, the messages already in the
// mailbox are processed, then the children are stopped, PostStop runs and
// the mailbox is released. Waiting on the mailbox is bounded by ctx.
func (pid *PID) Shutdown(ctx context.Context) error {
	pid.stopLocker.Lock()
	defer pid.stopLocker.Unlock()

	if !pid.running.Load() || !pid.stopping.CompareAndSwap(false, true) {
		return gerrors.ErrDead
	}

	pid.logger.Debugf("shutdown process has started for actor=(%s)...", pid.Name())

	var err error
	multierr.AppendInto(&err, pid.awaitDrain(ctx))
	multierr.AppendInto(&err, pid.shutdownChildren(ctx))

	pid.running.Store(false)
	multierr.AppendInto(&err, pid.awaitIdle(ctx))

	if e := pid.actor.PostStop(newContext(ctx, pid)); e != nil {
		multierr.AppendInto(&err, fmt.Errorf("actor=(%s) failed to stop: %w", pid.Name(), e))
	}

	pid.mailbox.Dispose()
	if !pid.systemActor {
		pid.system.decreaseActorsCount()
	}
	if pid.parent != nil {
		pid.parent.children.Delete(pid.Name())
	}

	pid.logger.Debugf("actor=(%s) successfully shutdown", pid.Name())
	return err
}

// init runs the PreStart hook and marks the actor running.
// PreStart is retried with backoff within the actor system init timeout.
func (pid *PID) init(ctx context.Context) error {
	initContext := newContext(ctx, pid)

	cctx, cancel := context.WithTimeout(ctx, pid.system.initTimeout)
	defer cancel()

	retrier := retry.NewRetrier(pid.system.initMaxRetries, time.Millisecond, pid.system.initTimeout)
	if err := retrier.RunContext(cctx, func(context.Context) error {
		return pid.actor.PreStart(initContext)
	}); err != nil {
		pid.logger.Errorf("failed to initialize actor=(%s): %v", pid.Name(), err)
		return errors.Join(gerrors.ErrInitFailure, err)
	}

	pid.startedAt.Store(time.Now())
	pid.running.Store(true)
	if !pid.systemActor {
		pid.system.increaseActorsCount()
	}
	pid.logger.Debugf("actor=(%s) successfully started", pid.Name())
	return nil
}

// doReceive pushes an envelope into the actor mailbox and makes sure
// a processing loop is running
func (pid *PID) doReceive(envelope *Envelope) error {
	if !pid.IsRunning() {
		return gerrors.ErrDead
	}

	if err := pid.mailbox.Enqueue(envelope); err != nil {
		pid.logger.Warnf("actor=(%s) failed to enqueue message: %v", pid.Name(), err)
		return err
	}

	pid.process()
	return nil
}

// process drains the actor mailbox and passes every envelope to the actor.
// Only the caller that moves the state from idle to busy starts a loop.
func (pid *PID) process() {
	if !pid.processing.CompareAndSwap(idle, busy) {
		return
	}

	go func() {
		for {
			if envelope := pid.mailbox.Dequeue(); envelope != nil {
				if !pid.running.Load() {
					pid.system.deadletter(envelope, pid, gerrors.ErrDead)
					continue
				}
				pid.handleReceived(envelope)
				continue
			}

			pid.processing.Store(idle)

			// a producer may have enqueued after the last Dequeue
			if !pid.mailbox.IsEmpty() && pid.processing.CompareAndSwap(idle, busy) {
				continue
			}
			return
		}
	}()
}

// handleReceived hands the envelope to the actor
func (pid *PID) handleReceived(envelope *Envelope) {
	receiveCtx := newReceiveContext(envelope, pid)
	defer pid.recovery(receiveCtx)

	pid.processedCount.Inc()
	if !pid.systemActor {
		pid.system.processedCount.Inc()
	}
	pid.actor.Receive(receiveCtx)
}

// recovery turns a panic raised while handling a message into a PanicError.
// The actor keeps its state and goes on with the next message.
func (pid *PID) recovery(receiveCtx *ReceiveContext) {
	envelope := receiveCtx.envelope
	if r := recover(); r != nil {
		pc, fn, line, _ := runtime.Caller(2)

		var perr *gerrors.PanicError
		switch err, ok := r.(error); {
		case ok && errors.As(err, &perr):
		case ok:
			perr = gerrors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line))
		default:
			perr = gerrors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
		}

		pid.logger.Errorf("actor=(%s) recovered from panic: %v", pid.Name(), perr)
		pid.system.deadletter(envelope, pid, perr)
		receiveCtx.fail(perr)
		return
	}

	if err := receiveCtx.getError(); err != nil {
		if errors.Is(err, gerrors.ErrUnhandled) {
			pid.logger.Warnf("actor=(%s) could not handle message of type %T", pid.Name(), envelope.Message())
		} else {
			pid.logger.Errorf("actor=(%s) failed to handle message of type %T: %v", pid.Name(), envelope.Message(), err)
			receiveCtx.fail(err)
		}
		pid.system.deadletter(envelope, pid, err)
	}
}

// awaitDrain waits until the mailbox is empty and no message is in flight
func (pid *PID) awaitDrain(ctx context.Context) error {
	return pid.await(ctx, func() bool {
		return pid.mailbox.IsEmpty() && pid.processing.Load() == idle
	})
}

// awaitIdle waits until no processing loop is active
func (pid *PID) awaitIdle(ctx context.Context) error {
	return pid.await(ctx, func() bool {
		return pid.processing.Load() == idle
	})
}

func (pid *PID) await(ctx context.Context, done func() bool) error {
	if done() {
		return nil
	}

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("actor=(%s) could not drain its mailbox (%d messages left): %w", pid.Name(), pid.MailboxSize(), ctx.Err())
		case <-ticker.C:
			if done() {
				return nil
			}
		}
	}
}

// shutdownChildren stops the children of the actor in parallel
func (pid *PID) shutdownChildren(ctx context.Context) error {
	children := pid.children.Values()
	if len(children) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs error
		eg   errgroup.Group
	)

	for _, child := range children {
		eg.Go(func() error {
			if err := child.Shutdown(ctx); err != nil && !errors.Is(err, gerrors.ErrDead) {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = eg.Wait()
	return errs
}
