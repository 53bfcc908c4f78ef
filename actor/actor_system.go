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
	"regexp"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/contacts/address"
	gerrors "github.com/tochemey/contacts/errors"
	imetric "github.com/tochemey/contacts/internal/metric"
	"github.com/tochemey/contacts/internal/xsync"
	"github.com/tochemey/contacts/log"
)

const (
	// DefaultShutdownTimeout is the time budget given to Stop by default
	DefaultShutdownTimeout = 5 * time.Second
	// DefaultInitMaxRetries is the default number of PreStart attempts
	DefaultInitMaxRetries = 5
	// DefaultInitTimeout is the default time budget given to an actor to start
	DefaultInitTimeout = time.Second
)

// reservedNamePrefix prefixes the names of the system actors
const reservedNamePrefix = "$"

var systemNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_]*$`)

// ActorSystem defines the contract of an actor system.
//
// The actor system is the explicit runtime context of the application: it
// spawns the top-level actors, keeps track of them and stops them in order.
type ActorSystem interface {
	// Name returns the actor system name
	Name() string
	// Start starts the actor system
	Start(ctx context.Context) error
	// Stop stops the actor system.
	//
	// New external messages are rejected with ErrSystemShuttingDown. Every actor
	// then processes the messages already in its mailbox before its children are
	// stopped and its PostStop hook runs. The whole process is bounded by the
	// shutdown timeout.
	Stop(ctx context.Context) error
	// Running returns true when the actor system is started and not stopping
	Running() bool
	// Spawn creates and starts a top-level actor
	Spawn(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error)
	// ActorOf returns the running top-level actor with the given name
	ActorOf(ctx context.Context, actorName string) (*PID, error)
	// Actors returns the running top-level actors
	Actors() []*PID
	// NumActors returns the number of running actors, children included
	NumActors() uint64
	// DeadlettersCount returns the number of messages recorded in dead letters
	DeadlettersCount() int64
	// ProcessedCount returns the number of messages processed by all actors
	ProcessedCount() int64
	// Uptime returns the number of seconds since the actor system started
	Uptime() int64
	// Logger returns the actor system logger
	Logger() log.Logger
}

// actorSystem is the default implementation of ActorSystem
type actorSystem struct {
	name            string
	logger          log.Logger
	mailboxCapacity int
	shutdownTimeout time.Duration
	initMaxRetries  int
	initTimeout     time.Duration
	meterProvider   metric.MeterProvider

	actors      *xsync.Map[string, *PID]
	deadletters *PID
	deadLetter  *deadLetter

	started        atomic.Bool
	stopping       atomic.Bool
	startedAt      atomic.Time
	actorsCount    atomic.Int64
	processedCount atomic.Int64

	registration metric.Registration
	locker       sync.Mutex
}

var _ ActorSystem = (*actorSystem)(nil)

// NewActorSystem creates an instance of ActorSystem
func NewActorSystem(name string, opts ...Option) (ActorSystem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, gerrors.ErrNameRequired
	}

	if !systemNamePattern.MatchString(name) {
		return nil, gerrors.ErrInvalidActorSystemName
	}

	system := &actorSystem{
		name:            name,
		logger:          log.DefaultLogger,
		shutdownTimeout: DefaultShutdownTimeout,
		initMaxRetries:  DefaultInitMaxRetries,
		initTimeout:     DefaultInitTimeout,
		actors:          xsync.NewMap[string, *PID](),
	}

	for _, opt := range opts {
		opt.Apply(system)
	}

	return system, nil
}

// Name returns the actor system name
func (x *actorSystem) Name() string {
	return x.name
}

// Logger returns the actor system logger
func (x *actorSystem) Logger() log.Logger {
	return x.logger
}

// Running returns true when the actor system is started and not stopping
func (x *actorSystem) Running() bool {
	return x.started.Load() && !x.stopping.Load()
}

// Start starts the actor system
func (x *actorSystem) Start(ctx context.Context) error {
	x.locker.Lock()
	defer x.locker.Unlock()

	if !x.started.CompareAndSwap(false, true) {
		return gerrors.ErrActorSystemAlreadyStarted
	}

	x.logger.Infof("%s actor system starting...", x.name)

	x.deadLetter = newDeadLetter()
	pid, err := x.spawn(ctx, deadlettersActorName, x.deadLetter)
	if err != nil {
		x.started.Store(false)
		return err
	}
	x.deadletters = pid

	if err := x.registerMetrics(); err != nil {
		x.started.Store(false)
		return errors.Join(err, pid.Shutdown(ctx))
	}

	x.startedAt.Store(time.Now())
	x.logger.Infof("%s actor system successfully started", x.name)
	return nil
}

// Stop stops the actor system
func (x *actorSystem) Stop(ctx context.Context) error {
	x.locker.Lock()
	defer x.locker.Unlock()

	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}

	if !x.stopping.CompareAndSwap(false, true) {
		return nil
	}

	x.logger.Infof("%s actor system shutting down...", x.name)

	ctx, cancel := context.WithTimeout(ctx, x.shutdownTimeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs error
		eg   errgroup.Group
	)

	for _, pid := range x.actors.Values() {
		eg.Go(func() error {
			if err := pid.Shutdown(ctx); err != nil && !errors.Is(err, gerrors.ErrDead) {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	// dead letters is the last actor to go so the user actors can still report to it
	if err := x.deadletters.Shutdown(ctx); err != nil && !errors.Is(err, gerrors.ErrDead) {
		errs = multierr.Append(errs, err)
	}

	if x.registration != nil {
		errs = multierr.Append(errs, x.registration.Unregister())
		x.registration = nil
	}

	x.actors.Reset()
	x.started.Store(false)
	x.stopping.Store(false)

	if errs != nil {
		x.logger.Errorf("%s actor system shutdown with errors: %v", x.name, errs)
		return errs
	}

	x.logger.Infof("%s actor system successfully shutdown", x.name)
	return nil
}

// Spawn creates and starts a top-level actor
func (x *actorSystem) Spawn(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	if x.stopping.Load() {
		return nil, gerrors.ErrSystemShuttingDown
	}

	if strings.HasPrefix(name, reservedNamePrefix) {
		return nil, gerrors.ErrReservedName
	}

	return x.spawn(ctx, name, actor, opts...)
}

// ActorOf returns the running top-level actor with the given name
func (x *actorSystem) ActorOf(_ context.Context, actorName string) (*PID, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrActorSystemNotStarted
	}

	pid, ok := x.actors.Get(actorName)
	if !ok || !pid.IsRunning() {
		return nil, gerrors.ErrActorNotFound
	}
	return pid, nil
}

// Actors returns the running top-level actors
func (x *actorSystem) Actors() []*PID {
	actors := x.actors.Values()
	pids := make([]*PID, 0, len(actors))
	for _, pid := range actors {
		if pid.IsRunning() {
			pids = append(pids, pid)
		}
	}
	return pids
}

// NumActors returns the number of running actors, children included.
// System actors are not counted.
func (x *actorSystem) NumActors() uint64 {
	if count := x.actorsCount.Load(); count > 0 {
		return uint64(count)
	}
	return 0
}

// DeadlettersCount returns the number of messages recorded in dead letters
func (x *actorSystem) DeadlettersCount() int64 {
	if x.deadLetter == nil {
		return 0
	}
	return x.deadLetter.count()
}

// ProcessedCount returns the number of messages processed by all actors
func (x *actorSystem) ProcessedCount() int64 {
	return x.processedCount.Load()
}

// Uptime returns the number of seconds since the actor system started
func (x *actorSystem) Uptime() int64 {
	if x.started.Load() {
		return int64(time.Since(x.startedAt.Load()).Seconds())
	}
	return 0
}

// spawn registers and starts a top-level actor
func (x *actorSystem) spawn(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*PID, error) {
	if actor == nil {
		return nil, errors.New("actor is required")
	}

	addr := address.New(name, x.name)
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	pid := newPID(x, addr, actor, x.newMailbox(opts...), nil)
	if strings.HasPrefix(name, reservedNamePrefix) {
		pid.systemActor = true
		if err := pid.init(ctx); err != nil {
			return nil, err
		}
		return pid, nil
	}

	if _, loaded := x.actors.SetIfAbsent(name, pid); loaded {
		return nil, gerrors.ErrActorAlreadyExists
	}

	if err := pid.init(ctx); err != nil {
		x.actors.Delete(name)
		return nil, err
	}
	return pid, nil
}

// newMailbox returns the mailbox set by the spawn options or the
// actor system default one
func (x *actorSystem) newMailbox(opts ...SpawnOption) Mailbox {
	config := newSpawnConfig(opts...)
	if config.mailbox != nil {
		return config.mailbox
	}
	if x.mailboxCapacity > 0 {
		return NewBoundedMailbox(x.mailboxCapacity)
	}
	return NewUnboundedMailbox()
}

// deadletter records an envelope that could not be delivered or handled
func (x *actorSystem) deadletter(envelope *Envelope, receiver *PID, reason error) {
	letter := &Deadletter{
		Message: envelope.Message(),
		Reason:  reason,
		SentAt:  time.Now().UTC(),
	}

	if sender := envelope.Sender(); sender != nil {
		letter.Sender = sender.ID()
	}

	if receiver != nil {
		letter.Receiver = receiver.ID()
	}

	// a dead letters actor that is gone or being stopped records in place
	if x.deadletters == nil || receiver.Equals(x.deadletters) ||
		x.deadletters.doReceive(newEnvelope(envelope.Context(), letter, nil, nil)) != nil {
		if x.deadLetter != nil {
			x.deadLetter.record(x.logger, letter)
		}
	}
}

func (x *actorSystem) increaseActorsCount() {
	x.actorsCount.Inc()
}

func (x *actorSystem) decreaseActorsCount() {
	x.actorsCount.Dec()
}

// registerMetrics registers the actor system observable instruments
func (x *actorSystem) registerMetrics() error {
	provider := imetric.NewProvider(x.meterProvider)
	instruments, err := imetric.NewActorSystemMetric(provider.Meter())
	if err != nil {
		return err
	}

	attributes := metric.WithAttributes(attribute.String("actor.system", x.name))
	x.registration, err = provider.Meter().RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(instruments.ActorsCount(), int64(x.NumActors()), attributes)
		observer.ObserveInt64(instruments.ProcessedCount(), x.ProcessedCount(), attributes)
		observer.ObserveInt64(instruments.DeadlettersCount(), x.DeadlettersCount(), attributes)
		observer.ObserveInt64(instruments.Uptime(), x.Uptime(), attributes)
		return nil
	},
		instruments.ActorsCount(),
		instruments.ProcessedCount(),
		instruments.DeadlettersCount(),
		instruments.Uptime(),
	)
	return err
}
