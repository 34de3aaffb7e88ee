// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime drives the transaction boundary of the staking
// engine. Every public operation runs inside Transact: state is
// checkpointed, the operation executes single-threaded, and either
// everything commits durably or everything reverts, including native
// balance moves and collected events.
package runtime

import (
	"math/big"
	"sync"
	"time"

	"github.com/GalaxySciTech/bbb-liquiditystaking/log"
	"github.com/GalaxySciTech/bbb-liquiditystaking/metrics"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var logger = log.WithContext("pkg", "runtime")

var slotSeq = xdc.Blake2b([]byte("runtime.seq"))

var (
	metricTxCount    = metrics.LazyLoadCounterVec("op_count", []string{"status"})
	metricTxDuration = metrics.LazyLoadHistogram("op_duration_ms", metrics.BucketOpDuration)
	metricRevertVec  = metrics.LazyLoadCounterVec("op_revert_count", []string{"class"})
)

// Attr is one key/value attribute of an event.
type Attr struct {
	Key   string
	Value string
}

// A builds an Attr.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Event is a typed record emitted by an operation.
type Event struct {
	Name  string
	Attrs []Attr
}

// CommittedEvent is an event that survived its operation's commit,
// stamped with the operation sequence number.
type CommittedEvent struct {
	Seq     uint64
	OpIndex int
	Time    uint64
	Origin  xdc.Address
	Event
}

// Sink receives the events of each committed operation.
type Sink interface {
	WriteEvents(events []CommittedEvent) error
}

// Env is the execution environment handed to an operation.
type Env struct {
	state  *state.State
	pool   xdc.Address
	caller xdc.Address
	value  *big.Int
	time   uint64
	events []Event
}

// State returns the world state.
func (e *Env) State() *state.State { return e.state }

// Pool returns the pool contract address.
func (e *Env) Pool() xdc.Address { return e.pool }

// Caller returns the authenticated caller identity.
func (e *Env) Caller() xdc.Address { return e.caller }

// Value returns the native value carried by the call.
func (e *Env) Value() *big.Int { return new(big.Int).Set(e.value) }

// Time returns the operation timestamp, unix seconds.
func (e *Env) Time() uint64 { return e.time }

// Log appends an event; it is published only if the operation commits.
func (e *Env) Log(name string, attrs ...Attr) {
	e.events = append(e.events, Event{Name: name, Attrs: attrs})
}

// Transfer moves native XDC between accounts inside the operation.
func (e *Env) Transfer(from, to xdc.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Validation("Negative amount")
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	fromBalance, err := e.state.GetBalance(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return reverts.InsufficientResource("Insufficient XDC balance")
	}
	if err := e.state.SetBalance(from, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance, err := e.state.GetBalance(to)
	if err != nil {
		return err
	}
	return e.state.SetBalance(to, new(big.Int).Add(toBalance, amount))
}

// Runtime serializes and commits operations over one world state.
type Runtime struct {
	mu    sync.Mutex
	state *state.State
	pool  xdc.Address
	seq   *sslot.Counter
	sink  Sink
	now   func() uint64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithSink subscribes a committed-event sink.
func WithSink(sink Sink) Option {
	return func(rt *Runtime) { rt.sink = sink }
}

// WithClock overrides the operation timestamp source.
func WithClock(now func() uint64) Option {
	return func(rt *Runtime) { rt.now = now }
}

// New creates a Runtime over the given state and pool address.
func New(st *state.State, pool xdc.Address, opts ...Option) *Runtime {
	rt := &Runtime{
		state: st,
		pool:  pool,
		seq:   sslot.NewCounter(sslot.NewContext(pool, st), slotSeq),
		now:   func() uint64 { return uint64(time.Now().Unix()) },
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Transact runs one operation all-or-nothing. The carried value is
// moved from caller to pool before fn runs; on error every mutation
// and event is discarded.
func (rt *Runtime) Transact(caller xdc.Address, value *big.Int, fn func(env *Env) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return reverts.Validation("Negative value")
	}

	started := time.Now()
	defer func() {
		metricTxDuration().Observe(time.Since(started).Milliseconds())
	}()

	checkpoint := rt.state.NewCheckpoint()
	env := &Env{
		state:  rt.state,
		pool:   rt.pool,
		caller: caller,
		value:  value,
		time:   rt.now(),
	}

	err := env.Transfer(caller, rt.pool, value)
	if err == nil {
		err = fn(env)
	}
	if err != nil {
		rt.state.RevertTo(checkpoint)
		rt.countRevert(err)
		return err
	}

	seq, err := rt.seq.Next()
	if err != nil {
		rt.state.RevertTo(checkpoint)
		rt.countRevert(err)
		return err
	}
	if err := rt.state.Commit(); err != nil {
		rt.countRevert(err)
		return err
	}

	metricTxCount().AddWithLabel(1, map[string]string{"status": "committed"})
	rt.publish(seq, env)
	return nil
}

func (rt *Runtime) countRevert(err error) {
	metricTxCount().AddWithLabel(1, map[string]string{"status": "reverted"})
	class := "internal"
	if reverts.IsRevert(err) {
		class = reverts.ClassOf(err).String()
	}
	metricRevertVec().AddWithLabel(1, map[string]string{"class": class})
}

// Call runs a read-only operation; all mutations are reverted and no
// events are published.
func (rt *Runtime) Call(caller xdc.Address, fn func(env *Env) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	checkpoint := rt.state.NewCheckpoint()
	defer rt.state.RevertTo(checkpoint)

	env := &Env{
		state:  rt.state,
		pool:   rt.pool,
		caller: caller,
		value:  new(big.Int),
		time:   rt.now(),
	}
	return fn(env)
}

func (rt *Runtime) publish(seq uint64, env *Env) {
	if rt.sink == nil || len(env.events) == 0 {
		return
	}
	committed := make([]CommittedEvent, 0, len(env.events))
	for i, ev := range env.events {
		committed = append(committed, CommittedEvent{
			Seq:     seq,
			OpIndex: i,
			Time:    env.time,
			Origin:  env.caller,
			Event:   ev,
		})
	}
	if err := rt.sink.WriteEvents(committed); err != nil {
		logger.Warn("failed to persist events", "seq", seq, "err", err)
	}
}
