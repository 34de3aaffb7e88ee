// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package timelock implements a propose-then-execute delayed action
// queue for sensitive governance changes. Actions carry an opaque
// payload; the caller interprets it at execution time.
package timelock

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	slotActions = xdc.Blake2b([]byte("timelock.actions"))
	slotCounter = xdc.Blake2b([]byte("timelock.counter"))
	slotDelay   = xdc.Blake2b([]byte("timelock.min-delay"))
)

// DefaultMinDelay is the default execution delay, 48 hours.
const DefaultMinDelay = uint64(48 * 3600)

// Action is a stored pending governance action.
type Action struct {
	ID         uint64
	Kind       string
	Payload    []byte
	UnlockTime uint64
	Executed   bool
}

// Timelock is the delayed action queue bound to the pool's storage.
type Timelock struct {
	actions *sslot.Mapping[sslot.U64, *Action]
	counter *sslot.Counter
	delay   *sslot.Uint256
}

// New binds a Timelock to the given storage context.
func New(ctx *sslot.Context) *Timelock {
	return &Timelock{
		actions: sslot.NewMapping[sslot.U64, *Action](ctx, slotActions),
		counter: sslot.NewCounter(ctx, slotCounter),
		delay:   sslot.NewUint256(ctx, slotDelay),
	}
}

// MinDelay returns the configured execution delay in seconds, falling
// back to DefaultMinDelay when unset.
func (t *Timelock) MinDelay() (uint64, error) {
	v, err := t.delay.Get()
	if err != nil {
		return 0, err
	}
	if v.Sign() == 0 {
		return DefaultMinDelay, nil
	}
	return v.Uint64(), nil
}

// SetMinDelay replaces the execution delay.
func (t *Timelock) SetMinDelay(seconds uint64) error {
	if seconds == 0 {
		return reverts.Validation("Delay must be positive")
	}
	return t.delay.Set(new(big.Int).SetUint64(seconds))
}

// Propose queues an action and returns its id. The action unlocks at
// now plus the configured delay.
func (t *Timelock) Propose(kind string, payload []byte, now uint64) (uint64, error) {
	if kind == "" {
		return 0, reverts.Validation("Empty action kind")
	}
	delay, err := t.MinDelay()
	if err != nil {
		return 0, err
	}
	id, err := t.counter.Next()
	if err != nil {
		return 0, err
	}
	action := &Action{
		ID:         id,
		Kind:       kind,
		Payload:    payload,
		UnlockTime: now + delay,
	}
	return id, t.actions.Set(sslot.U64(id), action)
}

// Get returns the action with the given id.
func (t *Timelock) Get(id uint64) (*Action, error) {
	action, err := t.actions.Get(sslot.U64(id))
	if err != nil {
		return nil, err
	}
	if action.ID == 0 {
		return nil, reverts.Validation("Action not found")
	}
	return action, nil
}

// Execute consumes an unlocked action and returns it. An action
// executes at most once and never before its unlock time.
func (t *Timelock) Execute(id uint64, now uint64) (*Action, error) {
	action, err := t.Get(id)
	if err != nil {
		return nil, err
	}
	if action.Executed {
		return nil, reverts.StateConflict("Action already executed")
	}
	if now < action.UnlockTime {
		return nil, reverts.StateConflict("Action still locked")
	}
	action.Executed = true
	return action, t.actions.Set(sslot.U64(id), action)
}
