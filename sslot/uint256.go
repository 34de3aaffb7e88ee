// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	// ErrOverflow is returned when a checked operation exceeds the 256-bit domain.
	ErrOverflow = errors.New("uint256 overflow")
	// ErrUnderflow is returned when a checked operation goes below zero.
	ErrUnderflow = errors.New("uint256 underflow")
)

// Uint256 is a storage accessor for an unsigned 256-bit integer slot.
// Add and Sub are checked: silent wraparound is never possible.
type Uint256 struct {
	ctx *Context
	pos xdc.Bytes32
}

// NewUint256 binds a Uint256 accessor to the given slot.
func NewUint256(ctx *Context, slot xdc.Bytes32) *Uint256 {
	return &Uint256{ctx: ctx, pos: slot}
}

// Get returns the current value of the slot; an empty slot reads as zero.
func (u *Uint256) Get() (*big.Int, error) {
	word, err := u.ctx.state.GetStorageWord(u.ctx.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(word.Bytes()), nil
}

// Set stores the given value. Negative or >256-bit values are rejected.
func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 {
		return ErrUnderflow
	}
	if _, overflow := uint256.FromBig(value); overflow {
		return ErrOverflow
	}
	u.ctx.state.SetStorageWord(u.ctx.address, u.pos, xdc.BytesToBytes32(value.Bytes()))
	return nil
}

// Add increases the slot by value, rejecting overflow.
func (u *Uint256) Add(value *big.Int) error {
	cur, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(cur.Add(cur, value))
}

// Sub decreases the slot by value, rejecting underflow.
func (u *Uint256) Sub(value *big.Int) error {
	cur, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(cur.Sub(cur, value))
}
