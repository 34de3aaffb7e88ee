// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Address is a storage accessor for a single address slot.
type Address struct {
	ctx *Context
	pos xdc.Bytes32
}

// NewAddress binds an Address accessor to the given slot.
func NewAddress(ctx *Context, slot xdc.Bytes32) *Address {
	return &Address{ctx: ctx, pos: slot}
}

// Get returns the stored address; an empty slot reads as the zero address.
func (a *Address) Get() (xdc.Address, error) {
	word, err := a.ctx.state.GetStorageWord(a.ctx.address, a.pos)
	if err != nil {
		return xdc.Address{}, err
	}
	return xdc.BytesToAddress(word.Bytes()), nil
}

// Set stores the given address; storing the zero address clears the slot.
func (a *Address) Set(addr xdc.Address) {
	a.ctx.state.SetStorageWord(a.ctx.address, a.pos, xdc.BytesToBytes32(addr.Bytes()))
}

// Bool is a storage accessor for a single boolean flag slot.
type Bool struct {
	ctx *Context
	pos xdc.Bytes32
}

// NewBool binds a Bool accessor to the given slot.
func NewBool(ctx *Context, slot xdc.Bytes32) *Bool {
	return &Bool{ctx: ctx, pos: slot}
}

// Get returns the stored flag; an empty slot reads as false.
func (b *Bool) Get() (bool, error) {
	word, err := b.ctx.state.GetStorageWord(b.ctx.address, b.pos)
	if err != nil {
		return false, err
	}
	return !word.IsZero(), nil
}

// Set stores the given flag; false clears the slot.
func (b *Bool) Set(v bool) {
	var word xdc.Bytes32
	if v {
		word[31] = 1
	}
	b.ctx.state.SetStorageWord(b.ctx.address, b.pos, word)
}
