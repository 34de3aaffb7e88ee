// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package sslot provides typed accessors over contract storage slots,
// in the manner of variables declared in a smart contract: scalar
// words, addresses, counters, hashed mappings and linked lists. Every
// accessor is bound to a (contract address, slot) pair of a State.
package sslot

import (
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Context binds storage accessors to a contract address within a state.
type Context struct {
	address xdc.Address
	state   *state.State
}

// NewContext creates a storage context for the given contract address.
func NewContext(address xdc.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// State returns the underlying state.
func (c *Context) State() *state.State {
	return c.state
}

// Address returns the bound contract address.
func (c *Context) Address() xdc.Address {
	return c.address
}
