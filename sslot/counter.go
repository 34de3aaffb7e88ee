// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Counter is a storage accessor for a monotonically increasing uint64.
// The first issued value is 1; zero is reserved as the absent sentinel.
type Counter struct {
	slot *Uint256
}

// NewCounter binds a Counter accessor to the given slot.
func NewCounter(ctx *Context, slot xdc.Bytes32) *Counter {
	return &Counter{slot: NewUint256(ctx, slot)}
}

// Current returns the last issued value, zero if none was issued yet.
func (c *Counter) Current() (uint64, error) {
	v, err := c.slot.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// Next issues and returns the next value.
func (c *Counter) Next() (uint64, error) {
	if err := c.slot.Add(big.NewInt(1)); err != nil {
		return 0, err
	}
	return c.Current()
}
