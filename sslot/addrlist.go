// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// AddressList is a persistent FIFO doubly-linked list of addresses.
// The zero address is reserved as the absent sentinel.
type AddressList struct {
	head  *Address
	tail  *Address
	count *Uint256
	next  *Mapping[xdc.Address, xdc.Address]
	prev  *Mapping[xdc.Address, xdc.Address]
}

// NewAddressList binds an AddressList to the given head/tail/count slots.
// The pointer mappings are derived from the head and tail slots.
func NewAddressList(ctx *Context, headPos, tailPos, countPos xdc.Bytes32) *AddressList {
	return &AddressList{
		head:  NewAddress(ctx, headPos),
		tail:  NewAddress(ctx, tailPos),
		count: NewUint256(ctx, countPos),
		next:  NewMapping[xdc.Address, xdc.Address](ctx, headPos),
		prev:  NewMapping[xdc.Address, xdc.Address](ctx, tailPos),
	}
}

// Add appends an address to the end of the list, keeping FIFO order.
func (l *AddressList) Add(addr xdc.Address) error {
	if addr.IsZero() {
		return errors.New("address list: zero address")
	}

	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		// the list is currently empty, set this entry to head & tail
		l.head.Set(addr)
		l.tail.Set(addr)
		return l.count.Add(big.NewInt(1))
	}

	if err := l.next.Set(oldTail, addr); err != nil {
		return err
	}
	if err := l.prev.Set(addr, oldTail); err != nil {
		return err
	}
	l.tail.Set(addr)
	return l.count.Add(big.NewInt(1))
}

// Contains returns whether the address is currently in the list.
func (l *AddressList) Contains(addr xdc.Address) (bool, error) {
	if addr.IsZero() {
		return false, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	if head == addr {
		return true, nil
	}
	prev, err := l.prev.Get(addr)
	if err != nil {
		return false, err
	}
	return !prev.IsZero(), nil
}

// Remove extracts an address from anywhere in the list, reconnecting
// the adjacent nodes. Removing an absent address is a no-op.
func (l *AddressList) Remove(addr xdc.Address) error {
	in, err := l.Contains(addr)
	if err != nil {
		return err
	}
	if !in {
		return nil
	}

	prev, err := l.prev.Get(addr)
	if err != nil {
		return err
	}
	next, err := l.next.Get(addr)
	if err != nil {
		return err
	}

	if prev.IsZero() {
		l.head.Set(next)
	} else {
		if next.IsZero() {
			l.next.Clear(prev)
		} else if err := l.next.Set(prev, next); err != nil {
			return err
		}
	}

	if next.IsZero() {
		l.tail.Set(prev)
	} else {
		if prev.IsZero() {
			l.prev.Clear(next)
		} else if err := l.prev.Set(next, prev); err != nil {
			return err
		}
	}

	l.next.Clear(addr)
	l.prev.Clear(addr)
	return l.count.Sub(big.NewInt(1))
}

// Len returns the number of listed addresses.
func (l *AddressList) Len() (uint64, error) {
	count, err := l.count.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Iter walks the list head to tail, aborting on the first error.
func (l *AddressList) Iter(cb func(addr xdc.Address) error) error {
	addr, err := l.head.Get()
	if err != nil {
		return err
	}
	for !addr.IsZero() {
		if err := cb(addr); err != nil {
			return err
		}
		next, err := l.next.Get(addr)
		if err != nil {
			return err
		}
		addr = next
	}
	return nil
}
