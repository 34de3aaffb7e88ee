// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// IDList is a persistent FIFO doubly-linked list of uint64 ids.
// Id zero is reserved as the absent sentinel and cannot be added.
type IDList struct {
	head  *Uint256
	tail  *Uint256
	count *Uint256
	next  *Mapping[U64, uint64]
	prev  *Mapping[U64, uint64]
}

// NewIDList binds an IDList to the given head/tail/count slots.
// The pointer mappings are derived from the head and tail slots.
func NewIDList(ctx *Context, headPos, tailPos, countPos xdc.Bytes32) *IDList {
	return &IDList{
		head:  NewUint256(ctx, headPos),
		tail:  NewUint256(ctx, tailPos),
		count: NewUint256(ctx, countPos),
		next:  NewMapping[U64, uint64](ctx, headPos),
		prev:  NewMapping[U64, uint64](ctx, tailPos),
	}
}

// Add appends an id to the end of the list, keeping FIFO order.
func (l *IDList) Add(id uint64) error {
	if id == 0 {
		return errors.New("id list: zero id")
	}

	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.Sign() == 0 {
		// the list is currently empty, set this entry to head & tail
		if err := l.head.Set(new(big.Int).SetUint64(id)); err != nil {
			return err
		}
		if err := l.tail.Set(new(big.Int).SetUint64(id)); err != nil {
			return err
		}
		return l.count.Add(big.NewInt(1))
	}

	if err := l.next.Set(U64(oldTail.Uint64()), id); err != nil {
		return err
	}
	if err := l.prev.Set(U64(id), oldTail.Uint64()); err != nil {
		return err
	}
	if err := l.tail.Set(new(big.Int).SetUint64(id)); err != nil {
		return err
	}
	return l.count.Add(big.NewInt(1))
}

// Contains returns whether the id is currently in the list.
func (l *IDList) Contains(id uint64) (bool, error) {
	if id == 0 {
		return false, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	if head.Uint64() == id {
		return true, nil
	}
	prev, err := l.prev.Get(U64(id))
	if err != nil {
		return false, err
	}
	return prev != 0, nil
}

// Remove extracts an id from anywhere in the list, reconnecting the
// adjacent nodes. Removing an absent id is a no-op.
func (l *IDList) Remove(id uint64) error {
	in, err := l.Contains(id)
	if err != nil {
		return err
	}
	if !in {
		return nil
	}

	prev, err := l.prev.Get(U64(id))
	if err != nil {
		return err
	}
	next, err := l.next.Get(U64(id))
	if err != nil {
		return err
	}

	if prev == 0 {
		if err := l.head.Set(new(big.Int).SetUint64(next)); err != nil {
			return err
		}
	} else {
		if next == 0 {
			l.next.Clear(U64(prev))
		} else if err := l.next.Set(U64(prev), next); err != nil {
			return err
		}
	}

	if next == 0 {
		if err := l.tail.Set(new(big.Int).SetUint64(prev)); err != nil {
			return err
		}
	} else {
		if prev == 0 {
			l.prev.Clear(U64(next))
		} else if err := l.prev.Set(U64(next), prev); err != nil {
			return err
		}
	}

	l.next.Clear(U64(id))
	l.prev.Clear(U64(id))
	return l.count.Sub(big.NewInt(1))
}

// Len returns the number of listed ids.
func (l *IDList) Len() (uint64, error) {
	count, err := l.count.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Iter walks the list head to tail, aborting on the first error.
func (l *IDList) Iter(cb func(id uint64) error) error {
	head, err := l.head.Get()
	if err != nil {
		return err
	}
	for id := head.Uint64(); id != 0; {
		if err := cb(id); err != nil {
			return err
		}
		next, err := l.next.Get(U64(id))
		if err != nil {
			return err
		}
		id = next
	}
	return nil
}

// All collects all listed ids head to tail.
func (l *IDList) All() ([]uint64, error) {
	var ids []uint64
	if err := l.Iter(func(id uint64) error {
		ids = append(ids, id)
		return nil
	}); err != nil {
		return nil, err
	}
	return ids, nil
}
