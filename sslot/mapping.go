// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"encoding/binary"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Key is the constraint of mapping keys.
type Key interface {
	Bytes() []byte
}

// U64 adapts an uint64 into a mapping Key.
type U64 uint64

// Bytes returns the big-endian form of the key.
func (u U64) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(u))
	return b[:]
}

// Mapping is a key/value storage abstraction, similar to a mapping
// declared in a smart contract. Values are RLP encoded; slot positions
// are derived by hashing the key with the mapping's base slot.
type Mapping[K Key, V any] struct {
	ctx     *Context
	basePos xdc.Bytes32
}

// NewMapping binds a Mapping accessor to the given base slot.
func NewMapping[K Key, V any](ctx *Context, pos xdc.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{ctx: ctx, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) xdc.Bytes32 {
	return xdc.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value stored for key; a missing key reads as the zero value.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.ctx.state.DecodeStorage(m.ctx.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores the value for key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.ctx.state.EncodeStorage(m.ctx.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Clear removes the value stored for key.
func (m *Mapping[K, V]) Clear(key K) {
	m.ctx.state.SetStorage(m.ctx.address, m.position(key), nil)
}
