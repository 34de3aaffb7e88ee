// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	lru "github.com/hashicorp/golang-lru"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/stackedmap"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

const readCacheSize = 8192

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type (
	balanceKey xdc.Address
	storageKey struct {
		addr xdc.Address
		key  xdc.Bytes32
	}
)

func (k balanceKey) diskKey() []byte {
	return append([]byte("a"), k[:]...)
}

func (k storageKey) diskKey() []byte {
	return append(append([]byte("s"), k.addr.Bytes()...), k.key.Bytes()...)
}

// State manages the world state of the staking engine: native account
// balances and per-contract keyed storage. All mutations are journaled
// and take effect on disk only at Commit; RevertTo discards everything
// since the matching checkpoint.
type State struct {
	store kv.Store
	cache *lru.Cache // raw value cache over the backing store
	sm    *stackedmap.StackedMap
}

// New creates a state object backed by the given store.
func New(store kv.Store) *State {
	cache, _ := lru.New(readCacheSize)
	s := &State{
		store: store,
		cache: cache,
	}
	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.srcGetter(key)
	})

	// the base layer accepts puts that live until the next Commit
	s.sm.Push()
	return s
}

func (s *State) srcGetter(key any) (any, bool, error) {
	switch k := key.(type) {
	case balanceKey:
		raw, err := s.read(k.diskKey())
		if err != nil {
			return nil, false, &Error{err}
		}
		return new(big.Int).SetBytes(raw), true, nil
	case storageKey:
		raw, err := s.read(k.diskKey())
		if err != nil {
			return nil, false, &Error{err}
		}
		return raw, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) read(diskKey []byte) ([]byte, error) {
	if v, ok := s.cache.Get(string(diskKey)); ok {
		return v.([]byte), nil
	}
	raw, err := s.store.Get(diskKey)
	if err != nil {
		if s.store.IsNotFound(err) {
			raw = nil
		} else {
			return nil, err
		}
	}
	s.cache.Add(string(diskKey), raw)
	return raw, nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts state to the given checkpoint revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// GetBalance returns the native XDC balance of the given address.
func (s *State) GetBalance(addr xdc.Address) (*big.Int, error) {
	v, _, err := s.sm.Get(balanceKey(addr))
	if err != nil {
		return nil, err
	}
	return v.(*big.Int), nil
}

// SetBalance sets the native XDC balance of the given address.
// Negative or >256-bit balances are rejected.
func (s *State) SetBalance(addr xdc.Address, balance *big.Int) error {
	if balance.Sign() < 0 || balance.BitLen() > 256 {
		return &Error{fmt.Errorf("balance out of range for %v", addr)}
	}
	s.sm.Put(balanceKey(addr), new(big.Int).Set(balance))
	return nil
}

// GetStorage returns the raw storage value of (addr, key).
// A missing slot reads as nil.
func (s *State) GetStorage(addr xdc.Address, key xdc.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// SetStorage sets the raw storage value of (addr, key).
// An empty value clears the slot.
func (s *State) SetStorage(addr xdc.Address, key xdc.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// DecodeStorage decodes the raw storage value of (addr, key) via the decoder.
func (s *State) DecodeStorage(addr xdc.Address, key xdc.Bytes32, decode func(raw []byte) error) error {
	raw, err := s.GetStorage(addr, key)
	if err != nil {
		return err
	}
	return decode(raw)
}

// EncodeStorage encodes the value produced by the encoder into (addr, key) storage.
func (s *State) EncodeStorage(addr xdc.Address, key xdc.Bytes32, encode func() ([]byte, error)) error {
	raw, err := encode()
	if err != nil {
		return err
	}
	s.SetStorage(addr, key, raw)
	return nil
}

// GetStorageWord reads a storage slot as a 32-byte word.
func (s *State) GetStorageWord(addr xdc.Address, key xdc.Bytes32) (xdc.Bytes32, error) {
	raw, err := s.GetStorage(addr, key)
	if err != nil {
		return xdc.Bytes32{}, err
	}
	return xdc.BytesToBytes32(raw), nil
}

// SetStorageWord writes a storage slot as a 32-byte word, left-trimmed on disk.
func (s *State) SetStorageWord(addr xdc.Address, key xdc.Bytes32, word xdc.Bytes32) {
	s.SetStorage(addr, key, bytes.TrimLeft(word.Bytes(), "\x00"))
}

// Commit writes all journaled mutations to the backing store atomically
// and resets the journal. Open checkpoints are absorbed: everything
// journaled since the last Commit that was not reverted is written.
func (s *State) Commit() error {
	batch := s.store.NewBatch()
	s.sm.Journal(func(key, value any) bool {
		var diskKey, raw []byte
		switch k := key.(type) {
		case balanceKey:
			diskKey = k.diskKey()
			raw = value.(*big.Int).Bytes()
		case storageKey:
			diskKey = k.diskKey()
			raw = value.([]byte)
		default:
			return true
		}
		s.cache.Add(string(diskKey), raw)
		if len(raw) == 0 {
			_ = batch.Delete(diskKey)
		} else {
			_ = batch.Put(diskKey, raw)
		}
		return true
	})

	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	s.sm.PopTo(0)
	s.sm.Push()
	return nil
}
