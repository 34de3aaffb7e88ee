// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package operators implements the validator-operator registry and its
// KYC state machine. It owns the operator records and the coinbase
// reverse map; caller-role gating happens in the pool orchestrator.
package operators

import (
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	slotRecords   = xdc.Blake2b([]byte("operators.records"))
	slotCoinbases = xdc.Blake2b([]byte("operators.coinbases"))
	slotListHead  = xdc.Blake2b([]byte("operators.list-head"))
	slotListTail  = xdc.Blake2b([]byte("operators.list-tail"))
	slotListCount = xdc.Blake2b([]byte("operators.list-count"))
)

// Operator is the stored registry record of a validator operator.
type Operator struct {
	Listed            bool
	MaxMasternodes    uint64
	ActiveMasternodes uint64
	KYCApproved       bool
	KYCHash           xdc.Bytes32
}

// ValidatorRegistrar is the consumed masternode-registration
// capability. Implementations forward coinbase changes to the chain's
// validator set.
type ValidatorRegistrar interface {
	RegisterCandidate(coinbase, operator xdc.Address) error
	RemoveCandidate(coinbase xdc.Address) error
}

type noopRegistrar struct{}

func (noopRegistrar) RegisterCandidate(xdc.Address, xdc.Address) error { return nil }
func (noopRegistrar) RemoveCandidate(xdc.Address) error               { return nil }

// NoopRegistrar is the default ValidatorRegistrar which records nothing.
var NoopRegistrar ValidatorRegistrar = noopRegistrar{}

// Registry is the operator registry bound to the pool's storage.
type Registry struct {
	records   *sslot.Mapping[xdc.Address, *Operator]
	coinbases *sslot.Mapping[xdc.Address, xdc.Address]
	list      *sslot.AddressList
	registrar ValidatorRegistrar
}

// New binds a Registry to the given storage context. A nil registrar
// defaults to NoopRegistrar.
func New(ctx *sslot.Context, registrar ValidatorRegistrar) *Registry {
	if registrar == nil {
		registrar = NoopRegistrar
	}
	return &Registry{
		records:   sslot.NewMapping[xdc.Address, *Operator](ctx, slotRecords),
		coinbases: sslot.NewMapping[xdc.Address, xdc.Address](ctx, slotCoinbases),
		list:      sslot.NewAddressList(ctx, slotListHead, slotListTail, slotListCount),
		registrar: registrar,
	}
}

// Get returns the record of addr. Listed is false when addr was never
// registered.
func (r *Registry) Get(addr xdc.Address) (*Operator, error) {
	return r.records.Get(addr)
}

// Register adds a new operator with the given masternode limit.
func (r *Registry) Register(addr xdc.Address, maxMasternodes uint64) error {
	if addr.IsZero() {
		return reverts.Validation("Operator is zero address")
	}
	if maxMasternodes == 0 {
		return reverts.Validation("Masternode limit must be positive")
	}
	record, err := r.records.Get(addr)
	if err != nil {
		return err
	}
	if record.Listed {
		return reverts.StateConflict("Operator already registered")
	}
	if err := r.records.Set(addr, &Operator{Listed: true, MaxMasternodes: maxMasternodes}); err != nil {
		return err
	}
	return r.list.Add(addr)
}

// ApproveKYC marks a registered operator as KYC approved and stores
// the document hash. The transition is one-way.
func (r *Registry) ApproveKYC(addr xdc.Address, kycHash xdc.Bytes32) error {
	if kycHash.IsZero() {
		return reverts.Validation("Empty KYC hash")
	}
	record, err := r.records.Get(addr)
	if err != nil {
		return err
	}
	if !record.Listed {
		return reverts.Validation("Operator not registered")
	}
	if record.KYCApproved {
		return reverts.StateConflict("KYC already approved")
	}
	record.KYCApproved = true
	record.KYCHash = kycHash
	return r.records.Set(addr, record)
}

// RevokeKYC withdraws KYC approval. Registered coinbases stay in
// place; only future whitelisting is blocked.
func (r *Registry) RevokeKYC(addr xdc.Address) error {
	record, err := r.records.Get(addr)
	if err != nil {
		return err
	}
	if !record.Listed {
		return reverts.Validation("Operator not registered")
	}
	if !record.KYCApproved {
		return reverts.StateConflict("KYC not approved")
	}
	record.KYCApproved = false
	return r.records.Set(addr, record)
}

// Whitelist registers a validator coinbase for a KYC-approved
// operator. Each coinbase may be registered at most once.
func (r *Registry) Whitelist(operator, coinbase xdc.Address) error {
	if coinbase.IsZero() {
		return reverts.Validation("Coinbase is zero address")
	}
	record, err := r.records.Get(operator)
	if err != nil {
		return err
	}
	if !record.Listed {
		return reverts.Validation("Operator not registered")
	}
	if !record.KYCApproved {
		return reverts.AccessControl("Operator KYC not approved")
	}
	if record.ActiveMasternodes >= record.MaxMasternodes {
		return reverts.InsufficientResource("Masternode limit reached")
	}
	owner, err := r.coinbases.Get(coinbase)
	if err != nil {
		return err
	}
	if !owner.IsZero() {
		return reverts.StateConflict("Coinbase already registered")
	}
	if err := r.coinbases.Set(coinbase, operator); err != nil {
		return err
	}
	record.ActiveMasternodes++
	if err := r.records.Set(operator, record); err != nil {
		return err
	}
	return r.registrar.RegisterCandidate(coinbase, operator)
}

// RemoveCoinbase unwinds a coinbase registration. Only the owning
// operator may remove it.
func (r *Registry) RemoveCoinbase(operator, coinbase xdc.Address) error {
	owner, err := r.coinbases.Get(coinbase)
	if err != nil {
		return err
	}
	if owner.IsZero() {
		return reverts.Validation("Coinbase not registered")
	}
	if owner != operator {
		return reverts.AccessControl("Not coinbase owner")
	}
	r.coinbases.Clear(coinbase)
	record, err := r.records.Get(operator)
	if err != nil {
		return err
	}
	record.ActiveMasternodes--
	if err := r.records.Set(operator, record); err != nil {
		return err
	}
	return r.registrar.RemoveCandidate(coinbase)
}

// OperatorOf returns the operator owning a coinbase, zero when the
// coinbase is unregistered.
func (r *Registry) OperatorOf(coinbase xdc.Address) (xdc.Address, error) {
	return r.coinbases.Get(coinbase)
}

// Count returns the number of registered operators.
func (r *Registry) Count() (uint64, error) {
	return r.list.Len()
}

// Iter walks all registered operators in registration order.
func (r *Registry) Iter(cb func(addr xdc.Address, record *Operator) error) error {
	return r.list.Iter(func(addr xdc.Address) error {
		record, err := r.records.Get(addr)
		if err != nil {
			return err
		}
		return cb(addr, record)
	})
}
