// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package operators

import (
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/stretchr/testify/assert"
)

var (
	op1 = xdc.BytesToAddress([]byte("operator-1"))
	op2 = xdc.BytesToAddress([]byte("operator-2"))
	cb1 = xdc.BytesToAddress([]byte("coinbase-1"))
	cb2 = xdc.BytesToAddress([]byte("coinbase-2"))
)

type recordingRegistrar struct {
	registered []xdc.Address
	removed    []xdc.Address
}

func (r *recordingRegistrar) RegisterCandidate(coinbase, _ xdc.Address) error {
	r.registered = append(r.registered, coinbase)
	return nil
}

func (r *recordingRegistrar) RemoveCandidate(coinbase xdc.Address) error {
	r.removed = append(r.removed, coinbase)
	return nil
}

func newRegistry(t *testing.T, registrar ValidatorRegistrar) *Registry {
	t.Helper()
	ctx := sslot.NewContext(xdc.BytesToAddress([]byte("pool")), state.New(kv.NewMemLevelDB()))
	return New(ctx, registrar)
}

func TestRegister(t *testing.T) {
	r := newRegistry(t, nil)

	assert.NoError(t, r.Register(op1, 3))
	record, _ := r.Get(op1)
	assert.True(t, record.Listed)
	assert.Equal(t, uint64(3), record.MaxMasternodes)
	assert.False(t, record.KYCApproved)

	err := r.Register(op1, 5)
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(err))
	assert.True(t, reverts.IsRevert(r.Register(xdc.Address{}, 1)))
	assert.True(t, reverts.IsRevert(r.Register(op2, 0)))

	count, _ := r.Count()
	assert.Equal(t, uint64(1), count)
}

func TestKYCTransitions(t *testing.T) {
	r := newRegistry(t, nil)
	hash := xdc.Blake2b([]byte("docs"))

	assert.True(t, reverts.IsRevert(r.ApproveKYC(op1, hash)))

	assert.NoError(t, r.Register(op1, 3))
	assert.NoError(t, r.ApproveKYC(op1, hash))
	record, _ := r.Get(op1)
	assert.True(t, record.KYCApproved)
	assert.Equal(t, hash, record.KYCHash)

	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(r.ApproveKYC(op1, hash)))

	assert.NoError(t, r.RevokeKYC(op1))
	record, _ = r.Get(op1)
	assert.False(t, record.KYCApproved)
	assert.True(t, reverts.IsRevert(r.RevokeKYC(op1)))
}

func TestWhitelist(t *testing.T) {
	registrar := &recordingRegistrar{}
	r := newRegistry(t, registrar)

	assert.NoError(t, r.Register(op1, 1))
	err := r.Whitelist(op1, cb1)
	assert.Equal(t, reverts.ClassAccessControl, reverts.ClassOf(err))

	assert.NoError(t, r.ApproveKYC(op1, xdc.Blake2b([]byte("docs"))))
	assert.NoError(t, r.Whitelist(op1, cb1))
	assert.Equal(t, []xdc.Address{cb1}, registrar.registered)

	owner, _ := r.OperatorOf(cb1)
	assert.Equal(t, op1, owner)
	record, _ := r.Get(op1)
	assert.Equal(t, uint64(1), record.ActiveMasternodes)

	// duplicate coinbase
	assert.NoError(t, r.Register(op2, 2))
	assert.NoError(t, r.ApproveKYC(op2, xdc.Blake2b([]byte("docs2"))))
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(r.Whitelist(op2, cb1)))

	// limit reached
	err = r.Whitelist(op1, cb2)
	assert.Equal(t, reverts.ClassInsufficientResource, reverts.ClassOf(err))
}

func TestRemoveCoinbase(t *testing.T) {
	registrar := &recordingRegistrar{}
	r := newRegistry(t, registrar)

	assert.NoError(t, r.Register(op1, 2))
	assert.NoError(t, r.ApproveKYC(op1, xdc.Blake2b([]byte("docs"))))
	assert.NoError(t, r.Whitelist(op1, cb1))

	assert.True(t, reverts.IsRevert(r.RemoveCoinbase(op1, cb2)))
	assert.Equal(t, reverts.ClassAccessControl, reverts.ClassOf(r.RemoveCoinbase(op2, cb1)))

	assert.NoError(t, r.RemoveCoinbase(op1, cb1))
	assert.Equal(t, []xdc.Address{cb1}, registrar.removed)
	owner, _ := r.OperatorOf(cb1)
	assert.True(t, owner.IsZero())
	record, _ := r.Get(op1)
	assert.Equal(t, uint64(0), record.ActiveMasternodes)

	// coinbase can be registered again after removal
	assert.NoError(t, r.Whitelist(op1, cb1))
}

func TestIter(t *testing.T) {
	r := newRegistry(t, nil)
	assert.NoError(t, r.Register(op1, 1))
	assert.NoError(t, r.Register(op2, 2))

	var seen []xdc.Address
	assert.NoError(t, r.Iter(func(addr xdc.Address, record *Operator) error {
		assert.True(t, record.Listed)
		seen = append(seen, addr)
		return nil
	}))
	assert.Equal(t, []xdc.Address{op1, op2}, seen)
}
