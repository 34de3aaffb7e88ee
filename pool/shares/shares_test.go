// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shares

import (
	"math/big"
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/stretchr/testify/assert"
)

var (
	pool  = xdc.BytesToAddress([]byte("pool"))
	alice = xdc.BytesToAddress([]byte("alice"))
	bob   = xdc.BytesToAddress([]byte("bob"))
	carol = xdc.BytesToAddress([]byte("carol"))
)

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	db := kv.NewMemLevelDB()
	return New(sslot.NewContext(pool, state.New(db)))
}

func TestMintBurn(t *testing.T) {
	l := newLedger(t)

	assert.NoError(t, l.Mint(alice, big.NewInt(1000)))
	assert.NoError(t, l.Mint(bob, big.NewInt(500)))

	balance, _ := l.BalanceOf(alice)
	assert.Equal(t, big.NewInt(1000), balance)
	total, _ := l.TotalSupply()
	assert.Equal(t, big.NewInt(1500), total)

	assert.NoError(t, l.Burn(alice, big.NewInt(400)))
	balance, _ = l.BalanceOf(alice)
	assert.Equal(t, big.NewInt(600), balance)
	total, _ = l.TotalSupply()
	assert.Equal(t, big.NewInt(1100), total)

	err := l.Burn(alice, big.NewInt(601))
	assert.True(t, reverts.IsRevert(err))
	assert.Equal(t, "Insufficient balance", err.Error())

	assert.True(t, reverts.IsRevert(l.Mint(xdc.Address{}, big.NewInt(1))))
}

func TestTransfer(t *testing.T) {
	l := newLedger(t)
	assert.NoError(t, l.Mint(alice, big.NewInt(100)))

	assert.NoError(t, l.Transfer(alice, bob, big.NewInt(30)))
	aliceBalance, _ := l.BalanceOf(alice)
	bobBalance, _ := l.BalanceOf(bob)
	assert.Equal(t, big.NewInt(70), aliceBalance)
	assert.Equal(t, big.NewInt(30), bobBalance)

	// self transfer is a no-op
	assert.NoError(t, l.Transfer(alice, alice, big.NewInt(10)))
	aliceBalance, _ = l.BalanceOf(alice)
	assert.Equal(t, big.NewInt(70), aliceBalance)

	assert.True(t, reverts.IsRevert(l.Transfer(alice, bob, big.NewInt(71))))
	assert.True(t, reverts.IsRevert(l.Transfer(alice, xdc.Address{}, big.NewInt(1))))
}

func TestAllowance(t *testing.T) {
	l := newLedger(t)
	assert.NoError(t, l.Mint(alice, big.NewInt(100)))
	assert.NoError(t, l.Approve(alice, bob, big.NewInt(40)))

	allowance, _ := l.Allowance(alice, bob)
	assert.Equal(t, big.NewInt(40), allowance)

	assert.NoError(t, l.TransferFrom(bob, alice, carol, big.NewInt(25)))
	allowance, _ = l.Allowance(alice, bob)
	assert.Equal(t, big.NewInt(15), allowance)
	carolBalance, _ := l.BalanceOf(carol)
	assert.Equal(t, big.NewInt(25), carolBalance)

	err := l.TransferFrom(bob, alice, carol, big.NewInt(16))
	assert.True(t, reverts.IsRevert(err))
	assert.Equal(t, "Insufficient allowance", err.Error())

	// owner moving own funds needs no allowance
	assert.NoError(t, l.TransferFrom(alice, alice, bob, big.NewInt(10)))
}

func TestInfiniteAllowance(t *testing.T) {
	l := newLedger(t)
	assert.NoError(t, l.Mint(alice, big.NewInt(100)))

	infinite := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	assert.NoError(t, l.Approve(alice, bob, infinite))

	assert.NoError(t, l.TransferFrom(bob, alice, carol, big.NewInt(60)))
	allowance, _ := l.Allowance(alice, bob)
	assert.Equal(t, infinite, allowance)
}
