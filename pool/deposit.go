// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/exchange"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// credit mints shares for a deposit of principal, growing the pool
// totals. The principal is assumed already present in the pool.
func (m *mods) credit(receiver xdc.Address, principal *big.Int) (*big.Int, error) {
	totalShares, totalPooled, err := m.totals()
	if err != nil {
		return nil, err
	}
	minted, err := exchange.SharesForPrincipal(principal, totalShares, totalPooled)
	if err != nil {
		return nil, err
	}
	if minted.Sign() == 0 {
		return nil, reverts.Validation("Deposit too small for current rate")
	}
	if err := m.ledger.Mint(receiver, minted); err != nil {
		return nil, err
	}
	if err := m.totalPooled.Add(principal); err != nil {
		return nil, err
	}
	return minted, m.buffer.Add(principal)
}

// Stake deposits the carried native value and mints shares to the
// caller. It returns the minted share amount.
func (p *Pool) Stake(caller xdc.Address, value *big.Int) (*big.Int, error) {
	var minted *big.Int
	err := p.rt.Transact(caller, value, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireNotPaused(); err != nil {
			return err
		}
		amount := env.Value()
		minStake, err := m.params.MinStake()
		if err != nil {
			return err
		}
		if amount.Cmp(minStake) < 0 {
			return reverts.Validation("Amount below minimum")
		}
		if minted, err = m.credit(caller, amount); err != nil {
			return err
		}
		env.Log("Staked",
			runtime.A("user", caller.String()),
			runtime.A("amount", amount.String()),
			runtime.A("shares", minted.String()))
		return nil
	})
	return minted, err
}

// Deposit pulls amount wrapped XDC from the caller and mints shares to
// receiver. It returns the minted share amount.
func (p *Pool) Deposit(caller xdc.Address, amount *big.Int, receiver xdc.Address) (*big.Int, error) {
	var minted *big.Int
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireNotPaused(); err != nil {
			return err
		}
		if p.wrapped == nil {
			return reverts.StateConflict("Wrapped token not configured")
		}
		minStake, err := m.params.MinStake()
		if err != nil {
			return err
		}
		if amount.Cmp(minStake) < 0 {
			return reverts.Validation("Amount below minimum")
		}
		if err := p.wrapped.TransferFrom(caller, p.addr, amount); err != nil {
			return err
		}
		if minted, err = m.credit(receiver, amount); err != nil {
			return err
		}
		env.Log("Deposited",
			runtime.A("user", caller.String()),
			runtime.A("receiver", receiver.String()),
			runtime.A("amount", amount.String()),
			runtime.A("shares", minted.String()))
		return nil
	})
	return minted, err
}

// Mint issues exactly sharesWanted to receiver, pulling the principal
// cost in wrapped XDC from the caller. The cost rounds up so minting
// can never beat the rate. It returns the pulled principal.
func (p *Pool) Mint(caller xdc.Address, sharesWanted *big.Int, receiver xdc.Address) (*big.Int, error) {
	var cost *big.Int
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireNotPaused(); err != nil {
			return err
		}
		if p.wrapped == nil {
			return reverts.StateConflict("Wrapped token not configured")
		}
		if sharesWanted.Sign() <= 0 {
			return reverts.Validation("Share amount must be positive")
		}
		totalShares, totalPooled, err := m.totals()
		if err != nil {
			return err
		}
		cost = principalCeil(sharesWanted, totalShares, totalPooled)
		minStake, err := m.params.MinStake()
		if err != nil {
			return err
		}
		if cost.Cmp(minStake) < 0 {
			return reverts.Validation("Amount below minimum")
		}
		if err := p.wrapped.TransferFrom(caller, p.addr, cost); err != nil {
			return err
		}
		if err := m.ledger.Mint(receiver, sharesWanted); err != nil {
			return err
		}
		if err := m.totalPooled.Add(cost); err != nil {
			return err
		}
		if err := m.buffer.Add(cost); err != nil {
			return err
		}
		env.Log("Deposited",
			runtime.A("user", caller.String()),
			runtime.A("receiver", receiver.String()),
			runtime.A("amount", cost.String()),
			runtime.A("shares", sharesWanted.String()))
		return nil
	})
	return cost, err
}

// principalCeil is the rounding-up counterpart of the share-to-
// principal conversion, used only to price exact-share mints.
func principalCeil(shareAmount, totalShares, totalPooled *big.Int) *big.Int {
	if totalShares.Sign() == 0 {
		return new(big.Int).Set(shareAmount)
	}
	num := new(big.Int).Mul(shareAmount, totalPooled)
	num.Add(num, new(big.Int).Sub(totalShares, big.NewInt(1)))
	return num.Div(num, totalShares)
}

// AddToInstantExitBuffer tops up the instant exit buffer with the
// carried value without minting shares.
func (p *Pool) AddToInstantExitBuffer(caller xdc.Address, value *big.Int) error {
	return p.rt.Transact(caller, value, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		amount := env.Value()
		if amount.Sign() <= 0 {
			return reverts.Validation("Amount must be positive")
		}
		if err := m.buffer.Add(amount); err != nil {
			return err
		}
		env.Log("BufferToppedUp", runtime.A("amount", amount.String()))
		return nil
	})
}
