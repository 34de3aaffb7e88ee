// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package shares implements the bXDC claim-token ledger.
package shares

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	slotTotalSupply = xdc.Blake2b([]byte("bxdc.total-supply"))
	slotBalances    = xdc.Blake2b([]byte("bxdc.balances"))
	slotAllowances  = xdc.Blake2b([]byte("bxdc.allowances"))

	// maxUint256 marks an infinite allowance; it is never decremented.
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

type allowanceKey struct {
	owner, spender xdc.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.spender.Bytes()...)
}

// Ledger is the fungible share ledger bound to the pool's storage.
type Ledger struct {
	totalSupply *sslot.Uint256
	balances    *sslot.Mapping[xdc.Address, *big.Int]
	allowances  *sslot.Mapping[allowanceKey, *big.Int]
}

// New binds a Ledger to the given storage context.
func New(ctx *sslot.Context) *Ledger {
	return &Ledger{
		totalSupply: sslot.NewUint256(ctx, slotTotalSupply),
		balances:    sslot.NewMapping[xdc.Address, *big.Int](ctx, slotBalances),
		allowances:  sslot.NewMapping[allowanceKey, *big.Int](ctx, slotAllowances),
	}
}

// TotalSupply returns the total number of shares in existence.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	return l.totalSupply.Get()
}

// BalanceOf returns the share balance of addr.
func (l *Ledger) BalanceOf(addr xdc.Address) (*big.Int, error) {
	return l.balances.Get(addr)
}

// Allowance returns how much spender may move from owner's balance.
func (l *Ledger) Allowance(owner, spender xdc.Address) (*big.Int, error) {
	return l.allowances.Get(allowanceKey{owner, spender})
}

func (l *Ledger) setBalance(addr xdc.Address, balance *big.Int) error {
	if balance.Sign() == 0 {
		l.balances.Clear(addr)
		return nil
	}
	return l.balances.Set(addr, balance)
}

// Mint creates amount shares for addr, growing total supply.
func (l *Ledger) Mint(addr xdc.Address, amount *big.Int) error {
	if addr.IsZero() {
		return reverts.Validation("Mint to zero address")
	}
	if amount.Sign() < 0 {
		return reverts.Validation("Negative amount")
	}
	if err := l.totalSupply.Add(amount); err != nil {
		return reverts.Arithmetic("Total supply overflow")
	}
	balance, err := l.balances.Get(addr)
	if err != nil {
		return err
	}
	return l.setBalance(addr, balance.Add(balance, amount))
}

// Burn destroys amount shares of addr, shrinking total supply.
func (l *Ledger) Burn(addr xdc.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Validation("Negative amount")
	}
	balance, err := l.balances.Get(addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.InsufficientResource("Insufficient balance")
	}
	if err := l.totalSupply.Sub(amount); err != nil {
		return reverts.Arithmetic("Total supply underflow")
	}
	return l.setBalance(addr, balance.Sub(balance, amount))
}

// Transfer moves amount shares from from to to.
func (l *Ledger) Transfer(from, to xdc.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.Validation("Transfer to zero address")
	}
	if amount.Sign() < 0 {
		return reverts.Validation("Negative amount")
	}
	fromBalance, err := l.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return reverts.InsufficientResource("Insufficient balance")
	}
	if from == to || amount.Sign() == 0 {
		return nil
	}
	if err := l.setBalance(from, fromBalance.Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance, err := l.balances.Get(to)
	if err != nil {
		return err
	}
	return l.setBalance(to, toBalance.Add(toBalance, amount))
}

// Approve sets spender's allowance over owner's balance to amount,
// replacing any previous allowance.
func (l *Ledger) Approve(owner, spender xdc.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.Validation("Approve zero address")
	}
	if amount.Sign() < 0 {
		return reverts.Validation("Negative amount")
	}
	key := allowanceKey{owner, spender}
	if amount.Sign() == 0 {
		l.allowances.Clear(key)
		return nil
	}
	return l.allowances.Set(key, amount)
}

// TransferFrom moves amount of from's shares by authority of spender's
// allowance. An allowance of 2^256-1 is treated as infinite.
func (l *Ledger) TransferFrom(spender, from, to xdc.Address, amount *big.Int) error {
	if spender != from {
		allowance, err := l.allowances.Get(allowanceKey{from, spender})
		if err != nil {
			return err
		}
		if allowance.Cmp(amount) < 0 {
			return reverts.InsufficientResource("Insufficient allowance")
		}
		if allowance.Cmp(maxUint256) != 0 {
			if err := l.Approve(from, spender, new(big.Int).Sub(allowance, amount)); err != nil {
				return err
			}
		}
	}
	return l.Transfer(from, to, amount)
}
