// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// WithdrawForValidator moves pool capital out of the buffer to the
// admin for masternode deposits. totalPooled is unchanged, the
// capital keeps backing shares; the outstanding total may never
// exceed the configured percentage of totalPooled.
func (p *Pool) WithdrawForValidator(caller xdc.Address, amount *big.Int) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return reverts.Validation("Amount must be positive")
		}

		totalPooled, err := m.totalPooled.Get()
		if err != nil {
			return err
		}
		outstanding, err := m.outstanding.Get()
		if err != nil {
			return err
		}
		maxPercent, err := m.params.MaxWithdrawablePercent()
		if err != nil {
			return err
		}
		limit := new(big.Int).Mul(totalPooled, new(big.Int).SetUint64(maxPercent))
		limit.Div(limit, big.NewInt(xdc.PercentDivisor))
		if new(big.Int).Add(outstanding, amount).Cmp(limit) > 0 {
			return reverts.InsufficientResource("Exceeds withdrawable limit")
		}

		buffer, err := m.buffer.Get()
		if err != nil {
			return err
		}
		if buffer.Cmp(amount) < 0 {
			return reverts.InsufficientResource("Insufficient exit buffer")
		}
		if err := m.buffer.Sub(amount); err != nil {
			return err
		}
		if err := m.outstanding.Add(amount); err != nil {
			return err
		}
		if err := env.Transfer(env.Pool(), caller, amount); err != nil {
			return err
		}
		env.Log("ValidatorCapitalWithdrawn",
			runtime.A("amount", amount.String()),
			runtime.A("outstanding", new(big.Int).Add(outstanding, amount).String()))
		return nil
	})
}

// ReturnPrincipal returns validator capital to the pool. The carried
// value refills the instant exit buffer and reduces the outstanding
// total; totalPooled is unchanged, the capital never stopped backing
// shares.
func (p *Pool) ReturnPrincipal(caller xdc.Address, value *big.Int) error {
	return p.rt.Transact(caller, value, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		amount := env.Value()
		if amount.Sign() <= 0 {
			return reverts.Validation("Amount must be positive")
		}
		outstanding, err := m.outstanding.Get()
		if err != nil {
			return err
		}
		repaid := amount
		if repaid.Cmp(outstanding) > 0 {
			repaid = outstanding
		}
		if err := m.outstanding.Sub(repaid); err != nil {
			return err
		}
		if err := m.buffer.Add(amount); err != nil {
			return err
		}
		env.Log("PrincipalReturned", runtime.A("amount", amount.String()))
		return nil
	})
}

// DepositRewards distributes the carried reward value: the accrual
// tranche raises the exchange rate, commission accrues to operators
// and the treasury cut pays out immediately.
func (p *Pool) DepositRewards(caller xdc.Address, value *big.Int) error {
	return p.rt.Transact(caller, value, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		amount := env.Value()
		out, err := m.dist.Distribute(amount, m.registry)
		if err != nil {
			return err
		}
		if err := m.totalPooled.Add(out.ShareAccrual); err != nil {
			return err
		}
		if err := m.buffer.Add(out.ShareAccrual); err != nil {
			return err
		}
		if out.Treasury.Sign() > 0 {
			treasury, err := m.dist.Treasury()
			if err != nil {
				return err
			}
			if err := env.Transfer(env.Pool(), treasury, out.Treasury); err != nil {
				return err
			}
		}
		env.Log("RewardsDeposited",
			runtime.A("amount", amount.String()),
			runtime.A("accrual", out.ShareAccrual.String()),
			runtime.A("commission", out.Commission.String()),
			runtime.A("treasury", out.Treasury.String()))
		return nil
	})
}

// HarvestRewards is the keeper-facing alias of DepositRewards.
func (p *Pool) HarvestRewards(caller xdc.Address, value *big.Int) error {
	return p.DepositRewards(caller, value)
}

// ClaimCommission pays an operator their accrued commission.
func (p *Pool) ClaimCommission(caller xdc.Address) (*big.Int, error) {
	var amount *big.Int
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		var err error
		if amount, err = m.dist.TakeCommission(caller); err != nil {
			return err
		}
		if err := env.Transfer(env.Pool(), caller, amount); err != nil {
			return err
		}
		env.Log("CommissionClaimed",
			runtime.A("operator", caller.String()),
			runtime.A("amount", amount.String()))
		return nil
	})
	return amount, err
}
