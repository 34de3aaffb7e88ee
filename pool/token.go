// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Transfer moves bXDC between holders.
func (p *Pool) Transfer(caller, to xdc.Address, amount *big.Int) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.ledger.Transfer(caller, to, amount); err != nil {
			return err
		}
		env.Log("Transfer",
			runtime.A("from", caller.String()),
			runtime.A("to", to.String()),
			runtime.A("amount", amount.String()))
		return nil
	})
}

// Approve sets spender's bXDC allowance over the caller's balance.
func (p *Pool) Approve(caller, spender xdc.Address, amount *big.Int) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.ledger.Approve(caller, spender, amount); err != nil {
			return err
		}
		env.Log("Approval",
			runtime.A("owner", caller.String()),
			runtime.A("spender", spender.String()),
			runtime.A("amount", amount.String()))
		return nil
	})
}

// TransferFrom moves bXDC by allowance.
func (p *Pool) TransferFrom(caller, from, to xdc.Address, amount *big.Int) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.ledger.TransferFrom(caller, from, to, amount); err != nil {
			return err
		}
		env.Log("Transfer",
			runtime.A("from", from.String()),
			runtime.A("to", to.String()),
			runtime.A("amount", amount.String()))
		return nil
	})
}
