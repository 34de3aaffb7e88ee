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

// RequestWithdrawal opens a two-step withdrawal. The caller's shares
// move into pool escrow; principal is fixed at the current rate and
// paid out only on admin approval.
func (p *Pool) RequestWithdrawal(caller xdc.Address, shareAmount *big.Int) (uint64, error) {
	var id uint64
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireNotPaused(); err != nil {
			return err
		}
		if shareAmount.Sign() <= 0 {
			return reverts.Validation("Share amount must be positive")
		}
		totalShares, totalPooled, err := m.totals()
		if err != nil {
			return err
		}
		principal, err := exchange.PrincipalForShares(shareAmount, totalShares, totalPooled)
		if err != nil {
			return err
		}
		minWithdraw, err := m.params.MinWithdraw()
		if err != nil {
			return err
		}
		if principal.Cmp(minWithdraw) < 0 {
			return reverts.Validation("Amount below minimum")
		}
		// escrow the shares with the pool until resolution
		if err := m.ledger.Transfer(caller, env.Pool(), shareAmount); err != nil {
			return err
		}
		if id, err = m.queue.CreateRequest(caller, shareAmount, principal, env.Time()); err != nil {
			return err
		}
		env.Log("WithdrawalRequested",
			runtime.A("user", caller.String()),
			runtime.A("requestId", itoa(id)),
			runtime.A("shares", shareAmount.String()),
			runtime.A("amount", principal.String()))
		return nil
	})
	return id, err
}

// approveOne resolves a pending request: escrowed shares burn, the
// fixed principal leaves the pool and pays the requester.
func (m *mods) approveOne(env *runtime.Env, id uint64) error {
	req, err := m.queue.Resolve(id, true)
	if err != nil {
		return err
	}
	buffer, err := m.buffer.Get()
	if err != nil {
		return err
	}
	if buffer.Cmp(req.PrincipalAmount) < 0 {
		return reverts.InsufficientResource("Insufficient exit buffer")
	}
	if err := m.ledger.Burn(env.Pool(), req.ShareAmount); err != nil {
		return err
	}
	if err := m.totalPooled.Sub(req.PrincipalAmount); err != nil {
		return err
	}
	if err := m.buffer.Sub(req.PrincipalAmount); err != nil {
		return err
	}
	if err := env.Transfer(env.Pool(), req.User, req.PrincipalAmount); err != nil {
		return err
	}
	env.Log("WithdrawalApproved",
		runtime.A("requestId", itoa(id)),
		runtime.A("user", req.User.String()),
		runtime.A("amount", req.PrincipalAmount.String()))
	return nil
}

// ApproveWithdrawal approves and pays out one pending request.
func (p *Pool) ApproveWithdrawal(caller xdc.Address, id uint64) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		return m.approveOne(env, id)
	})
}

// RejectWithdrawal rejects a pending request and returns the escrowed
// shares to the requester.
func (p *Pool) RejectWithdrawal(caller xdc.Address, id uint64) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		req, err := m.queue.Resolve(id, false)
		if err != nil {
			return err
		}
		if err := m.ledger.Transfer(env.Pool(), req.User, req.ShareAmount); err != nil {
			return err
		}
		env.Log("WithdrawalRejected",
			runtime.A("requestId", itoa(id)),
			runtime.A("user", req.User.String()),
			runtime.A("shares", req.ShareAmount.String()))
		return nil
	})
}

// BatchApproveWithdrawals approves many requests in one operation.
// Ids already processed or unknown are skipped and reported; the rest
// apply. A buffer shortfall aborts the whole batch.
func (p *Pool) BatchApproveWithdrawals(caller xdc.Address, ids []uint64) (skipped []uint64, err error) {
	err = p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if len(ids) == 0 {
			return reverts.Validation("Empty id list")
		}
		skipped = skipped[:0]
		for _, id := range ids {
			switch err := m.approveOne(env, id); reverts.ClassOf(err) {
			case 0:
				if err != nil {
					return err
				}
			case reverts.ClassStateConflict, reverts.ClassValidation:
				// already processed or unknown id
				skipped = append(skipped, id)
			default:
				return err
			}
		}
		if len(skipped) > 0 {
			env.Log("BatchApprovalSkipped", runtime.A("count", itoa(uint64(len(skipped)))))
		}
		return nil
	})
	return
}
