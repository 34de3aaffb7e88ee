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

// WithdrawResult describes how an exit was served.
type WithdrawResult struct {
	// Principal is the redeemed value.
	Principal *big.Int
	// Instant is true when the buffer paid out immediately.
	Instant bool
	// BatchID is the claim ticket id of a delayed exit, zero otherwise.
	BatchID uint64
}

// exit burns owner's shares and either pays receiver from the buffer
// or mints a claim ticket. On the instant path totalPooled drops now;
// on the delayed path it drops when the batch is funded.
func (m *mods) exit(env *runtime.Env, owner, receiver xdc.Address, shareAmount *big.Int) (*WithdrawResult, error) {
	if err := m.requireNotPaused(); err != nil {
		return nil, err
	}
	if shareAmount.Sign() <= 0 {
		return nil, reverts.Validation("Share amount must be positive")
	}
	totalShares, totalPooled, err := m.totals()
	if err != nil {
		return nil, err
	}
	principal, err := exchange.PrincipalForShares(shareAmount, totalShares, totalPooled)
	if err != nil {
		return nil, err
	}
	minWithdraw, err := m.params.MinWithdraw()
	if err != nil {
		return nil, err
	}
	if principal.Cmp(minWithdraw) < 0 {
		return nil, reverts.Validation("Amount below minimum")
	}
	if err := m.ledger.Burn(owner, shareAmount); err != nil {
		return nil, err
	}

	buffer, err := m.buffer.Get()
	if err != nil {
		return nil, err
	}
	if buffer.Cmp(principal) >= 0 {
		if err := m.totalPooled.Sub(principal); err != nil {
			return nil, err
		}
		if err := m.buffer.Sub(principal); err != nil {
			return nil, err
		}
		if err := env.Transfer(env.Pool(), receiver, principal); err != nil {
			return nil, err
		}
		return &WithdrawResult{Principal: principal, Instant: true}, nil
	}

	batchID, err := m.queue.CreateBatch(receiver, principal)
	if err != nil {
		return nil, err
	}
	return &WithdrawResult{Principal: principal, BatchID: batchID}, nil
}

func logExit(env *runtime.Env, owner, receiver xdc.Address, shareAmount *big.Int, res *WithdrawResult) {
	if res.Instant {
		env.Log("Withdrawn",
			runtime.A("owner", owner.String()),
			runtime.A("receiver", receiver.String()),
			runtime.A("shares", shareAmount.String()),
			runtime.A("amount", res.Principal.String()))
		return
	}
	env.Log("WithdrawalQueued",
		runtime.A("owner", owner.String()),
		runtime.A("receiver", receiver.String()),
		runtime.A("shares", shareAmount.String()),
		runtime.A("amount", res.Principal.String()),
		runtime.A("batchId", itoa(res.BatchID)))
}

// Withdraw redeems the caller's shares for native XDC, served from
// the buffer when possible and queued as a claim ticket otherwise.
func (p *Pool) Withdraw(caller xdc.Address, shareAmount *big.Int) (*WithdrawResult, error) {
	var res *WithdrawResult
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		var err error
		if res, err = m.exit(env, caller, caller, shareAmount); err != nil {
			return err
		}
		logExit(env, caller, caller, shareAmount, res)
		return nil
	})
	return res, err
}

// Redeem burns owner's shares by authority of the caller's allowance
// and pays receiver.
func (p *Pool) Redeem(caller xdc.Address, shareAmount *big.Int, receiver, owner xdc.Address) (*WithdrawResult, error) {
	var res *WithdrawResult
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if caller != owner {
			// consume allowance by pulling the shares to the caller
			if err := m.ledger.TransferFrom(caller, owner, caller, shareAmount); err != nil {
				return err
			}
			owner = caller
		}
		var err error
		if res, err = m.exit(env, owner, receiver, shareAmount); err != nil {
			return err
		}
		logExit(env, owner, receiver, shareAmount, res)
		return nil
	})
	return res, err
}

// RedeemBatch funds a claim-ticket batch from the instant exit
// buffer. It rejects when the buffer cannot cover the batch; the
// ticket stays open and the call may be retried.
func (p *Pool) RedeemBatch(caller xdc.Address, batchID uint64) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		batch, err := m.queue.GetBatch(batchID)
		if err != nil {
			return err
		}
		if batch.Redeemed {
			return reverts.StateConflict("Batch already redeemed")
		}
		buffer, err := m.buffer.Get()
		if err != nil {
			return err
		}
		if buffer.Cmp(batch.PrincipalAmount) < 0 {
			return reverts.InsufficientResource("Insufficient exit buffer")
		}
		if err := m.buffer.Sub(batch.PrincipalAmount); err != nil {
			return err
		}
		if err := m.totalPooled.Sub(batch.PrincipalAmount); err != nil {
			return err
		}
		if _, err := m.queue.MarkRedeemed(batchID); err != nil {
			return err
		}
		env.Log("BatchRedeemed",
			runtime.A("batchId", itoa(batchID)),
			runtime.A("amount", batch.PrincipalAmount.String()))
		return nil
	})
}

// ClaimBatch pays the caller their entitlement in a funded batch.
func (p *Pool) ClaimBatch(caller xdc.Address, batchID uint64) (*big.Int, error) {
	var amount *big.Int
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireNotPaused(); err != nil {
			return err
		}
		batch, err := m.queue.GetBatch(batchID)
		if err != nil {
			return err
		}
		if !batch.Redeemed {
			return reverts.StateConflict("Batch not redeemed yet")
		}
		if amount, err = m.queue.TakeHolding(caller, batchID); err != nil {
			return err
		}
		if err := env.Transfer(env.Pool(), caller, amount); err != nil {
			return err
		}
		env.Log("ClaimPaid",
			runtime.A("holder", caller.String()),
			runtime.A("batchId", itoa(batchID)),
			runtime.A("amount", amount.String()))
		return nil
	})
	return amount, err
}

// TransferBatchClaim moves part or all of the caller's claim in an
// unredeemed batch to another holder.
func (p *Pool) TransferBatchClaim(caller, to xdc.Address, batchID uint64, amount *big.Int) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireNotPaused(); err != nil {
			return err
		}
		if err := m.queue.TransferClaim(caller, to, batchID, amount); err != nil {
			return err
		}
		env.Log("ClaimTransferred",
			runtime.A("from", caller.String()),
			runtime.A("to", to.String()),
			runtime.A("batchId", itoa(batchID)),
			runtime.A("amount", amount.String()))
		return nil
	})
}
