// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/exchange"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/operators"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/queue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/revenue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/timelock"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Status is the pool-wide accounting snapshot.
type Status struct {
	TotalPooled          *big.Int `json:"totalPooled"`
	TotalShares          *big.Int `json:"totalShares"`
	InstantExitBuffer    *big.Int `json:"instantExitBuffer"`
	ValidatorOutstanding *big.Int `json:"validatorOutstanding"`
	Rate                 *big.Int `json:"rate"`
	BufferHealthPercent  uint64   `json:"bufferHealthPercent"`
	PendingRequests      uint64   `json:"pendingRequests"`
	Paused               bool     `json:"paused"`
}

// ParamsView is the governed parameter snapshot.
type ParamsView struct {
	Admin                  xdc.Address `json:"admin"`
	Treasury               xdc.Address `json:"treasury"`
	MinStake               *big.Int    `json:"minStake"`
	MinWithdraw            *big.Int    `json:"minWithdraw"`
	MaxWithdrawablePercent uint64      `json:"maxWithdrawablePercent"`
	Split                  revenue.Split `json:"split"`
	KYCSubmitted           bool        `json:"kycSubmitted"`
	KYCHash                xdc.Bytes32 `json:"kycHash"`
}

func (p *Pool) view(fn func(m *mods, env *runtime.Env) error) error {
	return p.rt.Call(xdc.Address{}, func(env *runtime.Env) error {
		return fn(p.mods(env), env)
	})
}

// Status returns the pool accounting snapshot.
func (p *Pool) Status() (*Status, error) {
	var status Status
	err := p.view(func(m *mods, env *runtime.Env) error {
		totalShares, totalPooled, err := m.totals()
		if err != nil {
			return err
		}
		status.TotalShares = totalShares
		status.TotalPooled = totalPooled
		if status.InstantExitBuffer, err = m.buffer.Get(); err != nil {
			return err
		}
		if status.ValidatorOutstanding, err = m.outstanding.Get(); err != nil {
			return err
		}
		if status.Rate, err = exchange.Rate(totalShares, totalPooled); err != nil {
			return err
		}
		if totalPooled.Sign() > 0 {
			health := new(big.Int).Mul(status.InstantExitBuffer, big.NewInt(xdc.PercentDivisor))
			status.BufferHealthPercent = health.Div(health, totalPooled).Uint64()
		}
		if status.PendingRequests, err = m.queue.PendingCount(); err != nil {
			return err
		}
		status.Paused, err = m.params.Paused()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Params returns the governed parameter snapshot.
func (p *Pool) Params() (*ParamsView, error) {
	var v ParamsView
	err := p.view(func(m *mods, env *runtime.Env) error {
		var err error
		if v.Admin, err = m.params.Admin(); err != nil {
			return err
		}
		if v.Treasury, err = m.dist.Treasury(); err != nil {
			return err
		}
		if v.MinStake, err = m.params.MinStake(); err != nil {
			return err
		}
		if v.MinWithdraw, err = m.params.MinWithdraw(); err != nil {
			return err
		}
		if v.MaxWithdrawablePercent, err = m.params.MaxWithdrawablePercent(); err != nil {
			return err
		}
		if v.Split, err = m.dist.GetSplit(); err != nil {
			return err
		}
		if v.KYCSubmitted, err = m.params.KYCSubmitted(); err != nil {
			return err
		}
		v.KYCHash, err = m.params.KYCHash()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// BalanceOf returns addr's bXDC balance.
func (p *Pool) BalanceOf(addr xdc.Address) (balance *big.Int, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		balance, err = m.ledger.BalanceOf(addr)
		return err
	})
	return
}

// Allowance returns spender's bXDC allowance over owner's balance.
func (p *Pool) Allowance(owner, spender xdc.Address) (allowance *big.Int, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		allowance, err = m.ledger.Allowance(owner, spender)
		return err
	})
	return
}

// GetRequest returns one withdrawal request.
func (p *Pool) GetRequest(id uint64) (req *queue.Request, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		req, err = m.queue.GetRequest(id)
		return err
	})
	return
}

// PendingRequestIDs returns the unresolved request ids in order.
func (p *Pool) PendingRequestIDs() (ids []uint64, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		ids, err = m.queue.PendingIDs()
		return err
	})
	return
}

// GetBatch returns one claim-ticket batch.
func (p *Pool) GetBatch(id uint64) (batch *queue.Batch, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		batch, err = m.queue.GetBatch(id)
		return err
	})
	return
}

// HoldingOf returns holder's entitlement in a batch.
func (p *Pool) HoldingOf(holder xdc.Address, batchID uint64) (held *big.Int, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		held, err = m.queue.Holding(holder, batchID)
		return err
	})
	return
}

// GetOperator returns an operator's registry record.
func (p *Pool) GetOperator(addr xdc.Address) (record *operators.Operator, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		record, err = m.registry.Get(addr)
		return err
	})
	return
}

// OperatorOf returns the operator owning a coinbase.
func (p *Pool) OperatorOf(coinbase xdc.Address) (operator xdc.Address, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		operator, err = m.registry.OperatorOf(coinbase)
		return err
	})
	return
}

// Operators lists all registered operators in registration order.
func (p *Pool) Operators() (list []xdc.Address, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		return m.registry.Iter(func(addr xdc.Address, _ *operators.Operator) error {
			list = append(list, addr)
			return nil
		})
	})
	return
}

// ClaimableCommission returns an operator's accrued commission.
func (p *Pool) ClaimableCommission(operator xdc.Address) (amount *big.Int, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		amount, err = m.dist.Claimable(operator)
		return err
	})
	return
}

// GetAction returns a timelocked governance action.
func (p *Pool) GetAction(id uint64) (action *timelock.Action, err error) {
	err = p.view(func(m *mods, env *runtime.Env) error {
		action, err = m.timelock.Get(id)
		return err
	})
	return
}
