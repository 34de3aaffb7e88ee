// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/revenue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Timelocked governance action kinds.
const (
	actionSetTreasury = "set-treasury"
	actionSetSplit    = "set-revenue-split"
)

// RegisterOperator lists a new validator operator.
func (p *Pool) RegisterOperator(caller, operator xdc.Address, maxMasternodes uint64) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if err := m.registry.Register(operator, maxMasternodes); err != nil {
			return err
		}
		env.Log("OperatorRegistered",
			runtime.A("operator", operator.String()),
			runtime.A("maxMasternodes", itoa(maxMasternodes)))
		return nil
	})
}

// ApproveOperatorKYC marks an operator KYC approved.
func (p *Pool) ApproveOperatorKYC(caller, operator xdc.Address, kycHash xdc.Bytes32) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if err := m.registry.ApproveKYC(operator, kycHash); err != nil {
			return err
		}
		env.Log("OperatorKYCApproved", runtime.A("operator", operator.String()))
		return nil
	})
}

// RevokeOperatorKYC withdraws an operator's KYC approval.
func (p *Pool) RevokeOperatorKYC(caller, operator xdc.Address) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if err := m.registry.RevokeKYC(operator); err != nil {
			return err
		}
		env.Log("OperatorKYCRevoked", runtime.A("operator", operator.String()))
		return nil
	})
}

// WhitelistCoinbase registers a validator coinbase for the calling
// operator.
func (p *Pool) WhitelistCoinbase(caller, coinbase xdc.Address) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.registry.Whitelist(caller, coinbase); err != nil {
			return err
		}
		env.Log("CoinbaseWhitelisted",
			runtime.A("operator", caller.String()),
			runtime.A("coinbase", coinbase.String()))
		return nil
	})
}

// RemoveCoinbase unwinds one of the calling operator's coinbases.
func (p *Pool) RemoveCoinbase(caller, coinbase xdc.Address) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.registry.RemoveCoinbase(caller, coinbase); err != nil {
			return err
		}
		env.Log("CoinbaseRemoved",
			runtime.A("operator", caller.String()),
			runtime.A("coinbase", coinbase.String()))
		return nil
	})
}

// SubmitKYC records the liquid staking provider's own KYC hash.
func (p *Pool) SubmitKYC(caller xdc.Address, hash xdc.Bytes32) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if err := m.params.SubmitKYC(hash); err != nil {
			return err
		}
		env.Log("KYCSubmitted", runtime.A("hash", hash.String()))
		return nil
	})
}

// SetMinStake updates the minimum deposit.
func (p *Pool) SetMinStake(caller xdc.Address, v *big.Int) error {
	return p.adminSet(caller, "MinStakeUpdated", v.String(), func(m *mods) error {
		return m.params.SetMinStake(v)
	})
}

// SetMinWithdraw updates the minimum withdrawal.
func (p *Pool) SetMinWithdraw(caller xdc.Address, v *big.Int) error {
	return p.adminSet(caller, "MinWithdrawUpdated", v.String(), func(m *mods) error {
		return m.params.SetMinWithdraw(v)
	})
}

// SetMaxWithdrawablePercent updates the validator capital cap.
func (p *Pool) SetMaxWithdrawablePercent(caller xdc.Address, percent uint64) error {
	return p.adminSet(caller, "MaxWithdrawableUpdated", itoa(percent), func(m *mods) error {
		return m.params.SetMaxWithdrawablePercent(percent)
	})
}

// Pause suspends user-facing operations.
func (p *Pool) Pause(caller xdc.Address) error {
	return p.adminSet(caller, "Paused", "", func(m *mods) error {
		m.params.SetPaused(true)
		return nil
	})
}

// Unpause resumes user-facing operations.
func (p *Pool) Unpause(caller xdc.Address) error {
	return p.adminSet(caller, "Unpaused", "", func(m *mods) error {
		m.params.SetPaused(false)
		return nil
	})
}

func (p *Pool) adminSet(caller xdc.Address, event, value string, apply func(m *mods) error) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		if err := apply(m); err != nil {
			return err
		}
		if value == "" {
			env.Log(event)
		} else {
			env.Log(event, runtime.A("value", value))
		}
		return nil
	})
}

// ProposeSetTreasury queues a delayed treasury change.
func (p *Pool) ProposeSetTreasury(caller, treasury xdc.Address) (uint64, error) {
	if treasury.IsZero() {
		return 0, reverts.Validation("Treasury is zero address")
	}
	return p.propose(caller, actionSetTreasury, treasury.Bytes())
}

// ProposeSetSplit queues a delayed revenue split change.
func (p *Pool) ProposeSetSplit(caller xdc.Address, split revenue.Split) (uint64, error) {
	if !split.Valid() {
		return 0, reverts.Validation("Split must sum to 100")
	}
	payload, err := rlp.EncodeToBytes(&split)
	if err != nil {
		return 0, err
	}
	return p.propose(caller, actionSetSplit, payload)
}

func (p *Pool) propose(caller xdc.Address, kind string, payload []byte) (uint64, error) {
	var id uint64
	err := p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		var err error
		if id, err = m.timelock.Propose(kind, payload, env.Time()); err != nil {
			return err
		}
		env.Log("ActionProposed",
			runtime.A("actionId", itoa(id)),
			runtime.A("kind", kind))
		return nil
	})
	return id, err
}

// ExecuteProposal applies an unlocked governance action.
func (p *Pool) ExecuteProposal(caller xdc.Address, id uint64) error {
	return p.rt.Transact(caller, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		if err := m.requireAdmin(caller); err != nil {
			return err
		}
		action, err := m.timelock.Execute(id, env.Time())
		if err != nil {
			return err
		}
		switch action.Kind {
		case actionSetTreasury:
			if len(action.Payload) != xdc.AddressLength {
				return reverts.Validation("Malformed treasury payload")
			}
			if err := m.dist.SetTreasury(xdc.BytesToAddress(action.Payload)); err != nil {
				return err
			}
		case actionSetSplit:
			var split revenue.Split
			if err := rlp.DecodeBytes(action.Payload, &split); err != nil {
				return reverts.Validation("Malformed split payload")
			}
			if err := m.dist.SetSplit(split); err != nil {
				return err
			}
		default:
			return reverts.Validation("Unknown action kind")
		}
		env.Log("ActionExecuted",
			runtime.A("actionId", itoa(id)),
			runtime.A("kind", action.Kind))
		return nil
	})
}
