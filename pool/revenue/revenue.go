// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package revenue splits harvested validator rewards between share
// value accrual, operator commission and the treasury.
package revenue

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/operators"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	slotShareAccrual = xdc.Blake2b([]byte("revenue.share-accrual-percent"))
	slotCommission   = xdc.Blake2b([]byte("revenue.operator-commission-percent"))
	slotTreasuryFee  = xdc.Blake2b([]byte("revenue.treasury-fee-percent"))
	slotTreasury     = xdc.Blake2b([]byte("revenue.treasury"))
	slotClaimable    = xdc.Blake2b([]byte("revenue.claimable"))
	slotReserve      = xdc.Blake2b([]byte("revenue.commission-reserve"))
)

// Split is the three-way percentage split of a reward deposit.
type Split struct {
	ShareAccrualPercent       uint64 `json:"shareAccrualPercent"`
	OperatorCommissionPercent uint64 `json:"operatorCommissionPercent"`
	TreasuryFeePercent        uint64 `json:"treasuryFeePercent"`
}

// Valid reports whether the percentages sum to exactly 100.
func (s Split) Valid() bool {
	return s.ShareAccrualPercent+s.OperatorCommissionPercent+s.TreasuryFeePercent == xdc.PercentDivisor
}

// Outcome describes where one reward deposit went.
type Outcome struct {
	// ShareAccrual grows totalPooled, raising the exchange rate.
	ShareAccrual *big.Int
	// Commission was credited to operator claimable balances.
	Commission *big.Int
	// Treasury is owed to the treasury address.
	Treasury *big.Int
}

// Distributor is the revenue split engine bound to the pool's storage.
type Distributor struct {
	shareAccrual *sslot.Uint256
	commission   *sslot.Uint256
	treasuryFee  *sslot.Uint256
	treasury     *sslot.Address
	claimable    *sslot.Mapping[xdc.Address, *big.Int]
	reserve      *sslot.Uint256
}

// New binds a Distributor to the given storage context.
func New(ctx *sslot.Context) *Distributor {
	return &Distributor{
		shareAccrual: sslot.NewUint256(ctx, slotShareAccrual),
		commission:   sslot.NewUint256(ctx, slotCommission),
		treasuryFee:  sslot.NewUint256(ctx, slotTreasuryFee),
		treasury:     sslot.NewAddress(ctx, slotTreasury),
		claimable:    sslot.NewMapping[xdc.Address, *big.Int](ctx, slotClaimable),
		reserve:      sslot.NewUint256(ctx, slotReserve),
	}
}

// Init seeds the default split and the treasury address.
func (d *Distributor) Init(treasury xdc.Address) error {
	if err := d.SetTreasury(treasury); err != nil {
		return err
	}
	return d.SetSplit(Split{
		ShareAccrualPercent:       xdc.DefaultShareAccrualPercent,
		OperatorCommissionPercent: xdc.DefaultOperatorCommissionPercent,
		TreasuryFeePercent:        xdc.DefaultTreasuryFeePercent,
	})
}

// GetSplit returns the active split.
func (d *Distributor) GetSplit() (Split, error) {
	var s Split
	v, err := d.shareAccrual.Get()
	if err != nil {
		return s, err
	}
	s.ShareAccrualPercent = v.Uint64()
	if v, err = d.commission.Get(); err != nil {
		return s, err
	}
	s.OperatorCommissionPercent = v.Uint64()
	if v, err = d.treasuryFee.Get(); err != nil {
		return s, err
	}
	s.TreasuryFeePercent = v.Uint64()
	return s, nil
}

// SetSplit replaces the split, effective for subsequent deposits.
func (d *Distributor) SetSplit(s Split) error {
	if !s.Valid() {
		return reverts.Validation("Split must sum to 100")
	}
	if err := d.shareAccrual.Set(new(big.Int).SetUint64(s.ShareAccrualPercent)); err != nil {
		return err
	}
	if err := d.commission.Set(new(big.Int).SetUint64(s.OperatorCommissionPercent)); err != nil {
		return err
	}
	return d.treasuryFee.Set(new(big.Int).SetUint64(s.TreasuryFeePercent))
}

// Treasury returns the treasury address.
func (d *Distributor) Treasury() (xdc.Address, error) {
	return d.treasury.Get()
}

// SetTreasury replaces the treasury address.
func (d *Distributor) SetTreasury(treasury xdc.Address) error {
	if treasury.IsZero() {
		return reverts.Validation("Treasury is zero address")
	}
	d.treasury.Set(treasury)
	return nil
}

// Claimable returns the accrued commission of an operator.
func (d *Distributor) Claimable(operator xdc.Address) (*big.Int, error) {
	return d.claimable.Get(operator)
}

// Reserve returns the total unclaimed commission held by the pool.
func (d *Distributor) Reserve() (*big.Int, error) {
	return d.reserve.Get()
}

// Distribute splits a reward deposit. The commission tranche is spread
// over KYC-approved operators weighted by active masternode count;
// with no active masternodes it falls to the treasury, as does any
// division dust.
func (d *Distributor) Distribute(amount *big.Int, registry *operators.Registry) (*Outcome, error) {
	if amount.Sign() <= 0 {
		return nil, reverts.Validation("Reward amount must be positive")
	}
	split, err := d.GetSplit()
	if err != nil {
		return nil, err
	}
	if !split.Valid() {
		return nil, reverts.StateConflict("Split not initialized")
	}

	divisor := big.NewInt(xdc.PercentDivisor)
	commission := new(big.Int).Mul(amount, new(big.Int).SetUint64(split.OperatorCommissionPercent))
	commission.Div(commission, divisor)
	treasury := new(big.Int).Mul(amount, new(big.Int).SetUint64(split.TreasuryFeePercent))
	treasury.Div(treasury, divisor)
	// accrual takes the rounding remainder so the tranches always
	// sum to the deposited amount
	accrual := new(big.Int).Sub(amount, commission)
	accrual.Sub(accrual, treasury)

	credited, err := d.creditOperators(commission, registry)
	if err != nil {
		return nil, err
	}
	// undistributed commission (no weight, or dust) goes to treasury
	treasury.Add(treasury, new(big.Int).Sub(commission, credited))

	return &Outcome{ShareAccrual: accrual, Commission: credited, Treasury: treasury}, nil
}

func (d *Distributor) creditOperators(commission *big.Int, registry *operators.Registry) (*big.Int, error) {
	credited := new(big.Int)
	if commission.Sign() == 0 {
		return credited, nil
	}

	type weighted struct {
		addr   xdc.Address
		weight uint64
	}
	var (
		eligible    []weighted
		totalWeight uint64
	)
	err := registry.Iter(func(addr xdc.Address, record *operators.Operator) error {
		if record.KYCApproved && record.ActiveMasternodes > 0 {
			eligible = append(eligible, weighted{addr, record.ActiveMasternodes})
			totalWeight += record.ActiveMasternodes
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if totalWeight == 0 {
		return credited, nil
	}

	weightDivisor := new(big.Int).SetUint64(totalWeight)
	for _, e := range eligible {
		cut := new(big.Int).Mul(commission, new(big.Int).SetUint64(e.weight))
		cut.Div(cut, weightDivisor)
		if cut.Sign() == 0 {
			continue
		}
		balance, err := d.claimable.Get(e.addr)
		if err != nil {
			return nil, err
		}
		if err := d.claimable.Set(e.addr, balance.Add(balance, cut)); err != nil {
			return nil, err
		}
		credited.Add(credited, cut)
	}
	if err := d.reserve.Add(credited); err != nil {
		return nil, err
	}
	return credited, nil
}

// TakeCommission zeroes and returns the claimable commission of an
// operator; the caller pays it out.
func (d *Distributor) TakeCommission(operator xdc.Address) (*big.Int, error) {
	balance, err := d.claimable.Get(operator)
	if err != nil {
		return nil, err
	}
	if balance.Sign() == 0 {
		return nil, reverts.InsufficientResource("No commission to claim")
	}
	d.claimable.Clear(operator)
	if err := d.reserve.Sub(balance); err != nil {
		return nil, err
	}
	return balance, nil
}
