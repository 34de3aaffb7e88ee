// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params stores the governed parameters of the pool.
package params

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	slotAdmin        = xdc.Blake2b([]byte("params.admin"))
	slotMinStake     = xdc.Blake2b([]byte("params.min-stake"))
	slotMinWithdraw  = xdc.Blake2b([]byte("params.min-withdraw"))
	slotMaxWithdraw  = xdc.Blake2b([]byte("params.max-withdrawable-percent"))
	slotPaused       = xdc.Blake2b([]byte("params.paused"))
	slotKYCSubmitted = xdc.Blake2b([]byte("params.lsp-kyc-submitted"))
	slotKYCHash      = xdc.Blake2b([]byte("params.lsp-kyc-hash"))
)

// Params is the governed parameter store bound to the pool's storage.
type Params struct {
	ctx          *sslot.Context
	admin        *sslot.Address
	minStake     *sslot.Uint256
	minWithdraw  *sslot.Uint256
	maxWithdraw  *sslot.Uint256
	paused       *sslot.Bool
	kycSubmitted *sslot.Bool
}

// New binds a Params accessor to the given storage context.
func New(ctx *sslot.Context) *Params {
	return &Params{
		ctx:          ctx,
		admin:        sslot.NewAddress(ctx, slotAdmin),
		minStake:     sslot.NewUint256(ctx, slotMinStake),
		minWithdraw:  sslot.NewUint256(ctx, slotMinWithdraw),
		maxWithdraw:  sslot.NewUint256(ctx, slotMaxWithdraw),
		paused:       sslot.NewBool(ctx, slotPaused),
		kycSubmitted: sslot.NewBool(ctx, slotKYCSubmitted),
	}
}

// Init seeds the defaults. Called exactly once at genesis.
func (p *Params) Init(admin xdc.Address) error {
	if admin.IsZero() {
		return reverts.Validation("Admin is zero address")
	}
	p.admin.Set(admin)
	if err := p.minStake.Set(xdc.DefaultMinStakeAmount); err != nil {
		return err
	}
	if err := p.minWithdraw.Set(xdc.DefaultMinWithdrawAmount); err != nil {
		return err
	}
	return p.maxWithdraw.Set(big.NewInt(xdc.DefaultMaxWithdrawablePercent))
}

// Admin returns the pool administrator.
func (p *Params) Admin() (xdc.Address, error) {
	return p.admin.Get()
}

// SetAdmin hands administration to a new address.
func (p *Params) SetAdmin(admin xdc.Address) error {
	if admin.IsZero() {
		return reverts.Validation("Admin is zero address")
	}
	p.admin.Set(admin)
	return nil
}

// MinStake returns the smallest accepted deposit.
func (p *Params) MinStake() (*big.Int, error) {
	return p.minStake.Get()
}

// SetMinStake updates the smallest accepted deposit.
func (p *Params) SetMinStake(v *big.Int) error {
	if v.Sign() <= 0 {
		return reverts.Validation("Minimum stake must be positive")
	}
	return p.minStake.Set(v)
}

// MinWithdraw returns the smallest accepted withdrawal.
func (p *Params) MinWithdraw() (*big.Int, error) {
	return p.minWithdraw.Get()
}

// SetMinWithdraw updates the smallest accepted withdrawal.
func (p *Params) SetMinWithdraw(v *big.Int) error {
	if v.Sign() <= 0 {
		return reverts.Validation("Minimum withdrawal must be positive")
	}
	return p.minWithdraw.Set(v)
}

// MaxWithdrawablePercent returns the cap, in percent of totalPooled,
// on capital deployed to validators.
func (p *Params) MaxWithdrawablePercent() (uint64, error) {
	v, err := p.maxWithdraw.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// SetMaxWithdrawablePercent updates the validator capital cap.
func (p *Params) SetMaxWithdrawablePercent(percent uint64) error {
	if percent > xdc.PercentDivisor {
		return reverts.Validation("Percentage exceeds 100")
	}
	return p.maxWithdraw.Set(new(big.Int).SetUint64(percent))
}

// Paused reports whether user-facing operations are suspended.
func (p *Params) Paused() (bool, error) {
	return p.paused.Get()
}

// SetPaused suspends or resumes user-facing operations.
func (p *Params) SetPaused(v bool) {
	p.paused.Set(v)
}

// SubmitKYC records the liquid-staking provider's KYC document hash.
func (p *Params) SubmitKYC(hash xdc.Bytes32) error {
	if hash.IsZero() {
		return reverts.Validation("Empty KYC hash")
	}
	p.ctx.State().SetStorageWord(p.ctx.Address(), slotKYCHash, hash)
	p.kycSubmitted.Set(true)
	return nil
}

// KYCSubmitted reports whether the provider KYC hash is on record.
func (p *Params) KYCSubmitted() (bool, error) {
	return p.kycSubmitted.Get()
}

// KYCHash returns the recorded provider KYC hash.
func (p *Params) KYCHash() (xdc.Bytes32, error) {
	return p.ctx.State().GetStorageWord(p.ctx.Address(), slotKYCHash)
}
