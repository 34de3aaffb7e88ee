// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/stretchr/testify/assert"
)

func newParams(t *testing.T) *Params {
	t.Helper()
	ctx := sslot.NewContext(xdc.BytesToAddress([]byte("pool")), state.New(kv.NewMemLevelDB()))
	return New(ctx)
}

func TestInitDefaults(t *testing.T) {
	p := newParams(t)
	admin := xdc.BytesToAddress([]byte("admin"))
	assert.NoError(t, p.Init(admin))

	got, _ := p.Admin()
	assert.Equal(t, admin, got)
	minStake, _ := p.MinStake()
	assert.Equal(t, xdc.DefaultMinStakeAmount, minStake)
	minWithdraw, _ := p.MinWithdraw()
	assert.Equal(t, xdc.DefaultMinWithdrawAmount, minWithdraw)
	maxPercent, _ := p.MaxWithdrawablePercent()
	assert.Equal(t, uint64(xdc.DefaultMaxWithdrawablePercent), maxPercent)
	paused, _ := p.Paused()
	assert.False(t, paused)

	assert.True(t, reverts.IsRevert(p.Init(xdc.Address{})))
}

func TestSetters(t *testing.T) {
	p := newParams(t)
	assert.NoError(t, p.Init(xdc.BytesToAddress([]byte("admin"))))

	assert.NoError(t, p.SetMinStake(big.NewInt(5e18)))
	minStake, _ := p.MinStake()
	assert.Equal(t, big.NewInt(5e18), minStake)
	assert.True(t, reverts.IsRevert(p.SetMinStake(big.NewInt(0))))

	assert.NoError(t, p.SetMaxWithdrawablePercent(50))
	maxPercent, _ := p.MaxWithdrawablePercent()
	assert.Equal(t, uint64(50), maxPercent)
	assert.True(t, reverts.IsRevert(p.SetMaxWithdrawablePercent(101)))

	p.SetPaused(true)
	paused, _ := p.Paused()
	assert.True(t, paused)
}

func TestProviderKYC(t *testing.T) {
	p := newParams(t)

	submitted, _ := p.KYCSubmitted()
	assert.False(t, submitted)

	hash := xdc.Blake2b([]byte("kyc document"))
	assert.NoError(t, p.SubmitKYC(hash))
	submitted, _ = p.KYCSubmitted()
	assert.True(t, submitted)
	got, _ := p.KYCHash()
	assert.Equal(t, hash, got)

	assert.True(t, reverts.IsRevert(p.SubmitKYC(xdc.Bytes32{})))
}
