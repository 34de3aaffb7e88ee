// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/revenue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitOf(accrual, commission, fee uint64) revenue.Split {
	return revenue.Split{
		ShareAccrualPercent:       accrual,
		OperatorCommissionPercent: commission,
		TreasuryFeePercent:        fee,
	}
}

// checkConservation asserts the sum of the given accounts' share
// balances equals total supply.
func checkConservation(t *testing.T, f *fixture, holders ...xdc.Address) {
	t.Helper()
	sum := new(big.Int)
	for _, holder := range holders {
		balance, err := f.BalanceOf(holder)
		require.NoError(t, err)
		sum.Add(sum, balance)
	}
	status, err := f.Status()
	require.NoError(t, err)
	assert.Equal(t, status.TotalShares, sum, "share balances must sum to total supply")
}

func TestTwoStakersKeepProportions(t *testing.T) {
	f := newFixture(t)

	minted1, err := f.Stake(user1, amt(100))
	require.NoError(t, err)
	assert.Equal(t, amt(100), minted1)

	minted2, err := f.Stake(user2, amt(50))
	require.NoError(t, err)
	assert.Equal(t, amt(50), minted2)

	status, _ := f.Status()
	assert.Equal(t, amt(150), status.TotalPooled)
	assert.Equal(t, amt(150), status.TotalShares)

	// first staker's balance unchanged by the second deposit
	balance1, _ := f.BalanceOf(user1)
	assert.Equal(t, amt(100), balance1)

	checkConservation(t, f, user1, user2, poolAddr)
}

func TestValidatorCycleWithRewards(t *testing.T) {
	f := newFixture(t)
	_, err := f.Stake(user1, amt(100))
	require.NoError(t, err)
	_, err = f.Stake(user2, amt(50))
	require.NoError(t, err)

	// capital out: buffer drops, totalPooled holds
	require.NoError(t, f.WithdrawForValidator(admin, amt(100)))
	status, _ := f.Status()
	assert.Equal(t, amt(50), status.InstantExitBuffer)
	assert.Equal(t, amt(150), status.TotalPooled)

	// capital back: buffer restored, no rate change
	require.NoError(t, f.ReturnPrincipal(admin, amt(100)))
	status, _ = f.Status()
	assert.Equal(t, amt(150), status.InstantExitBuffer)
	assert.Equal(t, big.NewInt(1e18), status.Rate)

	// rewards land: 90% of 10 accrues, rate rises to 159/150
	require.NoError(t, f.DepositRewards(admin, amt(10)))
	status, _ = f.Status()
	assert.Equal(t, amt(159), status.TotalPooled)
	assert.Equal(t, amt(150), status.TotalShares)
	expectedRate := new(big.Int).Div(new(big.Int).Mul(amt(159), big.NewInt(1e18)), amt(150))
	assert.Equal(t, expectedRate, status.Rate)

	// an exit now captures the appreciated rate
	res, err := f.Withdraw(user2, amt(50))
	require.NoError(t, err)
	assert.True(t, res.Instant)
	assert.Equal(t, new(big.Int).Div(new(big.Int).Mul(amt(50), amt(159)), amt(150)), res.Principal)
}

func TestLaterStakerPaysAppreciatedRate(t *testing.T) {
	f := newFixture(t)
	_, err := f.Stake(user1, amt(100))
	require.NoError(t, err)
	require.NoError(t, f.DepositRewards(admin, amt(100)))

	// rate is now 1.9: 95 XDC buys 50 shares
	minted, err := f.Stake(user2, amt(95))
	require.NoError(t, err)
	assert.Equal(t, amt(50), minted)

	checkConservation(t, f, user1, user2, poolAddr)
}

func TestOperatorLifecycleOrder(t *testing.T) {
	f := newFixture(t)
	operator2 := xdc.BytesToAddress([]byte("operator-2"))

	// whitelisting before registration/approval is rejected
	err := f.WhitelistCoinbase(operator1, coinbase1)
	assert.True(t, reverts.IsRevert(err))

	require.NoError(t, f.RegisterOperator(admin, operator1, 2))
	err = f.WhitelistCoinbase(operator1, coinbase1)
	assert.Equal(t, reverts.ClassAccessControl, reverts.ClassOf(err))

	require.NoError(t, f.ApproveOperatorKYC(admin, operator1, xdc.Blake2b([]byte("docs"))))
	require.NoError(t, f.WhitelistCoinbase(operator1, coinbase1))

	// the same coinbase cannot serve a second operator
	require.NoError(t, f.RegisterOperator(admin, operator2, 1))
	require.NoError(t, f.ApproveOperatorKYC(admin, operator2, xdc.Blake2b([]byte("docs2"))))
	err = f.WhitelistCoinbase(operator2, coinbase1)
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(err))

	owner, _ := f.OperatorOf(coinbase1)
	assert.Equal(t, operator1, owner)

	list, _ := f.Operators()
	assert.Equal(t, []xdc.Address{operator1, operator2}, list)
}

func TestGovernanceTimelock(t *testing.T) {
	f := newFixture(t)
	newTreasury := xdc.BytesToAddress([]byte("treasury-2"))

	id, err := f.ProposeSetTreasury(admin, newTreasury)
	require.NoError(t, err)

	// execution before the delay is rejected
	err = f.ExecuteProposal(admin, id)
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(err))

	f.now += 48*3600 + 1
	require.NoError(t, f.ExecuteProposal(admin, id))

	view, _ := f.Params()
	assert.Equal(t, newTreasury, view.Treasury)

	// consumed actions stay consumed
	err = f.ExecuteProposal(admin, id)
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(err))

	// zero treasury rejected at propose time
	_, err = f.ProposeSetTreasury(admin, xdc.Address{})
	assert.True(t, reverts.IsRevert(err))
}

func TestGovernanceSplitChange(t *testing.T) {
	f := newFixture(t)
	_, err := f.Stake(user1, amt(100))
	require.NoError(t, err)

	_, err = f.ProposeSetSplit(admin, splitOf(50, 30, 30))
	assert.True(t, reverts.IsRevert(err))

	id, err := f.ProposeSetSplit(admin, splitOf(80, 15, 5))
	require.NoError(t, err)
	f.now += 48*3600 + 1
	require.NoError(t, f.ExecuteProposal(admin, id))

	treasuryBefore := f.balance(t, treasury)
	require.NoError(t, f.DepositRewards(admin, amt(100)))

	// new split: 80 accrues, 15 commission (no operators, to
	// treasury), 5 treasury
	status, _ := f.Status()
	assert.Equal(t, amt(180), status.TotalPooled)
	assert.Equal(t, new(big.Int).Add(treasuryBefore, amt(20)), f.balance(t, treasury))
}

func TestRoundTripNeverProfits(t *testing.T) {
	f := newFixture(t)
	_, err := f.Stake(user1, amt(100))
	require.NoError(t, err)
	require.NoError(t, f.DepositRewards(admin, amt(7)))

	before := f.balance(t, user1)
	minted, err := f.Stake(user1, amt(10))
	require.NoError(t, err)
	res, err := f.Withdraw(user1, minted)
	require.NoError(t, err)
	after := f.balance(t, user1)

	// a stake/withdraw cycle can only lose dust to the pool
	assert.True(t, after.Cmp(before) <= 0)
	assert.True(t, res.Principal.Cmp(amt(10)) <= 0)
}
