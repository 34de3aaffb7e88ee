// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package exchange

import (
	"math/big"
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/stretchr/testify/assert"
)

func TestEmptyPoolRate(t *testing.T) {
	shares, err := SharesForPrincipal(big.NewInt(1000), big.NewInt(0), big.NewInt(0))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), shares)

	principal, err := PrincipalForShares(big.NewInt(1000), big.NewInt(0), big.NewInt(0))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), principal)
}

func TestConversion(t *testing.T) {
	// pool worth 3000 backed by 1000 shares, rate 3:1
	totalShares := big.NewInt(1000)
	totalPooled := big.NewInt(3000)

	shares, err := SharesForPrincipal(big.NewInt(300), totalShares, totalPooled)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), shares)

	principal, err := PrincipalForShares(big.NewInt(100), totalShares, totalPooled)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(300), principal)
}

func TestTruncation(t *testing.T) {
	totalShares := big.NewInt(3)
	totalPooled := big.NewInt(10)

	// 1 principal buys 3/10 shares, truncated to 0
	shares, err := SharesForPrincipal(big.NewInt(1), totalShares, totalPooled)
	assert.NoError(t, err)
	assert.Zero(t, shares.Sign())

	// 1 share redeems 10/3 principal, truncated to 3
	principal, err := PrincipalForShares(big.NewInt(1), totalShares, totalPooled)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(3), principal)
}

func TestRoundTripNeverGains(t *testing.T) {
	totalShares := big.NewInt(7777)
	totalPooled := big.NewInt(123457)

	for _, amount := range []int64{1, 9, 100, 12345, 99999} {
		in := big.NewInt(amount)
		shares, err := SharesForPrincipal(in, totalShares, totalPooled)
		assert.NoError(t, err)
		out, err := PrincipalForShares(shares, totalShares, totalPooled)
		assert.NoError(t, err)
		assert.True(t, out.Cmp(in) <= 0, "round trip of %v produced %v", in, out)
	}
}

func TestOverflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 255)

	_, err := SharesForPrincipal(huge, huge, big.NewInt(1))
	assert.True(t, reverts.IsRevert(err))
	assert.Equal(t, reverts.ClassArithmetic, reverts.ClassOf(err))

	tooWide := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = PrincipalForShares(tooWide, big.NewInt(1), big.NewInt(1))
	assert.True(t, reverts.IsRevert(err))
}

func TestEmptyPoolWithShares(t *testing.T) {
	_, err := SharesForPrincipal(big.NewInt(1), big.NewInt(100), big.NewInt(0))
	assert.True(t, reverts.IsRevert(err))
}

func TestRate(t *testing.T) {
	rate, err := Rate(big.NewInt(0), big.NewInt(0))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1e18), rate)

	rate, err = Rate(big.NewInt(1000), big.NewInt(1100))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(11e17), rate)
}
