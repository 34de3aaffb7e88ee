// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package exchange converts between principal units and share units.
// Both directions truncate toward zero, so repeated convert cycles
// can only lose dust to the pool, never extract value from it.
package exchange

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/holiman/uint256"
)

// mulDiv computes a*b/denom with 256-bit overflow detection on the
// intermediate product.
func mulDiv(a, b, denom *big.Int) (*big.Int, error) {
	ua, overflow := uint256.FromBig(a)
	if overflow {
		return nil, reverts.Arithmetic("value exceeds 256 bits")
	}
	ub, overflow := uint256.FromBig(b)
	if overflow {
		return nil, reverts.Arithmetic("value exceeds 256 bits")
	}
	prod, overflow := new(uint256.Int).MulOverflow(ua, ub)
	if overflow {
		return nil, reverts.Arithmetic("conversion overflow")
	}
	ud, _ := uint256.FromBig(denom)
	return new(uint256.Int).Div(prod, ud).ToBig(), nil
}

// SharesForPrincipal converts a principal amount into shares at the
// current pool totals. When no shares exist the rate is 1:1.
func SharesForPrincipal(principal, totalShares, totalPooled *big.Int) (*big.Int, error) {
	if totalShares.Sign() == 0 {
		return new(big.Int).Set(principal), nil
	}
	if totalPooled.Sign() == 0 {
		// shares exist but the pool is empty; nothing can be bought
		return nil, reverts.Arithmetic("pool is empty")
	}
	return mulDiv(principal, totalShares, totalPooled)
}

// PrincipalForShares converts a share amount into principal at the
// current pool totals. When no shares exist the rate is 1:1.
func PrincipalForShares(shares, totalShares, totalPooled *big.Int) (*big.Int, error) {
	if totalShares.Sign() == 0 {
		return new(big.Int).Set(shares), nil
	}
	return mulDiv(shares, totalPooled, totalShares)
}

// Rate returns the principal value of 1e18 shares, the fixed-point
// exchange rate view.
func Rate(totalShares, totalPooled *big.Int) (*big.Int, error) {
	return PrincipalForShares(xdc.DecimalsUnit, totalShares, totalPooled)
}
