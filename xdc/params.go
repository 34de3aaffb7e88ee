// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xdc

import "math/big"

// Protocol-wide constants of the liquid staking engine.
const (
	// PercentDivisor is the denominator of all percentage parameters.
	PercentDivisor = 100

	// DefaultShareAccrualPercent, DefaultOperatorCommissionPercent and
	// DefaultTreasuryFeePercent form the initial revenue split.
	DefaultShareAccrualPercent       = 90
	DefaultOperatorCommissionPercent = 7
	DefaultTreasuryFeePercent        = 3

	// DefaultMaxWithdrawablePercent is the initial cap on pool capital
	// that may be deployed to validators.
	DefaultMaxWithdrawablePercent = 80
)

var (
	// DecimalsUnit is 10^18, the smallest-unit scale of one XDC.
	DecimalsUnit = big.NewInt(1e18)

	// DefaultMinStakeAmount is 1 XDC.
	DefaultMinStakeAmount = new(big.Int).Set(DecimalsUnit)

	// DefaultMinWithdrawAmount is 0.1 XDC.
	DefaultMinWithdrawAmount = big.NewInt(1e17)
)
