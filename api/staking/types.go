// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/operators"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/queue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/timelock"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// Amount is a big integer accepted in decimal or 0x-hex form.
type Amount = math.HexOrDecimal256

func bigOf(a *Amount) *big.Int {
	if a == nil {
		return new(big.Int)
	}
	return (*big.Int)(a)
}

func amountOf(v *big.Int) *Amount {
	if v == nil {
		return nil
	}
	return (*Amount)(new(big.Int).Set(v))
}

type Request struct {
	ID              uint64      `json:"id"`
	User            xdc.Address `json:"user"`
	ShareAmount     *Amount     `json:"shareAmount"`
	PrincipalAmount *Amount     `json:"principalAmount"`
	RequestTime     uint64      `json:"requestTime"`
	Processed       bool        `json:"processed"`
	Approved        bool        `json:"approved"`
}

func convertRequest(r *queue.Request) *Request {
	return &Request{
		ID:              r.ID,
		User:            r.User,
		ShareAmount:     amountOf(r.ShareAmount),
		PrincipalAmount: amountOf(r.PrincipalAmount),
		RequestTime:     r.RequestTime,
		Processed:       r.Processed,
		Approved:        r.Approved,
	}
}

type Batch struct {
	BatchID         uint64  `json:"batchId"`
	PrincipalAmount *Amount `json:"principalAmount"`
	Redeemed        bool    `json:"redeemed"`
}

func convertBatch(b *queue.Batch) *Batch {
	return &Batch{
		BatchID:         b.BatchID,
		PrincipalAmount: amountOf(b.PrincipalAmount),
		Redeemed:        b.Redeemed,
	}
}

type Operator struct {
	Listed            bool        `json:"listed"`
	MaxMasternodes    uint64      `json:"maxMasternodes"`
	ActiveMasternodes uint64      `json:"activeMasternodes"`
	KYCApproved       bool        `json:"kycApproved"`
	KYCHash           xdc.Bytes32 `json:"kycHash"`
}

func convertOperator(o *operators.Operator) *Operator {
	return &Operator{
		Listed:            o.Listed,
		MaxMasternodes:    o.MaxMasternodes,
		ActiveMasternodes: o.ActiveMasternodes,
		KYCApproved:       o.KYCApproved,
		KYCHash:           o.KYCHash,
	}
}

type Action struct {
	ID         uint64 `json:"id"`
	Kind       string `json:"kind"`
	UnlockTime uint64 `json:"unlockTime"`
	Executed   bool   `json:"executed"`
}

func convertAction(a *timelock.Action) *Action {
	return &Action{
		ID:         a.ID,
		Kind:       a.Kind,
		UnlockTime: a.UnlockTime,
		Executed:   a.Executed,
	}
}

type WithdrawResult struct {
	Principal *Amount `json:"principal"`
	Instant   bool    `json:"instant"`
	BatchID   uint64  `json:"batchId,omitempty"`
}

func convertWithdrawResult(r *pool.WithdrawResult) *WithdrawResult {
	return &WithdrawResult{
		Principal: amountOf(r.Principal),
		Instant:   r.Instant,
		BatchID:   r.BatchID,
	}
}
