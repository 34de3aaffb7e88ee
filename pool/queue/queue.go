// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package queue owns the withdrawal records: the legacy two-step
// request queue and the transferable claim-ticket batches. Ids start
// at 1; zero means absent.
package queue

import (
	"math/big"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	slotRequests     = xdc.Blake2b([]byte("queue.requests"))
	slotRequestCount = xdc.Blake2b([]byte("queue.request-counter"))
	slotPendingHead  = xdc.Blake2b([]byte("queue.pending-head"))
	slotPendingTail  = xdc.Blake2b([]byte("queue.pending-tail"))
	slotPendingCount = xdc.Blake2b([]byte("queue.pending-count"))
	slotBatches      = xdc.Blake2b([]byte("queue.batches"))
	slotBatchCount   = xdc.Blake2b([]byte("queue.batch-counter"))
	slotHoldings     = xdc.Blake2b([]byte("queue.holdings"))
)

// Request is a stored two-step withdrawal request. Shares are held in
// escrow by the pool while the request is pending. Processed is
// terminal.
type Request struct {
	ID              uint64
	User            xdc.Address
	ShareAmount     *big.Int
	PrincipalAmount *big.Int
	RequestTime     uint64
	Processed       bool
	Approved        bool
}

// Batch is a claim ticket for a future payout. Immutable once created
// except for Redeemed, set exactly once.
type Batch struct {
	BatchID         uint64
	PrincipalAmount *big.Int
	Redeemed        bool
}

type holdingKey struct {
	holder  xdc.Address
	batchID sslot.U64
}

func (k holdingKey) Bytes() []byte {
	return append(k.holder.Bytes(), k.batchID.Bytes()...)
}

// Queue is the withdrawal record store bound to the pool's storage.
type Queue struct {
	requests     *sslot.Mapping[sslot.U64, *Request]
	requestCount *sslot.Counter
	pending      *sslot.IDList
	batches      *sslot.Mapping[sslot.U64, *Batch]
	batchCount   *sslot.Counter
	holdings     *sslot.Mapping[holdingKey, *big.Int]
}

// New binds a Queue to the given storage context.
func New(ctx *sslot.Context) *Queue {
	return &Queue{
		requests:     sslot.NewMapping[sslot.U64, *Request](ctx, slotRequests),
		requestCount: sslot.NewCounter(ctx, slotRequestCount),
		pending:      sslot.NewIDList(ctx, slotPendingHead, slotPendingTail, slotPendingCount),
		batches:      sslot.NewMapping[sslot.U64, *Batch](ctx, slotBatches),
		batchCount:   sslot.NewCounter(ctx, slotBatchCount),
		holdings:     sslot.NewMapping[holdingKey, *big.Int](ctx, slotHoldings),
	}
}

// CreateRequest records a new pending withdrawal request and returns
// its id.
func (q *Queue) CreateRequest(user xdc.Address, shareAmount, principalAmount *big.Int, requestTime uint64) (uint64, error) {
	id, err := q.requestCount.Next()
	if err != nil {
		return 0, err
	}
	req := &Request{
		ID:              id,
		User:            user,
		ShareAmount:     shareAmount,
		PrincipalAmount: principalAmount,
		RequestTime:     requestTime,
	}
	if err := q.requests.Set(sslot.U64(id), req); err != nil {
		return 0, err
	}
	return id, q.pending.Add(id)
}

// GetRequest returns the request with the given id.
func (q *Queue) GetRequest(id uint64) (*Request, error) {
	req, err := q.requests.Get(sslot.U64(id))
	if err != nil {
		return nil, err
	}
	if req.ID == 0 {
		return nil, reverts.Validation("Request not found")
	}
	return req, nil
}

// Resolve marks a pending request processed, approved or not, and
// removes it from the pending list. A processed request cannot be
// resolved again.
func (q *Queue) Resolve(id uint64, approved bool) (*Request, error) {
	req, err := q.GetRequest(id)
	if err != nil {
		return nil, err
	}
	if req.Processed {
		return nil, reverts.StateConflict("Request already processed")
	}
	req.Processed = true
	req.Approved = approved
	if err := q.requests.Set(sslot.U64(id), req); err != nil {
		return nil, err
	}
	return req, q.pending.Remove(id)
}

// PendingIDs returns the ids of all unresolved requests in request
// order.
func (q *Queue) PendingIDs() ([]uint64, error) {
	return q.pending.All()
}

// PendingCount returns the number of unresolved requests.
func (q *Queue) PendingCount() (uint64, error) {
	return q.pending.Len()
}

// CreateBatch mints a claim ticket for holder over principalAmount
// and returns its id.
func (q *Queue) CreateBatch(holder xdc.Address, principalAmount *big.Int) (uint64, error) {
	if principalAmount.Sign() <= 0 {
		return 0, reverts.Validation("Claim amount must be positive")
	}
	id, err := q.batchCount.Next()
	if err != nil {
		return 0, err
	}
	if err := q.batches.Set(sslot.U64(id), &Batch{BatchID: id, PrincipalAmount: principalAmount}); err != nil {
		return 0, err
	}
	return id, q.holdings.Set(holdingKey{holder, sslot.U64(id)}, principalAmount)
}

// GetBatch returns the batch with the given id.
func (q *Queue) GetBatch(id uint64) (*Batch, error) {
	batch, err := q.batches.Get(sslot.U64(id))
	if err != nil {
		return nil, err
	}
	if batch.BatchID == 0 {
		return nil, reverts.Validation("Batch not found")
	}
	return batch, nil
}

// Holding returns how much of a batch's principal holder owns.
func (q *Queue) Holding(holder xdc.Address, batchID uint64) (*big.Int, error) {
	return q.holdings.Get(holdingKey{holder, sslot.U64(batchID)})
}

// TransferClaim moves part or all of from's entitlement in a batch to
// to. Only unredeemed claims move.
func (q *Queue) TransferClaim(from, to xdc.Address, batchID uint64, amount *big.Int) error {
	if to.IsZero() {
		return reverts.Validation("Transfer to zero address")
	}
	if amount.Sign() <= 0 {
		return reverts.Validation("Claim amount must be positive")
	}
	batch, err := q.GetBatch(batchID)
	if err != nil {
		return err
	}
	if batch.Redeemed {
		return reverts.StateConflict("Batch already redeemed")
	}
	fromKey := holdingKey{from, sslot.U64(batchID)}
	held, err := q.holdings.Get(fromKey)
	if err != nil {
		return err
	}
	if held.Cmp(amount) < 0 {
		return reverts.InsufficientResource("Insufficient claim balance")
	}
	if from == to {
		return nil
	}
	held.Sub(held, amount)
	if held.Sign() == 0 {
		q.holdings.Clear(fromKey)
	} else if err := q.holdings.Set(fromKey, held); err != nil {
		return err
	}
	toKey := holdingKey{to, sslot.U64(batchID)}
	toHeld, err := q.holdings.Get(toKey)
	if err != nil {
		return err
	}
	return q.holdings.Set(toKey, toHeld.Add(toHeld, amount))
}

// TakeHolding zeroes and returns holder's entitlement in a batch;
// the caller pays it out.
func (q *Queue) TakeHolding(holder xdc.Address, batchID uint64) (*big.Int, error) {
	key := holdingKey{holder, sslot.U64(batchID)}
	held, err := q.holdings.Get(key)
	if err != nil {
		return nil, err
	}
	if held.Sign() == 0 {
		return nil, reverts.InsufficientResource("No claim to redeem")
	}
	q.holdings.Clear(key)
	return held, nil
}

// MarkRedeemed flips the terminal redeemed flag of a batch.
func (q *Queue) MarkRedeemed(id uint64) (*Batch, error) {
	batch, err := q.GetBatch(id)
	if err != nil {
		return nil, err
	}
	if batch.Redeemed {
		return nil, reverts.StateConflict("Batch already redeemed")
	}
	batch.Redeemed = true
	return batch, q.batches.Set(sslot.U64(id), batch)
}
