// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package queue

import (
	"math/big"
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = xdc.BytesToAddress([]byte("alice"))
	bob   = xdc.BytesToAddress([]byte("bob"))
)

func newQueue(t *testing.T) *Queue {
	t.Helper()
	ctx := sslot.NewContext(xdc.BytesToAddress([]byte("pool")), state.New(kv.NewMemLevelDB()))
	return New(ctx)
}

func TestRequestLifecycle(t *testing.T) {
	q := newQueue(t)

	id1, err := q.CreateRequest(alice, big.NewInt(100), big.NewInt(110), 1000)
	require.NoError(t, err)
	id2, err := q.CreateRequest(bob, big.NewInt(50), big.NewInt(55), 1001)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)

	pending, _ := q.PendingIDs()
	assert.Equal(t, []uint64{1, 2}, pending)

	req, err := q.GetRequest(id1)
	require.NoError(t, err)
	assert.Equal(t, alice, req.User)
	assert.Equal(t, big.NewInt(110), req.PrincipalAmount)
	assert.Equal(t, uint64(1000), req.RequestTime)
	assert.False(t, req.Processed)

	resolved, err := q.Resolve(id1, true)
	require.NoError(t, err)
	assert.True(t, resolved.Processed)
	assert.True(t, resolved.Approved)

	pending, _ = q.PendingIDs()
	assert.Equal(t, []uint64{2}, pending)

	// processed is terminal
	_, err = q.Resolve(id1, false)
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(err))

	resolved, err = q.Resolve(id2, false)
	require.NoError(t, err)
	assert.False(t, resolved.Approved)
	count, _ := q.PendingCount()
	assert.Equal(t, uint64(0), count)
}

func TestRequestNotFound(t *testing.T) {
	q := newQueue(t)
	_, err := q.GetRequest(7)
	assert.True(t, reverts.IsRevert(err))
	_, err = q.Resolve(7, true)
	assert.True(t, reverts.IsRevert(err))
}

func TestBatchLifecycle(t *testing.T) {
	q := newQueue(t)

	id, err := q.CreateBatch(alice, big.NewInt(5000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	batch, err := q.GetBatch(id)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5000), batch.PrincipalAmount)
	assert.False(t, batch.Redeemed)

	held, _ := q.Holding(alice, id)
	assert.Equal(t, big.NewInt(5000), held)

	redeemed, err := q.MarkRedeemed(id)
	require.NoError(t, err)
	assert.True(t, redeemed.Redeemed)

	// redeemed is set exactly once
	_, err = q.MarkRedeemed(id)
	assert.Equal(t, reverts.ClassStateConflict, reverts.ClassOf(err))

	_, err = q.CreateBatch(alice, big.NewInt(0))
	assert.True(t, reverts.IsRevert(err))
}

func TestTransferClaim(t *testing.T) {
	q := newQueue(t)
	id, err := q.CreateBatch(alice, big.NewInt(1000))
	require.NoError(t, err)

	assert.NoError(t, q.TransferClaim(alice, bob, id, big.NewInt(400)))
	aliceHeld, _ := q.Holding(alice, id)
	bobHeld, _ := q.Holding(bob, id)
	assert.Equal(t, big.NewInt(600), aliceHeld)
	assert.Equal(t, big.NewInt(400), bobHeld)

	assert.Equal(t, reverts.ClassInsufficientResource,
		reverts.ClassOf(q.TransferClaim(alice, bob, id, big.NewInt(601))))
	assert.True(t, reverts.IsRevert(q.TransferClaim(alice, xdc.Address{}, id, big.NewInt(1))))

	// moving the rest clears the holding record
	assert.NoError(t, q.TransferClaim(alice, bob, id, big.NewInt(600)))
	aliceHeld, _ = q.Holding(alice, id)
	assert.Equal(t, big.NewInt(0), aliceHeld)

	_, err = q.MarkRedeemed(id)
	require.NoError(t, err)
	assert.Equal(t, reverts.ClassStateConflict,
		reverts.ClassOf(q.TransferClaim(bob, alice, id, big.NewInt(1))))
}
