// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"testing"

	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = xdc.BytesToAddress([]byte("alice"))
	bob   = xdc.BytesToAddress([]byte("bob"))
)

func event(seq uint64, opIndex int, origin xdc.Address, name string, attrs ...runtime.Attr) runtime.CommittedEvent {
	return runtime.CommittedEvent{
		Seq:     seq,
		OpIndex: opIndex,
		Time:    1000 + seq,
		Origin:  origin,
		Event:   runtime.Event{Name: name, Attrs: attrs},
	}
}

func newDB(t *testing.T) *LogDB {
	t.Helper()
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.WriteEvents([]runtime.CommittedEvent{
		event(1, 0, alice, "Staked", runtime.A("amount", "100")),
		event(2, 0, bob, "Staked", runtime.A("amount", "50")),
		event(3, 0, alice, "Withdrawn", runtime.A("amount", "30")),
		event(3, 1, alice, "Transfer"),
		event(4, 0, bob, "RewardsDeposited"),
	}))
	return db
}

func TestFilterAll(t *testing.T) {
	db := newDB(t)
	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 5)
	assert.Equal(t, "Staked", events[0].Name)
	assert.Equal(t, []runtime.Attr{runtime.A("amount", "100")}, events[0].Attrs)
}

func TestFilterByName(t *testing.T) {
	db := newDB(t)
	events, err := db.FilterEvents(context.Background(), &Filter{Names: []string{"Staked"}})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestFilterByOrigin(t *testing.T) {
	db := newDB(t)
	events, err := db.FilterEvents(context.Background(), &Filter{Origin: &alice})
	require.NoError(t, err)
	assert.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, alice, ev.Origin)
	}
}

func TestFilterRangeAndOrder(t *testing.T) {
	db := newDB(t)
	events, err := db.FilterEvents(context.Background(), &Filter{
		Range: &Range{From: 2, To: 3},
		Desc:  true,
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint64(3), events[0].Seq)
	assert.Equal(t, 1, events[0].OpIndex)

	events, err = db.FilterEvents(context.Background(), &Filter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(2), events[0].Seq)
}
