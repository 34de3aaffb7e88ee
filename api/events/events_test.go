// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/logdb"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	poolAddr = xdc.BytesToAddress([]byte("staking-pool"))
	admin    = xdc.BytesToAddress([]byte("admin"))
	user1    = xdc.BytesToAddress([]byte("user-1"))
)

func amt(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newTestServer(t *testing.T, limit uint64) *httptest.Server {
	t.Helper()
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	st := state.New(kv.NewMemLevelDB())
	for _, addr := range []xdc.Address{admin, user1} {
		require.NoError(t, st.SetBalance(addr, amt(1_000_000)))
	}
	require.NoError(t, st.Commit())

	rt := runtime.New(st, poolAddr, runtime.WithSink(db))
	p := pool.New(rt, poolAddr)
	require.NoError(t, p.Init(admin, xdc.BytesToAddress([]byte("treasury"))))

	_, err = p.Stake(user1, amt(100))
	require.NoError(t, err)
	_, err = p.Stake(user1, amt(50))
	require.NoError(t, err)

	router := mux.NewRouter()
	New(db, limit).Mount(router, "/logs/event")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func filterEvents(t *testing.T, srv *httptest.Server, filter any) ([]*FilteredEvent, int) {
	t.Helper()
	data, err := json.Marshal(filter)
	require.NoError(t, err)
	res, err := srv.Client().Post(srv.URL+"/logs/event", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, res.StatusCode
	}
	var out []*FilteredEvent
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out, res.StatusCode
}

func TestFilterByName(t *testing.T) {
	srv := newTestServer(t, 100)

	found, code := filterEvents(t, srv, EventFilter{Names: []string{"Staked"}})
	require.Equal(t, http.StatusOK, code)
	require.Len(t, found, 2)
	for _, ev := range found {
		assert.Equal(t, "Staked", ev.Name)
		assert.Equal(t, user1, ev.Origin)
		assert.NotEmpty(t, ev.Attrs)
	}
}

func TestFilterAll(t *testing.T) {
	srv := newTestServer(t, 100)

	found, code := filterEvents(t, srv, EventFilter{})
	require.Equal(t, http.StatusOK, code)
	// init plus two stakes
	require.NotEmpty(t, found)

	desc, code := filterEvents(t, srv, EventFilter{Desc: true})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, found[0].Seq, desc[len(desc)-1].Seq)
}

func TestFilterLimitEnforced(t *testing.T) {
	srv := newTestServer(t, 1)

	_, code := filterEvents(t, srv, EventFilter{Options: &Options{Limit: 5}})
	assert.Equal(t, http.StatusForbidden, code)

	// default options run into the truncation guard
	_, code = filterEvents(t, srv, EventFilter{})
	assert.Equal(t, http.StatusForbidden, code)

	found, code := filterEvents(t, srv, EventFilter{Options: &Options{Limit: 1}})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, found, 1)
}

func TestFilterRange(t *testing.T) {
	srv := newTestServer(t, 100)

	all, code := filterEvents(t, srv, EventFilter{})
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, all)
	last := all[len(all)-1].Seq

	found, code := filterEvents(t, srv, EventFilter{Range: &Range{From: last}})
	require.Equal(t, http.StatusOK, code)
	for _, ev := range found {
		assert.Equal(t, last, ev.Seq)
	}

	_, code = filterEvents(t, srv, EventFilter{Range: &Range{From: 5, To: 1}})
	assert.Equal(t, http.StatusBadRequest, code)
}
