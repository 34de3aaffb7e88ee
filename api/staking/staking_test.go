// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	poolAddr = xdc.BytesToAddress([]byte("staking-pool"))
	admin    = xdc.BytesToAddress([]byte("admin"))
	treasury = xdc.BytesToAddress([]byte("treasury"))
	user1    = xdc.BytesToAddress([]byte("user-1"))
)

func amt(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type testServer struct {
	*httptest.Server
	pool *pool.Pool
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := state.New(kv.NewMemLevelDB())
	for _, addr := range []xdc.Address{admin, user1} {
		require.NoError(t, st.SetBalance(addr, amt(1_000_000)))
	}
	require.NoError(t, st.Commit())

	rt := runtime.New(st, poolAddr)
	p := pool.New(rt, poolAddr)
	require.NoError(t, p.Init(admin, treasury))

	router := mux.NewRouter()
	New(p).Mount(router, "/staking")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, pool: p}
}

func (ts *testServer) get(t *testing.T, path string, out any) int {
	t.Helper()
	res, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func (ts *testServer) post(t *testing.T, path string, body, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var status pool.Status
	code := ts.get(t, "/staking/status", &status)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, status.TotalPooled.Sign())
	assert.False(t, status.Paused)

	var params pool.ParamsView
	code = ts.get(t, "/staking/params", &params)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, admin, params.Admin)
	assert.Equal(t, uint64(80), params.MaxWithdrawablePercent)
}

func TestStakeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var out struct {
		Shares *Amount `json:"shares"`
	}
	code := ts.post(t, "/staking/stake", map[string]any{
		"caller": user1.String(),
		"value":  amt(100).String(),
	}, &out)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, amt(100), bigOf(out.Shares))

	var bal struct {
		Balance *Amount `json:"balance"`
	}
	code = ts.get(t, "/staking/accounts/"+user1.String()+"/balance", &bal)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, amt(100), bigOf(bal.Balance))
}

func TestStakeBelowMinimumMapsToBadRequest(t *testing.T) {
	ts := newTestServer(t)

	code := ts.post(t, "/staking/stake", map[string]any{
		"caller": user1.String(),
		"value":  "1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAccessControlMapsToForbidden(t *testing.T) {
	ts := newTestServer(t)

	code := ts.post(t, "/staking/admin/pause", map[string]any{
		"caller": user1.String(),
	}, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code = ts.post(t, "/staking/admin/pause", map[string]any{
		"caller": admin.String(),
	}, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestWithdrawEndpoint(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusOK, ts.post(t, "/staking/stake", map[string]any{
		"caller": user1.String(),
		"value":  amt(100).String(),
	}, nil))

	var out WithdrawResult
	code := ts.post(t, "/staking/withdraw", map[string]any{
		"caller": user1.String(),
		"shares": amt(40).String(),
	}, &out)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, out.Instant)
	assert.Equal(t, amt(40), bigOf(out.Principal))
}

func TestRequestLifecycleEndpoints(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusOK, ts.post(t, "/staking/stake", map[string]any{
		"caller": user1.String(),
		"value":  amt(100).String(),
	}, nil))

	var created struct {
		ID uint64 `json:"id"`
	}
	code := ts.post(t, "/staking/requests", map[string]any{
		"caller": user1.String(),
		"shares": amt(10).String(),
	}, &created)
	require.Equal(t, http.StatusOK, code)
	require.NotZero(t, created.ID)

	var pending []uint64
	code = ts.get(t, "/staking/requests/pending", &pending)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []uint64{created.ID}, pending)

	var req Request
	code = ts.get(t, fmt.Sprintf("/staking/requests/%d", created.ID), &req)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, user1, req.User)
	assert.False(t, req.Processed)

	code = ts.post(t, fmt.Sprintf("/staking/requests/%d/approve", created.ID), map[string]any{
		"caller": admin.String(),
	}, nil)
	require.Equal(t, http.StatusOK, code)

	// second approval conflicts with the terminal state
	code = ts.post(t, fmt.Sprintf("/staking/requests/%d/approve", created.ID), map[string]any{
		"caller": admin.String(),
	}, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestUnknownRequestIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	code := ts.get(t, "/staking/requests/12345", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = ts.get(t, "/staking/requests/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOperatorEndpoints(t *testing.T) {
	ts := newTestServer(t)
	operator := xdc.BytesToAddress([]byte("operator-1"))

	code := ts.post(t, "/staking/operators", map[string]any{
		"caller":         admin.String(),
		"operator":       operator.String(),
		"maxMasternodes": 2,
	}, nil)
	require.Equal(t, http.StatusOK, code)

	var list []xdc.Address
	code = ts.get(t, "/staking/operators", &list)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []xdc.Address{operator}, list)

	var record Operator
	code = ts.get(t, "/staking/operators/"+operator.String(), &record)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, record.Listed)
	assert.Equal(t, uint64(2), record.MaxMasternodes)
	assert.False(t, record.KYCApproved)
}

func TestGovernanceEndpoints(t *testing.T) {
	ts := newTestServer(t)
	newTreasury := xdc.BytesToAddress([]byte("new-treasury"))

	var created struct {
		ID uint64 `json:"id"`
	}
	code := ts.post(t, "/staking/governance/treasury", map[string]any{
		"caller":   admin.String(),
		"treasury": newTreasury.String(),
	}, &created)
	require.Equal(t, http.StatusOK, code)
	require.NotZero(t, created.ID)

	var action Action
	code = ts.get(t, fmt.Sprintf("/staking/governance/actions/%d", created.ID), &action)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "set-treasury", action.Kind)
	assert.False(t, action.Executed)

	// still timelocked
	code = ts.post(t, fmt.Sprintf("/staking/governance/actions/%d/execute", created.ID), map[string]any{
		"caller": admin.String(),
	}, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestStrictBodyParsing(t *testing.T) {
	ts := newTestServer(t)

	res, err := ts.Client().Post(ts.URL+"/staking/stake", "application/json",
		io.NopCloser(bytes.NewBufferString(`{"caller":"`+user1.String()+`","bogus":1}`)))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
