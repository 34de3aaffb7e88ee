// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GalaxySciTech/bbb-liquiditystaking/kv"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	addr = xdc.BytesToAddress([]byte("addr"))
	slot = xdc.BytesToBytes32([]byte("slot"))
)

func TestBalance(t *testing.T) {
	st := state.New(kv.NewMemLevelDB())

	bal, err := st.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), bal)

	assert.NoError(t, st.SetBalance(addr, big.NewInt(100)))
	bal, err = st.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(100), bal)

	assert.Error(t, st.SetBalance(addr, big.NewInt(-1)))
}

func TestStorage(t *testing.T) {
	st := state.New(kv.NewMemLevelDB())

	raw, err := st.GetStorage(addr, slot)
	assert.NoError(t, err)
	assert.Nil(t, raw)

	st.SetStorage(addr, slot, []byte("value"))
	raw, err = st.GetStorage(addr, slot)
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), raw)

	word := xdc.BytesToBytes32([]byte("word"))
	st.SetStorageWord(addr, slot, word)
	got, err := st.GetStorageWord(addr, slot)
	assert.NoError(t, err)
	assert.Equal(t, word, got)
}

func TestCheckpointRevert(t *testing.T) {
	st := state.New(kv.NewMemLevelDB())

	assert.NoError(t, st.SetBalance(addr, big.NewInt(1)))

	rev := st.NewCheckpoint()
	assert.NoError(t, st.SetBalance(addr, big.NewInt(2)))
	st.SetStorage(addr, slot, []byte("x"))
	st.RevertTo(rev)

	bal, err := st.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1), bal)

	raw, err := st.GetStorage(addr, slot)
	assert.NoError(t, err)
	assert.Nil(t, raw)
}

func TestCommitDurable(t *testing.T) {
	db := kv.NewMemLevelDB()
	st := state.New(db)

	assert.NoError(t, st.SetBalance(addr, big.NewInt(42)))
	st.SetStorage(addr, slot, []byte("v"))
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees committed values
	st2 := state.New(db)
	bal, err := st2.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(42), bal)

	raw, err := st2.GetStorage(addr, slot)
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), raw)
}

func TestCommitAbsorbsCheckpoint(t *testing.T) {
	db := kv.NewMemLevelDB()
	st := state.New(db)
	addr := xdc.BytesToAddress([]byte("acc"))

	st.NewCheckpoint()
	assert.NoError(t, st.SetBalance(addr, big.NewInt(42)))
	assert.NoError(t, st.Commit())

	reopened := state.New(db)
	balance, err := reopened.GetBalance(addr)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(42), balance)
}
