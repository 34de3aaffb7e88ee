// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelDB(t *testing.T) {
	db := NewMemLevelDB()
	defer db.Close()

	_, err := db.Get([]byte("missing"))
	assert.True(t, db.IsNotFound(err))

	assert.NoError(t, db.Put([]byte("k1"), []byte("v1")))
	v, err := db.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	has, err := db.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, db.Delete([]byte("k1")))
	has, err = db.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestBatch(t *testing.T) {
	db := NewMemLevelDB()
	defer db.Close()

	batch := db.NewBatch()
	assert.NoError(t, batch.Put([]byte("a"), []byte("1")))
	assert.NoError(t, batch.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, batch.Len())

	// nothing visible before write
	has, _ := db.Has([]byte("a"))
	assert.False(t, has)

	assert.NoError(t, batch.Write())
	v, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestIterate(t *testing.T) {
	db := NewMemLevelDB()
	defer db.Close()

	assert.NoError(t, db.Put([]byte("p-a"), []byte("1")))
	assert.NoError(t, db.Put([]byte("p-b"), []byte("2")))
	assert.NoError(t, db.Put([]byte("q-a"), []byte("3")))

	it := db.Iterate(Range{Start: []byte("p-"), Limit: []byte("p\xff")})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.NoError(t, it.Error())
	assert.Equal(t, []string{"p-a", "p-b"}, keys)
}
