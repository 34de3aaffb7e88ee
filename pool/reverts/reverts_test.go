// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRevert(t *testing.T) {
	err := Validation("Amount below minimum")
	assert.True(t, IsRevert(err))
	assert.Equal(t, "Amount below minimum", err.Error())
	assert.Equal(t, ClassValidation, ClassOf(err))

	wrapped := errors.Wrap(err, "stake")
	assert.True(t, IsRevert(wrapped))
	assert.Equal(t, ClassValidation, ClassOf(wrapped))

	assert.False(t, IsRevert(errors.New("io failure")))
	assert.Equal(t, Class(0), ClassOf(errors.New("io failure")))
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "insufficient-resource", ClassInsufficientResource.String())
	assert.Equal(t, "access-control", ClassAccessControl.String())
	assert.Equal(t, "state-conflict", ClassStateConflict.String())
	assert.Equal(t, "arithmetic", ClassArithmetic.String())
	assert.Equal(t, "unknown", Class(99).String())
}
