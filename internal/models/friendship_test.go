package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendship_BeforeCreate(t *testing.T) {
	t.Run("swaps to canonical order", func(t *testing.T) {
		f := &Friendship{UserAID: 9, UserBID: 3}
		require.NoError(t, f.BeforeCreate(nil))
		assert.Equal(t, uint(3), f.UserAID)
		assert.Equal(t, uint(9), f.UserBID)
	})

	t.Run("keeps an already-ordered pair", func(t *testing.T) {
		f := &Friendship{UserAID: 3, UserBID: 9}
		require.NoError(t, f.BeforeCreate(nil))
		assert.Equal(t, uint(3), f.UserAID)
		assert.Equal(t, uint(9), f.UserBID)
	})
}
