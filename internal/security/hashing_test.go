package security_test

import (
	"testing"

	"github.com/dom/banner-admin/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "zero selects default", cost: 0, want: bcrypt.DefaultCost},
		{name: "negative selects default", cost: -1, want: bcrypt.DefaultCost},
		{name: "below minimum", cost: 2, want: bcrypt.MinCost},
		{name: "above maximum", cost: 99, want: bcrypt.MaxCost},
		{name: "in range", cost: 6, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, security.NewHasher(tt.cost).Cost)
		})
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	h := security.NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, h.Compare(hash, "secret1"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), bcrypt.ErrMismatchedHashAndPassword)
	assert.Error(t, h.Compare("not-a-hash", "secret1"))
}

func TestHasher_SaltsEachHash(t *testing.T) {
	h := security.NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
