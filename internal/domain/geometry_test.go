package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveGeometry(t *testing.T) {
	tests := []struct {
		name string
		id   uint64
		want Geometry
	}{
		{
			name: "zero",
			id:   0,
			want: Geometry{Shape: ShapeCircle, Colors: Palette{Primary: "#FF6B6B", Secondary: "#4ECDC4"}},
		},
		{
			name: "two",
			id:   2,
			want: Geometry{Shape: ShapeSquare, Colors: Palette{Primary: "#45B7D1", Secondary: "#96CEB4"}},
		},
		{
			name: "last index wraps secondary",
			id:   7,
			want: Geometry{Shape: ShapeDiamond, Colors: Palette{Primary: "#F7DC6F", Secondary: "#FF6B6B"}},
		},
		{
			name: "second period",
			id:   13,
			want: Geometry{Shape: ShapeOctagon, Colors: Palette{Primary: "#DDA0DD", Secondary: "#98D8C8"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveGeometry(NewTokenID(tt.id)))
		})
	}
}

func TestDeriveGeometry_Properties(t *testing.T) {
	for i := uint64(0); i < 64; i++ {
		id := NewTokenID(i)

		assert.Equal(t, DeriveGeometry(id), DeriveGeometry(NewTokenID(i)), "deterministic for %d", i)
		assert.Equal(t, DeriveGeometry(id).Shape, DeriveGeometry(NewTokenID(i+8)).Shape, "period 8 for %d", i)
		assert.Equal(t, DeriveGeometry(id).Colors.Secondary, DeriveGeometry(id.Next()).Colors.Primary, "secondary for %d", i)
	}
}

func TestDeriveGeometry_BeyondUint64(t *testing.T) {
	// 2^256 - 1 is the largest uint256 and is 7 mod 8.
	max, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	id, err := TokenIDFromBig(max)
	require.NoError(t, err)

	got := DeriveGeometry(id)
	assert.Equal(t, ShapeDiamond, got.Shape)
	assert.Equal(t, "#F7DC6F", got.Colors.Primary)
	assert.Equal(t, "#FF6B6B", got.Colors.Secondary)
}

func TestDeriveGeometry_ZeroValue(t *testing.T) {
	assert.Equal(t, DeriveGeometry(NewTokenID(0)), DeriveGeometry(TokenID{}))
}
