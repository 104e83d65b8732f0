package domain

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenID(t *testing.T) {
	id, err := ParseTokenID("123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", id.String())

	_, err = ParseTokenID("-1")
	assert.ErrorIs(t, err, ErrInvalidTokenID)

	_, err = ParseTokenID("abc")
	assert.ErrorIs(t, err, ErrInvalidTokenID)
}

func TestParseTokenID_Uint256Bound(t *testing.T) {
	const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

	id, err := ParseTokenID(maxUint256)
	require.NoError(t, err)
	assert.Equal(t, maxUint256, id.String())

	overflow := new(big.Int).Add(id.Big(), big.NewInt(1))
	_, err = ParseTokenID(overflow.String())
	assert.ErrorIs(t, err, ErrInvalidTokenID)

	_, err = TokenIDFromBig(overflow)
	assert.ErrorIs(t, err, ErrInvalidTokenID)
}

func TestTokenIDFromBig_Copies(t *testing.T) {
	b := big.NewInt(5)
	id, err := TokenIDFromBig(b)
	require.NoError(t, err)

	b.SetInt64(6)
	assert.Equal(t, "5", id.String())

	_, err = TokenIDFromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrInvalidTokenID)
}

func TestTokenID_JSON(t *testing.T) {
	data, err := json.Marshal([]TokenID{NewTokenID(1), NewTokenID(42)})
	require.NoError(t, err)
	assert.JSONEq(t, `["1","42"]`, string(data))

	var got []TokenID
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.True(t, got[1].Equal(NewTokenID(42)))

	var bad TokenID
	assert.ErrorIs(t, json.Unmarshal([]byte(`"x"`), &bad), ErrInvalidTokenID)
}

func TestSupply(t *testing.T) {
	assert.False(t, NewSupply(9999).SoldOut())
	assert.Equal(t, uint64(1), NewSupply(9999).Remaining())
	assert.True(t, NewSupply(MaxSupply).SoldOut())
	assert.Equal(t, uint64(0), NewSupply(MaxSupply).Remaining())
}

func TestParseEther(t *testing.T) {
	wei, err := ParseEther("0.0001")
	require.NoError(t, err)
	assert.Equal(t, "100000000000000", wei.String())

	wei, err = ParseEther("2")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", wei.String())

	_, err = ParseEther("0.0000000000000000001")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseEther("-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseEther("ten")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	wei, err = ParseEther(".5")
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", wei.String())
}

func TestParseEther_PlainDecimalOnly(t *testing.T) {
	for _, s := range []string{"1/10000", "1e-4", "1E18", "+1", "0x10", " 1", "", "."} {
		_, err := ParseEther(s)
		assert.ErrorIs(t, err, ErrInvalidAmount, s)
	}
}
