package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
)

const tokenIDBits = 256

var ErrInvalidTokenID = errors.New("invalid token id")

// TokenID identifies one minted GeoShape. Ledger ids are uint256, so the value
// is kept in a big.Int and never narrowed.
type TokenID struct {
	v *big.Int
}

func NewTokenID(n uint64) TokenID {
	return TokenID{v: new(big.Int).SetUint64(n)}
}

// TokenIDFromBig copies b. Negative values are rejected.
func TokenIDFromBig(b *big.Int) (TokenID, error) {
	if b == nil || b.Sign() < 0 || b.BitLen() > tokenIDBits {
		return TokenID{}, ErrInvalidTokenID
	}

	return TokenID{v: new(big.Int).Set(b)}, nil
}

// ParseTokenID parses a base-10 id. Values outside uint256 are rejected.
func ParseTokenID(s string) (TokenID, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 || b.BitLen() > tokenIDBits {
		return TokenID{}, fmt.Errorf("%w: %q", ErrInvalidTokenID, s)
	}

	return TokenID{v: b}, nil
}

func (t TokenID) big() *big.Int {
	if t.v == nil {
		return new(big.Int)
	}
	return t.v
}

// Big returns a copy of the underlying value.
func (t TokenID) Big() *big.Int {
	return new(big.Int).Set(t.big())
}

// Mod returns t mod n as an int. n must be positive.
func (t TokenID) Mod(n int) int {
	m := new(big.Int).Mod(t.big(), big.NewInt(int64(n)))
	return int(m.Int64())
}

func (t TokenID) Next() TokenID {
	return TokenID{v: new(big.Int).Add(t.big(), big.NewInt(1))}
}

func (t TokenID) Equal(o TokenID) bool {
	return t.big().Cmp(o.big()) == 0
}

func (t TokenID) String() string {
	return t.big().String()
}

func (t TokenID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TokenID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTokenID, err)
	}

	parsed, err := ParseTokenID(s)
	if err != nil {
		return err
	}
	*t = parsed

	return nil
}
