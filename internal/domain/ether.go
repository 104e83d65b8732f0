package domain

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
)

// Plain decimal only: no sign, exponent or fraction syntax.
var decimalExp = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)$`)

var ErrInvalidAmount = errors.New("invalid native currency amount")

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// ParseEther converts a decimal amount such as "0.0001" to wei. Amounts finer
// than one wei are rejected rather than rounded.
func ParseEther(s string) (*big.Int, error) {
	if !decimalExp.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	r.Mul(r, new(big.Rat).SetInt(weiPerEther))
	if !r.IsInt() {
		return nil, fmt.Errorf("%w: %q has more than 18 decimals", ErrInvalidAmount, s)
	}

	return new(big.Int).Set(r.Num()), nil
}
