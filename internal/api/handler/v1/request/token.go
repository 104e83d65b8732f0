package request

import (
	"errors"
	"regexp"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/geoshapes/internal/domain"
)

// A uint256 has at most 78 decimal digits; Parse enforces the exact bound.
// Leading zeros are refused so each token has exactly one URL.
var tokenIDExp = regexp2.MustCompile(`^(?!0\d)\d{1,78}$`, regexp2.None)

var addressExp = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

var errInvalidTokenID = errors.New("token id must be a base-10 integer without leading zeros")

func validTokenID(value interface{}) error {
	s, _ := value.(string)
	ok, err := tokenIDExp.MatchString(s)
	if err != nil {
		return err
	}
	if !ok {
		return errInvalidTokenID
	}

	return nil
}

type TokenURI struct {
	TokenID string `uri:"tokenID" binding:"required"`
}

func (req *TokenURI) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TokenID, validation.Required, validation.By(validTokenID)),
	)
}

func (req *TokenURI) Parse() (domain.TokenID, error) {
	return domain.ParseTokenID(req.TokenID)
}

type SelectTokenRequest struct {
	TokenID string `json:"token_id" binding:"required"`
}

func (req *SelectTokenRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TokenID, validation.Required, validation.By(validTokenID)),
	)
}

func (req *SelectTokenRequest) Parse() (domain.TokenID, error) {
	return domain.ParseTokenID(req.TokenID)
}

type AccountURI struct {
	Address string `uri:"address" binding:"required"`
}

func (req *AccountURI) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Address, validation.Required, validation.Match(addressExp)),
	)
}
