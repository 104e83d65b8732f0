package response

import (
	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/service"
	"github.com/yizeng/geoshapes/internal/session"
)

type SessionResponse struct {
	session.Snapshot
	// Previews is set while no owned token is selected.
	Previews []service.TokenView `json:"previews,omitempty"`
}

type MintResponse struct {
	TxHash string `json:"tx_hash"`
}

type SupplyResponse struct {
	domain.Supply
	SoldOut   bool   `json:"sold_out"`
	Remaining uint64 `json:"remaining"`
}

type AccountTokensResponse struct {
	Account string              `json:"account"`
	Tokens  []service.TokenView `json:"tokens"`
}

type MintedByResponse struct {
	Account string `json:"account"`
	Minted  uint64 `json:"minted"`
}

func NewSupplyResponse(s domain.Supply) SupplyResponse {
	return SupplyResponse{
		Supply:    s,
		SoldOut:   s.SoldOut(),
		Remaining: s.Remaining(),
	}
}
