package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/yizeng/geoshapes/internal/domain"
)

type MintButton struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Loading  bool   `json:"loading"`
}

// Snapshot is a copy of the session state at one point of the event loop.
type Snapshot struct {
	Status        Status           `json:"status"`
	Account       string           `json:"account,omitempty"`
	Tokens        []domain.TokenID `json:"tokens"`
	TokensLoading bool             `json:"tokens_loading"`
	Selected      *domain.TokenID  `json:"selected,omitempty"`
	Supply        domain.Supply    `json:"supply"`
	SupplyLoaded  bool             `json:"supply_loaded"`
	MintPending   bool             `json:"mint_pending"`
	Minting       bool             `json:"minting"`
	LastTx        string           `json:"last_tx,omitempty"`
	Error         string           `json:"error,omitempty"`
	MintButton    MintButton       `json:"mint_button"`
}

func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	res := make(chan Snapshot, 1)
	if err := c.do(ctx, func() { res <- c.snapshot() }); err != nil {
		return Snapshot{}, err
	}

	return <-res, nil
}

// Subscribe returns a channel that receives the current snapshot and then
// every later change. Slow readers only see the latest snapshot. The returned
// func unsubscribes; the channel is never closed, watch Done instead.
func (c *Controller) Subscribe(ctx context.Context) (<-chan Snapshot, func(), error) {
	id := uuid.New()
	ch := make(chan Snapshot, 1)

	err := c.do(ctx, func() {
		c.subs[id] = ch
		ch <- c.snapshot()
	})
	if err != nil {
		return nil, nil, err
	}

	unsubscribe := func() {
		_ = c.do(context.Background(), func() {
			delete(c.subs, id)
		})
	}

	return ch, unsubscribe, nil
}

func (c *Controller) publish() {
	if !c.dirty {
		return
	}
	c.dirty = false

	if len(c.subs) == 0 {
		return
	}

	snap := c.snapshot()
	for _, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			// Replace the unread snapshot; the loop is the only sender.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (c *Controller) snapshot() Snapshot {
	s := Snapshot{
		Status:        c.st.status,
		Account:       c.st.account,
		Tokens:        append([]domain.TokenID{}, c.st.tokens...),
		TokensLoading: c.st.tokensLoading,
		Supply:        c.st.supply,
		SupplyLoaded:  c.st.supplyLoaded,
		MintPending:   c.st.mintPending,
		Minting:       c.st.minting,
		LastTx:        c.st.lastTx,
		Error:         c.st.err,
		MintButton:    c.mintButton(),
	}
	if c.st.selected != nil {
		sel := *c.st.selected
		s.Selected = &sel
	}

	return s
}

func (c *Controller) mintButton() MintButton {
	switch {
	case c.st.status != StatusConnected:
		return MintButton{Label: "Connect Wallet", Disabled: true}
	case c.st.supplyLoaded && c.st.supply.SoldOut():
		return MintButton{Label: "All Minted", Disabled: true}
	case c.st.mintPending || c.st.minting:
		return MintButton{Label: "Minting...", Disabled: true, Loading: true}
	}

	return MintButton{Label: "Mint for " + c.conf.MintPrice + " " + c.conf.CurrencySymbol}
}
