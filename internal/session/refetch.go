package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/geoshapes/internal/domain"
)

const (
	msgTokensLoadFailed = "Error loading token data"
	msgSupplyLoadFailed = "Error loading total supply"
)

func (c *Controller) refreshTokens() {
	if c.st.status != StatusConnected {
		return
	}

	gen, account := c.connGen, c.st.account
	ctx, timeout := c.runCtx, c.conf.ReadTimeout

	c.spawn(func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		ids, err := c.ledger.TokensOfOwner(ctx, account)
		c.send(func() {
			c.applyTokens(gen, ids, err)
		})
	})
}

func (c *Controller) applyTokens(gen uint64, ids []domain.TokenID, err error) {
	if gen != c.connGen || c.st.status != StatusConnected {
		return
	}

	c.st.tokensLoading = false
	c.changed()

	if err != nil {
		c.st.err = msgTokensLoadFailed
		c.log.Warn("loading owned tokens failed", zap.Error(err))
		return
	}

	if c.st.err == msgTokensLoadFailed {
		c.st.err = ""
	}

	c.st.tokens = ids
	if c.st.selected == nil && len(ids) > 0 {
		first := ids[0]
		c.st.selected = &first
	}
}

func (c *Controller) refreshSupply() {
	ctx, timeout := c.runCtx, c.conf.ReadTimeout

	c.spawn(func() {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		supply, err := c.ledger.TotalSupply(ctx)
		c.send(func() {
			c.applySupply(supply, err)
		})
	})
}

func (c *Controller) applySupply(supply domain.Supply, err error) {
	c.changed()

	if err != nil {
		c.st.err = msgSupplyLoadFailed
		c.log.Warn("loading total supply failed", zap.Error(err))
		return
	}

	if c.st.err == msgSupplyLoadFailed {
		c.st.err = ""
	}

	c.st.supply = supply
	c.st.supplyLoaded = true
}

// scheduleRefetch starts the post-mint read schedule, replacing any schedule
// already running.
func (c *Controller) scheduleRefetch() {
	c.cancelRefetchSchedule()

	ctx, cancel := context.WithCancel(c.runCtx)
	c.cancelSchedule = cancel
	c.scheduleGen++
	gen := c.scheduleGen

	c.spawn(func() {
		c.runRefetchSchedule(ctx, gen)
	})
}

func (c *Controller) cancelRefetchSchedule() {
	if c.cancelSchedule != nil {
		c.cancelSchedule()
		c.cancelSchedule = nil
	}
	c.scheduleGen++
}

func (c *Controller) runRefetchSchedule(ctx context.Context, gen uint64) {
	var elapsed time.Duration

	for i, at := range RefetchDelays {
		timer := c.clock.NewTimer(at - elapsed)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.Chan():
		}
		elapsed = at

		last := i == len(RefetchDelays)-1
		select {
		case c.events <- func() { c.refetchStep(gen, last) }:
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
	}
}

func (c *Controller) refetchStep(gen uint64, last bool) {
	if gen != c.scheduleGen {
		return
	}

	c.refreshTokens()
	c.refreshSupply()

	if last {
		c.st.minting = false
		if c.cancelSchedule != nil {
			c.cancelSchedule()
			c.cancelSchedule = nil
		}
		c.changed()
	}
}
