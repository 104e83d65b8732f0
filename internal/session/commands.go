package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/repository"
)

const (
	MsgConnectFailed = "Failed to connect wallet"
	MsgMintFailed    = "Failed to mint"
)

// userFacing are errors whose text is shown as-is in the session error.
var userFacing = []error{
	repository.ErrWalletUnavailable,
	repository.ErrWrongNetwork,
	repository.ErrInsufficientFunds,
	repository.ErrTransactionRejected,
}

// UserMessage returns the text to show for err, or fallback when err carries
// nothing a user can act on.
func UserMessage(err error, fallback string) string {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return fallback
}

// Connect connects the wallet and returns the resulting snapshot. Connecting
// an already connected or connecting session is a no-op.
func (c *Controller) Connect(ctx context.Context) (Snapshot, error) {
	started := make(chan uint64, 1)
	err := c.do(ctx, func() {
		gen, ok := c.beginConnect()
		if !ok {
			close(started)
			return
		}
		started <- gen
	})
	if err != nil {
		return Snapshot{}, err
	}

	gen, ok := <-started
	if ok {
		if err := c.dial(ctx, gen, false); err != nil {
			return Snapshot{}, err
		}
	}

	return c.Snapshot(ctx)
}

func (c *Controller) beginConnect() (uint64, bool) {
	if c.st.status != StatusDisconnected {
		return 0, false
	}

	c.connGen++
	c.st.status = StatusConnecting
	c.changed()

	return c.connGen, true
}

func (c *Controller) autoConnect() {
	gen, ok := c.beginConnect()
	if !ok {
		return
	}

	ctx := c.runCtx
	c.spawn(func() {
		_ = c.dial(ctx, gen, true)
	})
}

func (c *Controller) dial(ctx context.Context, gen uint64, auto bool) error {
	account, err := c.ledger.Connect(ctx)
	if err == nil {
		// Mint checks the network again; here a mismatch is only reported.
		if nErr := c.ledger.EnsureNetwork(ctx); nErr != nil {
			c.log.Warn("wallet connected on unexpected network", zap.Error(nErr))
		}
	}

	c.send(func() {
		if gen != c.connGen || c.st.status != StatusConnecting {
			return
		}

		if err != nil {
			c.st.status = StatusDisconnected
			if !auto {
				c.st.err = UserMessage(err, MsgConnectFailed)
			}
			c.log.Info("wallet connection failed", zap.Bool("auto", auto), zap.Error(err))
			c.changed()
			return
		}

		c.st.status = StatusConnected
		c.st.account = account
		c.st.tokens = nil
		c.st.selected = nil
		c.st.tokensLoading = true
		c.log.Info("wallet connected", zap.String("account", account))
		c.changed()

		c.refreshTokens()
	})

	return err
}

// Disconnect drops the wallet session and cancels any pending post-mint reads.
func (c *Controller) Disconnect(ctx context.Context) (Snapshot, error) {
	err := c.do(ctx, func() {
		if c.st.status == StatusDisconnected {
			return
		}

		c.connGen++
		c.cancelRefetchSchedule()
		c.st.status = StatusDisconnected
		c.st.account = ""
		c.st.tokens = nil
		c.st.selected = nil
		c.st.tokensLoading = false
		c.st.minting = false
		c.log.Info("wallet disconnected")
		c.changed()
	})
	if err != nil {
		return Snapshot{}, err
	}

	return c.Snapshot(ctx)
}

// Select makes t the displayed token. t must be owned by the connected wallet.
func (c *Controller) Select(ctx context.Context, t domain.TokenID) (Snapshot, error) {
	res := make(chan error, 1)
	err := c.do(ctx, func() {
		if c.st.status != StatusConnected {
			res <- ErrNotConnected
			return
		}

		for _, owned := range c.st.tokens {
			if owned.Equal(t) {
				sel := owned
				c.st.selected = &sel
				c.changed()
				res <- nil
				return
			}
		}

		res <- ErrTokenNotOwned
	})
	if err != nil {
		return Snapshot{}, err
	}

	if err := <-res; err != nil {
		return Snapshot{}, err
	}

	return c.Snapshot(ctx)
}

// Mint submits one payable mint() call and returns its transaction hash.
// Without a connected wallet it returns ErrNotConnected and sends nothing.
// Failures are recorded in the session error and never retried.
func (c *Controller) Mint(ctx context.Context) (string, error) {
	type begin struct {
		gen uint64
		err error
	}

	res := make(chan begin, 1)
	err := c.do(ctx, func() {
		switch {
		case c.st.status != StatusConnected:
			res <- begin{err: ErrNotConnected}
			return
		case c.st.supplyLoaded && c.st.supply.SoldOut():
			res <- begin{err: ErrSoldOut}
			return
		case c.st.mintPending || c.st.minting:
			res <- begin{err: ErrMintInProgress}
			return
		}

		c.st.err = ""
		c.st.mintPending = true
		c.changed()
		res <- begin{gen: c.connGen}
	})
	if err != nil {
		return "", err
	}

	b := <-res
	if b.err != nil {
		return "", b.err
	}

	log := c.log.With(zap.String("attempt", uuid.NewString()))
	log.Info("submitting mint", zap.String("value", c.price.String()))

	txHash, err := c.submitMint(ctx)

	c.send(func() {
		c.st.mintPending = false
		c.changed()

		if err != nil {
			c.st.err = UserMessage(err, MsgMintFailed)
			log.Warn("mint failed", zap.Error(err))
			return
		}

		log.Info("mint submitted", zap.String("tx", txHash))
		c.st.lastTx = txHash
		if b.gen != c.connGen {
			return
		}
		c.st.minting = true
		c.scheduleRefetch()
	})

	return txHash, err
}

func (c *Controller) submitMint(ctx context.Context) (string, error) {
	if err := c.ledger.EnsureNetwork(ctx); err != nil {
		return "", err
	}

	return c.ledger.Mint(ctx, c.price)
}
