// Package session keeps the wallet session of the service: connection status,
// the tokens the wallet owns, collection supply and mint progress.
//
// All session state is owned by the goroutine running Controller.Run. Public
// methods and background reads hand closures to that goroutine instead of
// locking.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/yizeng/geoshapes/internal/domain"
)

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// RefetchDelays are the offsets, from the moment a mint transaction is
// accepted, at which owned tokens and supply are read again. The minting flag
// is cleared at the last one.
var RefetchDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	3 * time.Second,
	5 * time.Second,
	10 * time.Second,
}

const defaultReadTimeout = 10 * time.Second

var (
	ErrNotConnected   = errors.New("wallet not connected")
	ErrSoldOut        = errors.New("all tokens minted")
	ErrMintInProgress = errors.New("a mint is already in progress")
	ErrTokenNotOwned  = errors.New("token not owned by the connected wallet")
	ErrStopped        = errors.New("session controller stopped")
)

type Ledger interface {
	Connect(ctx context.Context) (string, error)
	EnsureNetwork(ctx context.Context) error
	TokensOfOwner(ctx context.Context, owner string) ([]domain.TokenID, error)
	TotalSupply(ctx context.Context) (domain.Supply, error)
	Mint(ctx context.Context, value *big.Int) (string, error)
}

type Config struct {
	// A zero interval disables that poll.
	TokensPollInterval   time.Duration
	SupplyPollInterval   time.Duration
	ConnectRetryInterval time.Duration
	// AutoConnect makes one connection attempt as soon as Run starts.
	AutoConnect    bool
	Embedded       bool
	MintPrice      string
	CurrencySymbol string
	ReadTimeout    time.Duration
}

type Option func(*Controller)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

type Controller struct {
	ledger Ledger
	conf   Config
	price  *big.Int
	clock  clockwork.Clock
	log    *zap.Logger

	events chan func()
	done   chan struct{}
	wg     sync.WaitGroup

	// Owned by the Run goroutine.
	st             state
	dirty          bool
	runCtx         context.Context
	connGen        uint64
	scheduleGen    uint64
	cancelSchedule context.CancelFunc
	retry          clockwork.Ticker
	subs           map[uuid.UUID]chan Snapshot
}

type state struct {
	status        Status
	account       string
	tokens        []domain.TokenID
	tokensLoading bool
	selected      *domain.TokenID
	supply        domain.Supply
	supplyLoaded  bool
	mintPending   bool
	minting       bool
	lastTx        string
	err           string
}

func New(ledger Ledger, conf Config, opts ...Option) (*Controller, error) {
	price, err := domain.ParseEther(conf.MintPrice)
	if err != nil {
		return nil, fmt.Errorf("domain.ParseEther -> %w", err)
	}

	if conf.ReadTimeout <= 0 {
		conf.ReadTimeout = defaultReadTimeout
	}

	c := &Controller{
		ledger: ledger,
		conf:   conf,
		price:  price,
		clock:  clockwork.NewRealClock(),
		log:    zap.L(),
		events: make(chan func()),
		done:   make(chan struct{}),
		st: state{
			status: StatusDisconnected,
			supply: domain.NewSupply(0),
		},
		subs: make(map[uuid.UUID]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("session")

	return c, nil
}

// Run drives the session until ctx is canceled. It must be called once.
func (c *Controller) Run(ctx context.Context) error {
	c.runCtx = ctx

	tokensTicker := c.newTicker(c.conf.TokensPollInterval)
	supplyTicker := c.newTicker(c.conf.SupplyPollInterval)

	c.refreshSupply()
	if c.conf.AutoConnect {
		c.autoConnect()
	}
	c.syncRetry()

	for {
		select {
		case <-ctx.Done():
			c.stop(tokensTicker, supplyTicker)
			return nil
		case fn := <-c.events:
			fn()
		case <-tickerChan(tokensTicker):
			c.refreshTokens()
		case <-tickerChan(supplyTicker):
			c.refreshSupply()
		case <-tickerChan(c.retry):
			c.autoConnect()
		}

		c.syncRetry()
		c.publish()
	}
}

// Done is closed once Run has returned.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) stop(tickers ...clockwork.Ticker) {
	for _, t := range append(tickers, c.retry) {
		if t != nil {
			t.Stop()
		}
	}
	c.retry = nil

	if c.cancelSchedule != nil {
		c.cancelSchedule()
		c.cancelSchedule = nil
	}

	close(c.done)
	c.wg.Wait()
}

func (c *Controller) newTicker(d time.Duration) clockwork.Ticker {
	if d <= 0 {
		return nil
	}
	return c.clock.NewTicker(d)
}

func tickerChan(t clockwork.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.Chan()
}

// syncRetry keeps the auto-connect ticker running exactly while an embedded
// session is disconnected.
func (c *Controller) syncRetry() {
	want := c.conf.Embedded && c.conf.ConnectRetryInterval > 0 && c.st.status == StatusDisconnected

	switch {
	case want && c.retry == nil:
		c.retry = c.clock.NewTicker(c.conf.ConnectRetryInterval)
	case !want && c.retry != nil:
		c.retry.Stop()
		c.retry = nil
	}
}

// do runs fn on the Run goroutine.
func (c *Controller) do(ctx context.Context, fn func()) error {
	select {
	case c.events <- fn:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send is do for results that must reach the loop regardless of the caller's
// context, such as the outcome of a connect or mint.
func (c *Controller) send(fn func()) {
	select {
	case c.events <- fn:
	case <-c.done:
	}
}

// spawn runs fn on a goroutine that Run waits for before returning.
func (c *Controller) spawn(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *Controller) changed() {
	c.dirty = true
}
