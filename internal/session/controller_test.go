package session

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/repository"
)

const (
	testAccount = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	waitFor     = 2 * time.Second
	tick        = 5 * time.Millisecond
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeLedger struct {
	mu sync.Mutex

	connectErr error
	networkErr error
	tokensErr  error
	supplyErr  error
	mintErr    error

	tokens []domain.TokenID
	supply uint64

	connectCalls int
	tokenCalls   int
	supplyCalls  int
	mintValues   []*big.Int
}

func (f *fakeLedger) Connect(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.connectCalls++
	if f.connectErr != nil {
		return "", f.connectErr
	}
	return testAccount, nil
}

func (f *fakeLedger) EnsureNetwork(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.networkErr
}

func (f *fakeLedger) TokensOfOwner(_ context.Context, owner string) ([]domain.TokenID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tokenCalls++
	if owner != testAccount {
		return nil, fmt.Errorf("unexpected owner %s", owner)
	}
	return append([]domain.TokenID{}, f.tokens...), f.tokensErr
}

func (f *fakeLedger) TotalSupply(context.Context) (domain.Supply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.supplyCalls++
	if f.supplyErr != nil {
		return domain.Supply{}, f.supplyErr
	}
	return domain.NewSupply(f.supply), nil
}

func (f *fakeLedger) Mint(_ context.Context, value *big.Int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mintErr != nil {
		return "", f.mintErr
	}
	f.mintValues = append(f.mintValues, value)
	f.supply++
	f.tokens = append(f.tokens, domain.NewTokenID(f.supply))
	return fmt.Sprintf("0x%064x", len(f.mintValues)), nil
}

func (f *fakeLedger) set(fn func(f *fakeLedger)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeLedger) counts() (connects, tokens, supply, mints int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectCalls, f.tokenCalls, f.supplyCalls, len(f.mintValues)
}

func testConfig() Config {
	return Config{
		MintPrice:      "0.0001",
		CurrencySymbol: "MON",
	}
}

func startController(t *testing.T, ledger Ledger, conf Config) (*Controller, clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	c, err := New(ledger, conf, WithClock(clock))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- c.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-errc)
	})

	return c, clock
}

func snapshot(t *testing.T, c *Controller) Snapshot {
	t.Helper()

	s, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	return s
}

func eventually(t *testing.T, c *Controller, cond func(Snapshot) bool, msg string) Snapshot {
	t.Helper()

	var last Snapshot
	require.Eventually(t, func() bool {
		last = snapshot(t, c)
		return cond(last)
	}, waitFor, tick, msg)
	return last
}

func connect(t *testing.T, c *Controller, ledger *fakeLedger) Snapshot {
	t.Helper()

	_, err := c.Connect(context.Background())
	require.NoError(t, err)

	s := eventually(t, c, func(s Snapshot) bool {
		return s.Status == StatusConnected && !s.TokensLoading && s.SupplyLoaded
	}, "connected and loaded")

	return s
}

func TestNew_InvalidPrice(t *testing.T) {
	_, err := New(&fakeLedger{}, Config{MintPrice: "free"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestController_InitialState(t *testing.T) {
	ledger := &fakeLedger{supply: 42}
	c, _ := startController(t, ledger, testConfig())

	s := eventually(t, c, func(s Snapshot) bool { return s.SupplyLoaded }, "supply loaded")

	want := Snapshot{
		Status:       StatusDisconnected,
		Tokens:       []domain.TokenID{},
		Supply:       domain.NewSupply(42),
		SupplyLoaded: true,
		MintButton:   MintButton{Label: "Connect Wallet", Disabled: true},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ConnectSelectsFirstToken(t *testing.T) {
	ledger := &fakeLedger{supply: 3, tokens: []domain.TokenID{domain.NewTokenID(7), domain.NewTokenID(9)}}
	c, _ := startController(t, ledger, testConfig())

	s := connect(t, c, ledger)

	assert.Equal(t, testAccount, s.Account)
	require.Len(t, s.Tokens, 2)
	require.NotNil(t, s.Selected)
	assert.True(t, s.Selected.Equal(domain.NewTokenID(7)))
	assert.Equal(t, MintButton{Label: "Mint for 0.0001 MON"}, s.MintButton)

	s, err := c.Select(context.Background(), domain.NewTokenID(9))
	require.NoError(t, err)
	assert.True(t, s.Selected.Equal(domain.NewTokenID(9)))

	_, err = c.Select(context.Background(), domain.NewTokenID(8))
	assert.ErrorIs(t, err, ErrTokenNotOwned)
}

func TestController_ConnectFailure(t *testing.T) {
	ledger := &fakeLedger{connectErr: repository.ErrWalletUnavailable}
	c, _ := startController(t, ledger, testConfig())

	_, err := c.Connect(context.Background())
	assert.ErrorIs(t, err, repository.ErrWalletUnavailable)

	s := snapshot(t, c)
	assert.Equal(t, StatusDisconnected, s.Status)
	assert.Equal(t, repository.ErrWalletUnavailable.Error(), s.Error)
}

func TestController_MintWhileDisconnected(t *testing.T) {
	ledger := &fakeLedger{}
	c, _ := startController(t, ledger, testConfig())

	_, err := c.Mint(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)

	_, _, _, mints := ledger.counts()
	assert.Zero(t, mints)
	assert.Empty(t, snapshot(t, c).Error)
}

func TestController_MintRefetchSchedule(t *testing.T) {
	ledger := &fakeLedger{supply: 5}
	c, clock := startController(t, ledger, testConfig())
	connect(t, c, ledger)

	_, baseTokens, baseSupply, _ := ledger.counts()

	tx, err := c.Mint(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tx)

	s := snapshot(t, c)
	assert.True(t, s.Minting)
	assert.Equal(t, tx, s.LastTx)
	assert.Equal(t, MintButton{Label: "Minting...", Disabled: true, Loading: true}, s.MintButton)

	_, err = c.Mint(context.Background())
	assert.ErrorIs(t, err, ErrMintInProgress)

	var elapsed time.Duration
	for i, at := range RefetchDelays {
		require.True(t, snapshot(t, c).Minting, "still minting before step %d", i)

		clock.BlockUntil(1)
		clock.Advance(at - elapsed)
		elapsed = at

		want := i + 1
		require.Eventually(t, func() bool {
			_, tokens, supply, _ := ledger.counts()
			return tokens == baseTokens+want && supply == baseSupply+want
		}, waitFor, tick, "refetch %d", want)
	}

	s = eventually(t, c, func(s Snapshot) bool { return !s.Minting }, "minting cleared")
	assert.Len(t, s.Tokens, 1)
	assert.Equal(t, uint64(6), s.Supply.Total)

	clock.BlockUntil(0)
	_, tokens, supply, mints := ledger.counts()
	assert.Equal(t, baseTokens+len(RefetchDelays), tokens)
	assert.Equal(t, baseSupply+len(RefetchDelays), supply)
	assert.Equal(t, 1, mints)
}

func TestController_MintFailure(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *fakeLedger)
		wantErr   error
		wantMsg   string
		wantMints int
	}{
		{
			name:    "wrong network",
			setup:   func(f *fakeLedger) { f.networkErr = repository.ErrWrongNetwork },
			wantErr: repository.ErrWrongNetwork,
			wantMsg: repository.ErrWrongNetwork.Error(),
		},
		{
			name:    "insufficient funds",
			setup:   func(f *fakeLedger) { f.mintErr = fmt.Errorf("r.dao.Mint -> %w", repository.ErrInsufficientFunds) },
			wantErr: repository.ErrInsufficientFunds,
			wantMsg: repository.ErrInsufficientFunds.Error(),
		},
		{
			name:    "unknown",
			setup:   func(f *fakeLedger) { f.mintErr = fmt.Errorf("connection reset") },
			wantMsg: MsgMintFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}
			c, _ := startController(t, ledger, testConfig())
			connect(t, c, ledger)
			ledger.set(tt.setup)

			_, err := c.Mint(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			s := snapshot(t, c)
			assert.Equal(t, tt.wantMsg, s.Error)
			assert.False(t, s.Minting)
			assert.False(t, s.MintPending)

			_, _, _, mints := ledger.counts()
			assert.Equal(t, tt.wantMints, mints)
		})
	}
}

func TestController_SoldOut(t *testing.T) {
	ledger := &fakeLedger{supply: domain.MaxSupply}
	c, _ := startController(t, ledger, testConfig())
	s := connect(t, c, ledger)

	assert.Equal(t, MintButton{Label: "All Minted", Disabled: true}, s.MintButton)

	_, err := c.Mint(context.Background())
	assert.ErrorIs(t, err, ErrSoldOut)
}

func TestController_ReadErrors(t *testing.T) {
	ledger := &fakeLedger{supplyErr: fmt.Errorf("rpc down")}
	c, _ := startController(t, ledger, testConfig())

	eventually(t, c, func(s Snapshot) bool { return s.Error == "Error loading total supply" }, "supply error shown")

	ledger.set(func(f *fakeLedger) {
		f.supplyErr = nil
		f.tokensErr = fmt.Errorf("rpc down")
	})
	_, err := c.Connect(context.Background())
	require.NoError(t, err)

	eventually(t, c, func(s Snapshot) bool { return s.Error == "Error loading token data" }, "token error shown")
}

func TestController_Polling(t *testing.T) {
	ledger := &fakeLedger{}
	conf := testConfig()
	conf.TokensPollInterval = 10 * time.Second
	conf.SupplyPollInterval = 15 * time.Second
	c, clock := startController(t, ledger, conf)
	connect(t, c, ledger)

	_, tokens, supply, _ := ledger.counts()
	require.Equal(t, 1, tokens)
	require.Equal(t, 1, supply)

	clock.BlockUntil(2)
	clock.Advance(10 * time.Second)
	require.Eventually(t, func() bool {
		_, tokens, _, _ := ledger.counts()
		return tokens == 2
	}, waitFor, tick)

	clock.Advance(5 * time.Second)
	require.Eventually(t, func() bool {
		_, _, supply, _ := ledger.counts()
		return supply == 2
	}, waitFor, tick)
}

func TestController_AutoConnectWhenEmbedded(t *testing.T) {
	ledger := &fakeLedger{connectErr: fmt.Errorf("no provider")}
	conf := testConfig()
	conf.Embedded = true
	conf.ConnectRetryInterval = 2 * time.Second
	c, clock := startController(t, ledger, conf)

	clock.BlockUntil(1)
	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool {
		connects, _, _, _ := ledger.counts()
		return connects == 1
	}, waitFor, tick)

	s := eventually(t, c, func(s Snapshot) bool { return s.Status == StatusDisconnected }, "back to disconnected")
	assert.Empty(t, s.Error)

	ledger.set(func(f *fakeLedger) { f.connectErr = nil })

	clock.BlockUntil(1)
	clock.Advance(2 * time.Second)
	eventually(t, c, func(s Snapshot) bool { return s.Status == StatusConnected }, "auto connected")

	clock.BlockUntil(0)
}

func TestController_ConnectsOnStart(t *testing.T) {
	ledger := &fakeLedger{tokens: []domain.TokenID{domain.NewTokenID(3)}, supply: 3}
	conf := testConfig()
	conf.AutoConnect = true
	c, _ := startController(t, ledger, conf)

	s := eventually(t, c, func(s Snapshot) bool {
		return s.Status == StatusConnected && !s.TokensLoading
	}, "connected without any clock advance")

	assert.Equal(t, testAccount, s.Account)
	require.NotNil(t, s.Selected)
	assert.Equal(t, "3", s.Selected.String())

	connects, _, _, _ := ledger.counts()
	assert.Equal(t, 1, connects)
}

func TestController_ConnectOnStartFailureIsQuiet(t *testing.T) {
	ledger := &fakeLedger{connectErr: fmt.Errorf("no provider")}
	conf := testConfig()
	conf.AutoConnect = true
	c, clock := startController(t, ledger, conf)

	require.Eventually(t, func() bool {
		connects, _, _, _ := ledger.counts()
		return connects == 1
	}, waitFor, tick)

	s := eventually(t, c, func(s Snapshot) bool { return s.Status == StatusDisconnected }, "back to disconnected")
	assert.Empty(t, s.Error)

	// Without embedded mode there is no retry.
	clock.Advance(30 * time.Second)
	s = snapshot(t, c)
	assert.Equal(t, StatusDisconnected, s.Status)

	connects, _, _, _ := ledger.counts()
	assert.Equal(t, 1, connects)
}

func TestController_DisconnectCancelsSchedule(t *testing.T) {
	ledger := &fakeLedger{}
	c, clock := startController(t, ledger, testConfig())
	connect(t, c, ledger)

	_, err := c.Mint(context.Background())
	require.NoError(t, err)
	_, _, baseSupply, _ := ledger.counts()

	s, err := c.Disconnect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDisconnected, s.Status)
	assert.False(t, s.Minting)
	assert.Empty(t, s.Tokens)

	clock.BlockUntil(0)
	clock.Advance(RefetchDelays[len(RefetchDelays)-1])

	_, _, supply, _ := ledger.counts()
	assert.Equal(t, baseSupply, supply)
}

func TestController_Subscribe(t *testing.T) {
	ledger := &fakeLedger{}
	c, _ := startController(t, ledger, testConfig())

	ch, unsubscribe, err := c.Subscribe(context.Background())
	require.NoError(t, err)
	defer unsubscribe()

	_, err = c.Connect(context.Background())
	require.NoError(t, err)

	deadline := time.After(waitFor)
	for {
		select {
		case s := <-ch:
			if s.Status == StatusConnected {
				return
			}
		case <-deadline:
			t.Fatal("no connected snapshot published")
		}
	}
}

func TestController_StoppedReturnsErr(t *testing.T) {
	c, err := New(&fakeLedger{}, testConfig(), WithClock(clockwork.NewFakeClock()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	cancel()
	<-done

	_, err = c.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrStopped)
}
