package repository

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/repository/dao"
)

var (
	ErrWalletUnavailable   = errors.New("no wallet available")
	ErrWrongNetwork        = errors.New("wallet is connected to the wrong network")
	ErrInsufficientFunds   = errors.New("insufficient funds for mint")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrSupplyOverflow      = errors.New("total supply out of range")
)

type GeoShapesDAO interface {
	Connect(ctx context.Context) (common.Address, error)
	ChainID(ctx context.Context) (*big.Int, error)
	TokensOfOwner(ctx context.Context, owner common.Address) ([]*big.Int, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
	MintedBy(ctx context.Context, minter common.Address) (*big.Int, error)
	Mint(ctx context.Context, value *big.Int) (common.Hash, error)
}

type LedgerRepository struct {
	dao     GeoShapesDAO
	chainID *big.Int
}

func NewLedgerRepository(dao GeoShapesDAO, chainID int64) *LedgerRepository {
	return &LedgerRepository{
		dao:     dao,
		chainID: big.NewInt(chainID),
	}
}

// Connect returns the checksummed address of the wallet.
func (r *LedgerRepository) Connect(ctx context.Context) (string, error) {
	account, err := r.dao.Connect(ctx)
	if err != nil {
		if errors.Is(err, dao.ErrNoWallet) {
			return "", ErrWalletUnavailable
		}

		return "", fmt.Errorf("r.dao.Connect -> %w", err)
	}

	return account.Hex(), nil
}

func (r *LedgerRepository) EnsureNetwork(ctx context.Context) error {
	id, err := r.dao.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("r.dao.ChainID -> %w", err)
	}

	if id.Cmp(r.chainID) != 0 {
		return fmt.Errorf("%w: want chain %s, got %s", ErrWrongNetwork, r.chainID, id)
	}

	return nil
}

func (r *LedgerRepository) TokensOfOwner(ctx context.Context, owner string) ([]domain.TokenID, error) {
	addr, err := parseAddress(owner)
	if err != nil {
		return nil, err
	}

	found, err := r.dao.TokensOfOwner(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TokensOfOwner -> %w", err)
	}

	ids := make([]domain.TokenID, 0, len(found))
	for _, b := range found {
		id, err := domain.TokenIDFromBig(b)
		if err != nil {
			return nil, fmt.Errorf("domain.TokenIDFromBig -> %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *LedgerRepository) TotalSupply(ctx context.Context) (domain.Supply, error) {
	total, err := r.dao.TotalSupply(ctx)
	if err != nil {
		return domain.Supply{}, fmt.Errorf("r.dao.TotalSupply -> %w", err)
	}

	if !total.IsUint64() {
		return domain.Supply{}, fmt.Errorf("%w: %s", ErrSupplyOverflow, total)
	}

	return domain.NewSupply(total.Uint64()), nil
}

func (r *LedgerRepository) MintedBy(ctx context.Context, minter string) (uint64, error) {
	addr, err := parseAddress(minter)
	if err != nil {
		return 0, err
	}

	count, err := r.dao.MintedBy(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MintedBy -> %w", err)
	}

	if !count.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrSupplyOverflow, count)
	}

	return count.Uint64(), nil
}

// Mint returns the transaction hash of the submitted mint() call.
func (r *LedgerRepository) Mint(ctx context.Context, value *big.Int) (string, error) {
	hash, err := r.dao.Mint(ctx, value)
	if err != nil {
		return "", fmt.Errorf("r.dao.Mint -> %w", classifyWriteErr(err))
	}

	return hash.Hex(), nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	return common.HexToAddress(s), nil
}

// classifyWriteErr maps node and wallet errors, which only arrive as text over
// JSON-RPC, onto the repository's sentinels.
func classifyWriteErr(err error) error {
	if errors.Is(err, dao.ErrNoWallet) {
		return ErrWalletUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return fmt.Errorf("%w: %v", ErrInsufficientFunds, err)
	case strings.Contains(msg, "execution reverted"),
		strings.Contains(msg, "rejected"),
		strings.Contains(msg, "denied"):
		return fmt.Errorf("%w: %v", ErrTransactionRejected, err)
	}

	return err
}
