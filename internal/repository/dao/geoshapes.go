package dao

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	ErrNoWallet       = errors.New("no wallet key configured")
	ErrUnexpectedType = errors.New("unexpected contract output type")
)

// geoShapesABI covers the subset of the GeoShapes contract the service calls.
const geoShapesABI = `[
	{"type":"function","name":"getTokensOfOwner","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address","internalType":"address"}],
	 "outputs":[{"name":"","type":"uint256[]","internalType":"uint256[]"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
	{"type":"function","name":"mintedBy","stateMutability":"view",
	 "inputs":[{"name":"minter","type":"address","internalType":"address"}],
	 "outputs":[{"name":"","type":"uint256","internalType":"uint256"}]},
	{"type":"function","name":"mint","stateMutability":"payable",
	 "inputs":[],
	 "outputs":[]}
]`

type GeoShapesDAO struct {
	rpcURL  string
	address common.Address
	chainID *big.Int
	key     *ecdsa.PrivateKey
	parsed  abi.ABI

	mu       sync.Mutex
	client   *ethclient.Client
	contract *bind.BoundContract
}

// NewGeoShapesDAO does not dial; the RPC connection is opened on first use.
// An empty privateKey gives a read-only DAO.
func NewGeoShapesDAO(rpcURL, contractAddress string, chainID int64, privateKey string) (*GeoShapesDAO, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}

	parsed, err := abi.JSON(strings.NewReader(geoShapesABI))
	if err != nil {
		return nil, fmt.Errorf("abi.JSON -> %w", err)
	}

	var key *ecdsa.PrivateKey
	if privateKey != "" {
		key, err = crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("crypto.HexToECDSA -> %w", err)
		}
	}

	return &GeoShapesDAO{
		rpcURL:  rpcURL,
		address: common.HexToAddress(contractAddress),
		chainID: big.NewInt(chainID),
		key:     key,
		parsed:  parsed,
	}, nil
}

func (d *GeoShapesDAO) bound(ctx context.Context) (*ethclient.Client, *bind.BoundContract, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		client, err := ethclient.DialContext(ctx, d.rpcURL)
		if err != nil {
			return nil, nil, fmt.Errorf("ethclient.DialContext -> %w", err)
		}
		d.client = client
		d.contract = bind.NewBoundContract(d.address, d.parsed, client, client, client)
	}

	return d.client, d.contract, nil
}

// Connect opens the RPC connection and returns the wallet's address.
func (d *GeoShapesDAO) Connect(ctx context.Context) (common.Address, error) {
	if d.key == nil {
		return common.Address{}, ErrNoWallet
	}

	if _, _, err := d.bound(ctx); err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(d.key.PublicKey), nil
}

func (d *GeoShapesDAO) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		d.client.Close()
		d.client = nil
		d.contract = nil
	}
}

func (d *GeoShapesDAO) ChainID(ctx context.Context) (*big.Int, error) {
	client, _, err := d.bound(ctx)
	if err != nil {
		return nil, err
	}

	id, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("client.ChainID -> %w", err)
	}

	return id, nil
}

func (d *GeoShapesDAO) TokensOfOwner(ctx context.Context, owner common.Address) ([]*big.Int, error) {
	out, err := d.call(ctx, "getTokensOfOwner", owner)
	if err != nil {
		return nil, err
	}

	ids, ok := abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)
	if !ok {
		return nil, ErrUnexpectedType
	}

	return *ids, nil
}

func (d *GeoShapesDAO) TotalSupply(ctx context.Context) (*big.Int, error) {
	return d.callUint256(ctx, "totalSupply")
}

func (d *GeoShapesDAO) MintedBy(ctx context.Context, minter common.Address) (*big.Int, error) {
	return d.callUint256(ctx, "mintedBy", minter)
}

// Mint sends the payable mint() call and returns once the node has accepted
// the transaction. It does not wait for it to be mined.
func (d *GeoShapesDAO) Mint(ctx context.Context, value *big.Int) (common.Hash, error) {
	if d.key == nil {
		return common.Hash{}, ErrNoWallet
	}

	_, contract, err := d.bound(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(d.key, d.chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("bind.NewKeyedTransactorWithChainID -> %w", err)
	}
	opts.Context = ctx
	opts.Value = new(big.Int).Set(value)

	tx, err := contract.Transact(opts, "mint")
	if err != nil {
		return common.Hash{}, fmt.Errorf("contract.Transact -> %w", err)
	}

	return tx.Hash(), nil
}

func (d *GeoShapesDAO) callUint256(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	out, err := d.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}

	n, ok := abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !ok || *n == nil {
		return nil, ErrUnexpectedType
	}

	return *n, nil
}

func (d *GeoShapesDAO) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	_, contract, err := d.bound(ctx)
	if err != nil {
		return nil, err
	}

	var out []interface{}
	if err = contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return nil, fmt.Errorf("contract.Call(%s) -> %w", method, err)
	}
	if len(out) == 0 {
		return nil, ErrUnexpectedType
	}

	return out, nil
}
