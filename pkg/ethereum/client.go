// Package ethereum wraps the go-ethereum client with the gateway's connection,
// signing and receipt handling conventions. Everything protocol-specific lives
// one layer up in pkg/protocol; this package only knows about the chain.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/config"
)

var (
	// ErrWalletNotConnected is returned by Transactor when the client was
	// built without a private key and a state-changing call is attempted.
	ErrWalletNotConnected = errors.New("ethereum: wallet not connected")

	// ErrTxReverted is returned when a mined transaction has a failed status.
	ErrTxReverted = errors.New("ethereum: transaction reverted")
)

// Client is a connected Ethereum node handle. The private key is optional;
// without it the client serves reads only and Transactor fails.
type Client struct {
	eth         *ethclient.Client
	chainID     *big.Int
	privateKey  *ecdsa.PrivateKey
	from        common.Address
	gasLimit    uint64
	maxGasPrice *big.Int
	logger      *zap.Logger
}

// NewClient dials the configured RPC endpoint and verifies the chain id. If
// cfg.PrivateKey is set the client can sign transactions as that account.
func NewClient(ctx context.Context, cfg config.EthereumConfig, logger *zap.Logger) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ethereum node: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to query chain id: %w", err)
	}
	if cfg.ChainID != 0 && chainID.Int64() != cfg.ChainID {
		eth.Close()
		return nil, fmt.Errorf("chain id mismatch: node reports %d, config expects %d", chainID.Int64(), cfg.ChainID)
	}

	client := &Client{
		eth:      eth,
		chainID:  chainID,
		gasLimit: cfg.GasLimit,
		logger:   logger,
	}

	if cfg.MaxGasPrice != "" {
		maxGasPrice, ok := new(big.Int).SetString(cfg.MaxGasPrice, 10)
		if !ok {
			eth.Close()
			return nil, fmt.Errorf("invalid max_gas_price %q: expected wei as a decimal integer", cfg.MaxGasPrice)
		}
		client.maxGasPrice = maxGasPrice
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			eth.Close()
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		client.privateKey = key
		client.from = crypto.PubkeyToAddress(key.PublicKey)
		logger.Info("ethereum client connected with signing key",
			zap.String("from", client.from.Hex()),
			zap.Int64("chain_id", chainID.Int64()))
	} else {
		logger.Info("ethereum client connected read-only",
			zap.Int64("chain_id", chainID.Int64()))
	}

	return client, nil
}

// Backend exposes the underlying node connection for contract bindings.
func (c *Client) Backend() bind.ContractBackend {
	return c.eth
}

// From reports the signing account. ok is false for read-only clients.
func (c *Client) From() (common.Address, bool) {
	return c.from, c.privateKey != nil
}

// ChainID returns the connected chain id.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// CallOpts builds read options bound to ctx.
func (c *Client) CallOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

// Transactor builds signing options for a state-changing call. The gas price
// is the node's suggestion, capped at the configured maximum.
func (c *Client) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	if c.privateKey == nil {
		return nil, ErrWalletNotConnected
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = c.gasLimit

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}
	if c.maxGasPrice != nil && gasPrice.Cmp(c.maxGasPrice) > 0 {
		c.logger.Warn("suggested gas price exceeds configured maximum, capping",
			zap.String("suggested", gasPrice.String()),
			zap.String("max", c.maxGasPrice.String()))
		gasPrice = new(big.Int).Set(c.maxGasPrice)
	}
	opts.GasPrice = gasPrice

	return opts, nil
}

// WaitMined blocks until tx has one confirmation and returns its receipt.
// A mined-but-reverted transaction yields ErrTxReverted alongside the receipt
// so callers can still inspect logs.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s: %w", tx.Hash().Hex(), ErrTxReverted)
	}
	return receipt, nil
}

// BlockNumber returns the latest block height.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

// FilterLogs runs a log filter query against the node.
func (c *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return c.eth.FilterLogs(ctx, q)
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}
