package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// TokenBalances is a user's LIPT and USDT holdings in token units.
type TokenBalances struct {
	Lipt decimal.Decimal `json:"lipt"`
	Usdt decimal.Decimal `json:"usdt"`
}

// GetTokenBalances reads both pair balances for user.
func (p *Protocol) GetTokenBalances(ctx context.Context, user common.Address) Result[TokenBalances] {
	opts := p.backend.CallOpts(ctx)

	lipt, err := p.liptToken.BalanceOf(opts, user)
	if err != nil {
		p.logger.Error("failed to fetch lipt balance",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[TokenBalances](err)
	}
	usdt, err := p.usdtToken.BalanceOf(opts, user)
	if err != nil {
		p.logger.Error("failed to fetch usdt balance",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[TokenBalances](err)
	}

	return Ok(TokenBalances{
		Lipt: units.FromWei(lipt, p.liptDecimals),
		Usdt: units.FromWei(usdt, p.liptDecimals),
	})
}

// GetTotalSupply reads the LIPT total supply.
func (p *Protocol) GetTotalSupply(ctx context.Context) Result[decimal.Decimal] {
	supply, err := p.liptToken.TotalSupply(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch total supply", zap.Error(err))
		return Failed[decimal.Decimal](err)
	}
	return Ok(units.FromWei(supply, p.liptDecimals))
}

// TransferLipt sends amount of LIPT to the recipient.
func (p *Protocol) TransferLipt(ctx context.Context, to common.Address, amount decimal.Decimal) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "transfer", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.liptToken.Transfer(opts, to, units.ToWei(amount, p.liptDecimals))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// MintLipt mints new supply to the recipient. The contract restricts this to
// its owner; the adapter submits regardless and lets the chain enforce it.
func (p *Protocol) MintLipt(ctx context.Context, to common.Address, amount decimal.Decimal) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "mint", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.liptToken.Mint(opts, to, units.ToWei(amount, p.liptDecimals))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}
