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

// GetLiquidityPoolData snapshots the pool. Pass a user address to include
// that user's LP balance and pool share; pass nil for the pool-only view.
func (p *Protocol) GetLiquidityPoolData(ctx context.Context, user *common.Address) Result[LiquidityPoolData] {
	opts := p.backend.CallOpts(ctx)

	reserves, err := p.swapPool.GetReserves(opts)
	if err != nil {
		p.logger.Error("failed to fetch pool reserves", zap.Error(err))
		return Failed[LiquidityPoolData](err)
	}
	lpSupply, err := p.swapPool.TotalSupply(opts)
	if err != nil {
		p.logger.Error("failed to fetch lp supply", zap.Error(err))
		return Failed[LiquidityPoolData](err)
	}

	data := LiquidityPoolData{
		TotalLipt:     units.FromWei(reserves.LiptReserve, p.liptDecimals),
		TotalUsdt:     units.FromWei(reserves.UsdtReserve, p.liptDecimals),
		TotalLpTokens: units.FromWei(lpSupply, p.liptDecimals),
	}

	// Price is usdt per lipt; an empty pool has no price, reported as zero
	// rather than dividing by zero.
	if !data.TotalLipt.IsZero() {
		data.LiptPrice = data.TotalUsdt.Div(data.TotalLipt)
	}

	if user != nil {
		userLp, err := p.swapPool.BalanceOf(opts, *user)
		if err != nil {
			p.logger.Error("failed to fetch user lp balance",
				zap.String("user", user.Hex()),
				zap.Error(err))
			return Failed[LiquidityPoolData](err)
		}
		data.UserLpTokens = units.FromWei(userLp, p.liptDecimals)
		if !data.TotalLpTokens.IsZero() {
			data.UserPoolSharePct = data.UserLpTokens.Div(data.TotalLpTokens).Shift(2)
		}
	}

	return Ok(data)
}

// SwapFeePercent reads the pool's fee.
func (p *Protocol) SwapFeePercent(ctx context.Context) Result[decimal.Decimal] {
	bp, err := p.swapPool.SwapFeeBasisPoints(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch swap fee", zap.Error(err))
		return Failed[decimal.Decimal](err)
	}
	return Ok(units.BasisPointsToPercent(units.BasisPointsFromBig(bp)))
}

// Swap trades amountIn of the input token for the other side of the pool.
// usdtToLipt selects the direction; the allowance check runs against the
// token actually being spent.
func (p *Protocol) Swap(ctx context.Context, amountIn decimal.Decimal, usdtToLipt bool) (*TxConfirmation, error) {
	amountWei := units.ToWei(amountIn, p.liptDecimals)

	inputToken := p.liptToken
	if usdtToLipt {
		inputToken = p.usdtToken
	}
	if err := p.ensureAllowance(ctx, inputToken, p.swapPool.Address(), amountWei); err != nil {
		return nil, err
	}

	receipt, err := p.submit(ctx, "swap", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.swapPool.Swap(opts, amountWei, usdtToLipt)
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// AddLiquidity deposits both sides of the pair, approving each token
// separately when needed.
func (p *Protocol) AddLiquidity(ctx context.Context, liptAmount, usdtAmount decimal.Decimal) (*TxConfirmation, error) {
	liptWei := units.ToWei(liptAmount, p.liptDecimals)
	usdtWei := units.ToWei(usdtAmount, p.liptDecimals)

	if err := p.ensureAllowance(ctx, p.liptToken, p.swapPool.Address(), liptWei); err != nil {
		return nil, err
	}
	if err := p.ensureAllowance(ctx, p.usdtToken, p.swapPool.Address(), usdtWei); err != nil {
		return nil, err
	}

	receipt, err := p.submit(ctx, "add_liquidity", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.swapPool.AddLiquidity(opts, liptWei, usdtWei)
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// RemoveLiquidity burns lpAmount of the caller's LP tokens for the underlying
// pair. LP tokens are pool-native, no approval is involved.
func (p *Protocol) RemoveLiquidity(ctx context.Context, lpAmount decimal.Decimal) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "remove_liquidity", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.swapPool.RemoveLiquidity(opts, units.ToWei(lpAmount, p.liptDecimals))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}
