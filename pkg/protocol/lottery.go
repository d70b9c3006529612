package protocol

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// GetLotteryState reads the current draw and ticket price, plus the user's
// tickets when a user address is given. The contract only counts tickets per
// user, so the ticket numbers are synthesized as 1..n for display and match
// nothing on-chain.
func (p *Protocol) GetLotteryState(ctx context.Context, user *common.Address) Result[LotteryState] {
	if p.lottery == nil {
		return Failed[LotteryState](ErrNotConfigured)
	}
	opts := p.backend.CallOpts(ctx)

	draw, err := p.lottery.CurrentDraw(opts)
	if err != nil {
		p.logger.Error("failed to fetch current draw", zap.Error(err))
		return Failed[LotteryState](err)
	}
	price, err := p.lottery.TicketPrice(opts)
	if err != nil {
		p.logger.Error("failed to fetch ticket price", zap.Error(err))
		return Failed[LotteryState](err)
	}

	state := LotteryState{
		CurrentDraw: draw.Int64(),
		TicketPrice: units.FromWei(price, p.liptDecimals),
	}

	if user != nil {
		count, err := p.lottery.TicketsBought(opts, *user)
		if err != nil {
			p.logger.Error("failed to fetch ticket count",
				zap.String("user", user.Hex()),
				zap.Error(err))
			return Failed[LotteryState](err)
		}
		n := count.Int64()
		state.UserTickets = make([]LotteryTicket, 0, n)
		for i := int64(1); i <= n; i++ {
			state.UserTickets = append(state.UserTickets, LotteryTicket{Number: i})
		}
	}

	return Ok(state)
}

// BuyTickets purchases count tickets in the current draw, approving
// price*count first when the allowance is short.
func (p *Protocol) BuyTickets(ctx context.Context, count int64) (*TxConfirmation, error) {
	if p.lottery == nil {
		return nil, ErrNotConfigured
	}

	price, err := p.lottery.TicketPrice(p.backend.CallOpts(ctx))
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Mul(price, big.NewInt(count))
	if err := p.ensureAllowance(ctx, p.liptToken, p.lottery.Address(), total); err != nil {
		return nil, err
	}

	receipt, err := p.submit(ctx, "buy_tickets", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.lottery.BuyTickets(opts, big.NewInt(count))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// LotteryPrize is a decoded prize payout.
type LotteryPrize struct {
	TxConfirmation
	DrawID int64
	Amount decimal.Decimal
}

// ClaimLotteryPrize claims the caller's prize for drawID and returns the
// decoded payout from the PrizeClaimed event.
func (p *Protocol) ClaimLotteryPrize(ctx context.Context, drawID int64) (*LotteryPrize, error) {
	if p.lottery == nil {
		return nil, ErrNotConfigured
	}
	from, ok := p.backend.From()
	if !ok {
		return nil, ErrWalletNotConnected
	}

	receipt, err := p.submit(ctx, "claim_lottery_prize", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.lottery.ClaimLotteryPrize(opts, big.NewInt(drawID))
	})
	if err != nil {
		return nil, err
	}

	event, err := ethereum.DecodePrizeClaimed(receipt, p.lottery.Address(), from)
	if err != nil {
		return nil, err
	}
	return &LotteryPrize{
		TxConfirmation: confirmation(receipt),
		DrawID:         event.DrawId.Int64(),
		Amount:         units.FromWei(event.Amount, p.liptDecimals),
	}, nil
}
