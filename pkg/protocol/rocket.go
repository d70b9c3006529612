package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// CurrentRocketRound reads the active round number.
func (p *Protocol) CurrentRocketRound(ctx context.Context) Result[int64] {
	if p.rocket == nil {
		return Failed[int64](ErrNotConfigured)
	}
	round, err := p.rocket.CurrentRound(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch current rocket round", zap.Error(err))
		return Failed[int64](err)
	}
	return Ok(round.Int64())
}

// PlayRocket bets betAmount on the current round and returns the decoded bet
// confirmation, including the round the bet actually entered.
func (p *Protocol) PlayRocket(ctx context.Context, betAmount decimal.Decimal) (*RocketBet, error) {
	if p.rocket == nil {
		return nil, ErrNotConfigured
	}
	from, ok := p.backend.From()
	if !ok {
		return nil, ErrWalletNotConnected
	}

	betWei := units.ToWei(betAmount, p.liptDecimals)
	if err := p.ensureAllowance(ctx, p.liptToken, p.rocket.Address(), betWei); err != nil {
		return nil, err
	}

	receipt, err := p.submit(ctx, "play_rocket", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.rocket.PlayRocket(opts, betWei)
	})
	if err != nil {
		return nil, err
	}

	event, err := ethereum.DecodeRocketBetPlaced(receipt, p.rocket.Address(), from)
	if err != nil {
		return nil, err
	}
	return &RocketBet{
		TxConfirmation: confirmation(receipt),
		Amount:         units.FromWei(event.Amount, p.liptDecimals),
		Round:          event.Round.Int64(),
	}, nil
}

// CashOutRocket exits the caller's live bet. The payout exists only in the
// RocketCashedOut event; a missing event is ErrEventNotFound and a decoded
// zero payout is ErrZeroWinnings, because a successful cash-out always pays.
// Neither is reported as a zero-value success.
func (p *Protocol) CashOutRocket(ctx context.Context) (*RocketCashOut, error) {
	if p.rocket == nil {
		return nil, ErrNotConfigured
	}
	from, ok := p.backend.From()
	if !ok {
		return nil, ErrWalletNotConnected
	}

	receipt, err := p.submit(ctx, "cash_out_rocket", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.rocket.CashOutRocket(opts)
	})
	if err != nil {
		return nil, err
	}

	event, err := ethereum.DecodeRocketCashedOut(receipt, p.rocket.Address(), from)
	if err != nil {
		return nil, err
	}
	if event.Amount == nil || event.Amount.Sign() == 0 {
		return nil, ErrZeroWinnings
	}
	return &RocketCashOut{
		TxConfirmation: confirmation(receipt),
		Amount:         units.FromWei(event.Amount, p.liptDecimals),
		Multiplier:     decimal.NewFromBigInt(event.Multiplier, -4),
	}, nil
}
