package protocol

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// segmentProbeCap bounds the wheel segment scan. The contract has no length
// accessor, so the only terminator is a reverting read; the cap keeps a
// misbehaving node from turning that into an unbounded loop.
const segmentProbeCap = 100

// GetWheelSegments probes sequential segment indices until a read fails or
// the cap is reached. Hitting the cap sets Truncated: the list may be
// incomplete and the caller should say so, not present it as the full wheel.
func (p *Protocol) GetWheelSegments(ctx context.Context) Result[WheelSegments] {
	if p.wheel == nil {
		return Failed[WheelSegments](ErrNotConfigured)
	}
	opts := p.backend.CallOpts(ctx)

	var segments []WheelSegment
	truncated := true
	for i := 0; i < segmentProbeCap; i++ {
		raw, err := p.wheel.Segments(opts, big.NewInt(int64(i)))
		if err != nil {
			// First failing index marks the end of the array.
			truncated = false
			break
		}
		segments = append(segments, WheelSegment{
			Multiplier: decimal.NewFromBigInt(raw.Multiplier, -4),
			Weight:     raw.Weight.Int64(),
			Color:      raw.Color,
		})
	}
	if truncated {
		p.logger.Warn("wheel segment probe hit iteration cap, list may be truncated",
			zap.Int("cap", segmentProbeCap))
	}

	if len(segments) == 0 && !truncated {
		return EmptyResult[WheelSegments]()
	}
	return Ok(WheelSegments{Segments: segments, Truncated: truncated})
}

// HouseEdgePercent reads the wheel's configured edge.
func (p *Protocol) HouseEdgePercent(ctx context.Context) Result[decimal.Decimal] {
	if p.wheel == nil {
		return Failed[decimal.Decimal](ErrNotConfigured)
	}
	bp, err := p.wheel.HouseEdgeBasisPoints(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch house edge", zap.Error(err))
		return Failed[decimal.Decimal](err)
	}
	return Ok(units.BasisPointsToPercent(units.BasisPointsFromBig(bp)))
}

// SpinWheel bets betAmount and returns the decoded outcome. The contract call
// returns nothing; the multiplier and winnings only exist in the WheelSpun
// event, so a confirmed spin whose receipt lacks the event is an error, not a
// zero outcome.
func (p *Protocol) SpinWheel(ctx context.Context, betAmount decimal.Decimal) (*SpinOutcome, error) {
	if p.wheel == nil {
		return nil, ErrNotConfigured
	}
	from, ok := p.backend.From()
	if !ok {
		return nil, ErrWalletNotConnected
	}

	betWei := units.ToWei(betAmount, p.liptDecimals)
	if err := p.ensureAllowance(ctx, p.liptToken, p.wheel.Address(), betWei); err != nil {
		return nil, err
	}

	receipt, err := p.submit(ctx, "spin_wheel", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.wheel.SpinWheel(opts, betWei)
	})
	if err != nil {
		return nil, err
	}

	event, err := ethereum.DecodeWheelSpun(receipt, p.wheel.Address(), from)
	if err != nil {
		return nil, err
	}
	return &SpinOutcome{
		TxConfirmation: confirmation(receipt),
		BetAmount:      units.FromWei(event.BetAmount, p.liptDecimals),
		Multiplier:     decimal.NewFromBigInt(event.Multiplier, -4),
		Winnings:       units.FromWei(event.Winnings, p.liptDecimals),
	}, nil
}

// SetWheelSegments replaces the whole segment table. Owner-gated on-chain.
func (p *Protocol) SetWheelSegments(ctx context.Context, segments []WheelSegment) (*TxConfirmation, error) {
	if p.wheel == nil {
		return nil, ErrNotConfigured
	}

	raw := make([]contracts.WheelSegmentData, 0, len(segments))
	for _, segment := range segments {
		raw = append(raw, contracts.WheelSegmentData{
			Multiplier: segment.Multiplier.Shift(4).Round(0).BigInt(),
			Weight:     big.NewInt(segment.Weight),
			Color:      segment.Color,
		})
	}

	receipt, err := p.submit(ctx, "set_wheel_segments", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.wheel.SetWheelSegments(opts, raw)
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}
