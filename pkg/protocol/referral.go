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

// GetReferralInfo reads a user's referral standing. A zero referrer address
// means the user never registered under anyone.
func (p *Protocol) GetReferralInfo(ctx context.Context, user common.Address) Result[ReferralInfo] {
	if p.referral == nil {
		return Failed[ReferralInfo](ErrNotConfigured)
	}
	opts := p.backend.CallOpts(ctx)

	referrer, err := p.referral.GetReferrer(opts, user)
	if err != nil {
		p.logger.Error("failed to fetch referrer",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[ReferralInfo](err)
	}
	count, err := p.referral.GetReferralCount(opts, user)
	if err != nil {
		p.logger.Error("failed to fetch referral count",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[ReferralInfo](err)
	}
	commissions, err := p.referral.GetTotalCommissions(opts, user)
	if err != nil {
		p.logger.Error("failed to fetch total commissions",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[ReferralInfo](err)
	}
	rates, err := p.referral.GetCommissionRates(opts)
	if err != nil {
		p.logger.Error("failed to fetch commission rates", zap.Error(err))
		return Failed[ReferralInfo](err)
	}

	ratesPct := make([]decimal.Decimal, 0, len(rates))
	for _, rate := range rates {
		ratesPct = append(ratesPct, units.BasisPointsToPercent(units.BasisPointsFromBig(rate)))
	}

	return Ok(ReferralInfo{
		Referrer:           referrer,
		ReferralCount:      count.Int64(),
		TotalCommissions:   units.FromWei(commissions, p.liptDecimals),
		CommissionRatesPct: ratesPct,
	})
}

// RegisterReferrer records the caller as referred by referrer.
func (p *Protocol) RegisterReferrer(ctx context.Context, referrer common.Address) (*TxConfirmation, error) {
	if p.referral == nil {
		return nil, ErrNotConfigured
	}
	receipt, err := p.submit(ctx, "register_referrer", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.referral.Register(opts, referrer)
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}
