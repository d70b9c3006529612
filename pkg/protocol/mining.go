package protocol

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// GetMiningPlans returns all mining plans in array order.
func (p *Protocol) GetMiningPlans(ctx context.Context) Result[[]MiningPlan] {
	raw, err := p.mining.GetMiningPlans(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch mining plans", zap.Error(err))
		return Failed[[]MiningPlan](err)
	}
	if len(raw) == 0 {
		return EmptyResult[[]MiningPlan]()
	}

	plans := make([]MiningPlan, 0, len(raw))
	for i, plan := range raw {
		plans = append(plans, MiningPlan{
			Index:        int64(i),
			Cost:         units.FromWei(plan.Cost, p.liptDecimals),
			HashRate:     plan.HashRate.Int64(),
			DurationDays: units.SecondsToDays(plan.Duration.Int64()),
			Active:       plan.Active,
		})
	}
	return Ok(plans)
}

// GetUserMiners returns the user's miners with per-miner accrued rewards.
// A failing reward call zeroes that miner's AvailableRewards only.
func (p *Protocol) GetUserMiners(ctx context.Context, user common.Address) Result[[]UserMiner] {
	raw, err := p.mining.GetUserMiners(p.backend.CallOpts(ctx), user)
	if err != nil {
		p.logger.Error("failed to fetch user miners",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[[]UserMiner](err)
	}
	if len(raw) == 0 {
		return EmptyResult[[]UserMiner]()
	}

	miners := make([]UserMiner, 0, len(raw))
	for i, miner := range raw {
		available := decimal.Zero
		rewards, err := p.mining.CalculateMinerRewards(p.backend.CallOpts(ctx), user, big.NewInt(int64(i)))
		if err != nil {
			p.logger.Error("failed to calculate miner rewards",
				zap.String("user", user.Hex()),
				zap.Int("miner_index", i),
				zap.Error(err))
		} else {
			available = units.FromWei(rewards, p.liptDecimals)
		}

		miners = append(miners, UserMiner{
			Index:            int64(i),
			PlanIndex:        miner.PlanId.Int64(),
			StartDate:        time.Unix(miner.StartTime.Int64(), 0).UTC(),
			AvailableRewards: available,
			RewardsClaimed:   units.FromWei(miner.RewardsClaimed, p.liptDecimals),
			Active:           miner.Active,
		})
	}
	return Ok(miners)
}

// ActivateMiner purchases the plan at planIndex. The plan cost is read first
// so the allowance check covers exactly what the contract will pull.
func (p *Protocol) ActivateMiner(ctx context.Context, planIndex int64) (*TxConfirmation, error) {
	plans, err := p.mining.GetMiningPlans(p.backend.CallOpts(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mining plans: %w", err)
	}
	if planIndex < 0 || planIndex >= int64(len(plans)) {
		return nil, fmt.Errorf("mining plan index %d out of range (%d plans)", planIndex, len(plans))
	}

	if err := p.ensureAllowance(ctx, p.liptToken, p.mining.Address(), plans[planIndex].Cost); err != nil {
		return nil, err
	}
	receipt, err := p.submit(ctx, "activate_miner", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.mining.ActivateMiner(opts, big.NewInt(planIndex))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// ClaimMinerRewards claims accrued rewards on the miner at minerIndex.
func (p *Protocol) ClaimMinerRewards(ctx context.Context, minerIndex int64) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "claim_miner_rewards", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.mining.ClaimMinerRewards(opts, big.NewInt(minerIndex))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// AddMiningPlan appends a mining plan.
func (p *Protocol) AddMiningPlan(ctx context.Context, cost decimal.Decimal, hashRate int64, durationDays int64) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "add_mining_plan", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.mining.AddMiningPlan(opts,
			units.ToWei(cost, p.liptDecimals),
			big.NewInt(hashRate),
			big.NewInt(units.DaysToSeconds(durationDays)))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// ModifyMiningPlan rewrites the plan at planIndex in place.
func (p *Protocol) ModifyMiningPlan(ctx context.Context, planIndex int64, cost decimal.Decimal, hashRate int64, durationDays int64, active bool) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "modify_mining_plan", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.mining.ModifyMiningPlan(opts,
			big.NewInt(planIndex),
			units.ToWei(cost, p.liptDecimals),
			big.NewInt(hashRate),
			big.NewInt(units.DaysToSeconds(durationDays)),
			active)
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}
