package protocol

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// GetStakingPlans returns all plans in array order; the slice index is the
// plan id used by Stake.
func (p *Protocol) GetStakingPlans(ctx context.Context) Result[[]StakingPlan] {
	raw, err := p.staking.GetStakingPlans(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch staking plans", zap.Error(err))
		return Failed[[]StakingPlan](err)
	}
	if len(raw) == 0 {
		return EmptyResult[[]StakingPlan]()
	}

	plans := make([]StakingPlan, 0, len(raw))
	for i, plan := range raw {
		plans = append(plans, StakingPlan{
			Index:        int64(i),
			Cost:         units.FromWei(plan.Cost, p.liptDecimals),
			APYPercent:   units.BasisPointsToPercent(units.BasisPointsFromBig(plan.ApyBasisPoints)),
			DurationDays: units.SecondsToDays(plan.Duration.Int64()),
			Active:       plan.Active,
		})
	}
	return Ok(plans)
}

// GetUserStakes returns the user's positions. Each position's accrued reward
// comes from its own view call; a single failing reward call zeroes that
// position's AvailableRewards instead of failing the whole list.
func (p *Protocol) GetUserStakes(ctx context.Context, user common.Address) Result[[]UserStake] {
	raw, err := p.staking.GetUserStakes(p.backend.CallOpts(ctx), user)
	if err != nil {
		p.logger.Error("failed to fetch user stakes",
			zap.String("user", user.Hex()),
			zap.Error(err))
		return Failed[[]UserStake](err)
	}
	if len(raw) == 0 {
		return EmptyResult[[]UserStake]()
	}

	stakes := make([]UserStake, 0, len(raw))
	for i, stake := range raw {
		available := decimal.Zero
		rewards, err := p.staking.CalculateRewards(p.backend.CallOpts(ctx), user, big.NewInt(int64(i)))
		if err != nil {
			p.logger.Error("failed to calculate stake rewards",
				zap.String("user", user.Hex()),
				zap.Int("stake_index", i),
				zap.Error(err))
		} else {
			available = units.FromWei(rewards, p.liptDecimals)
		}

		stakes = append(stakes, UserStake{
			Index:            int64(i),
			Amount:           units.FromWei(stake.Amount, p.liptDecimals),
			PlanIndex:        stake.PlanId.Int64(),
			StartDate:        time.Unix(stake.StartTime.Int64(), 0).UTC(),
			AvailableRewards: available,
			RewardsClaimed:   units.FromWei(stake.RewardsClaimed, p.liptDecimals),
		})
	}
	return Ok(stakes)
}

// EarlyUnstakePenaltyPercent reads the penalty applied to before-term exits.
func (p *Protocol) EarlyUnstakePenaltyPercent(ctx context.Context) Result[decimal.Decimal] {
	bp, err := p.staking.EarlyUnstakePenaltyBasisPoints(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch early unstake penalty", zap.Error(err))
		return Failed[decimal.Decimal](err)
	}
	return Ok(units.BasisPointsToPercent(units.BasisPointsFromBig(bp)))
}

// Stake locks amount into the plan at planIndex, approving the pool first if
// the current allowance does not cover the amount.
func (p *Protocol) Stake(ctx context.Context, planIndex int64, amount decimal.Decimal) (*TxConfirmation, error) {
	amountWei := units.ToWei(amount, p.liptDecimals)
	if err := p.ensureAllowance(ctx, p.liptToken, p.staking.Address(), amountWei); err != nil {
		return nil, err
	}
	receipt, err := p.submit(ctx, "stake", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.staking.Stake(opts, amountWei, big.NewInt(planIndex))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// Unstake closes the position at stakeIndex. Exiting before term incurs the
// contract's early penalty; the adapter does not second-guess that.
func (p *Protocol) Unstake(ctx context.Context, stakeIndex int64) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "unstake", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.staking.Unstake(opts, big.NewInt(stakeIndex))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// ClaimStakingRewards claims accrued rewards on the position at stakeIndex
// without closing it.
func (p *Protocol) ClaimStakingRewards(ctx context.Context, stakeIndex int64) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "claim_rewards", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.staking.ClaimRewards(opts, big.NewInt(stakeIndex))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// AddStakingPlan appends a plan. The contract enforces ownership; this is not
// re-checked client side.
func (p *Protocol) AddStakingPlan(ctx context.Context, cost decimal.Decimal, apyPercent decimal.Decimal, durationDays int64) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "add_staking_plan", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.staking.AddStakingPlan(opts,
			units.ToWei(cost, p.liptDecimals),
			big.NewInt(units.PercentToBasisPoints(apyPercent)),
			big.NewInt(units.DaysToSeconds(durationDays)))
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}

// ModifyStakingPlan rewrites the plan at planIndex in place, including the
// active flag. Plan indices shift for no one, but cached copies of this plan
// elsewhere go stale.
func (p *Protocol) ModifyStakingPlan(ctx context.Context, planIndex int64, cost decimal.Decimal, apyPercent decimal.Decimal, durationDays int64, active bool) (*TxConfirmation, error) {
	receipt, err := p.submit(ctx, "modify_staking_plan", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return p.staking.ModifyStakingPlan(opts,
			big.NewInt(planIndex),
			units.ToWei(cost, p.liptDecimals),
			big.NewInt(units.PercentToBasisPoints(apyPercent)),
			big.NewInt(units.DaysToSeconds(durationDays)),
			active)
	})
	if err != nil {
		return nil, err
	}
	conf := confirmation(receipt)
	return &conf, nil
}
