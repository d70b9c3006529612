package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// StakingPlanData mirrors the on-chain plan struct. Plans carry no stable id;
// a plan is identified by its position in the contract's append-only array.
type StakingPlanData struct {
	Cost           *big.Int
	ApyBasisPoints *big.Int
	Duration       *big.Int // seconds
	Active         bool
}

// UserStakeData mirrors one entry of the per-user stake array. Accrued rewards
// are not stored here; they come from a separate calculateRewards view call.
type UserStakeData struct {
	Amount         *big.Int
	PlanId         *big.Int
	StartTime      *big.Int // unix seconds
	RewardsClaimed *big.Int
}

// StakingPool binds the staking pool contract.
type StakingPool struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewStakingPool creates a staking pool binding at the given address.
func NewStakingPool(address common.Address, backend bind.ContractBackend) *StakingPool {
	return &StakingPool{
		contract: bind.NewBoundContract(address, StakingPoolABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (p *StakingPool) Address() common.Address {
	return p.address
}

func (p *StakingPool) GetStakingPlans(opts *bind.CallOpts) ([]StakingPlanData, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "getStakingPlans"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]StakingPlanData)).(*[]StakingPlanData), nil
}

func (p *StakingPool) GetUserStakes(opts *bind.CallOpts, user common.Address) ([]UserStakeData, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "getUserStakes", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]UserStakeData)).(*[]UserStakeData), nil
}

func (p *StakingPool) CalculateRewards(opts *bind.CallOpts, user common.Address, stakeIndex *big.Int) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "calculateRewards", user, stakeIndex); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (p *StakingPool) EarlyUnstakePenaltyBasisPoints(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "earlyUnstakePenaltyBasisPoints"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (p *StakingPool) Stake(opts *bind.TransactOpts, amount, planId *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "stake", amount, planId)
}

func (p *StakingPool) Unstake(opts *bind.TransactOpts, stakeIndex *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "unstake", stakeIndex)
}

func (p *StakingPool) ClaimRewards(opts *bind.TransactOpts, stakeIndex *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "claimRewards", stakeIndex)
}

func (p *StakingPool) AddStakingPlan(opts *bind.TransactOpts, cost, apyBasisPoints, duration *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "addStakingPlan", cost, apyBasisPoints, duration)
}

func (p *StakingPool) ModifyStakingPlan(opts *bind.TransactOpts, planId, cost, apyBasisPoints, duration *big.Int, active bool) (*types.Transaction, error) {
	return p.contract.Transact(opts, "modifyStakingPlan", planId, cost, apyBasisPoints, duration, active)
}
