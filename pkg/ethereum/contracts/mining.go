package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MiningPlanData mirrors the on-chain mining plan struct. Identified by array
// position, same as staking plans.
type MiningPlanData struct {
	Cost     *big.Int
	HashRate *big.Int
	Duration *big.Int // seconds
	Active   bool
}

// UserMinerData mirrors one entry of the per-user miner array.
type UserMinerData struct {
	PlanId         *big.Int
	StartTime      *big.Int // unix seconds
	RewardsClaimed *big.Int
	Active         bool
}

// MiningPool binds the mining pool contract.
type MiningPool struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewMiningPool creates a mining pool binding at the given address.
func NewMiningPool(address common.Address, backend bind.ContractBackend) *MiningPool {
	return &MiningPool{
		contract: bind.NewBoundContract(address, MiningPoolABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (p *MiningPool) Address() common.Address {
	return p.address
}

func (p *MiningPool) GetMiningPlans(opts *bind.CallOpts) ([]MiningPlanData, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "getMiningPlans"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]MiningPlanData)).(*[]MiningPlanData), nil
}

func (p *MiningPool) GetUserMiners(opts *bind.CallOpts, user common.Address) ([]UserMinerData, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "getUserMiners", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]UserMinerData)).(*[]UserMinerData), nil
}

func (p *MiningPool) CalculateMinerRewards(opts *bind.CallOpts, user common.Address, minerIndex *big.Int) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "calculateMinerRewards", user, minerIndex); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (p *MiningPool) ActivateMiner(opts *bind.TransactOpts, planId *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "activateMiner", planId)
}

func (p *MiningPool) ClaimMinerRewards(opts *bind.TransactOpts, minerIndex *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "claimMinerRewards", minerIndex)
}

func (p *MiningPool) AddMiningPlan(opts *bind.TransactOpts, cost, hashRate, duration *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "addMiningPlan", cost, hashRate, duration)
}

func (p *MiningPool) ModifyMiningPlan(opts *bind.TransactOpts, planId, cost, hashRate, duration *big.Int, active bool) (*types.Transaction, error) {
	return p.contract.Transact(opts, "modifyMiningPlan", planId, cost, hashRate, duration, active)
}
