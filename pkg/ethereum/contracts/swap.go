package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Reserves is the raw pool state returned by getReserves.
type Reserves struct {
	LiptReserve *big.Int
	UsdtReserve *big.Int
}

// SwapPool binds the LIPT/USDT pool contract.
type SwapPool struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewSwapPool creates a pool binding at the given address.
func NewSwapPool(address common.Address, backend bind.ContractBackend) *SwapPool {
	return &SwapPool{
		contract: bind.NewBoundContract(address, SwapPoolABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (p *SwapPool) Address() common.Address {
	return p.address
}

func (p *SwapPool) GetReserves(opts *bind.CallOpts) (Reserves, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "getReserves"); err != nil {
		return Reserves{}, err
	}
	return Reserves{
		LiptReserve: *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		UsdtReserve: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
	}, nil
}

func (p *SwapPool) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "totalSupply"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (p *SwapPool) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (p *SwapPool) SwapFeeBasisPoints(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := p.contract.Call(opts, &out, "swapFeeBasisPoints"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (p *SwapPool) Swap(opts *bind.TransactOpts, amountIn *big.Int, usdtToLipt bool) (*types.Transaction, error) {
	return p.contract.Transact(opts, "swap", amountIn, usdtToLipt)
}

func (p *SwapPool) AddLiquidity(opts *bind.TransactOpts, liptAmount, usdtAmount *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "addLiquidity", liptAmount, usdtAmount)
}

func (p *SwapPool) RemoveLiquidity(opts *bind.TransactOpts, lpAmount *big.Int) (*types.Transaction, error) {
	return p.contract.Transact(opts, "removeLiquidity", lpAmount)
}
