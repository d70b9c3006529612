package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// LiptToken binds the protocol ERC-20 (LIPT) or its USDT pair token.
type LiptToken struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewLiptToken creates a token binding at the given address.
func NewLiptToken(address common.Address, backend bind.ContractBackend) *LiptToken {
	return &LiptToken{
		contract: bind.NewBoundContract(address, LiptTokenABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (t *LiptToken) Address() common.Address {
	return t.address
}

func (t *LiptToken) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "balanceOf", account); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *LiptToken) Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "allowance", owner, spender); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *LiptToken) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "decimals"); err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

func (t *LiptToken) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "totalSupply"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (t *LiptToken) Owner(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "owner"); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (t *LiptToken) Approve(opts *bind.TransactOpts, spender common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, value)
}

func (t *LiptToken) Transfer(opts *bind.TransactOpts, to common.Address, value *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "transfer", to, value)
}

func (t *LiptToken) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "mint", to, amount)
}
