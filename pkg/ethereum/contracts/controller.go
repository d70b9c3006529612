package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ProtocolController binds the umbrella owner contract that holds pointers to
// the protocol modules.
type ProtocolController struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewProtocolController creates a controller binding at the given address.
func NewProtocolController(address common.Address, backend bind.ContractBackend) *ProtocolController {
	return &ProtocolController{
		contract: bind.NewBoundContract(address, ProtocolControllerABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (c *ProtocolController) Address() common.Address {
	return c.address
}

func (c *ProtocolController) Owner(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "owner"); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *ProtocolController) SetStakingPool(opts *bind.TransactOpts, pool common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setStakingPool", pool)
}

func (c *ProtocolController) SetMiningPool(opts *bind.TransactOpts, pool common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setMiningPool", pool)
}

func (c *ProtocolController) SetSwapPool(opts *bind.TransactOpts, pool common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setSwapPool", pool)
}

func (c *ProtocolController) SetWheelOfFortune(opts *bind.TransactOpts, wheel common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setWheelOfFortune", wheel)
}

func (c *ProtocolController) SetRocketGame(opts *bind.TransactOpts, game common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setRocketGame", game)
}

func (c *ProtocolController) SetLottery(opts *bind.TransactOpts, lottery common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setLottery", lottery)
}

func (c *ProtocolController) SetReferralProgram(opts *bind.TransactOpts, program common.Address) (*types.Transaction, error) {
	return c.contract.Transact(opts, "setReferralProgram", program)
}

// Ownable is a generic binding used to probe owner() on arbitrary addresses
// when resolving ownership chains.
type Ownable struct {
	contract *bind.BoundContract
}

// NewOwnable creates a generic owner() probe at the given address.
func NewOwnable(address common.Address, backend bind.ContractBackend) *Ownable {
	return &Ownable{
		contract: bind.NewBoundContract(address, OwnableABI, backend, backend, backend),
	}
}

func (o *Ownable) Owner(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	if err := o.contract.Call(opts, &out, "owner"); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
