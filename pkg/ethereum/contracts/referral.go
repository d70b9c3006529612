package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReferralProgram binds the referral program contract.
type ReferralProgram struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewReferralProgram creates a referral binding at the given address.
func NewReferralProgram(address common.Address, backend bind.ContractBackend) *ReferralProgram {
	return &ReferralProgram{
		contract: bind.NewBoundContract(address, ReferralProgramABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (r *ReferralProgram) Address() common.Address {
	return r.address
}

func (r *ReferralProgram) GetReferrer(opts *bind.CallOpts, user common.Address) (common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getReferrer", user); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (r *ReferralProgram) GetTotalCommissions(opts *bind.CallOpts, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getTotalCommissions", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *ReferralProgram) GetReferralCount(opts *bind.CallOpts, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getReferralCount", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *ReferralProgram) GetCommissionRates(opts *bind.CallOpts) ([]*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getCommissionRates"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int), nil
}

func (r *ReferralProgram) Register(opts *bind.TransactOpts, referrer common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "register", referrer)
}
