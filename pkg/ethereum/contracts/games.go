package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// WheelSegmentData mirrors one entry of the wheel's segment array. Multiplier
// is in basis points (10000 = 1.0x).
type WheelSegmentData struct {
	Multiplier *big.Int
	Weight     *big.Int
	Color      string
}

// WheelOfFortune binds the wheel game contract.
type WheelOfFortune struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewWheelOfFortune creates a wheel binding at the given address.
func NewWheelOfFortune(address common.Address, backend bind.ContractBackend) *WheelOfFortune {
	return &WheelOfFortune{
		contract: bind.NewBoundContract(address, WheelOfFortuneABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (w *WheelOfFortune) Address() common.Address {
	return w.address
}

// Segments reads the segment at index i. The contract exposes no length
// accessor; reads past the end revert.
func (w *WheelOfFortune) Segments(opts *bind.CallOpts, i *big.Int) (WheelSegmentData, error) {
	var out []interface{}
	if err := w.contract.Call(opts, &out, "segments", i); err != nil {
		return WheelSegmentData{}, err
	}
	return WheelSegmentData{
		Multiplier: *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		Weight:     *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		Color:      *abi.ConvertType(out[2], new(string)).(*string),
	}, nil
}

func (w *WheelOfFortune) HouseEdgeBasisPoints(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := w.contract.Call(opts, &out, "houseEdgeBasisPoints"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (w *WheelOfFortune) SpinWheel(opts *bind.TransactOpts, betAmount *big.Int) (*types.Transaction, error) {
	return w.contract.Transact(opts, "spinWheel", betAmount)
}

func (w *WheelOfFortune) SetWheelSegments(opts *bind.TransactOpts, newSegments []WheelSegmentData) (*types.Transaction, error) {
	return w.contract.Transact(opts, "setWheelSegments", newSegments)
}

// RocketGame binds the crash game contract.
type RocketGame struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewRocketGame creates a rocket game binding at the given address.
func NewRocketGame(address common.Address, backend bind.ContractBackend) *RocketGame {
	return &RocketGame{
		contract: bind.NewBoundContract(address, RocketGameABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (r *RocketGame) Address() common.Address {
	return r.address
}

func (r *RocketGame) CurrentRound(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "currentRound"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (r *RocketGame) PlayRocket(opts *bind.TransactOpts, betAmount *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "playRocket", betAmount)
}

func (r *RocketGame) CashOutRocket(opts *bind.TransactOpts) (*types.Transaction, error) {
	return r.contract.Transact(opts, "cashOutRocket")
}

// Lottery binds the lottery contract.
type Lottery struct {
	contract *bind.BoundContract
	address  common.Address
}

// NewLottery creates a lottery binding at the given address.
func NewLottery(address common.Address, backend bind.ContractBackend) *Lottery {
	return &Lottery{
		contract: bind.NewBoundContract(address, LotteryABI, backend, backend, backend),
		address:  address,
	}
}

// Address returns the deployed contract address.
func (l *Lottery) Address() common.Address {
	return l.address
}

func (l *Lottery) CurrentDraw(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := l.contract.Call(opts, &out, "currentDraw"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (l *Lottery) TicketPrice(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	if err := l.contract.Call(opts, &out, "ticketPrice"); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (l *Lottery) TicketsBought(opts *bind.CallOpts, user common.Address) (*big.Int, error) {
	var out []interface{}
	if err := l.contract.Call(opts, &out, "ticketsBought", user); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (l *Lottery) BuyTickets(opts *bind.TransactOpts, count *big.Int) (*types.Transaction, error) {
	return l.contract.Transact(opts, "buyTickets", count)
}

func (l *Lottery) ClaimLotteryPrize(opts *bind.TransactOpts, drawId *big.Int) (*types.Transaction, error) {
	return l.contract.Transact(opts, "claimLotteryPrize", drawId)
}
