// Package protocol exposes the LIPT protocol contracts as domain-level
// adapters: reads normalize raw chain values (wei, basis points, seconds,
// array indices) into decimal UI units, writes run the allowance-approve-
// submit-confirm flow and decode outcome events from receipts.
package protocol

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/config"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
	"github.com/liptlabs/lipt-gateway/pkg/units"
)

// Backend is the chain client surface the adapters need. *ethereum.Client
// satisfies it; tests substitute their own.
type Backend interface {
	CallOpts(ctx context.Context) *bind.CallOpts
	Transactor(ctx context.Context) (*bind.TransactOpts, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	From() (common.Address, bool)
}

// TokenContract is the ERC-20 surface used by the adapters.
type TokenContract interface {
	Address() common.Address
	BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error)
	Allowance(opts *bind.CallOpts, owner, spender common.Address) (*big.Int, error)
	Decimals(opts *bind.CallOpts) (uint8, error)
	TotalSupply(opts *bind.CallOpts) (*big.Int, error)
	Owner(opts *bind.CallOpts) (common.Address, error)
	Approve(opts *bind.TransactOpts, spender common.Address, value *big.Int) (*types.Transaction, error)
	Transfer(opts *bind.TransactOpts, to common.Address, value *big.Int) (*types.Transaction, error)
	Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error)
}

// SwapContract is the pool surface used by the swap adapter.
type SwapContract interface {
	Address() common.Address
	GetReserves(opts *bind.CallOpts) (contracts.Reserves, error)
	TotalSupply(opts *bind.CallOpts) (*big.Int, error)
	BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error)
	SwapFeeBasisPoints(opts *bind.CallOpts) (*big.Int, error)
	Swap(opts *bind.TransactOpts, amountIn *big.Int, usdtToLipt bool) (*types.Transaction, error)
	AddLiquidity(opts *bind.TransactOpts, liptAmount, usdtAmount *big.Int) (*types.Transaction, error)
	RemoveLiquidity(opts *bind.TransactOpts, lpAmount *big.Int) (*types.Transaction, error)
}

// StakingContract is the staking pool surface used by the staking adapter.
type StakingContract interface {
	Address() common.Address
	GetStakingPlans(opts *bind.CallOpts) ([]contracts.StakingPlanData, error)
	GetUserStakes(opts *bind.CallOpts, user common.Address) ([]contracts.UserStakeData, error)
	CalculateRewards(opts *bind.CallOpts, user common.Address, stakeIndex *big.Int) (*big.Int, error)
	EarlyUnstakePenaltyBasisPoints(opts *bind.CallOpts) (*big.Int, error)
	Stake(opts *bind.TransactOpts, amount, planId *big.Int) (*types.Transaction, error)
	Unstake(opts *bind.TransactOpts, stakeIndex *big.Int) (*types.Transaction, error)
	ClaimRewards(opts *bind.TransactOpts, stakeIndex *big.Int) (*types.Transaction, error)
	AddStakingPlan(opts *bind.TransactOpts, cost, apyBasisPoints, duration *big.Int) (*types.Transaction, error)
	ModifyStakingPlan(opts *bind.TransactOpts, planId, cost, apyBasisPoints, duration *big.Int, active bool) (*types.Transaction, error)
}

// MiningContract is the mining pool surface used by the mining adapter.
type MiningContract interface {
	Address() common.Address
	GetMiningPlans(opts *bind.CallOpts) ([]contracts.MiningPlanData, error)
	GetUserMiners(opts *bind.CallOpts, user common.Address) ([]contracts.UserMinerData, error)
	CalculateMinerRewards(opts *bind.CallOpts, user common.Address, minerIndex *big.Int) (*big.Int, error)
	ActivateMiner(opts *bind.TransactOpts, planId *big.Int) (*types.Transaction, error)
	ClaimMinerRewards(opts *bind.TransactOpts, minerIndex *big.Int) (*types.Transaction, error)
	AddMiningPlan(opts *bind.TransactOpts, cost, hashRate, duration *big.Int) (*types.Transaction, error)
	ModifyMiningPlan(opts *bind.TransactOpts, planId, cost, hashRate, duration *big.Int, active bool) (*types.Transaction, error)
}

// WheelContract is the wheel game surface.
type WheelContract interface {
	Address() common.Address
	Segments(opts *bind.CallOpts, i *big.Int) (contracts.WheelSegmentData, error)
	HouseEdgeBasisPoints(opts *bind.CallOpts) (*big.Int, error)
	SpinWheel(opts *bind.TransactOpts, betAmount *big.Int) (*types.Transaction, error)
	SetWheelSegments(opts *bind.TransactOpts, newSegments []contracts.WheelSegmentData) (*types.Transaction, error)
}

// RocketContract is the crash game surface.
type RocketContract interface {
	Address() common.Address
	CurrentRound(opts *bind.CallOpts) (*big.Int, error)
	PlayRocket(opts *bind.TransactOpts, betAmount *big.Int) (*types.Transaction, error)
	CashOutRocket(opts *bind.TransactOpts) (*types.Transaction, error)
}

// LotteryContract is the lottery surface.
type LotteryContract interface {
	Address() common.Address
	CurrentDraw(opts *bind.CallOpts) (*big.Int, error)
	TicketPrice(opts *bind.CallOpts) (*big.Int, error)
	TicketsBought(opts *bind.CallOpts, user common.Address) (*big.Int, error)
	BuyTickets(opts *bind.TransactOpts, count *big.Int) (*types.Transaction, error)
	ClaimLotteryPrize(opts *bind.TransactOpts, drawId *big.Int) (*types.Transaction, error)
}

// ReferralContract is the referral program surface.
type ReferralContract interface {
	Address() common.Address
	GetReferrer(opts *bind.CallOpts, user common.Address) (common.Address, error)
	GetTotalCommissions(opts *bind.CallOpts, user common.Address) (*big.Int, error)
	GetReferralCount(opts *bind.CallOpts, user common.Address) (*big.Int, error)
	GetCommissionRates(opts *bind.CallOpts) ([]*big.Int, error)
	Register(opts *bind.TransactOpts, referrer common.Address) (*types.Transaction, error)
}

// OwnerProber resolves owner() on an arbitrary address. Used when walking
// ownership chains through addresses that may not be contracts at all.
type OwnerProber func(ctx context.Context, address common.Address) (common.Address, error)

// Protocol bundles all contract adapters behind one injected client. Nothing
// here is a singleton; construct as many instances as there are chains.
type Protocol struct {
	backend Backend
	logger  *zap.Logger

	liptToken TokenContract
	usdtToken TokenContract
	swapPool  SwapContract
	staking   StakingContract
	mining    MiningContract
	wheel     WheelContract
	rocket    RocketContract
	lottery   LotteryContract
	referral  ReferralContract

	controllerAddr common.Address
	probeOwner     OwnerProber

	// liptDecimals is resolved once at construction, defaulting when the
	// decimals() call fails. USDT shares the exponent in this deployment.
	liptDecimals int32
}

// New wires the protocol adapters against a connected client and the
// configured contract addresses. Optional contracts (games, referral,
// controller) are left nil when unconfigured and their adapters fail fast.
func New(ctx context.Context, client *ethereum.Client, cfg config.ContractsConfig, logger *zap.Logger) *Protocol {
	backend := client.Backend()

	p := &Protocol{
		backend:   client,
		logger:    logger,
		liptToken: contracts.NewLiptToken(common.HexToAddress(cfg.LiptToken), backend),
		usdtToken: contracts.NewLiptToken(common.HexToAddress(cfg.UsdtToken), backend),
		swapPool:  contracts.NewSwapPool(common.HexToAddress(cfg.SwapPool), backend),
		staking:   contracts.NewStakingPool(common.HexToAddress(cfg.StakingPool), backend),
		mining:    contracts.NewMiningPool(common.HexToAddress(cfg.MiningPool), backend),
		probeOwner: func(ctx context.Context, address common.Address) (common.Address, error) {
			return contracts.NewOwnable(address, backend).Owner(&bind.CallOpts{Context: ctx})
		},
	}

	if cfg.WheelOfFortune != "" {
		p.wheel = contracts.NewWheelOfFortune(common.HexToAddress(cfg.WheelOfFortune), backend)
	}
	if cfg.RocketGame != "" {
		p.rocket = contracts.NewRocketGame(common.HexToAddress(cfg.RocketGame), backend)
	}
	if cfg.Lottery != "" {
		p.lottery = contracts.NewLottery(common.HexToAddress(cfg.Lottery), backend)
	}
	if cfg.ReferralProgram != "" {
		p.referral = contracts.NewReferralProgram(common.HexToAddress(cfg.ReferralProgram), backend)
	}
	if cfg.Controller != "" {
		p.controllerAddr = common.HexToAddress(cfg.Controller)
	}

	p.liptDecimals = p.resolveDecimals(ctx)
	return p
}

func (p *Protocol) resolveDecimals(ctx context.Context) int32 {
	decimals, err := p.liptToken.Decimals(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Warn("failed to read token decimals, assuming default",
			zap.Int("default", units.DefaultTokenDecimals),
			zap.Error(err))
		return units.DefaultTokenDecimals
	}
	return int32(decimals)
}

// Decimals reports the token decimal exponent the adapters convert with.
func (p *Protocol) Decimals() int32 {
	return p.liptDecimals
}

// submit runs the shared write tail: build signing options, call submitFn,
// wait one confirmation. The receipt is returned for event decoding.
func (p *Protocol) submit(ctx context.Context, action string, submitFn func(opts *bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	opts, err := p.backend.Transactor(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := submitFn(opts)
	if err != nil {
		return nil, err
	}
	p.logger.Info("transaction submitted",
		zap.String("action", action),
		zap.String("tx", tx.Hash().Hex()))
	receipt, err := p.backend.WaitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("transaction confirmed",
		zap.String("action", action),
		zap.String("tx", tx.Hash().Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()))
	return receipt, nil
}

func confirmation(receipt *types.Receipt) TxConfirmation {
	return TxConfirmation{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
}
