package protocol

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
)

var (
	testUser    = common.HexToAddress("0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa")
	testSpender = common.HexToAddress("0x5555555555555555555555555555555555555555")
)

func dummyTx() *types.Transaction {
	to := common.HexToAddress("0x0000000000000000000000000000000000000001")
	return types.NewTx(&types.LegacyTx{Nonce: 1, GasPrice: big.NewInt(1), Gas: 21000, To: &to})
}

func minedReceipt(logs ...*types.Log) *types.Receipt {
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.HexToHash("0xfeed"),
		BlockNumber: big.NewInt(42),
		Logs:        logs,
	}
}

func newTestProtocol(backend Backend) *Protocol {
	return &Protocol{
		backend:      backend,
		logger:       zap.NewNop(),
		liptDecimals: 18,
	}
}

type mockBackend struct {
	from          common.Address
	connected     bool
	waitMinedFunc func(tx *types.Transaction) (*types.Receipt, error)
}

func (m *mockBackend) CallOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func (m *mockBackend) Transactor(_ context.Context) (*bind.TransactOpts, error) {
	if !m.connected {
		return nil, ErrWalletNotConnected
	}
	return &bind.TransactOpts{From: m.from, NoSend: true}, nil
}

func (m *mockBackend) WaitMined(_ context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if m.waitMinedFunc != nil {
		return m.waitMinedFunc(tx)
	}
	return minedReceipt(), nil
}

func (m *mockBackend) From() (common.Address, bool) {
	return m.from, m.connected
}

type mockToken struct {
	addr            common.Address
	allowanceFunc   func(owner, spender common.Address) (*big.Int, error)
	approveFunc     func(spender common.Address, value *big.Int) (*types.Transaction, error)
	balanceOfFunc   func(account common.Address) (*big.Int, error)
	totalSupplyFunc func() (*big.Int, error)
	ownerFunc       func() (common.Address, error)
	transferFunc    func(to common.Address, value *big.Int) (*types.Transaction, error)
	mintFunc        func(to common.Address, amount *big.Int) (*types.Transaction, error)
}

func (m *mockToken) Address() common.Address { return m.addr }

func (m *mockToken) BalanceOf(_ *bind.CallOpts, account common.Address) (*big.Int, error) {
	return m.balanceOfFunc(account)
}

func (m *mockToken) Allowance(_ *bind.CallOpts, owner, spender common.Address) (*big.Int, error) {
	return m.allowanceFunc(owner, spender)
}

func (m *mockToken) Decimals(_ *bind.CallOpts) (uint8, error) { return 18, nil }

func (m *mockToken) TotalSupply(_ *bind.CallOpts) (*big.Int, error) {
	return m.totalSupplyFunc()
}

func (m *mockToken) Owner(_ *bind.CallOpts) (common.Address, error) {
	return m.ownerFunc()
}

func (m *mockToken) Approve(_ *bind.TransactOpts, spender common.Address, value *big.Int) (*types.Transaction, error) {
	if m.approveFunc != nil {
		return m.approveFunc(spender, value)
	}
	return dummyTx(), nil
}

func (m *mockToken) Transfer(_ *bind.TransactOpts, to common.Address, value *big.Int) (*types.Transaction, error) {
	return m.transferFunc(to, value)
}

func (m *mockToken) Mint(_ *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return m.mintFunc(to, amount)
}

type mockStaking struct {
	addr                 common.Address
	plansFunc            func() ([]contracts.StakingPlanData, error)
	userStakesFunc       func(user common.Address) ([]contracts.UserStakeData, error)
	calculateRewardsFunc func(user common.Address, stakeIndex *big.Int) (*big.Int, error)
	penaltyFunc          func() (*big.Int, error)
	stakeFunc            func(amount, planId *big.Int) (*types.Transaction, error)
	unstakeFunc          func(stakeIndex *big.Int) (*types.Transaction, error)
	claimFunc            func(stakeIndex *big.Int) (*types.Transaction, error)
	addPlanFunc          func(cost, apyBasisPoints, duration *big.Int) (*types.Transaction, error)
	modifyPlanFunc       func(planId, cost, apyBasisPoints, duration *big.Int, active bool) (*types.Transaction, error)
}

func (m *mockStaking) Address() common.Address { return m.addr }

func (m *mockStaking) GetStakingPlans(_ *bind.CallOpts) ([]contracts.StakingPlanData, error) {
	return m.plansFunc()
}

func (m *mockStaking) GetUserStakes(_ *bind.CallOpts, user common.Address) ([]contracts.UserStakeData, error) {
	return m.userStakesFunc(user)
}

func (m *mockStaking) CalculateRewards(_ *bind.CallOpts, user common.Address, stakeIndex *big.Int) (*big.Int, error) {
	return m.calculateRewardsFunc(user, stakeIndex)
}

func (m *mockStaking) EarlyUnstakePenaltyBasisPoints(_ *bind.CallOpts) (*big.Int, error) {
	return m.penaltyFunc()
}

func (m *mockStaking) Stake(_ *bind.TransactOpts, amount, planId *big.Int) (*types.Transaction, error) {
	return m.stakeFunc(amount, planId)
}

func (m *mockStaking) Unstake(_ *bind.TransactOpts, stakeIndex *big.Int) (*types.Transaction, error) {
	return m.unstakeFunc(stakeIndex)
}

func (m *mockStaking) ClaimRewards(_ *bind.TransactOpts, stakeIndex *big.Int) (*types.Transaction, error) {
	return m.claimFunc(stakeIndex)
}

func (m *mockStaking) AddStakingPlan(_ *bind.TransactOpts, cost, apyBasisPoints, duration *big.Int) (*types.Transaction, error) {
	return m.addPlanFunc(cost, apyBasisPoints, duration)
}

func (m *mockStaking) ModifyStakingPlan(_ *bind.TransactOpts, planId, cost, apyBasisPoints, duration *big.Int, active bool) (*types.Transaction, error) {
	return m.modifyPlanFunc(planId, cost, apyBasisPoints, duration, active)
}

type mockMining struct {
	addr                 common.Address
	plansFunc            func() ([]contracts.MiningPlanData, error)
	userMinersFunc       func(user common.Address) ([]contracts.UserMinerData, error)
	calculateRewardsFunc func(user common.Address, minerIndex *big.Int) (*big.Int, error)
	activateFunc         func(planId *big.Int) (*types.Transaction, error)
	claimFunc            func(minerIndex *big.Int) (*types.Transaction, error)
	addPlanFunc          func(cost, hashRate, duration *big.Int) (*types.Transaction, error)
	modifyPlanFunc       func(planId, cost, hashRate, duration *big.Int, active bool) (*types.Transaction, error)
}

func (m *mockMining) Address() common.Address { return m.addr }

func (m *mockMining) GetMiningPlans(_ *bind.CallOpts) ([]contracts.MiningPlanData, error) {
	return m.plansFunc()
}

func (m *mockMining) GetUserMiners(_ *bind.CallOpts, user common.Address) ([]contracts.UserMinerData, error) {
	return m.userMinersFunc(user)
}

func (m *mockMining) CalculateMinerRewards(_ *bind.CallOpts, user common.Address, minerIndex *big.Int) (*big.Int, error) {
	return m.calculateRewardsFunc(user, minerIndex)
}

func (m *mockMining) ActivateMiner(_ *bind.TransactOpts, planId *big.Int) (*types.Transaction, error) {
	return m.activateFunc(planId)
}

func (m *mockMining) ClaimMinerRewards(_ *bind.TransactOpts, minerIndex *big.Int) (*types.Transaction, error) {
	return m.claimFunc(minerIndex)
}

func (m *mockMining) AddMiningPlan(_ *bind.TransactOpts, cost, hashRate, duration *big.Int) (*types.Transaction, error) {
	return m.addPlanFunc(cost, hashRate, duration)
}

func (m *mockMining) ModifyMiningPlan(_ *bind.TransactOpts, planId, cost, hashRate, duration *big.Int, active bool) (*types.Transaction, error) {
	return m.modifyPlanFunc(planId, cost, hashRate, duration, active)
}

type mockSwap struct {
	addr          common.Address
	reservesFunc  func() (contracts.Reserves, error)
	lpSupplyFunc  func() (*big.Int, error)
	balanceOfFunc func(account common.Address) (*big.Int, error)
	feeFunc       func() (*big.Int, error)
	swapFunc      func(amountIn *big.Int, usdtToLipt bool) (*types.Transaction, error)
	addLiqFunc    func(liptAmount, usdtAmount *big.Int) (*types.Transaction, error)
	removeLiqFunc func(lpAmount *big.Int) (*types.Transaction, error)
}

func (m *mockSwap) Address() common.Address { return m.addr }

func (m *mockSwap) GetReserves(_ *bind.CallOpts) (contracts.Reserves, error) {
	return m.reservesFunc()
}

func (m *mockSwap) TotalSupply(_ *bind.CallOpts) (*big.Int, error) {
	return m.lpSupplyFunc()
}

func (m *mockSwap) BalanceOf(_ *bind.CallOpts, account common.Address) (*big.Int, error) {
	return m.balanceOfFunc(account)
}

func (m *mockSwap) SwapFeeBasisPoints(_ *bind.CallOpts) (*big.Int, error) {
	return m.feeFunc()
}

func (m *mockSwap) Swap(_ *bind.TransactOpts, amountIn *big.Int, usdtToLipt bool) (*types.Transaction, error) {
	return m.swapFunc(amountIn, usdtToLipt)
}

func (m *mockSwap) AddLiquidity(_ *bind.TransactOpts, liptAmount, usdtAmount *big.Int) (*types.Transaction, error) {
	return m.addLiqFunc(liptAmount, usdtAmount)
}

func (m *mockSwap) RemoveLiquidity(_ *bind.TransactOpts, lpAmount *big.Int) (*types.Transaction, error) {
	return m.removeLiqFunc(lpAmount)
}

type mockWheel struct {
	addr            common.Address
	segmentsFunc    func(i *big.Int) (contracts.WheelSegmentData, error)
	houseEdgeFunc   func() (*big.Int, error)
	spinFunc        func(betAmount *big.Int) (*types.Transaction, error)
	setSegmentsFunc func(newSegments []contracts.WheelSegmentData) (*types.Transaction, error)
}

func (m *mockWheel) Address() common.Address { return m.addr }

func (m *mockWheel) Segments(_ *bind.CallOpts, i *big.Int) (contracts.WheelSegmentData, error) {
	return m.segmentsFunc(i)
}

func (m *mockWheel) HouseEdgeBasisPoints(_ *bind.CallOpts) (*big.Int, error) {
	return m.houseEdgeFunc()
}

func (m *mockWheel) SpinWheel(_ *bind.TransactOpts, betAmount *big.Int) (*types.Transaction, error) {
	return m.spinFunc(betAmount)
}

func (m *mockWheel) SetWheelSegments(_ *bind.TransactOpts, newSegments []contracts.WheelSegmentData) (*types.Transaction, error) {
	return m.setSegmentsFunc(newSegments)
}

type mockRocket struct {
	addr             common.Address
	currentRoundFunc func() (*big.Int, error)
	playFunc         func(betAmount *big.Int) (*types.Transaction, error)
	cashOutFunc      func() (*types.Transaction, error)
}

func (m *mockRocket) Address() common.Address { return m.addr }

func (m *mockRocket) CurrentRound(_ *bind.CallOpts) (*big.Int, error) {
	return m.currentRoundFunc()
}

func (m *mockRocket) PlayRocket(_ *bind.TransactOpts, betAmount *big.Int) (*types.Transaction, error) {
	return m.playFunc(betAmount)
}

func (m *mockRocket) CashOutRocket(_ *bind.TransactOpts) (*types.Transaction, error) {
	return m.cashOutFunc()
}

type mockLottery struct {
	addr              common.Address
	currentDrawFunc   func() (*big.Int, error)
	ticketPriceFunc   func() (*big.Int, error)
	ticketsBoughtFunc func(user common.Address) (*big.Int, error)
	buyFunc           func(count *big.Int) (*types.Transaction, error)
	claimFunc         func(drawId *big.Int) (*types.Transaction, error)
}

func (m *mockLottery) Address() common.Address { return m.addr }

func (m *mockLottery) CurrentDraw(_ *bind.CallOpts) (*big.Int, error) {
	return m.currentDrawFunc()
}

func (m *mockLottery) TicketPrice(_ *bind.CallOpts) (*big.Int, error) {
	return m.ticketPriceFunc()
}

func (m *mockLottery) TicketsBought(_ *bind.CallOpts, user common.Address) (*big.Int, error) {
	return m.ticketsBoughtFunc(user)
}

func (m *mockLottery) BuyTickets(_ *bind.TransactOpts, count *big.Int) (*types.Transaction, error) {
	return m.buyFunc(count)
}

func (m *mockLottery) ClaimLotteryPrize(_ *bind.TransactOpts, drawId *big.Int) (*types.Transaction, error) {
	return m.claimFunc(drawId)
}
