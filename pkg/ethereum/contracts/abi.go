// Package contracts provides hand-bound Go wrappers around the deployed LIPT
// protocol contracts. Only the ABI surface the gateway actually calls is
// declared here; the contracts themselves live on-chain and are not part of
// this repository.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// LiptTokenABI covers the ERC-20 surface plus owner-gated mint. The same ABI
// serves the USDT pair token (mint/owner are simply never called on it).
var LiptTokenABI = mustParseABI(`[
	{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"allowance","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"mint","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"decimals","inputs":[],"outputs":[{"name":"","type":"uint8"}],"stateMutability":"view"},
	{"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"Approval","inputs":[{"name":"owner","type":"address","indexed":true},{"name":"spender","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}],"anonymous":false}
]`)

// SwapPoolABI is the LIPT/USDT constant-product pool with LP-token accounting.
var SwapPoolABI = mustParseABI(`[
	{"type":"function","name":"getReserves","inputs":[],"outputs":[{"name":"liptReserve","type":"uint256"},{"name":"usdtReserve","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"swapFeeBasisPoints","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"swap","inputs":[{"name":"amountIn","type":"uint256"},{"name":"usdtToLipt","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"addLiquidity","inputs":[{"name":"liptAmount","type":"uint256"},{"name":"usdtAmount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"removeLiquidity","inputs":[{"name":"lpAmount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}
]`)

// StakingPoolABI exposes the append-only plan array and per-user stake array.
var StakingPoolABI = mustParseABI(`[
	{"type":"function","name":"getStakingPlans","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[{"name":"cost","type":"uint256"},{"name":"apyBasisPoints","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"active","type":"bool"}]}],"stateMutability":"view"},
	{"type":"function","name":"getUserStakes","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"tuple[]","components":[{"name":"amount","type":"uint256"},{"name":"planId","type":"uint256"},{"name":"startTime","type":"uint256"},{"name":"rewardsClaimed","type":"uint256"}]}],"stateMutability":"view"},
	{"type":"function","name":"calculateRewards","inputs":[{"name":"user","type":"address"},{"name":"stakeIndex","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"earlyUnstakePenaltyBasisPoints","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"stake","inputs":[{"name":"amount","type":"uint256"},{"name":"planId","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"unstake","inputs":[{"name":"stakeIndex","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"claimRewards","inputs":[{"name":"stakeIndex","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"addStakingPlan","inputs":[{"name":"cost","type":"uint256"},{"name":"apyBasisPoints","type":"uint256"},{"name":"duration","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"modifyStakingPlan","inputs":[{"name":"planId","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"apyBasisPoints","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"active","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"Stake","inputs":[{"name":"user","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"planId","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"Unstake","inputs":[{"name":"user","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"RewardClaimed","inputs":[{"name":"user","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}],"anonymous":false}
]`)

// MiningPoolABI mirrors the staking pool shape with hash rate instead of APY.
var MiningPoolABI = mustParseABI(`[
	{"type":"function","name":"getMiningPlans","inputs":[],"outputs":[{"name":"","type":"tuple[]","components":[{"name":"cost","type":"uint256"},{"name":"hashRate","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"active","type":"bool"}]}],"stateMutability":"view"},
	{"type":"function","name":"getUserMiners","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"tuple[]","components":[{"name":"planId","type":"uint256"},{"name":"startTime","type":"uint256"},{"name":"rewardsClaimed","type":"uint256"},{"name":"active","type":"bool"}]}],"stateMutability":"view"},
	{"type":"function","name":"calculateMinerRewards","inputs":[{"name":"user","type":"address"},{"name":"minerIndex","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"activateMiner","inputs":[{"name":"planId","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"claimMinerRewards","inputs":[{"name":"minerIndex","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"addMiningPlan","inputs":[{"name":"cost","type":"uint256"},{"name":"hashRate","type":"uint256"},{"name":"duration","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"modifyMiningPlan","inputs":[{"name":"planId","type":"uint256"},{"name":"cost","type":"uint256"},{"name":"hashRate","type":"uint256"},{"name":"duration","type":"uint256"},{"name":"active","type":"bool"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"MinerActivated","inputs":[{"name":"user","type":"address","indexed":true},{"name":"planId","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"RewardsClaimed","inputs":[{"name":"user","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}],"anonymous":false}
]`)

// ReferralProgramABI covers referrer registration and commission views.
var ReferralProgramABI = mustParseABI(`[
	{"type":"function","name":"getReferrer","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"getTotalCommissions","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"getReferralCount","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"getCommissionRates","inputs":[],"outputs":[{"name":"","type":"uint256[]"}],"stateMutability":"view"},
	{"type":"function","name":"register","inputs":[{"name":"referrer","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"ReferralReward","inputs":[{"name":"referrer","type":"address","indexed":true},{"name":"referee","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}],"anonymous":false}
]`)

// WheelOfFortuneABI exposes the segment array (no length accessor on-chain,
// callers probe sequential indices) and the spin entry point. The spin outcome
// is only available via the WheelSpun event.
var WheelOfFortuneABI = mustParseABI(`[
	{"type":"function","name":"segments","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"multiplier","type":"uint256"},{"name":"weight","type":"uint256"},{"name":"color","type":"string"}],"stateMutability":"view"},
	{"type":"function","name":"houseEdgeBasisPoints","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"spinWheel","inputs":[{"name":"betAmount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setWheelSegments","inputs":[{"name":"newSegments","type":"tuple[]","components":[{"name":"multiplier","type":"uint256"},{"name":"weight","type":"uint256"},{"name":"color","type":"string"}]}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"WheelSpun","inputs":[{"name":"user","type":"address","indexed":true},{"name":"betAmount","type":"uint256","indexed":false},{"name":"multiplier","type":"uint256","indexed":false},{"name":"winnings","type":"uint256","indexed":false}],"anonymous":false}
]`)

// RocketGameABI covers the crash game. Cash-out winnings are event-only.
var RocketGameABI = mustParseABI(`[
	{"type":"function","name":"currentRound","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"playRocket","inputs":[{"name":"betAmount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"cashOutRocket","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"RocketBetPlaced","inputs":[{"name":"player","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"round","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"RocketCashedOut","inputs":[{"name":"player","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false},{"name":"multiplier","type":"uint256","indexed":false}],"anonymous":false}
]`)

// LotteryABI tracks draws by incrementing id and tickets by per-user counter.
var LotteryABI = mustParseABI(`[
	{"type":"function","name":"currentDraw","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"ticketPrice","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"ticketsBought","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"buyTickets","inputs":[{"name":"count","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"claimLotteryPrize","inputs":[{"name":"drawId","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"event","name":"TicketsPurchased","inputs":[{"name":"buyer","type":"address","indexed":true},{"name":"drawId","type":"uint256","indexed":false},{"name":"count","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"PrizeClaimed","inputs":[{"name":"winner","type":"address","indexed":true},{"name":"drawId","type":"uint256","indexed":false},{"name":"amount","type":"uint256","indexed":false}],"anonymous":false}
]`)

// ProtocolControllerABI is the umbrella owner contract holding module pointers.
var ProtocolControllerABI = mustParseABI(`[
	{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"setStakingPool","inputs":[{"name":"pool","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setMiningPool","inputs":[{"name":"pool","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setSwapPool","inputs":[{"name":"pool","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setWheelOfFortune","inputs":[{"name":"wheel","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setRocketGame","inputs":[{"name":"game","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setLottery","inputs":[{"name":"lottery","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setReferralProgram","inputs":[{"name":"program","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}
]`)

// OwnableABI is the generic owner() probe used when resolving ownership chains
// through addresses that may or may not be contracts.
var OwnableABI = mustParseABI(`[
	{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"}
]`)
