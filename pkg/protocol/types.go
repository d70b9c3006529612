package protocol

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// TxConfirmation reports a mined transaction back to the caller.
type TxConfirmation struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
}

// StakingPlan is a staking plan in UI units. Index is the plan's position in
// the contract's append-only array; it is the only identity a plan has, and it
// stays valid only while no admin mutates the array.
type StakingPlan struct {
	Index        int64           `json:"index"`
	Cost         decimal.Decimal `json:"cost"`
	APYPercent   decimal.Decimal `json:"apy_percent"`
	DurationDays decimal.Decimal `json:"duration_days"`
	Active       bool            `json:"active"`
}

// UserStake is one open position in a user's stake array, keyed by Index
// within that array.
type UserStake struct {
	Index            int64           `json:"index"`
	Amount           decimal.Decimal `json:"amount"`
	PlanIndex        int64           `json:"plan_index"`
	StartDate        time.Time       `json:"start_date"`
	AvailableRewards decimal.Decimal `json:"available_rewards"`
	RewardsClaimed   decimal.Decimal `json:"rewards_claimed"`
}

// MiningPlan is a mining plan in UI units, identified by array position like
// staking plans.
type MiningPlan struct {
	Index        int64           `json:"index"`
	Cost         decimal.Decimal `json:"cost"`
	HashRate     int64           `json:"hash_rate"`
	DurationDays decimal.Decimal `json:"duration_days"`
	Active       bool            `json:"active"`
}

// UserMiner is one miner position in a user's miner array.
type UserMiner struct {
	Index            int64           `json:"index"`
	PlanIndex        int64           `json:"plan_index"`
	StartDate        time.Time       `json:"start_date"`
	AvailableRewards decimal.Decimal `json:"available_rewards"`
	RewardsClaimed   decimal.Decimal `json:"rewards_claimed"`
	Active           bool            `json:"active"`
}

// LiquidityPoolData is the pool snapshot in UI units. LiptPrice is
// usdt-reserve over lipt-reserve and defined as zero for an empty pool.
// User fields are zero when no user address was supplied.
type LiquidityPoolData struct {
	TotalLipt        decimal.Decimal `json:"total_lipt"`
	TotalUsdt        decimal.Decimal `json:"total_usdt"`
	TotalLpTokens    decimal.Decimal `json:"total_lp_tokens"`
	UserLpTokens     decimal.Decimal `json:"user_lp_tokens"`
	UserPoolSharePct decimal.Decimal `json:"user_pool_share_pct"`
	LiptPrice        decimal.Decimal `json:"lipt_price"`
}

// WheelSegment is one wheel slice. Multiplier is the payout factor (1 = bet
// returned), already converted from basis points.
type WheelSegment struct {
	Multiplier decimal.Decimal `json:"multiplier"`
	Weight     int64           `json:"weight"`
	Color      string          `json:"color"`
}

// WheelSegments is the probed segment list. Truncated is set when probing hit
// the iteration cap, meaning the list may be incomplete.
type WheelSegments struct {
	Segments  []WheelSegment `json:"segments"`
	Truncated bool           `json:"truncated"`
}

// SpinOutcome is the decoded result of a wheel spin. Winnings of zero means
// the spin lost; that is a valid outcome for the wheel, unlike rocket
// cash-outs.
type SpinOutcome struct {
	TxConfirmation
	BetAmount  decimal.Decimal `json:"bet_amount"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Winnings   decimal.Decimal `json:"winnings"`
}

// RocketBet confirms a placed rocket bet and the round it entered.
type RocketBet struct {
	TxConfirmation
	Amount decimal.Decimal `json:"amount"`
	Round  int64           `json:"round"`
}

// RocketCashOut is the decoded payout of a successful cash-out.
type RocketCashOut struct {
	TxConfirmation
	Amount     decimal.Decimal `json:"amount"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// LotteryTicket is a display-only placeholder. The contract tracks only a
// per-user ticket count, so Number is synthesized as a sequential index and
// does not correspond to any on-chain identifier.
type LotteryTicket struct {
	Number int64 `json:"number"`
}

// LotteryState is the current draw as seen by an optional user.
type LotteryState struct {
	CurrentDraw int64           `json:"current_draw"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	UserTickets []LotteryTicket `json:"user_tickets"`
}

// ReferralInfo is a user's referral standing.
type ReferralInfo struct {
	Referrer           common.Address    `json:"referrer"`
	ReferralCount      int64             `json:"referral_count"`
	TotalCommissions   decimal.Decimal   `json:"total_commissions"`
	CommissionRatesPct []decimal.Decimal `json:"commission_rates_pct"`
}

// OwnershipChain is the resolved owner() pointer graph starting at the LIPT
// token. ControllerOwner is set only when the token's owner resolved to a
// further owner, either via the known controller or a generic probe.
type OwnershipChain struct {
	LiptTokenOwner                 common.Address  `json:"lipt_token_owner"`
	ControllerOwner                *common.Address `json:"controller_owner,omitempty"`
	IsOwnerTransferredToController bool            `json:"is_owner_transferred_to_controller"`
	FinalOwner                     common.Address  `json:"final_owner"`
}
