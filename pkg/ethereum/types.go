package ethereum

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Decoded protocol events. Field names follow the ABI argument names so the
// generic unpacker can map them; Raw carries the originating log.

// TransferEvent is an ERC-20 Transfer.
type TransferEvent struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Raw   types.Log
}

// StakeEvent is emitted by the staking pool when a stake is opened.
type StakeEvent struct {
	User   common.Address
	Amount *big.Int
	PlanId *big.Int
	Raw    types.Log
}

// UnstakeEvent is emitted when a stake is withdrawn, early or at term.
type UnstakeEvent struct {
	User   common.Address
	Amount *big.Int
	Raw    types.Log
}

// RewardClaimedEvent is emitted by the staking pool on a reward claim.
type RewardClaimedEvent struct {
	User   common.Address
	Amount *big.Int
	Raw    types.Log
}

// MinerActivatedEvent is emitted when a mining plan is purchased.
type MinerActivatedEvent struct {
	User   common.Address
	PlanId *big.Int
	Raw    types.Log
}

// MinerRewardsClaimedEvent is emitted by the mining pool on a reward claim.
type MinerRewardsClaimedEvent struct {
	User   common.Address
	Amount *big.Int
	Raw    types.Log
}

// ReferralRewardEvent is emitted when a referrer earns a commission.
type ReferralRewardEvent struct {
	Referrer common.Address
	Referee  common.Address
	Amount   *big.Int
	Raw      types.Log
}

// WheelSpunEvent carries the outcome of a wheel spin. The multiplier is in
// basis points; winnings of zero means the spin lost.
type WheelSpunEvent struct {
	User       common.Address
	BetAmount  *big.Int
	Multiplier *big.Int
	Winnings   *big.Int
	Raw        types.Log
}

// RocketBetPlacedEvent is emitted when a rocket round bet is accepted.
type RocketBetPlacedEvent struct {
	Player common.Address
	Amount *big.Int
	Round  *big.Int
	Raw    types.Log
}

// RocketCashedOutEvent carries the payout of a successful cash-out. Amount is
// the payout in wei, multiplier in basis points.
type RocketCashedOutEvent struct {
	Player     common.Address
	Amount     *big.Int
	Multiplier *big.Int
	Raw        types.Log
}

// TicketsPurchasedEvent is emitted by the lottery on a ticket purchase.
type TicketsPurchasedEvent struct {
	Buyer  common.Address
	DrawId *big.Int
	Count  *big.Int
	Raw    types.Log
}

// PrizeClaimedEvent is emitted when a lottery prize is paid out.
type PrizeClaimedEvent struct {
	Winner common.Address
	DrawId *big.Int
	Amount *big.Int
	Raw    types.Log
}
