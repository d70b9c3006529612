// Package eventstore persists decoded protocol events for the history,
// leaderboard and stats APIs. The chain stays authoritative; this is a
// queryable mirror fed by the watcher.
package eventstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Event types as stored in the event_type column.
const (
	EventTransfer         = "Transfer"
	EventStake            = "Stake"
	EventUnstake          = "Unstake"
	EventRewardClaimed    = "RewardClaimed"
	EventMinerActivated   = "MinerActivated"
	EventMinerRewards     = "MinerRewardsClaimed"
	EventReferralReward   = "ReferralReward"
	EventWheelSpun        = "WheelSpun"
	EventRocketBetPlaced  = "RocketBetPlaced"
	EventRocketCashedOut  = "RocketCashedOut"
	EventTicketsPurchased = "TicketsPurchased"
	EventPrizeClaimed     = "PrizeClaimed"
)

// GameEventDao maps directly to the 'game_events' table in PostgreSQL.
// Amount is stored as a wei-scale NUMERIC string so no precision is lost;
// conversion to token units happens at the API edge.
type GameEventDao struct {
	bun.BaseModel `bun:"table:game_events"`

	ID           uuid.UUID `json:"id" bun:"id,pk,type:uuid"`
	Contract     string    `json:"contract" bun:"contract,notnull,type:VARCHAR(42)"`
	EventType    string    `json:"event_type" bun:"event_type,notnull,type:VARCHAR(40)"`
	UserAddress  string    `json:"user_address" bun:"user_address,notnull,type:VARCHAR(42)"`
	Amount       string    `json:"amount" bun:"amount,notnull,type:NUMERIC(78,0)"`
	MultiplierBp int64     `json:"multiplier_bp,omitempty" bun:"multiplier_bp,default:0"`
	PlanIndex    *int64    `json:"plan_index,omitempty" bun:"plan_index"`
	Round        *int64    `json:"round,omitempty" bun:"round"`
	DrawID       *int64    `json:"draw_id,omitempty" bun:"draw_id"`
	BlockNumber  uint64    `json:"block_number" bun:"block_number,notnull"`
	TxHash       string    `json:"tx_hash" bun:"tx_hash,notnull,type:VARCHAR(66)"`
	LogIndex     uint      `json:"log_index" bun:"log_index,notnull"`
	IndexedAt    time.Time `json:"indexed_at" bun:"indexed_at,notnull,default:now()"`
}
