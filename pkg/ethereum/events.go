package ethereum

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
)

// ErrEventNotFound is returned when a receipt contains no log matching the
// requested event and user. It is distinct from a failed transaction: the tx
// succeeded but the expected outcome event is missing.
var ErrEventNotFound = errors.New("ethereum: expected event not found in receipt")

// UnpackLog decodes a single log into out using the given ABI, filling both
// the data section and the indexed topics. It is the hand-bound equivalent of
// the generated UnpackLog method.
func UnpackLog(contractABI abi.ABI, eventName string, out interface{}, log types.Log) error {
	event, ok := contractABI.Events[eventName]
	if !ok {
		return fmt.Errorf("ethereum: abi has no event %q", eventName)
	}
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return fmt.Errorf("ethereum: log topic does not match event %q", eventName)
	}
	if len(log.Data) > 0 {
		if err := contractABI.UnpackIntoInterface(out, eventName, log.Data); err != nil {
			return err
		}
	}
	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return abi.ParseTopics(out, indexed, log.Topics[1:])
}

// decodeForUser scans receipt logs emitted by contract for the named event
// whose first indexed topic is user. Logs that match the topic but fail to
// decode are skipped; the first clean decode wins.
func decodeForUser(receipt *types.Receipt, contract common.Address, contractABI abi.ABI, eventName string, user common.Address, out interface{}) (types.Log, error) {
	event, ok := contractABI.Events[eventName]
	if !ok {
		return types.Log{}, fmt.Errorf("ethereum: abi has no event %q", eventName)
	}
	for _, log := range receipt.Logs {
		if log == nil || log.Address != contract {
			continue
		}
		if len(log.Topics) < 2 || log.Topics[0] != event.ID {
			continue
		}
		if common.BytesToAddress(log.Topics[1].Bytes()) != user {
			continue
		}
		if err := UnpackLog(contractABI, eventName, out, *log); err != nil {
			continue
		}
		return *log, nil
	}
	return types.Log{}, ErrEventNotFound
}

// DecodeWheelSpun extracts the spin outcome for user from a spinWheel receipt.
func DecodeWheelSpun(receipt *types.Receipt, wheel common.Address, user common.Address) (*WheelSpunEvent, error) {
	var event WheelSpunEvent
	raw, err := decodeForUser(receipt, wheel, contracts.WheelOfFortuneABI, "WheelSpun", user, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeRocketBetPlaced extracts the bet confirmation for player from a
// playRocket receipt.
func DecodeRocketBetPlaced(receipt *types.Receipt, game common.Address, player common.Address) (*RocketBetPlacedEvent, error) {
	var event RocketBetPlacedEvent
	raw, err := decodeForUser(receipt, game, contracts.RocketGameABI, "RocketBetPlaced", player, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeRocketCashedOut extracts the payout for player from a cashOutRocket
// receipt.
func DecodeRocketCashedOut(receipt *types.Receipt, game common.Address, player common.Address) (*RocketCashedOutEvent, error) {
	var event RocketCashedOutEvent
	raw, err := decodeForUser(receipt, game, contracts.RocketGameABI, "RocketCashedOut", player, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeStake extracts the stake confirmation for user from a stake receipt.
func DecodeStake(receipt *types.Receipt, pool common.Address, user common.Address) (*StakeEvent, error) {
	var event StakeEvent
	raw, err := decodeForUser(receipt, pool, contracts.StakingPoolABI, "Stake", user, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeUnstake extracts the withdrawal amount for user from an unstake
// receipt. The amount reflects any early-exit penalty already applied.
func DecodeUnstake(receipt *types.Receipt, pool common.Address, user common.Address) (*UnstakeEvent, error) {
	var event UnstakeEvent
	raw, err := decodeForUser(receipt, pool, contracts.StakingPoolABI, "Unstake", user, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeRewardClaimed extracts the claimed staking reward for user.
func DecodeRewardClaimed(receipt *types.Receipt, pool common.Address, user common.Address) (*RewardClaimedEvent, error) {
	var event RewardClaimedEvent
	raw, err := decodeForUser(receipt, pool, contracts.StakingPoolABI, "RewardClaimed", user, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeMinerActivated extracts the miner activation for user.
func DecodeMinerActivated(receipt *types.Receipt, pool common.Address, user common.Address) (*MinerActivatedEvent, error) {
	var event MinerActivatedEvent
	raw, err := decodeForUser(receipt, pool, contracts.MiningPoolABI, "MinerActivated", user, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeMinerRewardsClaimed extracts the claimed mining reward for user.
func DecodeMinerRewardsClaimed(receipt *types.Receipt, pool common.Address, user common.Address) (*MinerRewardsClaimedEvent, error) {
	var event MinerRewardsClaimedEvent
	raw, err := decodeForUser(receipt, pool, contracts.MiningPoolABI, "RewardsClaimed", user, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodeTicketsPurchased extracts the ticket purchase for buyer.
func DecodeTicketsPurchased(receipt *types.Receipt, lottery common.Address, buyer common.Address) (*TicketsPurchasedEvent, error) {
	var event TicketsPurchasedEvent
	raw, err := decodeForUser(receipt, lottery, contracts.LotteryABI, "TicketsPurchased", buyer, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}

// DecodePrizeClaimed extracts the prize payout for winner.
func DecodePrizeClaimed(receipt *types.Receipt, lottery common.Address, winner common.Address) (*PrizeClaimedEvent, error) {
	var event PrizeClaimedEvent
	raw, err := decodeForUser(receipt, lottery, contracts.LotteryABI, "PrizeClaimed", winner, &event)
	if err != nil {
		return nil, err
	}
	event.Raw = raw
	return &event, nil
}
