// Package watcher polls the chain for protocol events and mirrors them into
// the event index. Polling instead of subscriptions keeps plain HTTP RPC
// endpoints usable.
package watcher

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/creasty/defaults"
	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/internal/metrics"
	"github.com/liptlabs/lipt-gateway/pkg/config"
	"github.com/liptlabs/lipt-gateway/pkg/eventstore"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
)

// Filterer is the chain surface the watcher needs. *ethereum.Client satisfies it.
type Filterer interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q geth.FilterQuery) ([]types.Log, error)
}

// Sink receives decoded events. *eventstore.Store satisfies it.
type Sink interface {
	Insert(ctx context.Context, event *eventstore.GameEventDao) error
	LastIndexedBlock(ctx context.Context) (uint64, error)
}

// Options tune the polling loop. Zero fields take their defaults.
type Options struct {
	PollingInterval time.Duration `default:"15s"`
	// MaxBlockSpan caps the block range of a single FilterLogs call so RPC
	// providers with range limits do not reject the query.
	MaxBlockSpan uint64 `default:"5000"`
	// StartBlock is where indexing begins on an empty database.
	StartBlock uint64
}

type decodeFunc func(log types.Log) (*eventstore.GameEventDao, error)

// Watcher mirrors protocol events from the chain into the event index.
type Watcher struct {
	filterer  Filterer
	sink      Sink
	logger    *zap.Logger
	opts      Options
	addresses []common.Address
	decoders  map[common.Hash]decodeFunc
}

// New builds a watcher over the configured contracts. Contracts with no
// configured address are skipped.
func New(filterer Filterer, sink Sink, cfg config.ContractsConfig, logger *zap.Logger, opts Options) (*Watcher, error) {
	if err := defaults.Set(&opts); err != nil {
		return nil, fmt.Errorf("failed to apply watcher defaults: %w", err)
	}

	w := &Watcher{
		filterer: filterer,
		sink:     sink,
		logger:   logger,
		opts:     opts,
		decoders: make(map[common.Hash]decodeFunc),
	}

	if w.watch(cfg.LiptToken) {
		w.register(contracts.LiptTokenABI, "Transfer", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.TransferEvent
			if err := ethereum.UnpackLog(contracts.LiptTokenABI, "Transfer", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventTransfer,
				UserAddress: ev.From.Hex(),
				Amount:      bigStr(ev.Value),
			}, nil
		})
	}

	if w.watch(cfg.StakingPool) {
		w.register(contracts.StakingPoolABI, "Stake", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.StakeEvent
			if err := ethereum.UnpackLog(contracts.StakingPoolABI, "Stake", &ev, log); err != nil {
				return nil, err
			}
			plan := ev.PlanId.Int64()
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventStake,
				UserAddress: ev.User.Hex(),
				Amount:      bigStr(ev.Amount),
				PlanIndex:   &plan,
			}, nil
		})
		w.register(contracts.StakingPoolABI, "Unstake", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.UnstakeEvent
			if err := ethereum.UnpackLog(contracts.StakingPoolABI, "Unstake", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventUnstake,
				UserAddress: ev.User.Hex(),
				Amount:      bigStr(ev.Amount),
			}, nil
		})
		w.register(contracts.StakingPoolABI, "RewardClaimed", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.RewardClaimedEvent
			if err := ethereum.UnpackLog(contracts.StakingPoolABI, "RewardClaimed", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventRewardClaimed,
				UserAddress: ev.User.Hex(),
				Amount:      bigStr(ev.Amount),
			}, nil
		})
	}

	if w.watch(cfg.MiningPool) {
		w.register(contracts.MiningPoolABI, "MinerActivated", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.MinerActivatedEvent
			if err := ethereum.UnpackLog(contracts.MiningPoolABI, "MinerActivated", &ev, log); err != nil {
				return nil, err
			}
			plan := ev.PlanId.Int64()
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventMinerActivated,
				UserAddress: ev.User.Hex(),
				Amount:      "0",
				PlanIndex:   &plan,
			}, nil
		})
		w.register(contracts.MiningPoolABI, "RewardsClaimed", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.MinerRewardsClaimedEvent
			if err := ethereum.UnpackLog(contracts.MiningPoolABI, "RewardsClaimed", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventMinerRewards,
				UserAddress: ev.User.Hex(),
				Amount:      bigStr(ev.Amount),
			}, nil
		})
	}

	if w.watch(cfg.ReferralProgram) {
		w.register(contracts.ReferralProgramABI, "ReferralReward", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.ReferralRewardEvent
			if err := ethereum.UnpackLog(contracts.ReferralProgramABI, "ReferralReward", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventReferralReward,
				UserAddress: ev.Referrer.Hex(),
				Amount:      bigStr(ev.Amount),
			}, nil
		})
	}

	if w.watch(cfg.WheelOfFortune) {
		w.register(contracts.WheelOfFortuneABI, "WheelSpun", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.WheelSpunEvent
			if err := ethereum.UnpackLog(contracts.WheelOfFortuneABI, "WheelSpun", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:    eventstore.EventWheelSpun,
				UserAddress:  ev.User.Hex(),
				Amount:       bigStr(ev.Winnings),
				MultiplierBp: bpInt64(ev.Multiplier),
			}, nil
		})
	}

	if w.watch(cfg.RocketGame) {
		w.register(contracts.RocketGameABI, "RocketBetPlaced", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.RocketBetPlacedEvent
			if err := ethereum.UnpackLog(contracts.RocketGameABI, "RocketBetPlaced", &ev, log); err != nil {
				return nil, err
			}
			round := ev.Round.Int64()
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventRocketBetPlaced,
				UserAddress: ev.Player.Hex(),
				Amount:      bigStr(ev.Amount),
				Round:       &round,
			}, nil
		})
		w.register(contracts.RocketGameABI, "RocketCashedOut", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.RocketCashedOutEvent
			if err := ethereum.UnpackLog(contracts.RocketGameABI, "RocketCashedOut", &ev, log); err != nil {
				return nil, err
			}
			return &eventstore.GameEventDao{
				EventType:    eventstore.EventRocketCashedOut,
				UserAddress:  ev.Player.Hex(),
				Amount:       bigStr(ev.Amount),
				MultiplierBp: bpInt64(ev.Multiplier),
			}, nil
		})
	}

	if w.watch(cfg.Lottery) {
		w.register(contracts.LotteryABI, "TicketsPurchased", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.TicketsPurchasedEvent
			if err := ethereum.UnpackLog(contracts.LotteryABI, "TicketsPurchased", &ev, log); err != nil {
				return nil, err
			}
			draw := ev.DrawId.Int64()
			// Amount carries the ticket count for purchases.
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventTicketsPurchased,
				UserAddress: ev.Buyer.Hex(),
				Amount:      bigStr(ev.Count),
				DrawID:      &draw,
			}, nil
		})
		w.register(contracts.LotteryABI, "PrizeClaimed", func(log types.Log) (*eventstore.GameEventDao, error) {
			var ev ethereum.PrizeClaimedEvent
			if err := ethereum.UnpackLog(contracts.LotteryABI, "PrizeClaimed", &ev, log); err != nil {
				return nil, err
			}
			draw := ev.DrawId.Int64()
			return &eventstore.GameEventDao{
				EventType:   eventstore.EventPrizeClaimed,
				UserAddress: ev.Winner.Hex(),
				Amount:      bigStr(ev.Amount),
				DrawID:      &draw,
			}, nil
		})
	}

	if len(w.addresses) == 0 {
		return nil, fmt.Errorf("no contract addresses configured to watch")
	}

	return w, nil
}

// watch records a contract address for the log filter. Empty means the
// contract is not deployed in this environment.
func (w *Watcher) watch(address string) bool {
	if address == "" {
		return false
	}
	w.addresses = append(w.addresses, common.HexToAddress(address))
	return true
}

func (w *Watcher) register(contractABI abi.ABI, eventName string, decode decodeFunc) {
	w.decoders[contractABI.Events[eventName].ID] = decode
}

// Run polls until ctx is cancelled. Indexing resumes from the highest block
// already in the sink, so restarts do not lose or duplicate events.
func (w *Watcher) Run(ctx context.Context) error {
	current := w.opts.StartBlock
	if last, err := w.sink.LastIndexedBlock(ctx); err != nil {
		w.logger.Warn("Failed to read last indexed block, starting from configured block", zap.Error(err))
	} else if last > current {
		current = last
	}

	w.logger.Info("Starting protocol event watcher",
		zap.Uint64("from_block", current),
		zap.Int("contracts", len(w.addresses)),
		zap.Duration("polling_interval", w.opts.PollingInterval))

	ticker := time.NewTicker(w.opts.PollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current = w.poll(ctx, current)
		}
	}
}

// poll advances the index from current to the latest block and returns the
// new high-water mark. On any RPC error it returns early; the next tick
// retries from where it stopped.
func (w *Watcher) poll(ctx context.Context, current uint64) uint64 {
	latest, err := w.filterer.BlockNumber(ctx)
	if err != nil {
		w.logger.Warn("Failed to get latest block", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("watcher", "block_number").Inc()
		return current
	}

	if latest <= current {
		return current
	}

	for start := current + 1; start <= latest; start += w.opts.MaxBlockSpan {
		end := start + w.opts.MaxBlockSpan - 1
		if end > latest {
			end = latest
		}

		logs, err := w.filterer.FilterLogs(ctx, geth.FilterQuery{
			FromBlock: new(big.Int).SetUint64(start),
			ToBlock:   new(big.Int).SetUint64(end),
			Addresses: w.addresses,
		})
		if err != nil {
			w.logger.Warn("Failed to filter logs",
				zap.Error(err),
				zap.Uint64("from_block", start),
				zap.Uint64("to_block", end))
			metrics.ErrorsTotal.WithLabelValues("watcher", "filter_logs").Inc()
			return start - 1
		}

		for _, log := range logs {
			w.handleLog(ctx, log)
		}

		current = end
		metrics.LastIndexedBlock.Set(float64(end))
	}

	return current
}

func (w *Watcher) handleLog(ctx context.Context, log types.Log) {
	if log.Removed || len(log.Topics) == 0 {
		return
	}
	decode, ok := w.decoders[log.Topics[0]]
	if !ok {
		return
	}

	event, err := decode(log)
	if err != nil {
		// A matching topic with undecodable data is not one of ours.
		w.logger.Debug("Skipping undecodable log",
			zap.String("tx_hash", log.TxHash.Hex()),
			zap.Error(err))
		return
	}

	event.Contract = log.Address.Hex()
	event.BlockNumber = log.BlockNumber
	event.TxHash = log.TxHash.Hex()
	event.LogIndex = log.Index

	if err := w.sink.Insert(ctx, event); err != nil {
		w.logger.Error("Failed to store event",
			zap.Error(err),
			zap.String("event_type", event.EventType),
			zap.String("tx_hash", event.TxHash))
		metrics.ErrorsTotal.WithLabelValues("watcher", "store").Inc()
		return
	}

	metrics.EventsIndexed.WithLabelValues(strings.ToLower(event.Contract), event.EventType).Inc()
}

func bigStr(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func bpInt64(v *big.Int) int64 {
	if v == nil {
		return 0
	}
	return v.Int64()
}
