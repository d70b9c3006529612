package watcher

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/config"
	"github.com/liptlabs/lipt-gateway/pkg/eventstore"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
)

var (
	tokenAddr  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	stakeAddr  = common.HexToAddress("0x1000000000000000000000000000000000000002")
	mineAddr   = common.HexToAddress("0x1000000000000000000000000000000000000003")
	wheelAddr  = common.HexToAddress("0x1000000000000000000000000000000000000004")
	rocketAddr = common.HexToAddress("0x1000000000000000000000000000000000000005")
	userAddr   = common.HexToAddress("0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa")
)

func testContracts() config.ContractsConfig {
	return config.ContractsConfig{
		LiptToken:      tokenAddr.Hex(),
		UsdtToken:      "0x1000000000000000000000000000000000000009",
		SwapPool:       "0x100000000000000000000000000000000000000a",
		StakingPool:    stakeAddr.Hex(),
		MiningPool:     mineAddr.Hex(),
		WheelOfFortune: wheelAddr.Hex(),
		RocketGame:     rocketAddr.Hex(),
	}
}

type mockFilterer struct {
	blockNumberFunc func(ctx context.Context) (uint64, error)
	filterLogsFunc  func(ctx context.Context, q geth.FilterQuery) ([]types.Log, error)
}

func (m *mockFilterer) BlockNumber(ctx context.Context) (uint64, error) {
	return m.blockNumberFunc(ctx)
}

func (m *mockFilterer) FilterLogs(ctx context.Context, q geth.FilterQuery) ([]types.Log, error) {
	return m.filterLogsFunc(ctx, q)
}

type mockSink struct {
	events    []*eventstore.GameEventDao
	insertErr error
	lastBlock uint64
}

func (m *mockSink) Insert(_ context.Context, event *eventstore.GameEventDao) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockSink) LastIndexedBlock(context.Context) (uint64, error) {
	return m.lastBlock, nil
}

func newTestWatcher(t *testing.T, filterer Filterer, sink Sink) *Watcher {
	t.Helper()
	w, err := New(filterer, sink, testContracts(), zap.NewNop(), Options{})
	require.NoError(t, err)
	return w
}

func stakeLog(t *testing.T, block uint64, index uint, amount, plan *big.Int) types.Log {
	t.Helper()
	event := contracts.StakingPoolABI.Events["Stake"]
	data, err := event.Inputs.NonIndexed().Pack(amount, plan)
	require.NoError(t, err)
	return types.Log{
		Address:     stakeAddr,
		Topics:      []common.Hash{event.ID, common.BytesToHash(userAddr.Bytes())},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.HexToHash("0xfeed"),
		Index:       index,
	}
}

func wheelSpunLog(t *testing.T, block uint64, index uint, bet, multiplier, winnings *big.Int) types.Log {
	t.Helper()
	event := contracts.WheelOfFortuneABI.Events["WheelSpun"]
	data, err := event.Inputs.NonIndexed().Pack(bet, multiplier, winnings)
	require.NoError(t, err)
	return types.Log{
		Address:     wheelAddr,
		Topics:      []common.Hash{event.ID, common.BytesToHash(userAddr.Bytes())},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.HexToHash("0xbeef"),
		Index:       index,
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	w := newTestWatcher(t, &mockFilterer{}, &mockSink{})
	assert.Equal(t, 15*time.Second, w.opts.PollingInterval)
	assert.Equal(t, uint64(5000), w.opts.MaxBlockSpan)
}

func TestNewKeepsExplicitOptions(t *testing.T) {
	w, err := New(&mockFilterer{}, &mockSink{}, testContracts(), zap.NewNop(), Options{
		PollingInterval: time.Second,
		MaxBlockSpan:    100,
		StartBlock:      42,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Second, w.opts.PollingInterval)
	assert.Equal(t, uint64(100), w.opts.MaxBlockSpan)
	assert.Equal(t, uint64(42), w.opts.StartBlock)
}

func TestNewRequiresContracts(t *testing.T) {
	_, err := New(&mockFilterer{}, &mockSink{}, config.ContractsConfig{}, zap.NewNop(), Options{})
	assert.Error(t, err)
}

func TestPollIndexesDecodedEvents(t *testing.T) {
	sink := &mockSink{}
	var gotQuery geth.FilterQuery
	filterer := &mockFilterer{
		blockNumberFunc: func(context.Context) (uint64, error) { return 110, nil },
		filterLogsFunc: func(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
			gotQuery = q
			return []types.Log{
				stakeLog(t, 105, 0, big.NewInt(1000), big.NewInt(2)),
				wheelSpunLog(t, 107, 1, big.NewInt(100), big.NewInt(25000), big.NewInt(250)),
			}, nil
		},
	}
	w := newTestWatcher(t, filterer, sink)

	current := w.poll(context.Background(), 100)
	assert.Equal(t, uint64(110), current)

	assert.Equal(t, big.NewInt(101), gotQuery.FromBlock)
	assert.Equal(t, big.NewInt(110), gotQuery.ToBlock)
	assert.Contains(t, gotQuery.Addresses, stakeAddr)
	assert.Contains(t, gotQuery.Addresses, wheelAddr)

	require.Len(t, sink.events, 2)

	stake := sink.events[0]
	assert.Equal(t, eventstore.EventStake, stake.EventType)
	assert.Equal(t, userAddr.Hex(), stake.UserAddress)
	assert.Equal(t, "1000", stake.Amount)
	require.NotNil(t, stake.PlanIndex)
	assert.Equal(t, int64(2), *stake.PlanIndex)
	assert.Equal(t, uint64(105), stake.BlockNumber)
	assert.Equal(t, stakeAddr.Hex(), stake.Contract)

	spin := sink.events[1]
	assert.Equal(t, eventstore.EventWheelSpun, spin.EventType)
	assert.Equal(t, "250", spin.Amount)
	assert.Equal(t, int64(25000), spin.MultiplierBp)
}

func TestPollSkipsUnknownAndMalformedLogs(t *testing.T) {
	event := contracts.StakingPoolABI.Events["Stake"]
	malformed := types.Log{
		Address:     stakeAddr,
		Topics:      []common.Hash{event.ID, common.BytesToHash(userAddr.Bytes())},
		Data:        []byte{0x01},
		BlockNumber: 101,
	}
	unknown := types.Log{
		Address:     stakeAddr,
		Topics:      []common.Hash{common.HexToHash("0xdead")},
		BlockNumber: 101,
	}

	sink := &mockSink{}
	filterer := &mockFilterer{
		blockNumberFunc: func(context.Context) (uint64, error) { return 101, nil },
		filterLogsFunc: func(context.Context, geth.FilterQuery) ([]types.Log, error) {
			return []types.Log{malformed, unknown}, nil
		},
	}
	w := newTestWatcher(t, filterer, sink)

	current := w.poll(context.Background(), 100)
	assert.Equal(t, uint64(101), current)
	assert.Empty(t, sink.events)
}

func TestPollRetriesFromFailedRange(t *testing.T) {
	calls := 0
	filterer := &mockFilterer{
		blockNumberFunc: func(context.Context) (uint64, error) { return 300, nil },
		filterLogsFunc: func(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
			calls++
			if q.FromBlock.Uint64() >= 201 {
				return nil, errors.New("rpc: range too large")
			}
			return nil, nil
		},
	}
	w, err := New(filterer, &mockSink{}, testContracts(), zap.NewNop(), Options{MaxBlockSpan: 100})
	require.NoError(t, err)

	// First chunk (101-200) succeeds, second (201-300) fails. The high-water
	// mark must stop at the end of the last successful chunk.
	current := w.poll(context.Background(), 100)
	assert.Equal(t, uint64(200), current)
	assert.Equal(t, 2, calls)
}

func TestPollNothingNewIsNoop(t *testing.T) {
	filterer := &mockFilterer{
		blockNumberFunc: func(context.Context) (uint64, error) { return 100, nil },
		filterLogsFunc: func(context.Context, geth.FilterQuery) ([]types.Log, error) {
			t.Fatal("FilterLogs should not be called when no new blocks")
			return nil, nil
		},
	}
	w := newTestWatcher(t, filterer, &mockSink{})

	current := w.poll(context.Background(), 100)
	assert.Equal(t, uint64(100), current)
}

func TestRunResumesFromSink(t *testing.T) {
	sink := &mockSink{lastBlock: 500}
	var fromBlocks []uint64
	filterer := &mockFilterer{
		blockNumberFunc: func(context.Context) (uint64, error) { return 510, nil },
		filterLogsFunc: func(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
			fromBlocks = append(fromBlocks, q.FromBlock.Uint64())
			return nil, nil
		},
	}
	w, err := New(filterer, sink, testContracts(), zap.NewNop(), Options{
		PollingInterval: 10 * time.Millisecond,
		StartBlock:      100,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err = w.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NotEmpty(t, fromBlocks)
	assert.Equal(t, uint64(501), fromBlocks[0])
}
