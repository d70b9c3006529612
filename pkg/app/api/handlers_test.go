package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liptlabs/lipt-gateway/pkg/eventstore"
	"github.com/liptlabs/lipt-gateway/pkg/protocol"
)

type mockChain struct {
	stakingPlansFunc  func(ctx context.Context) protocol.Result[[]protocol.StakingPlan]
	miningPlansFunc   func(ctx context.Context) protocol.Result[[]protocol.MiningPlan]
	liquidityPoolFunc func(ctx context.Context, user *common.Address) protocol.Result[protocol.LiquidityPoolData]
	wheelSegmentsFunc func(ctx context.Context) protocol.Result[protocol.WheelSegments]
	ownershipFunc     func(ctx context.Context) protocol.Result[protocol.OwnershipChain]
	totalSupplyFunc   func(ctx context.Context) protocol.Result[decimal.Decimal]
}

func (m *mockChain) GetStakingPlans(ctx context.Context) protocol.Result[[]protocol.StakingPlan] {
	if m.stakingPlansFunc == nil {
		return protocol.EmptyResult[[]protocol.StakingPlan]()
	}
	return m.stakingPlansFunc(ctx)
}

func (m *mockChain) GetMiningPlans(ctx context.Context) protocol.Result[[]protocol.MiningPlan] {
	if m.miningPlansFunc == nil {
		return protocol.EmptyResult[[]protocol.MiningPlan]()
	}
	return m.miningPlansFunc(ctx)
}

func (m *mockChain) GetLiquidityPoolData(ctx context.Context, user *common.Address) protocol.Result[protocol.LiquidityPoolData] {
	if m.liquidityPoolFunc == nil {
		return protocol.EmptyResult[protocol.LiquidityPoolData]()
	}
	return m.liquidityPoolFunc(ctx, user)
}

func (m *mockChain) GetWheelSegments(ctx context.Context) protocol.Result[protocol.WheelSegments] {
	if m.wheelSegmentsFunc == nil {
		return protocol.EmptyResult[protocol.WheelSegments]()
	}
	return m.wheelSegmentsFunc(ctx)
}

func (m *mockChain) GetOwnershipChain(ctx context.Context) protocol.Result[protocol.OwnershipChain] {
	if m.ownershipFunc == nil {
		return protocol.EmptyResult[protocol.OwnershipChain]()
	}
	return m.ownershipFunc(ctx)
}

func (m *mockChain) GetTotalSupply(ctx context.Context) protocol.Result[decimal.Decimal] {
	if m.totalSupplyFunc == nil {
		return protocol.EmptyResult[decimal.Decimal]()
	}
	return m.totalSupplyFunc(ctx)
}

type mockIndex struct {
	historyFunc     func(ctx context.Context, user string, limit, offset int) ([]eventstore.GameEventDao, error)
	leaderboardFunc func(ctx context.Context, eventTypes []string, limit int) ([]eventstore.LeaderboardEntry, error)
	statsFunc       func(ctx context.Context) (*eventstore.Stats, error)
}

func (m *mockIndex) History(ctx context.Context, user string, limit, offset int) ([]eventstore.GameEventDao, error) {
	return m.historyFunc(ctx, user, limit, offset)
}

func (m *mockIndex) Leaderboard(ctx context.Context, eventTypes []string, limit int) ([]eventstore.LeaderboardEntry, error) {
	return m.leaderboardFunc(ctx, eventTypes, limit)
}

func (m *mockIndex) Stats(ctx context.Context) (*eventstore.Stats, error) {
	return m.statsFunc(ctx)
}

func serve(t *testing.T, chain Chain, index Index, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewHandler(chain, index, zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	handler.Router(true).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, &mockChain{}, nil, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(t, &mockChain{}, nil, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlans(t *testing.T) {
	chain := &mockChain{
		stakingPlansFunc: func(context.Context) protocol.Result[[]protocol.StakingPlan] {
			return protocol.Ok([]protocol.StakingPlan{{
				Index:        0,
				Cost:         decimal.NewFromInt(1000),
				APYPercent:   decimal.NewFromInt(15),
				DurationDays: decimal.NewFromInt(30),
				Active:       true,
			}})
		},
	}

	rec := serve(t, chain, nil, http.MethodGet, "/api/v1/plans")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Staking []protocol.StakingPlan `json:"staking"`
		Mining  []protocol.MiningPlan  `json:"mining"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Staking, 1)
	assert.True(t, resp.Staking[0].APYPercent.Equal(decimal.NewFromInt(15)))
	// Empty chain data renders as an empty list, not null.
	assert.NotNil(t, resp.Mining)
	assert.Empty(t, resp.Mining)
}

func TestPlansDependencyFailure(t *testing.T) {
	chain := &mockChain{
		stakingPlansFunc: func(context.Context) protocol.Result[[]protocol.StakingPlan] {
			return protocol.Failed[[]protocol.StakingPlan](errors.New("rpc down"))
		},
	}

	rec := serve(t, chain, nil, http.MethodGet, "/api/v1/plans")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPoolValidatesUserAddress(t *testing.T) {
	rec := serve(t, &mockChain{}, nil, http.MethodGet, "/api/v1/pool?user=nonsense")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPoolPassesUserThrough(t *testing.T) {
	user := common.HexToAddress("0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa")
	var got *common.Address
	chain := &mockChain{
		liquidityPoolFunc: func(_ context.Context, u *common.Address) protocol.Result[protocol.LiquidityPoolData] {
			got = u
			return protocol.Ok(protocol.LiquidityPoolData{LiptPrice: decimal.NewFromFloat(1.25)})
		},
	}

	rec := serve(t, chain, nil, http.MethodGet, "/api/v1/pool?user="+user.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestHistory(t *testing.T) {
	index := &mockIndex{
		historyFunc: func(_ context.Context, user string, limit, offset int) ([]eventstore.GameEventDao, error) {
			assert.Equal(t, 10, limit)
			assert.Equal(t, 20, offset)
			return []eventstore.GameEventDao{{EventType: eventstore.EventStake, UserAddress: user}}, nil
		},
	}

	rec := serve(t, &mockChain{}, index, http.MethodGet,
		"/api/v1/history/0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa?limit=10&offset=20")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []eventstore.GameEventDao
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, eventstore.EventStake, events[0].EventType)
}

func TestHistoryRejectsBadInput(t *testing.T) {
	index := &mockIndex{
		historyFunc: func(context.Context, string, int, int) ([]eventstore.GameEventDao, error) {
			t.Fatal("store should not be queried on bad input")
			return nil, nil
		},
	}

	t.Run("bad address", func(t *testing.T) {
		rec := serve(t, &mockChain{}, index, http.MethodGet, "/api/v1/history/nonsense")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := serve(t, &mockChain{}, index, http.MethodGet,
			"/api/v1/history/0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa?limit=-5")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHistoryWithoutIndex(t *testing.T) {
	rec := serve(t, &mockChain{}, nil, http.MethodGet,
		"/api/v1/history/0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeaderboardFiltersEventTypes(t *testing.T) {
	var gotTypes []string
	index := &mockIndex{
		leaderboardFunc: func(_ context.Context, eventTypes []string, limit int) ([]eventstore.LeaderboardEntry, error) {
			gotTypes = eventTypes
			return []eventstore.LeaderboardEntry{{UserAddress: "0xabc", Events: 3, TotalAmount: "100"}}, nil
		},
	}

	rec := serve(t, &mockChain{}, index, http.MethodGet,
		"/api/v1/leaderboard?event_types=Stake,WheelSpun")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Stake", "WheelSpun"}, gotTypes)
}

func TestStatsDependencyFailure(t *testing.T) {
	index := &mockIndex{
		statsFunc: func(context.Context) (*eventstore.Stats, error) {
			return nil, errors.New("db down")
		},
	}

	rec := serve(t, &mockChain{}, index, http.MethodGet, "/api/v1/stats")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
