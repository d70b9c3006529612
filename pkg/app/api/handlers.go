package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/liptlabs/lipt-gateway/pkg/app/errors"
	apphttp "github.com/liptlabs/lipt-gateway/pkg/app/http"
	"github.com/liptlabs/lipt-gateway/pkg/protocol"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// resultData unwraps a protocol read. A failed read surfaces as a dependency
// failure; an empty read passes through as the zero value.
func resultData[T any](res protocol.Result[T], what string) (T, error) {
	if res.IsFailed() {
		var zero T
		return zero, apperrors.DependencyFailureError(res.Err, "failed to read "+what)
	}
	return res.Data, nil
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) error {
	return apphttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type plansResponse struct {
	Staking []protocol.StakingPlan `json:"staking"`
	Mining  []protocol.MiningPlan  `json:"mining"`
}

func (h *Handler) plans(w http.ResponseWriter, r *http.Request) error {
	staking, err := resultData(h.chain.GetStakingPlans(r.Context()), "staking plans")
	if err != nil {
		return err
	}
	mining, err := resultData(h.chain.GetMiningPlans(r.Context()), "mining plans")
	if err != nil {
		return err
	}
	if staking == nil {
		staking = []protocol.StakingPlan{}
	}
	if mining == nil {
		mining = []protocol.MiningPlan{}
	}
	return apphttp.WriteJSON(w, http.StatusOK, plansResponse{Staking: staking, Mining: mining})
}

func (h *Handler) pool(w http.ResponseWriter, r *http.Request) error {
	var user *common.Address
	if raw := r.URL.Query().Get("user"); raw != "" {
		if !common.IsHexAddress(raw) {
			return apperrors.BadRequestError(nil, "invalid user address")
		}
		addr := common.HexToAddress(raw)
		user = &addr
	}

	data, err := resultData(h.chain.GetLiquidityPoolData(r.Context(), user), "liquidity pool")
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, data)
}

func (h *Handler) wheel(w http.ResponseWriter, r *http.Request) error {
	segments, err := resultData(h.chain.GetWheelSegments(r.Context()), "wheel segments")
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, segments)
}

func (h *Handler) ownership(w http.ResponseWriter, r *http.Request) error {
	chain, err := resultData(h.chain.GetOwnershipChain(r.Context()), "ownership chain")
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, chain)
}

func (h *Handler) supply(w http.ResponseWriter, r *http.Request) error {
	supply, err := resultData(h.chain.GetTotalSupply(r.Context()), "total supply")
	if err != nil {
		return err
	}
	return apphttp.WriteJSON(w, http.StatusOK, map[string]string{"total_supply": supply.String()})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) error {
	if h.index == nil {
		return apperrors.ResourceNotFoundError(nil, "event index not enabled")
	}
	stats, err := h.index.Stats(r.Context())
	if err != nil {
		return apperrors.DependencyFailureError(err, "failed to read stats")
	}
	return apphttp.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) error {
	if h.index == nil {
		return apperrors.ResourceNotFoundError(nil, "event index not enabled")
	}

	address := chi.URLParam(r, "address")
	if !common.IsHexAddress(address) {
		return apperrors.BadRequestError(nil, "invalid address")
	}

	limit, offset, err := pagination(r)
	if err != nil {
		return err
	}

	events, err := h.index.History(r.Context(), address, limit, offset)
	if err != nil {
		return apperrors.DependencyFailureError(err, "failed to read history")
	}
	return apphttp.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) error {
	if h.index == nil {
		return apperrors.ResourceNotFoundError(nil, "event index not enabled")
	}

	limit, _, err := pagination(r)
	if err != nil {
		return err
	}

	var eventTypes []string
	if raw := r.URL.Query().Get("event_types"); raw != "" {
		eventTypes = strings.Split(raw, ",")
	}

	entries, err := h.index.Leaderboard(r.Context(), eventTypes, limit)
	if err != nil {
		return apperrors.DependencyFailureError(err, "failed to read leaderboard")
	}
	return apphttp.WriteJSON(w, http.StatusOK, entries)
}

func pagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, apperrors.BadRequestError(err, "invalid limit")
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, apperrors.BadRequestError(err, "invalid offset")
		}
	}
	return limit, offset, nil
}
