package ethereum

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
)

var (
	wheelAddr  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	rocketAddr = common.HexToAddress("0x2222222222222222222222222222222222222222")
	userAddr   = common.HexToAddress("0xAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaaAAAAaaaa")
	otherAddr  = common.HexToAddress("0xBBBBbbbbBBBBbbbbBBBBbbbbBBBBbbbbBBBBbbbb")
)

func wheelSpunLog(t *testing.T, contract, user common.Address, bet, multiplier, winnings *big.Int) *types.Log {
	t.Helper()
	event := contracts.WheelOfFortuneABI.Events["WheelSpun"]
	data, err := event.Inputs.NonIndexed().Pack(bet, multiplier, winnings)
	require.NoError(t, err)
	return &types.Log{
		Address: contract,
		Topics:  []common.Hash{event.ID, common.BytesToHash(user.Bytes())},
		Data:    data,
	}
}

func rocketCashedOutLog(t *testing.T, contract, player common.Address, amount, multiplier *big.Int) *types.Log {
	t.Helper()
	event := contracts.RocketGameABI.Events["RocketCashedOut"]
	data, err := event.Inputs.NonIndexed().Pack(amount, multiplier)
	require.NoError(t, err)
	return &types.Log{
		Address: contract,
		Topics:  []common.Hash{event.ID, common.BytesToHash(player.Bytes())},
		Data:    data,
	}
}

func TestDecodeWheelSpun(t *testing.T) {
	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			wheelSpunLog(t, wheelAddr, userAddr, big.NewInt(100), big.NewInt(25000), big.NewInt(250)),
		},
	}

	event, err := DecodeWheelSpun(receipt, wheelAddr, userAddr)
	require.NoError(t, err)
	assert.Equal(t, userAddr, event.User)
	assert.Equal(t, big.NewInt(100), event.BetAmount)
	assert.Equal(t, big.NewInt(25000), event.Multiplier)
	assert.Equal(t, big.NewInt(250), event.Winnings)
}

func TestDecodeWheelSpunNotFound(t *testing.T) {
	t.Run("empty receipt", func(t *testing.T) {
		receipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}
		_, err := DecodeWheelSpun(receipt, wheelAddr, userAddr)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("event for another user", func(t *testing.T) {
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{
				wheelSpunLog(t, wheelAddr, otherAddr, big.NewInt(100), big.NewInt(0), big.NewInt(0)),
			},
		}
		_, err := DecodeWheelSpun(receipt, wheelAddr, userAddr)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("event from another contract", func(t *testing.T) {
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs: []*types.Log{
				wheelSpunLog(t, otherAddr, userAddr, big.NewInt(100), big.NewInt(0), big.NewInt(0)),
			},
		}
		_, err := DecodeWheelSpun(receipt, wheelAddr, userAddr)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestDecodeWheelSpunSkipsMalformedLog(t *testing.T) {
	event := contracts.WheelOfFortuneABI.Events["WheelSpun"]
	malformed := &types.Log{
		Address: wheelAddr,
		Topics:  []common.Hash{event.ID, common.BytesToHash(userAddr.Bytes())},
		Data:    []byte{0x01}, // too short to decode
	}
	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			malformed,
			wheelSpunLog(t, wheelAddr, userAddr, big.NewInt(50), big.NewInt(10000), big.NewInt(50)),
		},
	}

	decoded, err := DecodeWheelSpun(receipt, wheelAddr, userAddr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), decoded.BetAmount)
}

func TestDecodeRocketCashedOut(t *testing.T) {
	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{
			// Token transfer style noise in the same receipt.
			wheelSpunLog(t, wheelAddr, userAddr, big.NewInt(1), big.NewInt(1), big.NewInt(1)),
			rocketCashedOutLog(t, rocketAddr, userAddr, big.NewInt(777), big.NewInt(15500)),
		},
	}

	event, err := DecodeRocketCashedOut(receipt, rocketAddr, userAddr)
	require.NoError(t, err)
	assert.Equal(t, userAddr, event.Player)
	assert.Equal(t, big.NewInt(777), event.Amount)
	assert.Equal(t, big.NewInt(15500), event.Multiplier)
}

func TestDecodeStakeEvents(t *testing.T) {
	poolAddr := common.HexToAddress("0x3333333333333333333333333333333333333333")
	stakeEvent := contracts.StakingPoolABI.Events["Stake"]
	data, err := stakeEvent.Inputs.NonIndexed().Pack(big.NewInt(1000), big.NewInt(2))
	require.NoError(t, err)
	receipt := &types.Receipt{
		Status: types.ReceiptStatusSuccessful,
		Logs: []*types.Log{{
			Address: poolAddr,
			Topics:  []common.Hash{stakeEvent.ID, common.BytesToHash(userAddr.Bytes())},
			Data:    data,
		}},
	}

	decoded, err := DecodeStake(receipt, poolAddr, userAddr)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), decoded.Amount)
	assert.Equal(t, big.NewInt(2), decoded.PlanId)

	_, err = DecodeUnstake(receipt, poolAddr, userAddr)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
