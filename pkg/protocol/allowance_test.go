package protocol

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected int64
	}{
		{"round amount", 1000, 1100},
		{"headroom floors", 15, 16},       // 15 + floor(1.5)
		{"small amount", 9, 9},            // floor(0.9) == 0
		{"single unit", 10, 11},
		{"zero", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, big.NewInt(tc.expected), approvalAmount(big.NewInt(tc.amount)))
		})
	}
}

func TestEnsureAllowance(t *testing.T) {
	tests := []struct {
		name            string
		allowance       int64
		amount          int64
		expectApproval  bool
		expectedApprove int64
	}{
		{"allowance equals amount", 1000, 1000, false, 0},
		{"allowance one short", 999, 1000, true, 1100},
		{"zero allowance zero amount", 0, 0, false, 0},
		{"zero allowance", 0, 500, true, 550},
		{"allowance exceeds amount", 2000, 1000, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var approvedAmount *big.Int
			token := &mockToken{
				allowanceFunc: func(owner, spender common.Address) (*big.Int, error) {
					assert.Equal(t, testUser, owner)
					assert.Equal(t, testSpender, spender)
					return big.NewInt(tc.allowance), nil
				},
				approveFunc: func(spender common.Address, value *big.Int) (*types.Transaction, error) {
					approvedAmount = value
					return dummyTx(), nil
				},
			}
			p := newTestProtocol(&mockBackend{from: testUser, connected: true})

			err := p.ensureAllowance(context.Background(), token, testSpender, big.NewInt(tc.amount))
			require.NoError(t, err)

			if tc.expectApproval {
				require.NotNil(t, approvedAmount, "expected an approval transaction")
				assert.Equal(t, big.NewInt(tc.expectedApprove), approvedAmount)
			} else {
				assert.Nil(t, approvedAmount, "expected no approval transaction")
			}
		})
	}
}

func TestEnsureAllowanceWalletNotConnected(t *testing.T) {
	p := newTestProtocol(&mockBackend{connected: false})
	err := p.ensureAllowance(context.Background(), &mockToken{}, testSpender, big.NewInt(100))
	assert.ErrorIs(t, err, ErrWalletNotConnected)
}
