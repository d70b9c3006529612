package protocol

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	controllerAddr = common.HexToAddress("0xCCCCccccCCCCccccCCCCccccCCCCccccCCCCcccc")
	deployerAddr   = common.HexToAddress("0xDDDDddddDDDDddddDDDDddddDDDDddddDDDDdddd")
)

func TestGetOwnershipChainThroughController(t *testing.T) {
	p := newTestProtocol(&mockBackend{})
	p.liptToken = &mockToken{
		ownerFunc: func() (common.Address, error) { return controllerAddr, nil },
	}
	p.controllerAddr = controllerAddr
	p.probeOwner = func(ctx context.Context, address common.Address) (common.Address, error) {
		assert.Equal(t, controllerAddr, address)
		return deployerAddr, nil
	}

	result := p.GetOwnershipChain(context.Background())
	require.True(t, result.IsOk())

	chain := result.Data
	assert.Equal(t, controllerAddr, chain.LiptTokenOwner)
	assert.True(t, chain.IsOwnerTransferredToController)
	require.NotNil(t, chain.ControllerOwner)
	assert.Equal(t, deployerAddr, *chain.ControllerOwner)
	assert.Equal(t, deployerAddr, chain.FinalOwner)
}

func TestGetOwnershipChainPlainWallet(t *testing.T) {
	p := newTestProtocol(&mockBackend{})
	p.liptToken = &mockToken{
		ownerFunc: func() (common.Address, error) { return deployerAddr, nil },
	}
	p.controllerAddr = controllerAddr
	p.probeOwner = func(ctx context.Context, address common.Address) (common.Address, error) {
		// owner() on an EOA reverts; that must be swallowed, not surfaced.
		return common.Address{}, errors.New("execution reverted")
	}

	result := p.GetOwnershipChain(context.Background())
	require.True(t, result.IsOk())

	chain := result.Data
	assert.Equal(t, deployerAddr, chain.LiptTokenOwner)
	assert.False(t, chain.IsOwnerTransferredToController)
	assert.Nil(t, chain.ControllerOwner)
	assert.Equal(t, deployerAddr, chain.FinalOwner, "probe failure means the owner is the final owner")
}

func TestGetOwnershipChainUnknownContractOwner(t *testing.T) {
	otherContract := common.HexToAddress("0xEEEEeeeeEEEEeeeeEEEEeeeeEEEEeeeeEEEEeeee")

	p := newTestProtocol(&mockBackend{})
	p.liptToken = &mockToken{
		ownerFunc: func() (common.Address, error) { return otherContract, nil },
	}
	p.controllerAddr = controllerAddr
	p.probeOwner = func(ctx context.Context, address common.Address) (common.Address, error) {
		assert.Equal(t, otherContract, address)
		return deployerAddr, nil
	}

	result := p.GetOwnershipChain(context.Background())
	require.True(t, result.IsOk())
	assert.False(t, result.Data.IsOwnerTransferredToController)
	assert.Equal(t, deployerAddr, result.Data.FinalOwner)
}

func TestGetOwnershipChainTokenReadFails(t *testing.T) {
	readErr := errors.New("connection refused")
	p := newTestProtocol(&mockBackend{})
	p.liptToken = &mockToken{
		ownerFunc: func() (common.Address, error) { return common.Address{}, readErr },
	}

	result := p.GetOwnershipChain(context.Background())
	require.True(t, result.IsFailed())
	assert.ErrorIs(t, result.Err, readErr)
}
