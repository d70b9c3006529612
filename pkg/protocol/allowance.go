package protocol

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// approvalAmount adds ten percent headroom to the requested amount so small
// follow-up actions do not each need their own approval transaction.
func approvalAmount(amount *big.Int) *big.Int {
	headroom := new(big.Int).Div(amount, big.NewInt(10))
	return new(big.Int).Add(amount, headroom)
}

// ensureAllowance checks the spender's current allowance from the signing
// account and, only if it is below amount, submits an approval for
// amount plus headroom and waits for it to confirm. A sufficient allowance
// results in no transaction at all.
func (p *Protocol) ensureAllowance(ctx context.Context, token TokenContract, spender common.Address, amount *big.Int) error {
	from, ok := p.backend.From()
	if !ok {
		return ErrWalletNotConnected
	}

	allowance, err := token.Allowance(p.backend.CallOpts(ctx), from, spender)
	if err != nil {
		return fmt.Errorf("failed to read allowance: %w", err)
	}
	if allowance.Cmp(amount) >= 0 {
		return nil
	}

	approved := approvalAmount(amount)
	p.logger.Info("allowance insufficient, approving",
		zap.String("spender", spender.Hex()),
		zap.String("current", allowance.String()),
		zap.String("approving", approved.String()))

	if _, err := p.submit(ctx, "approve", func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return token.Approve(opts, spender, approved)
	}); err != nil {
		return fmt.Errorf("approval failed: %w", err)
	}
	return nil
}
