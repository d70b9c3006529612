package protocol

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// GetOwnershipChain resolves the owner() pointer graph from the LIPT token.
// When the token's owner is the known controller, the chain continues through
// the controller's owner. Otherwise one generic owner() probe is attempted on
// the owner address; a failing probe just means the owner is a plain wallet,
// not a resolution error.
func (p *Protocol) GetOwnershipChain(ctx context.Context) Result[OwnershipChain] {
	tokenOwner, err := p.liptToken.Owner(p.backend.CallOpts(ctx))
	if err != nil {
		p.logger.Error("failed to fetch token owner", zap.Error(err))
		return Failed[OwnershipChain](err)
	}

	chain := OwnershipChain{
		LiptTokenOwner: tokenOwner,
		FinalOwner:     tokenOwner,
	}

	hasController := p.controllerAddr != (common.Address{})
	if hasController && tokenOwner == p.controllerAddr {
		chain.IsOwnerTransferredToController = true
		controllerOwner, err := p.probeOwner(ctx, p.controllerAddr)
		if err != nil {
			p.logger.Error("failed to fetch controller owner", zap.Error(err))
			return Failed[OwnershipChain](err)
		}
		chain.ControllerOwner = &controllerOwner
		chain.FinalOwner = controllerOwner
		return Ok(chain)
	}

	// The owner is not the controller; it may still be some other contract
	// with its own owner(). Probe once and swallow failure.
	if nextOwner, err := p.probeOwner(ctx, tokenOwner); err == nil {
		chain.ControllerOwner = &nextOwner
		chain.FinalOwner = nextOwner
	} else {
		p.logger.Debug("owner address has no owner() of its own, treating as wallet",
			zap.String("owner", tokenOwner.Hex()),
			zap.Error(err))
	}

	return Ok(chain)
}
