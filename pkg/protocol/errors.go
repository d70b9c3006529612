package protocol

import (
	"errors"

	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
)

var (
	// ErrWalletNotConnected is returned by write paths when the client holds
	// no signing key. Aliased from the chain layer so callers only need one
	// sentinel.
	ErrWalletNotConnected = ethereum.ErrWalletNotConnected

	// ErrTxReverted is returned when a submitted transaction mined with a
	// failed status.
	ErrTxReverted = ethereum.ErrTxReverted

	// ErrEventNotFound is returned when a confirmed transaction's receipt
	// lacks the expected outcome event.
	ErrEventNotFound = ethereum.ErrEventNotFound

	// ErrZeroWinnings is returned when a successful cash-out decodes to zero
	// winnings. The contract pays out whenever a cash-out succeeds, so a zero
	// here means the receipt cannot be trusted as an outcome.
	ErrZeroWinnings = errors.New("protocol: cash-out succeeded but decoded winnings are zero")

	// ErrNotConfigured is returned by adapters whose contract address was not
	// present in the configuration.
	ErrNotConfigured = errors.New("protocol: contract address not configured")
)
