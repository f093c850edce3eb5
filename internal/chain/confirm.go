package chain

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/encorelab/moment-nft-service/internal/domain"
	"github.com/encorelab/moment-nft-service/internal/logger"
)

// errReceiptPending signals the polling loop that the transaction is not
// mined yet
var errReceiptPending = errors.New("receipt not available yet")

// WaitForConfirmation polls the transaction receipt with exponential backoff
// until the transaction is mined or the configured watch deadline expires.
// The deadline expiring is not a failure: the transaction may still confirm
// later, so the result is ConfirmationIndeterminate and the caller must
// re-check authoritative state via GetEdition before assuming either outcome.
func (g *gateway) WaitForConfirmation(ctx context.Context, txHash string) (domain.ConfirmationStatus, error) {
	hash := common.HexToHash(txHash)

	watchCtx, cancel := context.WithTimeout(ctx, g.config.ConfirmationTimeout)
	defer cancel()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.config.ReceiptPollInterval
	policy.MaxInterval = 4 * g.config.ReceiptPollInterval
	policy.MaxElapsedTime = g.config.ConfirmationTimeout

	var receipt *types.Receipt
	err := backoff.Retry(func() error {
		r, err := g.client.TransactionReceipt(watchCtx, hash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return errReceiptPending
			}
			// RPC failures are retried under the same deadline; a flaky node
			// must not flip an unconfirmed transaction into a failure
			logger.WarnCtx(ctx, "Receipt poll failed, retrying",
				zap.String("tx_hash", txHash),
				zap.Error(err),
			)
			return err
		}
		receipt = r
		return nil
	}, backoff.WithContext(policy, watchCtx))

	if err != nil {
		// Deadline or context expiry with the transaction still unmined
		logger.InfoCtx(ctx, "Transaction watch expired without confirmation",
			zap.String("tx_hash", txHash),
		)
		return domain.ConfirmationIndeterminate, nil
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		return domain.ConfirmationConfirmed, nil
	}
	return domain.ConfirmationReverted, nil
}
