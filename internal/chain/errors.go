package chain

import (
	"errors"
	"strings"

	"github.com/encorelab/moment-nft-service/internal/domain"
)

// classifyRevert maps a node or contract error onto the domain's rejection
// taxonomy. Chain rejections carry their specific reason and are never
// retried automatically.
func classifyRevert(err error, txHash string) error {
	if err == nil {
		return nil
	}

	reason := revertReason(err)
	if reason == nil {
		return err
	}

	return &domain.ChainRejectedError{Reason: reason, TxHash: txHash}
}

// revertReason matches the contract's revert strings. Unknown errors return
// nil so transport faults are not misreported as contract rejections.
func revertReason(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "edition already exists"),
		strings.Contains(msg, "edition exists"):
		return domain.ErrEditionExists
	case strings.Contains(msg, "edition not active"),
		strings.Contains(msg, "minting window"),
		strings.Contains(msg, "edition ended"):
		return domain.ErrEditionInactive
	case strings.Contains(msg, "supply exhausted"),
		strings.Contains(msg, "max supply"):
		return domain.ErrSupplyExhausted
	case strings.Contains(msg, "insufficient payment"),
		strings.Contains(msg, "insufficient funds for price"):
		return domain.ErrInsufficientPayment
	case strings.Contains(msg, "execution reverted"):
		return errors.New(msg)
	default:
		return nil
	}
}

// classifyDecline surfaces wallet refusals as the domain's informational
// cancellation instead of a generic signing failure.
func classifyDecline(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUserDeclined) {
		return domain.ErrUserDeclined
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "user denied") ||
		strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "request rejected") {
		return domain.ErrUserDeclined
	}
	return err
}
